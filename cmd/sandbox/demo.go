package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/engine"
	"github.com/plus3/tessel/input"
	"github.com/plus3/tessel/render"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

const (
	menuScene scene.ID = 1

	cameraSpeed = 240.0
)

var (
	sunColour    = color.RGBA{R: 0xff, G: 0xcc, B: 0x33, A: 0xff}
	planetColour = color.RGBA{R: 0x33, G: 0x99, B: 0xff, A: 0xff}
	moonColour   = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	buttonColour = color.RGBA{R: 0x44, G: 0xaa, B: 0x66, A: 0xff}
	labelColour  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Orbit moves its entity around its parent on a circle.
type Orbit struct {
	ecs.Base
	radius, speed, angle *ecs.Field
}

func NewOrbit(radius, speed float64) *Orbit {
	o := &Orbit{Base: ecs.NewBase("Orbit", "")}
	fields := o.Fields()
	o.radius = fields.AddPublic("radius", radius, ecs.WithType("number"))
	o.speed = fields.AddPublic("speed", speed, ecs.WithType("number"),
		ecs.WithDescription("radians per second"))
	o.angle = fields.AddPublic("angle", 0.0, ecs.WithType("number"))
	return o
}

func floatField(f *ecs.Field) float64 {
	v, _ := f.Get().(float64)
	return v
}

func (o *Orbit) Angle() float64 {
	return floatField(o.angle)
}

func (o *Orbit) Update(dt float64) {
	e := o.Entity()
	if e == nil {
		return
	}
	t, ok := transform.Of(e)
	if !ok {
		return
	}

	angle := math.Mod(o.Angle()+floatField(o.speed)*dt, 2*math.Pi)
	o.angle.Set(angle)

	r := floatField(o.radius)
	t.SetLocalPosition(mgl64.Vec3{r * math.Cos(angle), r * math.Sin(angle), 0})
	t.SetLocalRotation(mgl64.Vec3{0, 0, angle})
}

// buildWorld fills the main scene with a small orbiting system, a clickable
// button and some GUI, and the menu scene with a label.
func buildWorld(ctx *engine.Context) error {
	if !ctx.Scenes.Has(menuScene) {
		if _, err := ctx.Scenes.Register(menuScene, "menu"); err != nil {
			return err
		}
	}

	if _, err := ctx.SpawnCamera("camera", mgl64.Vec3{}); err != nil {
		return err
	}

	h := ctx.Hierarchy
	sun := h.New(transform.WithPosition(mgl64.Vec3{0, 0, 0}))
	if _, err := ctx.Spawn("sun", sun, render.NewCircle(40, sunColour)); err != nil {
		return err
	}
	planet := h.New(transform.WithPosition(mgl64.Vec3{150, 0, 0}), transform.WithParent(sun))
	if _, err := ctx.Spawn("planet", planet, render.NewCircle(15, planetColour), NewOrbit(150, 0.5)); err != nil {
		return err
	}
	moon := h.New(transform.WithPosition(mgl64.Vec3{40, 0, 0}), transform.WithParent(planet))
	if _, err := ctx.Spawn("moon", moon, render.NewRect(8, 8, moonColour), NewOrbit(40, 2)); err != nil {
		return err
	}

	zoomed := false
	button := input.NewScript("zoom")
	button.OnMouseUp = func(e *ecs.Entity) {
		cam, _, err := ctx.Cameras.Main()
		if err != nil {
			return
		}
		target := 2.0
		if zoomed {
			target = 1
		}
		zoomed = !zoomed
		if err := cam.ZoomTo(target, 0.6, ease.OutQuad); err != nil {
			ctx.Log.Warn("zoom failed", zap.Error(err))
		}
		ctx.Log.Info("button clicked", zap.String("entity", e.Name), zap.Float64("zoom", target))
	}
	_, err := ctx.Spawn("zoom-button",
		h.New(transform.WithPosition(mgl64.Vec3{-60, 150, 0})),
		render.NewRect(120, 40, buttonColour),
		input.NewRectCollider(120, 40),
		button,
	)
	if err != nil {
		return err
	}

	if _, err := ctx.Spawn("title",
		h.New(transform.WithPosition(mgl64.Vec3{10, 10, 0})),
		render.NewGUIText("tessel sandbox: arrows pan, tab switches scene", 300, 16, labelColour, 1),
	); err != nil {
		return err
	}

	echo := input.NewScript("echo")
	box := render.NewGUITextBox("type here", 200, 20, 32, 2)
	echo.OnClick = func(e *ecs.Entity) {
		ctx.Log.Info("text box clicked", zap.String("entity", e.Name), zap.String("text", box.Text()))
	}
	if _, err := ctx.Spawn("input", h.New(transform.WithPosition(mgl64.Vec3{10, 40, 0})), box, echo); err != nil {
		return err
	}

	_, err = ctx.SpawnIn(menuScene, "menu-title",
		h.New(transform.WithPosition(mgl64.Vec3{10, 10, 0}), transform.WithParent(transform.SceneParent(menuScene))),
		render.NewGUIText("menu: press tab to return", 200, 16, labelColour, 0),
	)
	return err
}

// controls pans the main camera with the arrow keys and switches scenes
// on Tab. Keys are ignored while a text box has focus.
func controls(ctx *engine.Context) ecs.SystemFunc {
	return func(frame *ecs.UpdateFrame) {
		state := ctx.Dispatcher.State()
		if typing(ctx) {
			return
		}

		if state.JustPressed(input.KeyTab) {
			next := menuScene
			if ctx.Scenes.ActiveID() == menuScene {
				next = scene.Main
			}
			if err := ctx.Scenes.SetActive(next); err != nil {
				ctx.Log.Warn("scene switch failed", zap.Error(err))
			}
		}

		_, t, err := ctx.Cameras.Main()
		if err != nil {
			return
		}
		var dir mgl64.Vec3
		if state.KeyDown(input.KeyLeft) {
			dir[0]--
		}
		if state.KeyDown(input.KeyRight) {
			dir[0]++
		}
		if state.KeyDown(input.KeyUp) {
			dir[1]--
		}
		if state.KeyDown(input.KeyDown) {
			dir[1]++
		}
		if dir != (mgl64.Vec3{}) {
			t.Translate(dir.Mul(cameraSpeed * frame.DeltaTime))
		}
	}
}

func typing(ctx *engine.Context) bool {
	for e := range ctx.Entities.InScene(int(ctx.Scenes.ActiveID())) {
		for _, c := range e.Components() {
			if box, ok := c.(*render.GUITextBox); ok && box.Selected() {
				return true
			}
		}
	}
	return false
}
