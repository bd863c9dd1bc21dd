package input

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/plus3/tessel/camera"
	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/render"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

// Capture reports whether something drawn above the scene, such as a debug
// overlay, is consuming the mouse or the keyboard.
type Capture func() (mouse, keyboard bool)

// Dispatcher turns polled input into hover state, script callbacks and text
// entry for the active scene.
type Dispatcher struct {
	entities *ecs.Registry
	scenes   *scene.Registry
	cameras  *camera.Rig
	log      *zap.Logger

	state   *State
	capture Capture
	keys    []Key
	chars   []rune
}

func NewDispatcher(entities *ecs.Registry, scenes *scene.Registry, cameras *camera.Rig, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		entities: entities,
		scenes:   scenes,
		cameras:  cameras,
		log:      log,
		state:    newState(),
	}
}

// State returns the state as of the last Poll.
func (d *Dispatcher) State() *State {
	return d.state
}

// SetCapture installs a check that suppresses mouse or keyboard dispatch.
func (d *Dispatcher) SetCapture(c Capture) {
	d.capture = c
}

// Poll reads src and dispatches what changed since the previous poll.
// viewport is the size of the drawing surface in pixels.
func (d *Dispatcher) Poll(src Source, viewport mgl64.Vec2) {
	var mouseCaptured, keyboardCaptured bool
	if d.capture != nil {
		mouseCaptured, keyboardCaptured = d.capture()
	}

	s := d.state
	cursor := src.CursorPosition()
	moved := !s.polled || cursor != s.Cursor
	s.polled = true
	s.Cursor = cursor

	world, err := d.cameras.ScreenToWorld(cursor, viewport)
	if err != nil {
		world = cursor
	}
	s.CursorWorld = world

	if moved && !mouseCaptured {
		d.updateHover(viewport)
	}

	down := src.IsMouseButtonPressed(MouseLeft)
	if mouseCaptured {
		down = false
	}
	switch {
	case down && !s.MouseDown:
		s.MouseDown = true
		d.mouseDown()
	case !down && s.MouseDown:
		s.MouseDown = false
		d.mouseUp()
	}

	d.keys = src.AppendPressedKeys(d.keys[:0])
	d.chars = src.AppendInputChars(d.chars[:0])
	if keyboardCaptured {
		d.keys = d.keys[:0]
		d.chars = d.chars[:0]
	}
	s.updateKeys(d.keys)
	s.Typed = append(s.Typed[:0], d.chars...)

	d.textEntry()
}

// activeEntities iterates the active scene's entities that have a Transform.
func (d *Dispatcher) activeEntities(fn func(e *ecs.Entity, t *transform.Transform)) {
	for e := range d.entities.InScene(int(d.scenes.ActiveID())) {
		if t, ok := transform.Of(e); ok {
			fn(e, t)
		}
	}
}

func (d *Dispatcher) updateHover(viewport mgl64.Vec2) {
	surface := viewportSurface(viewport)
	d.activeEntities(func(e *ecs.Entity, t *transform.Transform) {
		for _, c := range e.Components() {
			if el, ok := c.(render.GUIElement); ok {
				el.SetHovered(el.TouchingPoint(d.state.Cursor, surface, t))
			}
		}
	})
}

func scripts(e *ecs.Entity) []*Script {
	var out []*Script
	for _, c := range e.Components() {
		if s, ok := c.(*Script); ok {
			out = append(out, s)
		}
	}
	return out
}

func collider(e *ecs.Entity) (Collider, bool) {
	c, err := e.Component(ColliderKind)
	if err != nil {
		return nil, false
	}
	col, ok := c.(Collider)
	return col, ok
}

func (d *Dispatcher) mouseDown() {
	d.activeEntities(func(e *ecs.Entity, t *transform.Transform) {
		col, ok := collider(e)
		if !ok || !col.OverlapsPoint(t, d.state.CursorWorld) {
			return
		}
		for _, s := range scripts(e) {
			s.run(s.OnMouseDown, e)
		}
	})
}

// mouseUp runs OnMouseUp for colliders under the cursor and OnClick for
// hovered GUI elements, and selects exactly the hovered text boxes.
func (d *Dispatcher) mouseUp() {
	d.activeEntities(func(e *ecs.Entity, t *transform.Transform) {
		if col, ok := collider(e); ok {
			if col.OverlapsPoint(t, d.state.CursorWorld) {
				for _, s := range scripts(e) {
					s.run(s.OnMouseUp, e)
				}
			}
			return
		}

		for _, c := range e.Components() {
			el, ok := c.(render.GUIElement)
			if !ok {
				continue
			}
			if el.Hovered() {
				for _, s := range scripts(e) {
					s.run(s.OnClick, e)
				}
			}
			if box, ok := el.(*render.GUITextBox); ok {
				box.SetSelected(box.Hovered())
			}
		}
	})
}

func (d *Dispatcher) textEntry() {
	s := d.state
	backspace := s.JustPressed(KeyBackspace)
	enter := s.JustPressed(KeyEnter)
	if len(s.Typed) == 0 && !backspace && !enter {
		return
	}

	for e := range d.entities.All() {
		for _, c := range e.Components() {
			box, ok := c.(*render.GUITextBox)
			if !ok || !box.Selected() {
				continue
			}
			for _, r := range s.Typed {
				box.KeyPress(r)
			}
			if backspace {
				box.Backspace()
			}
			if enter {
				box.SetSelected(false)
				d.log.Debug("text box submitted", zap.String("entity", e.Name), zap.String("text", box.Text()))
			}
		}
	}
}

// viewportSurface is handed to hit tests, which only need the size.
type viewportSurface mgl64.Vec2

func (v viewportSurface) Size() mgl64.Vec2                                    { return mgl64.Vec2(v) }
func (viewportSurface) FillRect(mgl64.Vec2, mgl64.Vec2, float64, color.Color) {}
func (viewportSurface) FillCircle(mgl64.Vec2, float64, color.Color)           {}
func (viewportSurface) DrawImage(string, mgl64.Vec2, mgl64.Vec2, float64)     {}
func (viewportSurface) DrawText(string, mgl64.Vec2, color.Color)              {}
