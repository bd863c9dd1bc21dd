package render_test

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plus3/tessel/camera"
	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/render"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

// recorder is a Surface that logs every call.
type recorder struct {
	size  mgl64.Vec2
	calls []string
}

func (r *recorder) Size() mgl64.Vec2 { return r.size }

func (r *recorder) FillRect(pos, size mgl64.Vec2, rotation float64, c color.Color) {
	r.calls = append(r.calls, fmt.Sprintf("rect %v %v %v", pos, size, rotation))
}

func (r *recorder) FillCircle(center mgl64.Vec2, radius float64, c color.Color) {
	r.calls = append(r.calls, fmt.Sprintf("circle %v %v", center, radius))
}

func (r *recorder) DrawImage(name string, pos, size mgl64.Vec2, rotation float64) {
	r.calls = append(r.calls, fmt.Sprintf("image %s %v %v %v", name, pos, size, rotation))
}

func (r *recorder) DrawText(text string, pos mgl64.Vec2, c color.Color) {
	r.calls = append(r.calls, fmt.Sprintf("text %q %v", text, pos))
}

type world struct {
	entities  *ecs.Registry
	scenes    *scene.Registry
	hierarchy *transform.Hierarchy
	rig       *camera.Rig
	system    *render.System
}

func newWorld() *world {
	entities := ecs.NewRegistry()
	scenes := scene.NewRegistry(zap.NewNop())
	rig := camera.NewRig(entities, zap.NewNop())
	return &world{
		entities:  entities,
		scenes:    scenes,
		hierarchy: transform.NewHierarchy(entities, scenes, zap.NewNop()),
		rig:       rig,
		system:    render.NewSystem(entities, scenes, rig),
	}
}

func (w *world) spawn(t *testing.T, name string, sceneID int, pos mgl64.Vec3, comps ...ecs.Component) ecs.EntityId {
	t.Helper()
	tr := w.hierarchy.New(transform.WithPosition(pos))
	id, err := w.entities.Create(name, sceneID, append([]ecs.Component{tr}, comps...)...)
	require.NoError(t, err)
	return id
}

func TestRenderers(t *testing.T) {
	w := newWorld()
	s := &recorder{size: mgl64.Vec2{100, 100}}
	red := color.RGBA{R: 255, A: 255}

	w.spawn(t, "img", 0, mgl64.Vec3{1, 2, 0}, render.NewImage("a.png", 10, 20))
	w.spawn(t, "rect", 0, mgl64.Vec3{3, 4, 0}, render.NewRect(5, 6, red))
	w.spawn(t, "circle", 0, mgl64.Vec3{7, 8, 0}, render.NewCircle(2, red))
	w.spawn(t, "no url", 0, mgl64.Vec3{}, render.NewImage("", 10, 10))
	w.spawn(t, "flat", 0, mgl64.Vec3{}, render.NewRect(0, 10, red))
	w.spawn(t, "elsewhere", 1, mgl64.Vec3{}, render.NewCircle(1, red))

	w.system.Draw(s)

	assert.Equal(t, []string{
		"image a.png [1 2] [10 20] 0",
		"rect [3 4] [5 6] 0",
		"circle [7 8] 2",
	}, s.calls)
}

func TestRendererScalesWithTransform(t *testing.T) {
	w := newWorld()
	s := &recorder{size: mgl64.Vec2{100, 100}}

	tr := w.hierarchy.New(transform.WithScale(mgl64.Vec3{2, 3, 1}), transform.WithRotation(mgl64.Vec3{0, 0, 0.5}))
	_, err := w.entities.Create("img", 0, tr, render.NewImage("a.png", 10, 10))
	require.NoError(t, err)

	w.system.Draw(s)
	assert.Equal(t, []string{"image a.png [0 0] [20 30] 0.5"}, s.calls)
}

func TestWorldThroughMainCamera(t *testing.T) {
	w := newWorld()
	s := &recorder{size: mgl64.Vec2{100, 100}}

	camID := w.spawn(t, "camera", 0, mgl64.Vec3{10, 10, 0}, camera.New(camera.WithZoom(2)))
	require.NoError(t, w.rig.SetMain(camID))

	w.spawn(t, "dot", 0, mgl64.Vec3{15, 10, 0}, render.NewCircle(3, color.RGBA{A: 255}))
	w.spawn(t, "label", 0, mgl64.Vec3{15, 10, 0}, render.NewGUIText("hi", 10, 10, color.RGBA{A: 255}, 0))

	w.system.Draw(s)
	assert.Equal(t, []string{
		"circle [60 50] 6",
		`text "hi" [15 10]`,
	}, s.calls, "world renderers go through the camera, GUI stays in screen space")
}

func TestProjected(t *testing.T) {
	s := &recorder{size: mgl64.Vec2{200, 100}}
	cam := camera.New(camera.WithZoom(0.5))
	p := render.Projected(s, cam, mgl64.Vec3{100, 50, 0})

	assert.Equal(t, mgl64.Vec2{200, 100}, p.Size())

	p.FillRect(mgl64.Vec2{100, 50}, mgl64.Vec2{10, 10}, 1, color.White)
	p.DrawImage("x", mgl64.Vec2{120, 50}, mgl64.Vec2{4, 8}, 0)
	p.DrawText("t", mgl64.Vec2{100, 30}, color.White)
	p.FillCircle(mgl64.Vec2{80, 50}, 4, color.White)

	assert.Equal(t, []string{
		"rect [100 50] [5 5] 1",
		"image x [110 50] [2 4] 0",
		`text "t" [100 40]`,
		"circle [90 50] 2",
	}, s.calls)
}

func TestGUIOrderedByZLayer(t *testing.T) {
	w := newWorld()
	s := &recorder{size: mgl64.Vec2{100, 100}}
	ink := color.RGBA{A: 255}

	w.spawn(t, "top", 0, mgl64.Vec3{}, render.NewGUIText("top", 1, 1, ink, 5))
	w.spawn(t, "bottom", 0, mgl64.Vec3{}, render.NewGUIText("bottom", 1, 1, ink, -1))
	w.spawn(t, "middle a", 0, mgl64.Vec3{}, render.NewGUIText("a", 1, 1, ink, 2))
	w.spawn(t, "middle b", 0, mgl64.Vec3{}, render.NewGUIText("b", 1, 1, ink, 2))

	w.system.Draw(s)
	assert.Equal(t, []string{
		`text "bottom" [0 0]`,
		`text "a" [0 0]`,
		`text "b" [0 0]`,
		`text "top" [0 0]`,
	}, s.calls)
}

func TestGUIImage(t *testing.T) {
	w := newWorld()
	img := render.NewGUIImage("icon.png", 10, 20, 1)
	tr := w.hierarchy.New(transform.WithPosition(mgl64.Vec3{5, 5, 0}), transform.WithScale(mgl64.Vec3{2, 1, 1}))
	_, err := w.entities.Create("icon", 0, tr, img)
	require.NoError(t, err)

	assert.True(t, img.TouchingPoint(mgl64.Vec2{5, 5}, nil, tr))
	assert.True(t, img.TouchingPoint(mgl64.Vec2{25, 25}, nil, tr))
	assert.False(t, img.TouchingPoint(mgl64.Vec2{26, 10}, nil, tr))
	assert.False(t, img.TouchingPoint(mgl64.Vec2{10, 4}, nil, tr))

	s := &recorder{size: mgl64.Vec2{100, 100}}
	img.Draw(s, tr)
	assert.Equal(t, []string{"image icon.png [5 5] [20 20] 0"}, s.calls)

	assert.Equal(t, 1, img.ZLayer())
	assert.False(t, img.Hovered())
	img.SetHovered(true)
	v, err := img.Fields().Get("hovered")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestGUITextBox(t *testing.T) {
	w := newWorld()
	box := render.NewGUITextBox("name", 50, 10, 3, 0)
	tr := w.hierarchy.New()
	_, err := w.entities.Create("box", 0, tr, box)
	require.NoError(t, err)

	s := &recorder{size: mgl64.Vec2{100, 100}}
	box.Draw(s, tr)
	assert.Equal(t, []string{"rect [0 0] [50 10] 0", `text "name" [2 2]`}, s.calls)

	box.Backspace()
	assert.Equal(t, "", box.Text())

	box.KeyPress('h')
	box.KeyPress('é')
	box.KeyPress('y')
	box.KeyPress('!')
	assert.Equal(t, "héy", box.Text(), "typing stops at the maximum length")

	box.Backspace()
	box.Backspace()
	assert.Equal(t, "h", box.Text())

	box.SetSelected(true)
	assert.True(t, box.Selected())

	s.calls = nil
	box.Draw(s, tr)
	assert.Equal(t, []string{"rect [0 0] [50 10] 0", `text "h" [2 2]`}, s.calls)

	data, err := ecs.MarshalComponent(box)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "GUIElement", "subtype": "GUITextBox",
		"zLayer": 0, "hovered": false,
		"text": "h", "placeholder": "name", "width": 50, "height": 10,
		"maxLength": 3, "selected": true
	}`, string(data))
}

func TestVariantsAreDistinctComponents(t *testing.T) {
	w := newWorld()
	id := w.spawn(t, "both", 0, mgl64.Vec3{},
		render.NewRect(1, 1, color.RGBA{}),
		render.NewCircle(1, color.RGBA{}),
	)

	c, err := w.entities.GetComponent(id, render.RendererKind, "Circle")
	require.NoError(t, err)
	_, ok := c.(*render.Circle)
	assert.True(t, ok)

	_, ok = c.(render.Renderer)
	assert.True(t, ok)
	_, ok = c.(render.GUIElement)
	assert.False(t, ok)
}
