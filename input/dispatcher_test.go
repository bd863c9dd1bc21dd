package input_test

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plus3/tessel/camera"
	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/input"
	"github.com/plus3/tessel/render"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

// fakeSource is an input.Source driven by the test.
type fakeSource struct {
	cursor mgl64.Vec2
	down   bool
	keys   []input.Key
	chars  []rune
}

func (f *fakeSource) CursorPosition() mgl64.Vec2 { return f.cursor }

func (f *fakeSource) IsMouseButtonPressed(b input.MouseButton) bool {
	return b == input.MouseLeft && f.down
}

func (f *fakeSource) AppendPressedKeys(keys []input.Key) []input.Key {
	return append(keys, f.keys...)
}

func (f *fakeSource) AppendInputChars(chars []rune) []rune {
	chars = append(chars, f.chars...)
	f.chars = nil
	return chars
}

var viewport = mgl64.Vec2{200, 100}

type world struct {
	entities   *ecs.Registry
	scenes     *scene.Registry
	hierarchy  *transform.Hierarchy
	rig        *camera.Rig
	dispatcher *input.Dispatcher
	src        *fakeSource
}

func newWorld() *world {
	entities := ecs.NewRegistry()
	scenes := scene.NewRegistry(zap.NewNop())
	rig := camera.NewRig(entities, zap.NewNop())
	return &world{
		entities:   entities,
		scenes:     scenes,
		hierarchy:  transform.NewHierarchy(entities, scenes, zap.NewNop()),
		rig:        rig,
		dispatcher: input.NewDispatcher(entities, scenes, rig, zap.NewNop()),
		src:        &fakeSource{},
	}
}

func (w *world) spawn(t *testing.T, name string, sceneID int, pos mgl64.Vec2, comps ...ecs.Component) *ecs.Entity {
	t.Helper()
	tr := w.hierarchy.New(transform.WithPosition(pos.Vec3(0)))
	id, err := w.entities.Create(name, sceneID, append([]ecs.Component{tr}, comps...)...)
	require.NoError(t, err)
	e, err := w.entities.Entity(id)
	require.NoError(t, err)
	return e
}

func (w *world) poll() {
	w.dispatcher.Poll(w.src, viewport)
}

func (w *world) click(at mgl64.Vec2) {
	w.src.cursor = at
	w.poll()
	w.src.down = true
	w.poll()
	w.src.down = false
	w.poll()
}

func TestCursorState(t *testing.T) {
	w := newWorld()

	w.src.cursor = mgl64.Vec2{10, 20}
	w.poll()
	state := w.dispatcher.State()
	assert.Equal(t, mgl64.Vec2{10, 20}, state.Cursor)
	assert.Equal(t, mgl64.Vec2{10, 20}, state.CursorWorld, "without a main camera world equals screen")
	assert.False(t, state.MouseDown)

	camID := w.spawn(t, "camera", 0, mgl64.Vec2{0, 0}, camera.New()).ID()
	require.NoError(t, w.rig.SetMain(camID))
	w.poll()
	assert.Equal(t, mgl64.Vec2{-90, -30}, state.CursorWorld)

	w.src.down = true
	w.poll()
	assert.True(t, state.MouseDown)
}

func TestKeyState(t *testing.T) {
	w := newWorld()
	state := w.dispatcher.State()

	w.src.keys = []input.Key{input.KeySpace, input.KeyLeft}
	w.poll()
	assert.True(t, state.KeyDown(input.KeySpace))
	assert.True(t, state.JustPressed(input.KeySpace))
	assert.Equal(t, []input.Key{input.KeySpace, input.KeyLeft}, state.HeldKeys())

	w.poll()
	assert.True(t, state.KeyDown(input.KeySpace))
	assert.False(t, state.JustPressed(input.KeySpace))

	w.src.keys = nil
	w.poll()
	assert.False(t, state.KeyDown(input.KeySpace))
	assert.Empty(t, state.HeldKeys())
}

func TestKeyOf(t *testing.T) {
	k, ok := input.KeyOf('a')
	require.True(t, ok)
	assert.Equal(t, input.Key(65), k)

	k, ok = input.KeyOf('7')
	require.True(t, ok)
	assert.Equal(t, input.Key(55), k)

	_, ok = input.KeyOf('#')
	assert.False(t, ok)
}

func TestHoverOnlyInActiveScene(t *testing.T) {
	w := newWorld()
	_, err := w.scenes.Register(1, "other")
	require.NoError(t, err)

	here := render.NewGUIImage("a.png", 20, 20, 0)
	there := render.NewGUIImage("a.png", 20, 20, 0)
	w.spawn(t, "here", 0, mgl64.Vec2{10, 10}, here)
	w.spawn(t, "there", 1, mgl64.Vec2{10, 10}, there)

	w.src.cursor = mgl64.Vec2{15, 15}
	w.poll()
	assert.True(t, here.Hovered())
	assert.False(t, there.Hovered())

	w.src.cursor = mgl64.Vec2{50, 50}
	w.poll()
	assert.False(t, here.Hovered())
}

func TestClickOnGUIElement(t *testing.T) {
	w := newWorld()

	clicks := 0
	script := input.NewScript("button")
	script.OnClick = func(e *ecs.Entity) {
		assert.Equal(t, "button", e.Name)
		clicks++
	}
	w.spawn(t, "button", 0, mgl64.Vec2{0, 0}, render.NewGUIText("ok", 30, 10, color.RGBA{A: 255}, 0), script)

	w.click(mgl64.Vec2{5, 5})
	assert.Equal(t, 1, clicks)

	w.click(mgl64.Vec2{100, 100})
	assert.Equal(t, 1, clicks)

	script.SetEnabled(false)
	w.click(mgl64.Vec2{5, 5})
	assert.Equal(t, 1, clicks, "disabled scripts do not run")
}

func TestCollidersUseWorldCursor(t *testing.T) {
	w := newWorld()

	camID := w.spawn(t, "camera", 0, mgl64.Vec2{1000, 1000}, camera.New()).ID()
	require.NoError(t, w.rig.SetMain(camID))

	var events []string
	script := input.NewScript("crate")
	script.OnMouseDown = func(*ecs.Entity) { events = append(events, "down") }
	script.OnMouseUp = func(*ecs.Entity) { events = append(events, "up") }
	script.OnClick = func(*ecs.Entity) { events = append(events, "click") }
	w.spawn(t, "crate", 0, mgl64.Vec2{1000, 1000}, input.NewRectCollider(10, 10), script)

	w.click(mgl64.Vec2{105, 55})
	assert.Equal(t, []string{"down", "up"}, events)

	events = nil
	w.click(mgl64.Vec2{5, 5})
	assert.Empty(t, events)
}

func TestRectCollider(t *testing.T) {
	w := newWorld()
	c := input.NewRectCollider(10, 4)
	e := w.spawn(t, "box", 0, mgl64.Vec2{5, 5}, c)
	tr, _ := transform.Of(e)

	assert.True(t, c.OverlapsPoint(tr, mgl64.Vec2{5, 5}))
	assert.True(t, c.OverlapsPoint(tr, mgl64.Vec2{15, 9}))
	assert.False(t, c.OverlapsPoint(tr, mgl64.Vec2{15, 10}))

	c.SetOffset(mgl64.Vec2{-5, -5})
	assert.True(t, c.OverlapsPoint(tr, mgl64.Vec2{0, 0}))
	assert.False(t, c.OverlapsPoint(tr, mgl64.Vec2{11, 0}))
}

func TestTextBoxEntry(t *testing.T) {
	w := newWorld()
	box := render.NewGUITextBox("name", 50, 10, 0, 0)
	other := render.NewGUITextBox("other", 50, 10, 0, 0)
	w.spawn(t, "box", 0, mgl64.Vec2{0, 0}, box)
	w.spawn(t, "other", 0, mgl64.Vec2{0, 50}, other)

	w.src.chars = []rune("ignored")
	w.poll()
	assert.Empty(t, box.Text(), "unselected boxes get no text")

	w.click(mgl64.Vec2{5, 5})
	require.True(t, box.Selected())
	assert.False(t, other.Selected())

	w.src.chars = []rune("hi!")
	w.poll()
	assert.Equal(t, "hi!", box.Text())
	assert.Empty(t, other.Text())

	w.src.keys = []input.Key{input.KeyBackspace}
	w.poll()
	w.poll()
	assert.Equal(t, "hi", box.Text(), "backspace acts once per key press")

	w.src.keys = nil
	w.poll()
	w.src.keys = []input.Key{input.KeyEnter}
	w.poll()
	assert.False(t, box.Selected())
	w.src.keys = nil

	w.click(mgl64.Vec2{5, 55})
	assert.True(t, other.Selected())
	w.click(mgl64.Vec2{150, 90})
	assert.False(t, other.Selected(), "clicking elsewhere deselects")
}

func TestCaptureSuppressesDispatch(t *testing.T) {
	w := newWorld()
	box := render.NewGUITextBox("", 50, 10, 0, 0)
	w.spawn(t, "box", 0, mgl64.Vec2{0, 0}, box)

	captureMouse, captureKeyboard := true, false
	w.dispatcher.SetCapture(func() (bool, bool) { return captureMouse, captureKeyboard })

	w.click(mgl64.Vec2{5, 5})
	assert.False(t, box.Selected())
	assert.False(t, box.Hovered())

	captureMouse = false
	w.click(mgl64.Vec2{6, 6})
	require.True(t, box.Selected())

	captureKeyboard = true
	w.src.chars = []rune("x")
	w.poll()
	assert.Empty(t, box.Text())
}
