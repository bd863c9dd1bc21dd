package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/engine"
	"github.com/plus3/tessel/input"
	"github.com/plus3/tessel/render"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

type keySource struct {
	held []input.Key
}

func (k *keySource) CursorPosition() mgl64.Vec2                     { return mgl64.Vec2{} }
func (k *keySource) IsMouseButtonPressed(input.MouseButton) bool    { return false }
func (k *keySource) AppendPressedKeys(keys []input.Key) []input.Key { return append(keys, k.held...) }
func (k *keySource) AppendInputChars(chars []rune) []rune           { return chars }

func newWorld(t *testing.T) *engine.Context {
	t.Helper()
	ctx, err := engine.New(nil, nil)
	require.NoError(t, err)
	ctx.Scheduler.RegisterNamed("controls", controls(ctx))
	require.NoError(t, buildWorld(ctx))
	return ctx
}

func TestBuildWorld(t *testing.T) {
	ctx := newWorld(t)

	assert.True(t, ctx.Scenes.Has(menuScene))
	_, _, err := ctx.Cameras.Main()
	require.NoError(t, err)

	moon, ok := ctx.Entities.FindByName("moon")
	require.True(t, ok)
	mt, ok := transform.Of(moon)
	require.True(t, ok)
	assert.Equal(t, "sun", mt.Root().Entity().Name)

	menu, ok := ctx.Entities.FindByName("menu-title")
	require.True(t, ok)
	assert.Equal(t, int(menuScene), menu.SceneID)
}

func TestOrbitUpdate(t *testing.T) {
	ctx := newWorld(t)

	planet, ok := ctx.Entities.FindByName("planet")
	require.True(t, ok)
	pt, _ := transform.Of(planet)

	ctx.Update(nil, mgl64.Vec2{}, math.Pi)

	// speed 0.5 for pi seconds is a quarter turn
	local := pt.LocalPosition()
	assert.InDelta(t, 0, local.X(), 1e-9)
	assert.InDelta(t, 150, local.Y(), 1e-9)
	assert.InDelta(t, math.Pi/2, pt.LocalRotation().Z(), 1e-9)
}

func TestControls(t *testing.T) {
	ctx := newWorld(t)
	viewport := mgl64.Vec2{800, 600}
	src := &keySource{held: []input.Key{input.KeyRight}}

	ctx.Update(src, viewport, 0.5)
	_, cam, err := ctx.Cameras.Main()
	require.NoError(t, err)
	assert.InDelta(t, cameraSpeed*0.5, cam.Position().X(), 1e-9)

	src.held = []input.Key{input.KeyTab}
	ctx.Update(src, viewport, 0.1)
	assert.Equal(t, menuScene, ctx.Scenes.ActiveID())

	src.held = nil
	ctx.Update(src, viewport, 0.1)
	src.held = []input.Key{input.KeyTab}
	ctx.Update(src, viewport, 0.1)
	assert.Equal(t, scene.Main, ctx.Scenes.ActiveID())
}

func TestTypingBlocksControls(t *testing.T) {
	ctx := newWorld(t)
	assert.False(t, typing(ctx))

	e, ok := ctx.Entities.FindByName("input")
	require.True(t, ok)
	box, err := ecs.ComponentOf[*render.GUITextBox](e)
	require.NoError(t, err)
	box.SetSelected(true)
	assert.True(t, typing(ctx))

	src := &keySource{held: []input.Key{input.KeyTab}}
	ctx.Update(src, mgl64.Vec2{800, 600}, 0.1)
	assert.Equal(t, scene.Main, ctx.Scenes.ActiveID(), "tab goes to the text box")
}
