package camera_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/plus3/tessel/camera"
	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

func near(a, b mgl64.Vec2, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) <= tolerance && math.Abs(a.Y()-b.Y()) <= tolerance
}

func assertVecNear(t *testing.T, want, got mgl64.Vec2) {
	t.Helper()
	assert.True(t, near(want, got, 1e-9), "want %v, got %v", want, got)
}

func TestDefaults(t *testing.T) {
	c := camera.New()
	assert.Equal(t, 1.0, c.Zoom())
	assert.Equal(t, 1000.0, c.Far())
	assert.Equal(t, 0.1, c.Near())
	assert.Equal(t, 90.0, c.FOV())

	f, err := c.Fields().Field("far")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Description)

	c = camera.New(camera.WithZoom(-2), camera.WithFOV(60))
	assert.Equal(t, 1.0, c.Zoom())
	assert.Equal(t, 60.0, c.FOV())
}

func TestZoomRejectsNonPositive(t *testing.T) {
	c := camera.New(camera.WithZoom(2))

	assert.ErrorIs(t, c.SetZoom(0), camera.ErrInvalidZoom)
	assert.ErrorIs(t, c.SetZoom(-1), camera.ErrInvalidZoom)
	assert.Equal(t, 2.0, c.Zoom())

	require.NoError(t, c.Fields().Set("zoom", -3.0))
	assert.Equal(t, 2.0, c.Zoom())

	require.NoError(t, c.Fields().Set("zoom", 4.0))
	assert.Equal(t, 4.0, c.Zoom())
}

func TestScreenWorldMapping(t *testing.T) {
	viewport := mgl64.Vec2{800, 600}

	t.Run("identity at unit zoom and centered camera", func(t *testing.T) {
		c := camera.New()
		camPos := mgl64.Vec3{400, 300, 0}
		p := mgl64.Vec2{12, 34}
		assertVecNear(t, p, c.ScreenToWorld(p, viewport, camPos))
		assertVecNear(t, p, c.WorldToScreen(p, viewport, camPos))
	})

	t.Run("camera position appears at the center", func(t *testing.T) {
		c := camera.New(camera.WithZoom(3))
		camPos := mgl64.Vec3{-50, 75, 9}
		assertVecNear(t, mgl64.Vec2{400, 300}, c.WorldToScreen(camPos.Vec2(), viewport, camPos))
		assertVecNear(t, camPos.Vec2(), c.ScreenToWorld(mgl64.Vec2{400, 300}, viewport, camPos))
	})

	t.Run("zoom scales about the center", func(t *testing.T) {
		c := camera.New(camera.WithZoom(2))
		camPos := mgl64.Vec3{0, 0, 0}
		assertVecNear(t, mgl64.Vec2{420, 300}, c.WorldToScreen(mgl64.Vec2{10, 0}, viewport, camPos))
		assertVecNear(t, mgl64.Vec2{10, 0}, c.ScreenToWorld(mgl64.Vec2{420, 300}, viewport, camPos))
	})

	t.Run("round trip", func(t *testing.T) {
		for _, zoom := range []float64{0.01, 0.5, 1, 1.7, 3, 250} {
			c := camera.New(camera.WithZoom(zoom))
			for _, camPos := range []mgl64.Vec3{{0, 0, 0}, {123.5, -42, 1}, {-1e4, 1e4, 0}} {
				for _, p := range []mgl64.Vec2{{0, 0}, {1, 1}, {-300.25, 799}, {1e5, -1e5}} {
					screen := c.WorldToScreen(p, viewport, camPos)
					back := c.ScreenToWorld(screen, viewport, camPos)
					tolerance := 1e-9 * math.Max(1, math.Max(math.Abs(p.X()), math.Abs(p.Y())))
					assert.True(t, near(p, back, tolerance),
						"zoom %v cam %v: %v came back as %v", zoom, camPos, p, back)

					world := c.ScreenToWorld(p, viewport, camPos)
					again := c.WorldToScreen(world, viewport, camPos)
					assert.True(t, near(p, again, tolerance*zoom+tolerance))
				}
			}
		}
	})
}

func TestZoomTo(t *testing.T) {
	c := camera.New()

	assert.ErrorIs(t, c.ZoomTo(0, 1, nil), camera.ErrInvalidZoom)
	require.NoError(t, c.ZoomTo(3, 1, ease.Linear))
	assert.True(t, c.Zooming())

	c.Update(0.5)
	assert.InDelta(t, 2.0, c.Zoom(), 1e-6)

	c.Update(0.75)
	assert.InDelta(t, 3.0, c.Zoom(), 1e-6)
	assert.False(t, c.Zooming())

	require.NoError(t, c.ZoomTo(1, 1, nil))
	require.NoError(t, c.SetZoom(5))
	assert.False(t, c.Zooming(), "setting the zoom stops the animation")
	c.Update(1)
	assert.Equal(t, 5.0, c.Zoom())
}

type rigWorld struct {
	entities  *ecs.Registry
	hierarchy *transform.Hierarchy
	rig       *camera.Rig
}

func newRigWorld() *rigWorld {
	entities := ecs.NewRegistry()
	scenes := scene.NewRegistry(zap.NewNop())
	return &rigWorld{
		entities:  entities,
		hierarchy: transform.NewHierarchy(entities, scenes, zap.NewNop()),
		rig:       camera.NewRig(entities, zap.NewNop()),
	}
}

func TestRig(t *testing.T) {
	w := newRigWorld()
	viewport := mgl64.Vec2{100, 100}

	_, err := w.rig.ScreenToWorld(mgl64.Vec2{}, viewport)
	assert.ErrorIs(t, err, camera.ErrNoMainCamera)
	_, _, err = w.rig.Main()
	assert.ErrorIs(t, err, camera.ErrNoMainCamera)

	plain, _ := w.entities.Create("plain", 0, w.hierarchy.New())
	assert.ErrorIs(t, w.rig.SetMain(plain), ecs.ErrComponentNotFound)

	floating, _ := w.entities.Create("floating", 0, camera.New())
	assert.ErrorIs(t, w.rig.SetMain(floating), ecs.ErrComponentNotFound)
	assert.ErrorIs(t, w.rig.SetMain(999), ecs.ErrEntityNotFound)

	cam := camera.New(camera.WithZoom(2))
	id, err := w.entities.Create("camera", 0, cam, w.hierarchy.New(transform.WithPosition(mgl64.Vec3{10, 20, 0})))
	require.NoError(t, err)
	require.NoError(t, w.rig.SetMain(id))

	mainID, ok := w.rig.MainID()
	require.True(t, ok)
	assert.Equal(t, id, mainID)

	got, tr, err := w.rig.Main()
	require.NoError(t, err)
	assert.Same(t, cam, got)
	assert.Equal(t, mgl64.Vec3{10, 20, 0}, tr.Position())

	world, err := w.rig.ScreenToWorld(mgl64.Vec2{50, 50}, viewport)
	require.NoError(t, err)
	assertVecNear(t, mgl64.Vec2{10, 20}, world)

	screen, err := w.rig.WorldToScreen(mgl64.Vec2{11, 20}, viewport)
	require.NoError(t, err)
	assertVecNear(t, mgl64.Vec2{52, 50}, screen)

	require.NoError(t, w.entities.Destroy(id))
	_, ok = w.rig.MainID()
	assert.False(t, ok, "destroying the camera clears the main camera")
	_, err = w.rig.WorldToScreen(mgl64.Vec2{}, viewport)
	assert.ErrorIs(t, err, camera.ErrNoMainCamera)
}

func TestRigFollowsParentedCamera(t *testing.T) {
	w := newRigWorld()

	player := w.hierarchy.New(transform.WithPosition(mgl64.Vec3{100, 0, 0}))
	_, err := w.entities.Create("player", 0, player)
	require.NoError(t, err)

	id, err := w.entities.Create("camera", 0, camera.New(), w.hierarchy.New(transform.WithParent(player)))
	require.NoError(t, err)
	require.NoError(t, w.rig.SetMain(id))

	player.Translate(mgl64.Vec3{5, 5, 0})
	world, err := w.rig.ScreenToWorld(mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0})
	require.NoError(t, err)
	assertVecNear(t, mgl64.Vec2{105, 5}, world)

	w.rig.ClearMain()
	_, _, err = w.rig.Main()
	assert.ErrorIs(t, err, camera.ErrNoMainCamera)
}
