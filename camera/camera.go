// Package camera maps between screen and world coordinates and tracks which
// entity is the main camera.
package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/plus3/tessel/ecs"
)

// Kind is the component kind of every Camera.
const Kind = "Camera"

var (
	ErrNoMainCamera = errors.New("camera: no main camera")
	ErrInvalidZoom  = errors.New("camera: zoom must be positive")
)

// Camera is a component carrying the view settings. Its position is the
// world position of the owning entity's Transform.
type Camera struct {
	ecs.Base

	zoom *ecs.Field
	far  *ecs.Field
	near *ecs.Field
	fov  *ecs.Field

	zoomTween *gween.Tween
}

type settings struct {
	zoom, far, near, fov float64
}

type Option func(*settings)

func WithZoom(zoom float64) Option {
	return func(s *settings) { s.zoom = zoom }
}

func WithFar(far float64) Option {
	return func(s *settings) { s.far = far }
}

func WithNear(near float64) Option {
	return func(s *settings) { s.near = near }
}

func WithFOV(fov float64) Option {
	return func(s *settings) { s.fov = fov }
}

// New creates a camera with zoom 1, far 1000, near 0.1 and fov 90 unless
// overridden. A non-positive zoom option is ignored.
func New(opts ...Option) *Camera {
	s := settings{zoom: 1, far: 1000, near: 0.1, fov: 90}
	for _, opt := range opts {
		opt(&s)
	}
	if s.zoom <= 0 {
		s.zoom = 1
	}

	c := &Camera{Base: ecs.NewBase(Kind, "")}
	fields := c.Fields()
	c.zoom = fields.AddPublic("zoom", s.zoom,
		ecs.WithType("number"),
		ecs.WithDescription("2D only camera zoom, does not affect 3D rendering"),
		ecs.WithSetter(func(v any) {
			if z, ok := v.(float64); ok {
				_ = c.SetZoom(z)
			}
		}),
	)
	c.far = fields.AddPublic("far", s.far,
		ecs.WithType("number"),
		ecs.WithDescription("The far clipping plane. Does not affect 2D rendering."),
	)
	c.near = fields.AddPublic("near", s.near,
		ecs.WithType("number"),
		ecs.WithDescription("The near clipping plane. Does not affect 2D rendering."),
	)
	c.fov = fields.AddPublic("fov", s.fov,
		ecs.WithType("number"),
		ecs.WithDescription("Field of view, like zoom for 3D"),
	)
	return c
}

// Zoom is the current zoom factor, 1 being unscaled.
func (c *Camera) Zoom() float64 {
	return c.zoom.Load().(float64)
}

// SetZoom changes the zoom. Non-positive values are rejected and the
// previous zoom is kept. Any running zoom animation is stopped.
func (c *Camera) SetZoom(zoom float64) error {
	if zoom <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidZoom, zoom)
	}
	c.zoomTween = nil
	c.zoom.Store(zoom)
	return nil
}

// Far is the far clipping distance.
func (c *Camera) Far() float64 {
	v, _ := c.far.Load().(float64)
	return v
}

// Near is the near clipping distance.
func (c *Camera) Near() float64 {
	v, _ := c.near.Load().(float64)
	return v
}

// FOV is the field of view in degrees.
func (c *Camera) FOV() float64 {
	v, _ := c.fov.Load().(float64)
	return v
}

// ZoomTo animates the zoom to target over the given number of seconds.
// A nil easing function means linear.
func (c *Camera) ZoomTo(target float64, seconds float32, fn ease.TweenFunc) error {
	if target <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidZoom, target)
	}
	if fn == nil {
		fn = ease.Linear
	}
	c.zoomTween = gween.New(float32(c.Zoom()), float32(target), seconds, fn)
	return nil
}

// Zooming reports whether a zoom animation is running.
func (c *Camera) Zooming() bool {
	return c.zoomTween != nil
}

// Update advances the zoom animation by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.zoomTween == nil {
		return
	}
	val, done := c.zoomTween.Update(float32(dt))
	if val > 0 {
		c.zoom.Store(float64(val))
	}
	if done {
		c.zoomTween = nil
	}
}

// ScreenToWorld maps a viewport pixel to world coordinates for a camera at
// camPos. The camera position is shown at the center of the viewport.
func (c *Camera) ScreenToWorld(point, viewport mgl64.Vec2, camPos mgl64.Vec3) mgl64.Vec2 {
	center := viewport.Mul(0.5)
	p := zoomAbout(point, 1/c.Zoom(), center)
	return p.Add(camPos.Vec2()).Sub(center)
}

// WorldToScreen is the inverse of ScreenToWorld.
func (c *Camera) WorldToScreen(point, viewport mgl64.Vec2, camPos mgl64.Vec3) mgl64.Vec2 {
	center := viewport.Mul(0.5)
	offset := camPos.Vec2().Sub(center)
	return zoomAbout(point.Sub(offset), c.Zoom(), center)
}

func zoomAbout(p mgl64.Vec2, zoom float64, center mgl64.Vec2) mgl64.Vec2 {
	return center.Add(p.Sub(center).Mul(zoom))
}
