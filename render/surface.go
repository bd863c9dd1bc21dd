// Package render draws renderer and GUI components onto a Surface.
package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tessel/camera"
)

// Surface is the set of primitives components draw with. Positions are in
// the surface's own coordinate space, y down.
type Surface interface {
	Size() mgl64.Vec2
	FillRect(pos, size mgl64.Vec2, rotation float64, c color.Color)
	FillCircle(center mgl64.Vec2, radius float64, c color.Color)
	DrawImage(name string, pos, size mgl64.Vec2, rotation float64)
	DrawText(text string, pos mgl64.Vec2, c color.Color)
}

// projected maps world coordinates to the screen through a camera.
type projected struct {
	inner  Surface
	cam    *camera.Camera
	camPos mgl64.Vec3
}

// Projected returns a Surface that takes world coordinates and draws them on
// s as seen by cam positioned at camPos. Sizes are scaled by the zoom.
func Projected(s Surface, cam *camera.Camera, camPos mgl64.Vec3) Surface {
	return &projected{inner: s, cam: cam, camPos: camPos}
}

func (p *projected) toScreen(v mgl64.Vec2) mgl64.Vec2 {
	return p.cam.WorldToScreen(v, p.inner.Size(), p.camPos)
}

func (p *projected) Size() mgl64.Vec2 {
	return p.inner.Size()
}

func (p *projected) FillRect(pos, size mgl64.Vec2, rotation float64, c color.Color) {
	p.inner.FillRect(p.toScreen(pos), size.Mul(p.cam.Zoom()), rotation, c)
}

func (p *projected) FillCircle(center mgl64.Vec2, radius float64, c color.Color) {
	p.inner.FillCircle(p.toScreen(center), radius*p.cam.Zoom(), c)
}

func (p *projected) DrawImage(name string, pos, size mgl64.Vec2, rotation float64) {
	p.inner.DrawImage(name, p.toScreen(pos), size.Mul(p.cam.Zoom()), rotation)
}

func (p *projected) DrawText(text string, pos mgl64.Vec2, c color.Color) {
	p.inner.DrawText(text, p.toScreen(pos), c)
}
