// Package ebitensurface implements render.Surface on an ebiten image.
package ebitensurface

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/tessel/render"
)

// ImageSource resolves image names used by Image and GUIImage components.
type ImageSource interface {
	Image(name string) (*ebiten.Image, bool)
}

// Images is an ImageSource backed by a map.
type Images map[string]*ebiten.Image

func (m Images) Image(name string) (*ebiten.Image, bool) {
	img, ok := m[name]
	return img, ok
}

var missingImage = color.RGBA{R: 0xff, B: 0xff, A: 0xff}

// Surface draws onto a target image. Set the target every frame with
// SetTarget before handing the Surface to the render system.
type Surface struct {
	target *ebiten.Image
	images ImageSource
	pixel  *ebiten.Image
}

// New returns a Surface resolving image names through images. A nil source
// draws every image as the placeholder.
func New(images ImageSource) *Surface {
	if images == nil {
		images = Images(nil)
	}
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Surface{images: images, pixel: pixel}
}

func (s *Surface) SetTarget(target *ebiten.Image) {
	s.target = target
}

func (s *Surface) Size() mgl64.Vec2 {
	b := s.target.Bounds()
	return mgl64.Vec2{float64(b.Dx()), float64(b.Dy())}
}

func (s *Surface) FillRect(pos, size mgl64.Vec2, rotation float64, c color.Color) {
	if rotation == 0 {
		vector.DrawFilledRect(s.target, float32(pos.X()), float32(pos.Y()), float32(size.X()), float32(size.Y()), c, false)
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size.X(), size.Y())
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(pos.X(), pos.Y())
	op.ColorScale.ScaleWithColor(c)
	s.target.DrawImage(s.pixel, op)
}

func (s *Surface) FillCircle(center mgl64.Vec2, radius float64, c color.Color) {
	vector.DrawFilledCircle(s.target, float32(center.X()), float32(center.Y()), float32(radius), c, true)
}

// DrawImage stretches the named image over size. Unknown names draw a
// magenta placeholder.
func (s *Surface) DrawImage(name string, pos, size mgl64.Vec2, rotation float64) {
	img, ok := s.images.Image(name)
	if !ok {
		s.FillRect(pos, size, rotation, missingImage)
		return
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size.X()/float64(b.Dx()), size.Y()/float64(b.Dy()))
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(pos.X(), pos.Y())
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(img, op)
}

// DrawText uses ebiten's debug font, which has a fixed colour.
func (s *Surface) DrawText(text string, pos mgl64.Vec2, _ color.Color) {
	ebitenutil.DebugPrintAt(s.target, text, int(pos.X()), int(pos.Y()))
}

var _ render.Surface = (*Surface)(nil)
