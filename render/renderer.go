package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/transform"
)

// RendererKind is the component kind shared by every Renderer variant.
const RendererKind = "Renderer"

// Renderer draws an entity in world space. The variants are Image, Rect and
// Circle.
type Renderer interface {
	ecs.Component
	Draw(s Surface, t *transform.Transform)

	renderer()
}

func number(f *ecs.Field) float64 {
	switch v := f.Load().(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func str(f *ecs.Field) string {
	s, _ := f.Load().(string)
	return s
}

func rgba(f *ecs.Field) color.Color {
	c, ok := f.Load().(color.RGBA)
	if !ok {
		return color.White
	}
	return c
}

// scaledSize multiplies a width and height by the world scale.
func scaledSize(width, height float64, t *transform.Transform) mgl64.Vec2 {
	scale := t.Scale()
	return mgl64.Vec2{width * scale.X(), height * scale.Y()}
}

// Image draws a named image with its top left corner at the entity.
type Image struct {
	ecs.Base
	url, width, height *ecs.Field
}

func NewImage(url string, width, height float64) *Image {
	r := &Image{Base: ecs.NewBase(RendererKind, "Image")}
	fields := r.Fields()
	r.url = fields.AddPublic("url", url, ecs.WithType("string"))
	r.width = fields.AddPublic("width", width, ecs.WithType("number"))
	r.height = fields.AddPublic("height", height, ecs.WithType("number"))
	return r
}

func (*Image) renderer() {}

func (r *Image) Draw(s Surface, t *transform.Transform) {
	url := str(r.url)
	size := scaledSize(number(r.width), number(r.height), t)
	if url == "" || size.X() <= 0 || size.Y() <= 0 {
		return
	}
	s.DrawImage(url, t.Position().Vec2(), size, t.Rotation().Z())
}

// Rect fills a rectangle with its top left corner at the entity.
type Rect struct {
	ecs.Base
	width, height, fill *ecs.Field
}

func NewRect(width, height float64, fill color.RGBA) *Rect {
	r := &Rect{Base: ecs.NewBase(RendererKind, "Rect")}
	fields := r.Fields()
	r.width = fields.AddPublic("width", width, ecs.WithType("number"))
	r.height = fields.AddPublic("height", height, ecs.WithType("number"))
	r.fill = fields.AddPublic("colour", fill, ecs.WithType("colour"))
	return r
}

func (*Rect) renderer() {}

func (r *Rect) Draw(s Surface, t *transform.Transform) {
	size := scaledSize(number(r.width), number(r.height), t)
	if size.X() <= 0 || size.Y() <= 0 {
		return
	}
	s.FillRect(t.Position().Vec2(), size, t.Rotation().Z(), rgba(r.fill))
}

// Circle fills a circle centered on the entity. The radius scales with the
// transform's x scale.
type Circle struct {
	ecs.Base
	radius, fill *ecs.Field
}

func NewCircle(radius float64, fill color.RGBA) *Circle {
	r := &Circle{Base: ecs.NewBase(RendererKind, "Circle")}
	fields := r.Fields()
	r.radius = fields.AddPublic("radius", radius, ecs.WithType("number"))
	r.fill = fields.AddPublic("colour", fill, ecs.WithType("colour"))
	return r
}

func (*Circle) renderer() {}

func (r *Circle) Draw(s Surface, t *transform.Transform) {
	radius := number(r.radius) * t.Scale().X()
	if radius <= 0 {
		return
	}
	s.FillCircle(t.Position().Vec2(), radius, rgba(r.fill))
}
