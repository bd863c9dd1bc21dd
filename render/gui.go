package render

import (
	"image/color"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/transform"
)

// GUIKind is the component kind shared by every GUI element.
const GUIKind = "GUIElement"

// GUIElement is drawn in screen space above the world and can be hovered.
// The variants are GUIImage, GUIText and GUITextBox.
type GUIElement interface {
	ecs.Component
	Draw(s Surface, t *transform.Transform)
	TouchingPoint(point mgl64.Vec2, s Surface, t *transform.Transform) bool
	Hovered() bool
	SetHovered(hovered bool)
	ZLayer() int

	guiElement()
}

type guiBase struct {
	ecs.Base
	zLayer  *ecs.Field
	hovered *ecs.Field
}

func newGUIBase(subtype string) guiBase {
	return guiBase{Base: ecs.NewBase(GUIKind, subtype)}
}

// init registers the fields every GUI element shares, ahead of its own.
func (b *guiBase) init(zLayer int) {
	fields := b.Fields()
	b.zLayer = fields.AddPublic("zLayer", zLayer, ecs.WithType("number"))
	b.hovered = fields.AddPublic("hovered", false, ecs.WithType("boolean"))
}

func (*guiBase) guiElement() {}

func (b *guiBase) Hovered() bool {
	v, _ := b.hovered.Load().(bool)
	return v
}

func (b *guiBase) SetHovered(hovered bool) {
	b.hovered.Store(hovered)
}

func (b *guiBase) ZLayer() int {
	v, _ := b.zLayer.Load().(int)
	return v
}

// inRect reports whether point lies in the rectangle with top left corner pos.
func inRect(point, pos, size mgl64.Vec2) bool {
	return point.X() >= pos.X() && point.X() <= pos.X()+size.X() &&
		point.Y() >= pos.Y() && point.Y() <= pos.Y()+size.Y()
}

// GUIImage draws a named image sized by width and height times the world scale.
type GUIImage struct {
	guiBase
	url, width, height *ecs.Field
}

func NewGUIImage(url string, width, height float64, zLayer int) *GUIImage {
	g := &GUIImage{guiBase: newGUIBase("GUIImage")}
	g.init(zLayer)
	fields := g.Fields()
	g.height = fields.AddPublic("height", height, ecs.WithType("number"))
	g.width = fields.AddPublic("width", width, ecs.WithType("number"))
	g.url = fields.AddPublic("url", url, ecs.WithType("string"))
	return g
}

func (g *GUIImage) size(t *transform.Transform) mgl64.Vec2 {
	return scaledSize(number(g.width), number(g.height), t)
}

func (g *GUIImage) Draw(s Surface, t *transform.Transform) {
	url := str(g.url)
	size := g.size(t)
	if url == "" || size.X() <= 0 || size.Y() <= 0 {
		return
	}
	s.DrawImage(url, t.Position().Vec2(), size, t.Rotation().Z())
}

func (g *GUIImage) TouchingPoint(point mgl64.Vec2, _ Surface, t *transform.Transform) bool {
	return inRect(point, t.Position().Vec2(), g.size(t))
}

// GUIText is a label. Its hit box is width by height times the world scale.
type GUIText struct {
	guiBase
	text, width, height, fill *ecs.Field
}

func NewGUIText(label string, width, height float64, fill color.RGBA, zLayer int) *GUIText {
	g := &GUIText{guiBase: newGUIBase("GUIText")}
	g.init(zLayer)
	fields := g.Fields()
	g.text = fields.AddPublic("text", label, ecs.WithType("string"))
	g.width = fields.AddPublic("width", width, ecs.WithType("number"))
	g.height = fields.AddPublic("height", height, ecs.WithType("number"))
	g.fill = fields.AddPublic("colour", fill, ecs.WithType("colour"))
	return g
}

func (g *GUIText) Text() string {
	return str(g.text)
}

func (g *GUIText) SetText(s string) {
	g.text.Store(s)
}

func (g *GUIText) Draw(s Surface, t *transform.Transform) {
	if label := str(g.text); label != "" {
		s.DrawText(label, t.Position().Vec2(), rgba(g.fill))
	}
}

func (g *GUIText) TouchingPoint(point mgl64.Vec2, _ Surface, t *transform.Transform) bool {
	return inRect(point, t.Position().Vec2(), scaledSize(number(g.width), number(g.height), t))
}

var (
	textBoxFill     = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	textBoxSelected = color.RGBA{R: 0xcc, G: 0xdd, B: 0xff, A: 0xff}
	textBoxInk      = color.RGBA{A: 0xff}
	placeholderInk  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

// GUITextBox is an editable single line of text. It is selected by clicking
// it and receives typed characters while selected.
type GUITextBox struct {
	guiBase
	text, placeholder, width, height, maxLength, selected *ecs.Field
}

func NewGUITextBox(placeholder string, width, height float64, maxLength int, zLayer int) *GUITextBox {
	g := &GUITextBox{guiBase: newGUIBase("GUITextBox")}
	g.init(zLayer)
	fields := g.Fields()
	g.text = fields.AddPublic("text", "", ecs.WithType("string"))
	g.placeholder = fields.AddPublic("placeholder", placeholder, ecs.WithType("string"))
	g.width = fields.AddPublic("width", width, ecs.WithType("number"))
	g.height = fields.AddPublic("height", height, ecs.WithType("number"))
	g.maxLength = fields.AddPublic("maxLength", maxLength, ecs.WithType("number"),
		ecs.WithDescription("maximum number of characters, zero for no limit"))
	g.selected = fields.AddPublic("selected", false, ecs.WithType("boolean"))
	return g
}

func (g *GUITextBox) Text() string {
	return str(g.text)
}

func (g *GUITextBox) SetText(s string) {
	g.text.Store(s)
}

func (g *GUITextBox) Selected() bool {
	v, _ := g.selected.Load().(bool)
	return v
}

func (g *GUITextBox) SetSelected(selected bool) {
	g.selected.Store(selected)
}

// KeyPress appends a typed character unless the box is full.
func (g *GUITextBox) KeyPress(r rune) {
	current := str(g.text)
	limit, _ := g.maxLength.Load().(int)
	if limit > 0 && utf8.RuneCountInString(current) >= limit {
		return
	}
	g.text.Store(current + string(r))
}

// Backspace deletes the last character.
func (g *GUITextBox) Backspace() {
	current := str(g.text)
	if current == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(current)
	g.text.Store(current[:len(current)-size])
}

func (g *GUITextBox) size(t *transform.Transform) mgl64.Vec2 {
	return scaledSize(number(g.width), number(g.height), t)
}

func (g *GUITextBox) Draw(s Surface, t *transform.Transform) {
	pos := t.Position().Vec2()
	size := g.size(t)
	if size.X() <= 0 || size.Y() <= 0 {
		return
	}

	fill := textBoxFill
	if g.Selected() {
		fill = textBoxSelected
	}
	s.FillRect(pos, size, 0, fill)

	label, ink := str(g.text), color.Color(textBoxInk)
	if label == "" {
		label, ink = str(g.placeholder), placeholderInk
	}
	if label != "" {
		s.DrawText(label, pos.Add(mgl64.Vec2{2, 2}), ink)
	}
}

func (g *GUITextBox) TouchingPoint(point mgl64.Vec2, _ Surface, t *transform.Transform) bool {
	return inRect(point, t.Position().Vec2(), g.size(t))
}
