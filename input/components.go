package input

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/transform"
)

const (
	ScriptKind   = "Script"
	ColliderKind = "Collider"
)

// Handler receives the entity an event happened on.
type Handler func(e *ecs.Entity)

// Script attaches event handlers to an entity. An entity may carry several
// scripts under different names.
type Script struct {
	ecs.Base

	OnClick     Handler
	OnMouseDown Handler
	OnMouseUp   Handler

	enabled *ecs.Field
}

func NewScript(name string) *Script {
	s := &Script{Base: ecs.NewBase(ScriptKind, name)}
	s.enabled = s.Fields().AddPublic("enabled", true, ecs.WithType("boolean"))
	return s
}

func (s *Script) Enabled() bool {
	v, _ := s.enabled.Load().(bool)
	return v
}

func (s *Script) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

func (s *Script) run(h Handler, e *ecs.Entity) {
	if h != nil && s.Enabled() {
		h(e)
	}
}

// Collider is hit tested against the world space cursor.
type Collider interface {
	ecs.Component
	OverlapsPoint(t *transform.Transform, point mgl64.Vec2) bool
}

// RectCollider is an axis aligned box whose top left corner sits at the
// entity's world position plus offset. Its size scales with the world scale.
type RectCollider struct {
	ecs.Base
	width, height, offset *ecs.Field
}

func NewRectCollider(width, height float64) *RectCollider {
	c := &RectCollider{Base: ecs.NewBase(ColliderKind, "Rect")}
	fields := c.Fields()
	c.width = fields.AddPublic("width", width, ecs.WithType("number"))
	c.height = fields.AddPublic("height", height, ecs.WithType("number"))
	c.offset = fields.AddPublic("offset", mgl64.Vec2{}, ecs.WithType("v2"))
	return c
}

// SetOffset moves the box relative to the entity.
func (c *RectCollider) SetOffset(offset mgl64.Vec2) {
	c.offset.Store(offset)
}

func (c *RectCollider) OverlapsPoint(t *transform.Transform, point mgl64.Vec2) bool {
	width, _ := c.width.Load().(float64)
	height, _ := c.height.Load().(float64)
	offset, _ := c.offset.Load().(mgl64.Vec2)

	scale := t.Scale()
	lo := t.Position().Vec2().Add(offset)
	hi := lo.Add(mgl64.Vec2{width * scale.X(), height * scale.Y()})
	return point.X() >= lo.X() && point.X() <= hi.X() &&
		point.Y() >= lo.Y() && point.Y() <= hi.Y()
}
