package ecs_test

import "github.com/plus3/tessel/ecs"

type Health struct {
	ecs.Base
}

func NewHealth(current, limit int) *Health {
	h := &Health{Base: ecs.NewBase("Health", "")}
	h.Fields().AddPublic("current", current, ecs.WithType("int"))
	h.Fields().AddPublic("max", limit, ecs.WithType("int"), ecs.WithDescription("upper bound for current"))
	return h
}

func (h *Health) Current() int {
	v, _ := ecs.FieldAs[int](h.Fields(), "current")
	return v
}

type Sprite struct {
	ecs.Base
	updates int
}

func NewSprite(subtype, image string) *Sprite {
	s := &Sprite{Base: ecs.NewBase("Renderer", subtype)}
	s.Fields().AddPublic("image", image)
	return s
}

func (s *Sprite) Update(dt float64) {
	s.updates++
}

type Tag struct {
	ecs.Base
}

func NewTag(name string) *Tag {
	t := &Tag{Base: ecs.NewBase("Tag", name)}
	return t
}
