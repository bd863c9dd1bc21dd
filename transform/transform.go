// Package transform implements the Transform component and the hierarchy
// that links transforms into scene graphs.
//
// A Transform is either a root of a scene or a child of another Transform.
// World position, rotation and scale are the local value plus the parent's
// world value, all the way up to the root. Scale composes additively like
// position does.
package transform

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/scene"
)

// Kind is the component kind of every Transform.
const Kind = "Transform"

// Parent is what a Transform hangs from: another *Transform or a SceneParent.
type Parent interface {
	isParent()
}

// SceneParent makes a Transform a root of the given scene.
type SceneParent scene.ID

func (SceneParent) isParent() {}

func (*Transform) isParent() {}

type Transform struct {
	ecs.Base

	hierarchy *Hierarchy
	position  *ecs.Field
	scale     *ecs.Field
	rotation  *ecs.Field
	parent    *ecs.Field
}

// Of returns the Transform attached to e.
func Of(e *ecs.Entity) (*Transform, bool) {
	if e == nil {
		return nil, false
	}
	c, err := e.Component(Kind)
	if err != nil {
		return nil, false
	}
	t, ok := c.(*Transform)
	return t, ok
}

func newTransform(h *Hierarchy, position, scale, rotation mgl64.Vec3, parent Parent) *Transform {
	t := &Transform{
		Base:      ecs.NewBase(Kind, ""),
		hierarchy: h,
	}

	fields := t.Fields()
	t.position = fields.AddPublic("position", position,
		ecs.WithType("v3"),
		ecs.WithDescription("position relative to the parent"),
		ecs.WithAccessor(t.composing(func() *ecs.Field { return t.position }, (*Transform).Position)),
	)
	t.scale = fields.AddPublic("scale", scale,
		ecs.WithType("v3"),
		ecs.WithDescription("scale added to the parent's scale"),
		ecs.WithAccessor(t.composing(func() *ecs.Field { return t.scale }, (*Transform).Scale)),
	)
	t.rotation = fields.AddPublic("rotation", rotation,
		ecs.WithType("v3"),
		ecs.WithDescription("rotation relative to the parent"),
		ecs.WithAccessor(t.composing(func() *ecs.Field { return t.rotation }, (*Transform).Rotation)),
	)
	t.parent = fields.AddPublic("parent", parent,
		ecs.WithType("Transform"),
		ecs.WithSetter(func(v any) { t.SetParent(toParent(v)) }),
	)
	return t
}

// composing reads the world value and writes the local one.
func (t *Transform) composing(field func() *ecs.Field, world func(*Transform) mgl64.Vec3) ecs.AccessorFuncs {
	return ecs.AccessorFuncs{
		GetFunc: func() any {
			return world(t)
		},
		SetFunc: func(v any) {
			f := field()
			vec, ok := toVec3(v)
			if !ok {
				t.hierarchy.log.Warn("ignoring non-vector transform value")
				return
			}
			f.Store(vec)
		},
	}
}

func (t *Transform) local(f *ecs.Field) mgl64.Vec3 {
	return f.Load().(mgl64.Vec3)
}

func (t *Transform) world(f func(*Transform) *ecs.Field) mgl64.Vec3 {
	v := t.local(f(t))
	for p, ok := t.ParentTransform(); ok; p, ok = p.ParentTransform() {
		v = v.Add(p.local(f(p)))
	}
	return v
}

// Position is the world position.
func (t *Transform) Position() mgl64.Vec3 {
	return t.world(func(x *Transform) *ecs.Field { return x.position })
}

// Rotation is the world rotation.
func (t *Transform) Rotation() mgl64.Vec3 {
	return t.world(func(x *Transform) *ecs.Field { return x.rotation })
}

// Scale is the world scale.
func (t *Transform) Scale() mgl64.Vec3 {
	return t.world(func(x *Transform) *ecs.Field { return x.scale })
}

// LocalPosition is the position relative to the parent.
func (t *Transform) LocalPosition() mgl64.Vec3 {
	return t.local(t.position)
}

// LocalRotation is the rotation relative to the parent.
func (t *Transform) LocalRotation() mgl64.Vec3 {
	return t.local(t.rotation)
}

// LocalScale is the scale relative to the parent.
func (t *Transform) LocalScale() mgl64.Vec3 {
	return t.local(t.scale)
}

// SetLocalPosition sets the position relative to the parent.
func (t *Transform) SetLocalPosition(v mgl64.Vec3) {
	t.position.Store(v)
}

// SetLocalRotation sets the rotation relative to the parent.
func (t *Transform) SetLocalRotation(v mgl64.Vec3) {
	t.rotation.Store(v)
}

// SetLocalScale sets the scale relative to the parent.
func (t *Transform) SetLocalScale(v mgl64.Vec3) {
	t.scale.Store(v)
}

// SetWorldPosition moves the Transform so its world position becomes v.
func (t *Transform) SetWorldPosition(v mgl64.Vec3) {
	if p, ok := t.ParentTransform(); ok {
		v = v.Sub(p.Position())
	}
	t.position.Store(v)
}

// Translate adds delta to the local position.
func (t *Transform) Translate(delta mgl64.Vec3) {
	t.position.Store(t.LocalPosition().Add(delta))
}

// Parent returns the current parent, a *Transform or a SceneParent.
func (t *Transform) Parent() Parent {
	return t.parent.Load().(Parent)
}

// ParentTransform returns the parent when it is a Transform.
func (t *Transform) ParentTransform() (*Transform, bool) {
	p, ok := t.Parent().(*Transform)
	return p, ok
}

// SceneID returns the scene a root Transform belongs to.
func (t *Transform) SceneID() (scene.ID, bool) {
	s, ok := t.Parent().(SceneParent)
	return scene.ID(s), ok
}

// IsRoot reports whether the parent is a scene.
func (t *Transform) IsRoot() bool {
	_, ok := t.Parent().(SceneParent)
	return ok
}

// IsChild reports whether the parent is another Transform.
func (t *Transform) IsChild() bool {
	_, ok := t.Parent().(*Transform)
	return ok
}

// Root walks the parent chain up to the Transform whose parent is a scene.
func (t *Transform) Root() *Transform {
	root := t
	for p, ok := root.ParentTransform(); ok; p, ok = root.ParentTransform() {
		root = p
	}
	return root
}

// Scene resolves the scene of the Transform's root.
func (t *Transform) Scene() (*scene.Scene, error) {
	id, _ := t.Root().SceneID()
	s, err := t.hierarchy.scenes.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHierarchy, err)
	}
	return s, nil
}

// Forwards is the world rotation, used as the facing direction.
func (t *Transform) Forwards() mgl64.Vec3 {
	return t.Rotation()
}

// Right is the facing direction turned a quarter clockwise in the plane.
func (t *Transform) Right() mgl64.Vec2 {
	f := t.Forwards()
	return mgl64.Vec2{f.Y(), -f.X()}
}

// Children returns the entities whose Transform's parent is t, in creation order.
func (t *Transform) Children() []*ecs.Entity {
	var children []*ecs.Entity
	for e := range t.hierarchy.entities.All() {
		if child, ok := Of(e); ok && child.Parent() == Parent(t) {
			children = append(children, e)
		}
	}
	return children
}

// ChildCount counts direct children.
func (t *Transform) ChildCount() int {
	count := 0
	for e := range t.hierarchy.entities.All() {
		if child, ok := Of(e); ok && child.Parent() == Parent(t) {
			count++
		}
	}
	return count
}

// RecursiveChildren returns every descendant, breadth first.
func (t *Transform) RecursiveChildren() []*ecs.Entity {
	queue := t.Children()
	var descendants []*ecs.Entity

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		descendants = append(descendants, next)

		if child, ok := Of(next); ok {
			queue = append(queue, child.Children()...)
		}
	}
	return descendants
}

// Child returns the first direct child with the given entity name.
func (t *Transform) Child(name string) (*ecs.Entity, bool) {
	for _, e := range t.Children() {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// MakeChildOf is SetParent.
func (t *Transform) MakeChildOf(p Parent) {
	t.SetParent(p)
}

// MakeParentOf parents every given Transform to t.
func (t *Transform) MakeParentOf(children ...*Transform) {
	for _, child := range children {
		child.SetParent(t)
	}
}

// DetachFromParent makes t a root of the active scene.
func (t *Transform) DetachFromParent() {
	t.SetParent(SceneParent(t.hierarchy.scenes.ActiveID()))
}

// SetParent reparents t. Values that cannot be a parent make t a root of the
// active scene. When p is a descendant of t, t's direct children are first
// moved up to t's current parent so that no cycle forms.
func (t *Transform) SetParent(p Parent) {
	t.hierarchy.setParent(t, p)
}

func (t *Transform) name() string {
	if e := t.Entity(); e != nil {
		return e.Name
	}
	return ""
}

type parentJSON struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// MarshalJSON writes world values and names the parent by entity name or
// scene id.
func (t *Transform) MarshalJSON() ([]byte, error) {
	return ecs.MarshalComponentWith(t, func(f *ecs.Field) (any, bool) {
		if f != t.parent {
			return nil, false
		}
		switch p := t.Parent().(type) {
		case *Transform:
			return parentJSON{Type: "Transform", Name: p.name()}, true
		case SceneParent:
			return parentJSON{Type: "Scene", Name: fmt.Sprint(int(p))}, true
		}
		return nil, true
	})
}

var _ json.Marshaler = (*Transform)(nil)

func toVec3(v any) (mgl64.Vec3, bool) {
	switch x := v.(type) {
	case mgl64.Vec3:
		return x, true
	case mgl64.Vec2:
		return x.Vec3(0), true
	case []float64:
		switch len(x) {
		case 2:
			return mgl64.Vec3{x[0], x[1], 0}, true
		case 3:
			return mgl64.Vec3{x[0], x[1], x[2]}, true
		}
	}
	return mgl64.Vec3{}, false
}

func toParent(v any) Parent {
	switch x := v.(type) {
	case *Transform:
		if x == nil {
			return nil
		}
		return x
	case SceneParent:
		return x
	case scene.ID:
		return SceneParent(x)
	case int:
		return SceneParent(x)
	case float64:
		// decoded JSON numbers
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return SceneParent(int(x))
		}
	}
	return nil
}
