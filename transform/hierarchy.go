package transform

import (
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/scene"
)

// ErrInvalidHierarchy is returned when a root's scene id does not resolve.
var ErrInvalidHierarchy = errors.New("transform: invalid hierarchy")

// Hierarchy creates Transforms and keeps the parent links consistent as
// entities are destroyed.
type Hierarchy struct {
	entities *ecs.Registry
	scenes   *scene.Registry
	log      *zap.Logger
}

// NewHierarchy binds a hierarchy to its registries. Destroying an entity, or
// removing its Transform, reparents the children of that Transform to the
// Transform's parent.
func NewHierarchy(entities *ecs.Registry, scenes *scene.Registry, log *zap.Logger) *Hierarchy {
	h := &Hierarchy{
		entities: entities,
		scenes:   scenes,
		log:      log,
	}
	entities.OnDestroy(h.cascade)
	entities.OnRemove(h.removed)
	return h
}

type options struct {
	position mgl64.Vec3
	rotation mgl64.Vec3
	scale    mgl64.Vec3
	parent   Parent
}

type Option func(*options)

func WithPosition(v mgl64.Vec3) Option {
	return func(o *options) { o.position = v }
}

func WithRotation(v mgl64.Vec3) Option {
	return func(o *options) { o.rotation = v }
}

func WithScale(v mgl64.Vec3) Option {
	return func(o *options) { o.scale = v }
}

// WithParent sets the initial parent. It goes through the same checks as
// SetParent, so an unattached Transform falls back to the active scene.
func WithParent(p Parent) Option {
	return func(o *options) { o.parent = p }
}

// New creates a Transform. Position and rotation default to zero, scale to
// one, and the parent to the active scene.
func (h *Hierarchy) New(opts ...Option) *Transform {
	o := options{scale: mgl64.Vec3{1, 1, 1}}
	for _, opt := range opts {
		opt(&o)
	}

	t := newTransform(h, o.position, o.scale, o.rotation, SceneParent(h.scenes.ActiveID()))
	if o.parent != nil {
		h.setParent(t, o.parent)
	}
	return t
}

// Roots returns the root Transforms of a scene in entity creation order.
func (h *Hierarchy) Roots(id scene.ID) []*Transform {
	var roots []*Transform
	for e := range h.entities.All() {
		t, ok := Of(e)
		if !ok {
			continue
		}
		if sid, ok := t.SceneID(); ok && sid == id {
			roots = append(roots, t)
		}
	}
	return roots
}

func (h *Hierarchy) setParent(t *Transform, p Parent) {
	switch parent := p.(type) {
	case SceneParent:
		if !h.scenes.Has(scene.ID(parent)) {
			h.fallback(t, "unknown scene", zap.Int("requested", int(parent)))
			return
		}
		t.parent.Store(Parent(parent))

	case *Transform:
		if parent == t {
			h.log.Warn("ignoring attempt to parent a transform to itself", zap.String("entity", t.name()))
			return
		}
		if !h.attached(parent) {
			h.fallback(t, "parent transform is not attached to a live entity")
			return
		}

		descendants := t.RecursiveChildren()
		if slices.Contains(descendants, parent.Entity()) {
			current := t.Parent()
			for _, child := range t.Children() {
				if ct, ok := Of(child); ok {
					ct.parent.Store(current)
				}
			}
			h.log.Info("hoisted children to avoid a parenting cycle",
				zap.String("entity", t.name()),
				zap.String("parent", parent.name()),
			)
		}
		t.parent.Store(Parent(parent))

	default:
		h.fallback(t, "not a transform or scene")
	}
}

func (h *Hierarchy) attached(t *Transform) bool {
	e := t.Entity()
	return t.hierarchy == h && e != nil && e.Alive() && e.Registry() == h.entities
}

func (h *Hierarchy) fallback(t *Transform, reason string, fields ...zap.Field) {
	active := h.scenes.ActiveID()
	h.log.Warn("invalid parent, using the active scene",
		append(fields,
			zap.String("reason", reason),
			zap.String("entity", t.name()),
			zap.Int("scene", int(active)),
		)...,
	)
	t.parent.Store(Parent(SceneParent(active)))
}

func (h *Hierarchy) cascade(e *ecs.Entity) {
	if t, ok := Of(e); ok {
		h.hoistChildren(t, "reparented children of destroyed entity")
	}
}

func (h *Hierarchy) removed(_ *ecs.Entity, c ecs.Component) {
	if t, ok := c.(*Transform); ok && t.hierarchy == h {
		h.hoistChildren(t, "reparented children of removed transform")
	}
}

// hoistChildren moves the direct children of t to t's parent.
func (h *Hierarchy) hoistChildren(t *Transform, msg string) {
	parent := t.Parent()
	children := t.Children()
	for _, child := range children {
		if ct, ok := Of(child); ok {
			ct.parent.Store(parent)
		}
	}
	if len(children) > 0 {
		h.log.Debug(msg,
			zap.String("entity", t.name()),
			zap.Int("children", len(children)),
		)
	}
}
