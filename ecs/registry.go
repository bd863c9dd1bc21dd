package ecs

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

// Registry is the ordered collection of live entities. Iteration order is
// creation order. A Registry is not safe for concurrent use; all mutation
// happens on the frame goroutine, and structural changes made while
// iterating must go through Commands.
type Registry struct {
	entities  []*Entity
	slots     *intmap.Map[EntityId, int]
	nextId    EntityId
	onDestroy []func(*Entity)
	onRemove  []func(*Entity, Component)

	singletons map[reflect.Type]any
}

// NewRegistry creates an empty entity registry.
func NewRegistry() *Registry {
	return &Registry{
		slots:  intmap.New[EntityId, int](256),
		nextId: 1,
	}
}

// Create registers a new entity with the given components. If any component
// cannot be attached, nothing is registered.
func (r *Registry) Create(name string, sceneID int, components ...Component) (EntityId, error) {
	e := newEntity(r.nextId, name, sceneID, r)

	for _, c := range components {
		if err := e.attach(c); err != nil {
			for _, attached := range e.components {
				attached.unbind()
			}
			return 0, err
		}
	}

	r.nextId++
	e.alive = true
	r.entities = append(r.entities, e)
	r.slots.Put(e.id, len(r.entities)-1)
	return e.id, nil
}

// Destroy runs the destroy hooks for the entity, then removes it. Hooks see
// the entity while it is still registered.
func (r *Registry) Destroy(id EntityId) error {
	e, err := r.Entity(id)
	if err != nil {
		return err
	}

	for _, hook := range r.onDestroy {
		hook(e)
	}

	// a hook may have moved entities around
	slot, ok := r.slots.Get(id)
	if !ok {
		return nil
	}

	copy(r.entities[slot:], r.entities[slot+1:])
	r.entities[len(r.entities)-1] = nil
	r.entities = r.entities[:len(r.entities)-1]
	r.slots.Del(id)
	for i := slot; i < len(r.entities); i++ {
		r.slots.Put(r.entities[i].id, i)
	}

	for _, c := range e.components {
		c.unbind()
	}
	e.alive = false
	return nil
}

// OnDestroy registers a hook run before an entity is removed.
func (r *Registry) OnDestroy(hook func(*Entity)) {
	r.onDestroy = append(r.onDestroy, hook)
}

// OnRemove registers a hook run before a component is removed from a live
// entity. The component is still attached when the hook runs. Destroy does
// not run these hooks.
func (r *Registry) OnRemove(hook func(*Entity, Component)) {
	r.onRemove = append(r.onRemove, hook)
}

// Entity returns the live entity with the given id.
func (r *Registry) Entity(id EntityId) (*Entity, error) {
	slot, ok := r.slots.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEntityNotFound, id)
	}
	return r.entities[slot], nil
}

// Find returns the first entity, in creation order, matching pred.
func (r *Registry) Find(pred func(*Entity) bool) (*Entity, bool) {
	for _, e := range r.entities {
		if pred(e) {
			return e, true
		}
	}
	return nil, false
}

// FindByName returns the first entity with the given name.
func (r *Registry) FindByName(name string) (*Entity, bool) {
	return r.Find(func(e *Entity) bool { return e.Name == name })
}

// Each calls fn for every entity in creation order.
func (r *Registry) Each(fn func(*Entity)) {
	for _, e := range r.entities {
		fn(e)
	}
}

// All returns an iterator over entities in creation order.
func (r *Registry) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range r.entities {
			if !yield(e) {
				return
			}
		}
	}
}

// InScene returns an iterator over the entities tagged with sceneID.
func (r *Registry) InScene(sceneID int) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range r.entities {
			if e.SceneID != sceneID {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// GetComponent returns a component of the entity by kind and optional subtype.
func (r *Registry) GetComponent(id EntityId, kind string, subtype ...string) (Component, error) {
	e, err := r.Entity(id)
	if err != nil {
		return nil, err
	}
	return e.Component(kind, subtype...)
}

// HasComponent reports whether the entity exists and carries the component.
func (r *Registry) HasComponent(id EntityId, kind string, subtype ...string) bool {
	e, err := r.Entity(id)
	if err != nil {
		return false
	}
	return e.Has(kind, subtype...)
}

// AddComponent attaches a component to a live entity.
func (r *Registry) AddComponent(id EntityId, c Component) error {
	e, err := r.Entity(id)
	if err != nil {
		return err
	}
	return e.attach(c)
}

// RemoveComponent detaches the component with the exact key from the entity.
func (r *Registry) RemoveComponent(id EntityId, key Key) (Component, error) {
	e, err := r.Entity(id)
	if err != nil {
		return nil, err
	}
	if idx, ok := e.index.Get(key.hash()); ok {
		c := e.components[idx]
		for _, hook := range r.onRemove {
			hook(e, c)
		}
	}
	return e.detach(key)
}
