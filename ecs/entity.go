package ecs

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
)

// EntityId is a registry-unique entity identifier. Ids are never reused
// within a Registry; zero is never assigned.
type EntityId uint64

// Entity is a named, scene-tagged set of components.
type Entity struct {
	id   EntityId
	guid uuid.UUID

	Name    string
	SceneID int

	components []Component
	index      *intmap.Map[uint64, int]
	registry   *Registry
	alive      bool
}

func newEntity(id EntityId, name string, sceneID int, registry *Registry) *Entity {
	return &Entity{
		id:       id,
		guid:     uuid.New(),
		Name:     name,
		SceneID:  sceneID,
		index:    intmap.New[uint64, int](8),
		registry: registry,
	}
}

func (e *Entity) ID() EntityId {
	return e.id
}

// GUID is a globally unique identity used when entities are written out.
func (e *Entity) GUID() uuid.UUID {
	return e.guid
}

// Alive reports whether the entity is still registered.
func (e *Entity) Alive() bool {
	return e.alive
}

// Registry returns the registry the entity was created in.
func (e *Entity) Registry() *Registry {
	return e.registry
}

// Components returns the entity's components in attachment order.
// The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Components() []Component {
	return e.components
}

// Component returns the component with the given kind. When a subtype is
// given it must match too; otherwise the first component of that kind wins.
func (e *Entity) Component(kind string, subtype ...string) (Component, error) {
	h := kindHash(kind)
	if len(subtype) > 0 {
		h = Key{Kind: kind, Subtype: subtype[0]}.hash()
	}

	idx, ok := e.index.Get(h)
	if !ok {
		key := Key{Kind: kind}
		if len(subtype) > 0 {
			key.Subtype = subtype[0]
		}
		return nil, fmt.Errorf("%w: entity %d (%s) has no %s", ErrComponentNotFound, e.id, e.Name, key)
	}
	return e.components[idx], nil
}

// Has reports whether the entity carries a component of the given kind
// (and subtype, when given).
func (e *Entity) Has(kind string, subtype ...string) bool {
	h := kindHash(kind)
	if len(subtype) > 0 {
		h = Key{Kind: kind, Subtype: subtype[0]}.hash()
	}
	_, ok := e.index.Get(h)
	return ok
}

// ComponentOf returns the first component whose concrete type is T.
func ComponentOf[T Component](e *Entity) (T, error) {
	for _, c := range e.components {
		if typed, ok := c.(T); ok {
			return typed, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: entity %d (%s) has no %T", ErrComponentNotFound, e.id, e.Name, zero)
}

func (e *Entity) attach(c Component) error {
	key := c.Key()
	if _, ok := e.index.Get(key.hash()); ok {
		return fmt.Errorf("%w: %s on entity %d", ErrDuplicateComponent, key, e.id)
	}
	if err := c.bind(e); err != nil {
		return err
	}

	e.components = append(e.components, c)
	idx := len(e.components) - 1
	e.index.Put(key.hash(), idx)
	if _, ok := e.index.Get(kindHash(key.Kind)); !ok {
		e.index.Put(kindHash(key.Kind), idx)
	}
	return nil
}

func (e *Entity) detach(key Key) (Component, error) {
	idx, ok := e.index.Get(key.hash())
	if !ok {
		return nil, fmt.Errorf("%w: entity %d (%s) has no %s", ErrComponentNotFound, e.id, e.Name, key)
	}

	c := e.components[idx]
	copy(e.components[idx:], e.components[idx+1:])
	e.components[len(e.components)-1] = nil
	e.components = e.components[:len(e.components)-1]
	c.unbind()

	e.reindex()
	return c, nil
}

func (e *Entity) reindex() {
	e.index.Clear()
	for i, c := range e.components {
		key := c.Key()
		e.index.Put(key.hash(), i)
		if _, ok := e.index.Get(kindHash(key.Kind)); !ok {
			e.index.Put(kindHash(key.Kind), i)
		}
	}
}
