package ecs

import "iter"

// Query iterates the entities carrying a component of concrete type T.
// A Query holds no cache; every Iter walks the registry in creation order,
// so it always reflects the latest structure.
type Query[T Component] struct {
	registry *Registry
	sceneID  *int
}

// NewQuery creates a Query over the registry.
func NewQuery[T Component](registry *Registry) *Query[T] {
	return &Query[T]{registry: registry}
}

// Init binds the query to a registry. Called by the Scheduler during
// system registration.
func (q *Query[T]) Init(registry *Registry) {
	q.registry = registry
}

// InScene restricts the query to entities tagged with sceneID.
func (q *Query[T]) InScene(sceneID int) *Query[T] {
	q.sceneID = &sceneID
	return q
}

// Iter returns an iterator over matching entities and their component.
// Panics if the query was never bound to a registry.
func (q *Query[T]) Iter() iter.Seq2[*Entity, T] {
	if q.registry == nil {
		panic("Query.Iter() called before Query.Init()")
	}

	return func(yield func(*Entity, T) bool) {
		for _, e := range q.registry.entities {
			if q.sceneID != nil && e.SceneID != *q.sceneID {
				continue
			}
			for _, c := range e.components {
				typed, ok := c.(T)
				if !ok {
					continue
				}
				if !yield(e, typed) {
					return
				}
				break
			}
		}
	}
}

// Values returns an iterator over the matching components only.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, c := range q.Iter() {
			if !yield(c) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
