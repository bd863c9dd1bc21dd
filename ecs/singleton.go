package ecs

import "reflect"

// Singleton provides access to a single value that is not associated with
// any entity. Use this for per-world state shared between systems, such as
// whether an overlay is capturing input.
type Singleton[T any] struct {
	registry *Registry
	value    *T
}

// NewSingleton returns the registry's singleton of type T, creating it from
// initializer (or the zero value) when it does not exist yet.
func NewSingleton[T any](registry *Registry, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{}
	s.Init(registry, initializer...)
	return s
}

// Init binds the Singleton to a registry, creating the value when missing.
// Called by the Scheduler during system registration.
func (s *Singleton[T]) Init(registry *Registry, initializer ...T) {
	s.registry = registry
	typ := reflect.TypeFor[T]()

	if existing, ok := registry.singletons[typ]; ok {
		s.value = existing.(*T)
		return
	}

	value := new(T)
	if len(initializer) > 0 {
		*value = initializer[0]
	}
	if registry.singletons == nil {
		registry.singletons = make(map[reflect.Type]any)
	}
	registry.singletons[typ] = value
	s.value = value
}

// Get returns a pointer to the singleton value, or nil before Init.
func (s *Singleton[T]) Get() *T {
	return s.value
}

// Exists reports whether the singleton has been bound.
func (s *Singleton[T]) Exists() bool {
	return s.value != nil
}
