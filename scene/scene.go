// Package scene keeps the set of known scenes and which one is active.
package scene

import (
	"errors"
	"fmt"
	"iter"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

var (
	ErrUnknownScene = errors.New("scene: unknown scene")
	ErrSceneExists  = errors.New("scene: scene already registered")
)

// ID identifies a scene. Scene 0 always exists.
type ID int

// Main is the id of the scene registered by NewRegistry.
const Main ID = 0

type Scene struct {
	ID   ID
	Name string

	registry *Registry
}

// Active reports whether this is the registry's active scene.
func (s *Scene) Active() bool {
	return s.registry.active == s.ID
}

func (s *Scene) String() string {
	return fmt.Sprintf("%s (%d)", s.Name, s.ID)
}

// Registry holds scenes in registration order. Exactly one scene is active
// at any time.
type Registry struct {
	scenes *intmap.Map[ID, *Scene]
	order  []*Scene
	active ID
	log    *zap.Logger

	onSwitch []func(from, to *Scene)
}

// NewRegistry returns a registry containing the active "main" scene.
func NewRegistry(log *zap.Logger) *Registry {
	r := &Registry{
		scenes: intmap.New[ID, *Scene](8),
		log:    log,
		active: Main,
	}
	r.add(Main, "main")
	return r
}

func (r *Registry) add(id ID, name string) *Scene {
	s := &Scene{ID: id, Name: name, registry: r}
	r.scenes.Put(id, s)
	r.order = append(r.order, s)
	return s
}

// Register adds a scene.
func (r *Registry) Register(id ID, name string) (*Scene, error) {
	if _, ok := r.scenes.Get(id); ok {
		return nil, fmt.Errorf("%w: %d", ErrSceneExists, id)
	}
	s := r.add(id, name)
	r.log.Debug("scene registered", zap.Int("scene", int(id)), zap.String("name", name))
	return s, nil
}

// SetActive switches the active scene. On error the active scene is unchanged.
func (r *Registry) SetActive(id ID) error {
	next, ok := r.scenes.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownScene, id)
	}
	if id == r.active {
		return nil
	}

	prev := r.Active()
	r.active = id
	r.log.Info("active scene changed",
		zap.Int("from", int(prev.ID)),
		zap.Int("to", int(id)),
		zap.String("name", next.Name),
	)
	for _, fn := range r.onSwitch {
		fn(prev, next)
	}
	return nil
}

// OnSwitch registers a callback run after the active scene changes.
func (r *Registry) OnSwitch(fn func(from, to *Scene)) {
	r.onSwitch = append(r.onSwitch, fn)
}

// Active returns the active scene.
func (r *Registry) Active() *Scene {
	s, _ := r.scenes.Get(r.active)
	return s
}

func (r *Registry) ActiveID() ID {
	return r.active
}

// ByID returns the scene with the given id.
func (r *Registry) ByID(id ID) (*Scene, error) {
	s, ok := r.scenes.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScene, id)
	}
	return s, nil
}

func (r *Registry) Has(id ID) bool {
	_, ok := r.scenes.Get(id)
	return ok
}

func (r *Registry) Len() int {
	return len(r.order)
}

// All iterates scenes in registration order.
func (r *Registry) All() iter.Seq[*Scene] {
	return func(yield func(*Scene) bool) {
		for _, s := range r.order {
			if !yield(s) {
				return
			}
		}
	}
}
