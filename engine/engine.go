// Package engine wires the registries, hierarchy, camera rig, input and
// rendering into one Context.
package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/plus3/tessel/camera"
	"github.com/plus3/tessel/config"
	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/input"
	"github.com/plus3/tessel/render"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

// Context is everything a running world needs. Contexts share nothing, so
// several can run side by side as long as each is driven by one goroutine.
type Context struct {
	Config *config.Config
	Log    *zap.Logger

	Entities   *ecs.Registry
	Scenes     *scene.Registry
	Hierarchy  *transform.Hierarchy
	Cameras    *camera.Rig
	Dispatcher *input.Dispatcher
	Renderer   *render.System
	Scheduler  *ecs.Scheduler
}

// New builds a Context, registers the configured scenes and activates the
// configured scene.
func New(cfg *config.Config, log *zap.Logger) (*Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	entities := ecs.NewRegistry()
	scenes := scene.NewRegistry(log.Named("scene"))
	cameras := camera.NewRig(entities, log.Named("camera"))

	c := &Context{
		Config:     cfg,
		Log:        log,
		Entities:   entities,
		Scenes:     scenes,
		Hierarchy:  transform.NewHierarchy(entities, scenes, log.Named("transform")),
		Cameras:    cameras,
		Dispatcher: input.NewDispatcher(entities, scenes, cameras, log.Named("input")),
		Renderer:   render.NewSystem(entities, scenes, cameras),
		Scheduler:  ecs.NewScheduler(entities),
	}

	for _, s := range cfg.Scenes {
		if existing, err := scenes.ByID(scene.ID(s.ID)); err == nil {
			existing.Name = s.Name
			continue
		}
		if _, err := scenes.Register(scene.ID(s.ID), s.Name); err != nil {
			return nil, err
		}
	}
	if err := scenes.SetActive(scene.ID(cfg.ActiveScene)); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	c.Scheduler.Register(&UpdateSystem{Scenes: scenes})
	c.Scheduler.OnFlushErrors(func(errs []error) {
		for _, err := range errs {
			log.Warn("deferred command failed", zap.Error(err))
		}
	})

	entities.OnDestroy(func(e *ecs.Entity) {
		log.Debug("entity destroyed", zap.Uint64("id", uint64(e.ID())), zap.String("name", e.Name))
	})
	return c, nil
}

// Spawn creates an entity in the active scene. A nil Transform is replaced
// by a default one.
func (c *Context) Spawn(name string, t *transform.Transform, components ...ecs.Component) (*ecs.Entity, error) {
	return c.SpawnIn(c.Scenes.ActiveID(), name, t, components...)
}

// SpawnIn creates an entity tagged with the given scene. A nil Transform is
// replaced by a root of that scene.
func (c *Context) SpawnIn(id scene.ID, name string, t *transform.Transform, components ...ecs.Component) (*ecs.Entity, error) {
	if !c.Scenes.Has(id) {
		return nil, fmt.Errorf("engine: spawn %q: %w: %d", name, scene.ErrUnknownScene, id)
	}
	if t == nil {
		t = c.Hierarchy.New(transform.WithParent(transform.SceneParent(id)))
	}

	all := make([]ecs.Component, 0, len(components)+1)
	all = append(all, t)
	all = append(all, components...)

	eid, err := c.Entities.Create(name, int(id), all...)
	if err != nil {
		return nil, fmt.Errorf("engine: spawn %q: %w", name, err)
	}
	return c.Entities.Entity(eid)
}

// SpawnCamera creates an entity with a Camera and makes it the main camera.
func (c *Context) SpawnCamera(name string, position mgl64.Vec3, opts ...camera.Option) (*ecs.Entity, error) {
	e, err := c.Spawn(name, c.Hierarchy.New(transform.WithPosition(position)), camera.New(opts...))
	if err != nil {
		return nil, err
	}
	if err := c.Cameras.SetMain(e.ID()); err != nil {
		return nil, err
	}
	return e, nil
}

// Destroy removes an entity. Children of its Transform move to its parent.
func (c *Context) Destroy(id ecs.EntityId) error {
	return c.Entities.Destroy(id)
}

// Update polls input against a viewport of the given size and runs one
// scheduler frame.
func (c *Context) Update(src input.Source, viewport mgl64.Vec2, dt float64) {
	if src != nil {
		c.Dispatcher.Poll(src, viewport)
	}
	c.Scheduler.Once(dt)
}

// Draw renders the active scene.
func (c *Context) Draw(s render.Surface) {
	c.Renderer.Draw(s)
}

// UpdateSystem calls Update on every component of the active scene that
// implements ecs.Updater.
type UpdateSystem struct {
	Scenes *scene.Registry
}

func (s *UpdateSystem) Execute(frame *ecs.UpdateFrame) {
	for e := range frame.Registry.InScene(int(s.Scenes.ActiveID())) {
		for _, c := range e.Components() {
			if u, ok := c.(ecs.Updater); ok {
				u.Update(frame.DeltaTime)
			}
		}
	}
}
