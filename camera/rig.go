package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/transform"
)

// Rig designates at most one entity as the main camera.
type Rig struct {
	entities *ecs.Registry
	log      *zap.Logger

	main    ecs.EntityId
	hasMain bool
}

// NewRig creates a rig over the registry. Destroying the main camera entity
// clears the designation.
func NewRig(entities *ecs.Registry, log *zap.Logger) *Rig {
	r := &Rig{entities: entities, log: log}
	entities.OnDestroy(func(e *ecs.Entity) {
		if r.hasMain && e.ID() == r.main {
			r.log.Info("main camera destroyed", zap.String("entity", e.Name))
			r.ClearMain()
		}
	})
	return r
}

// SetMain makes the entity the main camera. It must carry a Camera and a
// Transform.
func (r *Rig) SetMain(id ecs.EntityId) error {
	e, err := r.entities.Entity(id)
	if err != nil {
		return err
	}
	if _, err := ecs.ComponentOf[*Camera](e); err != nil {
		return err
	}
	if _, ok := transform.Of(e); !ok {
		return fmt.Errorf("%w: camera entity %d has no %s", ecs.ErrComponentNotFound, id, transform.Kind)
	}

	r.main = id
	r.hasMain = true
	r.log.Debug("main camera set", zap.String("entity", e.Name))
	return nil
}

func (r *Rig) ClearMain() {
	r.main = 0
	r.hasMain = false
}

// MainID returns the main camera entity id, if any.
func (r *Rig) MainID() (ecs.EntityId, bool) {
	return r.main, r.hasMain
}

// Main returns the main camera and its Transform.
func (r *Rig) Main() (*Camera, *transform.Transform, error) {
	if !r.hasMain {
		return nil, nil, ErrNoMainCamera
	}

	e, err := r.entities.Entity(r.main)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNoMainCamera, err)
	}
	cam, err := ecs.ComponentOf[*Camera](e)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNoMainCamera, err)
	}
	t, ok := transform.Of(e)
	if !ok {
		return nil, nil, fmt.Errorf("%w: entity %d lost its transform", ErrNoMainCamera, r.main)
	}
	return cam, t, nil
}

// ScreenToWorld maps through the main camera.
func (r *Rig) ScreenToWorld(point, viewport mgl64.Vec2) (mgl64.Vec2, error) {
	cam, t, err := r.Main()
	if err != nil {
		return mgl64.Vec2{}, err
	}
	return cam.ScreenToWorld(point, viewport, t.Position()), nil
}

// WorldToScreen maps through the main camera.
func (r *Rig) WorldToScreen(point, viewport mgl64.Vec2) (mgl64.Vec2, error) {
	cam, t, err := r.Main()
	if err != nil {
		return mgl64.Vec2{}, err
	}
	return cam.WorldToScreen(point, viewport, t.Position()), nil
}
