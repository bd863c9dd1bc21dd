package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/plus3/tessel/config"
	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/engine"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

// WorldOptions configures one simulated world.
type WorldOptions struct {
	Index       int
	Seed        uint64
	Entities    int
	Scenes      int
	OpsPerFrame int
	Frames      int64
}

// WorldResult is what one world reports back.
type WorldResult struct {
	Index      int
	Frames     int64
	Reparents  int64
	Hoists     int64
	Destroys   int64
	Spawns     int64
	Switches   int64
	FinalCount int
	MaxDepth   int
	FrameTime  Stats
}

type world struct {
	ctx  *engine.Context
	rng  *rand.Rand
	opts WorldOptions
	res  *WorldResult
	live []ecs.EntityId
}

func newWorld(opts WorldOptions, log *zap.Logger) (*world, error) {
	cfg := config.Default()
	for i := 1; i < opts.Scenes; i++ {
		cfg.Scenes = append(cfg.Scenes, config.Scene{ID: i, Name: fmt.Sprintf("scene-%d", i)})
	}

	ctx, err := engine.New(cfg, log)
	if err != nil {
		return nil, err
	}

	w := &world{
		ctx:  ctx,
		rng:  rand.New(rand.NewPCG(opts.Seed, uint64(opts.Index))),
		opts: opts,
		res:  &WorldResult{Index: opts.Index},
	}
	for range opts.Entities {
		if err := w.spawn(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// run mutates the hierarchy until ctx is done or the frame limit is hit.
// A cycle in any parent chain is reported as an error.
func (w *world) run(ctx context.Context) (*WorldResult, error) {
	dt := 1.0 / float64(w.ctx.Config.TPS)

	for w.opts.Frames <= 0 || w.res.Frames < w.opts.Frames {
		select {
		case <-ctx.Done():
			return w.finish(), nil
		default:
		}

		start := time.Now()
		for range w.opts.OpsPerFrame {
			if err := w.step(); err != nil {
				return nil, err
			}
		}
		w.ctx.Update(nil, mgl64.Vec2{}, dt)
		w.res.FrameTime.Samples = append(w.res.FrameTime.Samples, time.Since(start))
		w.res.Frames++

		if err := w.check(); err != nil {
			return nil, err
		}
	}
	return w.finish(), nil
}

func (w *world) finish() *WorldResult {
	w.res.FinalCount = w.ctx.Entities.Len()
	w.res.FrameTime.Finalize()
	return w.res
}

func (w *world) spawn() error {
	pos := mgl64.Vec3{w.rng.Float64() * 100, w.rng.Float64() * 100, 0}
	e, err := w.ctx.Spawn(fmt.Sprintf("node-%d", w.res.Spawns), w.ctx.Hierarchy.New(transform.WithPosition(pos)))
	if err != nil {
		return err
	}
	w.live = append(w.live, e.ID())
	w.res.Spawns++
	return nil
}

func (w *world) pick() (int, *transform.Transform, bool) {
	for len(w.live) > 0 {
		i := w.rng.IntN(len(w.live))
		e, err := w.ctx.Entities.Entity(w.live[i])
		if err != nil {
			w.live[i] = w.live[len(w.live)-1]
			w.live = w.live[:len(w.live)-1]
			continue
		}
		t, ok := transform.Of(e)
		return i, t, ok
	}
	return 0, nil, false
}

func (w *world) step() error {
	switch roll := w.rng.IntN(100); {
	case roll < 70:
		_, child, ok := w.pick()
		if !ok {
			return w.spawn()
		}
		_, parent, ok := w.pick()
		if !ok || parent == child {
			return nil
		}
		if isAncestor(child, parent) {
			w.res.Hoists++
		}
		child.SetParent(parent)
		w.res.Reparents++

	case roll < 85:
		i, t, ok := w.pick()
		if !ok {
			return w.spawn()
		}
		if err := w.ctx.Destroy(t.Entity().ID()); err != nil {
			return err
		}
		w.live[i] = w.live[len(w.live)-1]
		w.live = w.live[:len(w.live)-1]
		w.res.Destroys++
		return w.spawn()

	case roll < 98:
		_, t, ok := w.pick()
		if ok {
			t.Translate(mgl64.Vec3{w.rng.NormFloat64(), w.rng.NormFloat64(), 0})
		}

	default:
		if w.opts.Scenes > 1 {
			if err := w.ctx.Scenes.SetActive(scene.ID(w.rng.IntN(w.opts.Scenes))); err != nil {
				return err
			}
			w.res.Switches++
		}
	}
	return nil
}

// check walks every parent chain, failing on a chain longer than the
// entity count.
func (w *world) check() error {
	limit := w.ctx.Entities.Len()
	for e := range w.ctx.Entities.All() {
		t, ok := transform.Of(e)
		if !ok {
			continue
		}
		depth := 0
		for p, ok := t.ParentTransform(); ok; p, ok = p.ParentTransform() {
			depth++
			if depth > limit {
				return fmt.Errorf("world %d: cycle through entity %d", w.opts.Index, e.ID())
			}
		}
		if depth > w.res.MaxDepth {
			w.res.MaxDepth = depth
		}
	}
	return nil
}

// isAncestor reports whether a is a strict ancestor of d.
func isAncestor(a, d *transform.Transform) bool {
	for p, ok := d.ParentTransform(); ok; p, ok = p.ParentTransform() {
		if p == a {
			return true
		}
	}
	return false
}
