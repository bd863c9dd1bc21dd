// Command hierarchy-stress runs several independent worlds in parallel,
// hammering their transform hierarchies with random reparenting, destruction
// and scene switches, and prints a report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/tessel/config"
	"github.com/plus3/tessel/logging"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	worlds := flag.Int("worlds", runtime.GOMAXPROCS(0), "The number of worlds to run in parallel.")
	entityCount := flag.Int("entities", 1000, "The initial number of entities per world.")
	sceneCount := flag.Int("scenes", 2, "The number of scenes per world.")
	ops := flag.Int("ops", 50, "Hierarchy operations per frame.")
	frames := flag.Int64("frames", 0, "Stop each world after this many frames; zero runs for the full duration.")
	seed := flag.Uint64("seed", rand.Uint64(), "Seed for the random operations.")
	level := flag.String("log-level", "warn", "Log level.")
	flag.Parse()

	log, err := logging.New(config.Log{Level: *level, Encoding: "console"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	report := &Report{
		Duration:    *duration,
		Worlds:      *worlds,
		Entities:    *entityCount,
		Scenes:      max(*sceneCount, 1),
		OpsPerFrame: *ops,
		Seed:        *seed,
		Results:     make([]*WorldResult, *worlds),
	}

	log.Info("starting hierarchy stress test",
		zap.Int("worlds", report.Worlds),
		zap.Int("entities", report.Entities),
		zap.Uint64("seed", report.Seed))

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	if err := runWorlds(context.Background(), report, *frames, log); err != nil {
		log.Fatal("stress test failed", zap.Error(err))
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// runWorlds runs one goroutine per world. The first failing world cancels
// the others.
func runWorlds(parent context.Context, report *Report, frames int64, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(parent, report.Duration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for i := range report.Worlds {
		g.Go(func() error {
			w, err := newWorld(WorldOptions{
				Index:       i,
				Seed:        report.Seed,
				Entities:    report.Entities,
				Scenes:      report.Scenes,
				OpsPerFrame: report.OpsPerFrame,
				Frames:      frames,
			}, log.Named(fmt.Sprintf("world-%d", i)))
			if err != nil {
				return err
			}

			res, err := w.run(ctx)
			if err != nil {
				return err
			}
			report.Results[i] = res
			log.Info("world finished", zap.Int("world", i), zap.Int64("frames", res.Frames))
			return nil
		})
	}
	return g.Wait()
}
