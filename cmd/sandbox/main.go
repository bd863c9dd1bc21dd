// Command sandbox opens a window with a small demo world: an orbiting
// hierarchy, a clickable button, a text box and a second scene.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/plus3/tessel/config"
	"github.com/plus3/tessel/engine"
	"github.com/plus3/tessel/engine/ebitengame"
	"github.com/plus3/tessel/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	debug := flag.Bool("debug", false, "Show the ImGui inspector windows.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug.UI = true
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, err := engine.New(cfg, log)
	if err != nil {
		log.Fatal("failed to create engine", zap.Error(err))
	}
	ctx.Scheduler.RegisterNamed("controls", controls(ctx))

	if err := buildWorld(ctx); err != nil {
		log.Fatal("failed to build world", zap.Error(err))
	}

	if err := ebitengame.Run(ctx, nil); err != nil {
		log.Fatal("game loop exited", zap.Error(err))
	}
}
