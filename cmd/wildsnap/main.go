// Package main is the entry point for the WildSnap headless player.
//
// It loads a scene and plays a YAML action script against it:
//
//	wildsnap [flags] session.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/wildsnap/internal/config"
	"github.com/Faultbox/wildsnap/internal/engine/input"
	"github.com/Faultbox/wildsnap/internal/game"
	"github.com/Faultbox/wildsnap/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== WildSnap ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.WriteConfig() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to write config", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	script := &input.Script{}
	if args := config.Args(); len(args) > 0 {
		script, err = input.LoadScript(args[0])
		if err != nil {
			logger.Error("failed to load script", zap.Error(err))
			os.Exit(1)
		}
	}
	sceneName := cfg.Scenes.Default
	if script.Scene != "" {
		sceneName = script.Scene
	}

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Start(sceneName); err != nil {
		logger.Error("failed to start scene", zap.String("scene", sceneName), zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := g.Run(ctx, script.Actions); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	if sum, ok := g.Summary(); ok {
		fmt.Printf("Scene:    %s\n", sum.Scene)
		fmt.Printf("Found:    %d/%d\n", sum.Found, sum.Total)
		fmt.Printf("Shots:    %d (missed %d, skipped %d)\n", sum.Stats.Shots, sum.Stats.Missed, sum.Stats.Skipped)
		for _, name := range sum.Stats.Captured {
			fmt.Printf("  captured %s\n", name)
		}
		for _, file := range sum.Stats.Snapshots {
			fmt.Printf("  saved    %s\n", file)
		}
	}

	logger.Info("game closed normally")
}
