// Package main is the entry point for the maze walker.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/config"
	"github.com/Faultbox/mazewalk/internal/game"
	"github.com/Faultbox/mazewalk/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(loggerOptions(cfg.Logging)); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Maze Walk ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		g.Close()
		logger.Sync()
		os.Exit(1)
	}
	g.Close()

	logger.Info("game closed normally")
}

func loggerOptions(l config.LoggingConfig) logger.Options {
	return logger.Options{
		Level:      l.Level,
		Console:    l.Console,
		Color:      l.Color,
		TimeFormat: l.TimeFormat,
		File:       l.LogFile,
		Rotation: logger.Rotation{
			MaxSizeMB:  l.MaxSizeMB,
			MaxBackups: l.MaxBackups,
			MaxAgeDays: l.MaxAgeDays,
			Compress:   l.Compress,
		},
	}
}
