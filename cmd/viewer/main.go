// Package main is the entry point for the glpipeline shader viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ejricha/glpipeline/internal/config"
	"github.com/ejricha/glpipeline/internal/engine/shader"
	"github.com/ejricha/glpipeline/internal/logger"
	"github.com/ejricha/glpipeline/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== glpipeline viewer ===")
	logger.Debug("logging configured",
		zap.String("level", cfg.Logging.Level),
		zap.String("file", cfg.Logging.LogFile))
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		var buildErr *shader.BuildError
		if errors.As(err, &buildErr) {
			logger.Error("shader build failed",
				zap.String("vertex", buildErr.Vertex),
				zap.String("fragment", buildErr.Fragment),
				zap.Stringer("state", buildErr.State),
				zap.Error(buildErr.Err))
		} else {
			logger.Error("failed to start viewer", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		v.Close()
		logger.Sync()
		os.Exit(1)
	}
	v.Close()

	logger.Info("viewer closed normally")
}
