// Package main is the entry point for the environment mapping demo.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/leterax/go-reflection/internal/config"
	"github.com/leterax/go-reflection/internal/logger"
	"github.com/leterax/go-reflection/pkg/render"
)

func init() {
	// GLFW and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

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

	logger.Info("=== Environment Mapping - reflection ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := cfg.CheckAssets(); err != nil {
		logger.Fatal("missing assets", zap.Error(err))
	}

	r, err := render.New(cfg)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}

	if err := r.Run(); err != nil {
		logger.Error("render loop failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("window closed normally")
}
