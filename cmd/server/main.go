package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Flags override environment
	port := flag.String("port", cfg.Server.Port, "Server port")
	static := flag.String("static", cfg.Server.StaticDir, "Front end build directory")
	commands := flag.String("catalog", cfg.Catalog.CommandsPath, "Command catalog file (yaml, toml or json)")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.StaticDir = *static
	cfg.Catalog.CommandsPath = *commands
	cfg.Logging.Development = *dev

	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if !cfg.Logging.Development || os.Getenv("LOG_LEVEL") != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := srv.Run(ctx)
	if err := srv.Close(); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	if runErr != nil {
		logger.Fatal("Server error", zap.Error(runErr))
	}
}
