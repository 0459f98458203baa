package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/soridam/announcer/config"
	"github.com/soridam/announcer/pkg/otel"
	"github.com/soridam/announcer/server"
)

func main() {
	ctx := context.Background()

	var configPath string

	flag.StringVar(&configPath, "config", "config.yaml", "configuration file")
	flag.Parse()

	if otel.EnableDebug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := otel.Setup(ctx, "announcer"); err != nil {
		slog.Error("telemetry setup failed", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Parse(configPath)

	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	s, err := server.New(cfg)

	if err != nil {
		slog.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	slog.Info("starting server", "address", cfg.Address)

	if err := s.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
