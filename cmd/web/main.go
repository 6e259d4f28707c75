package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"almanac/internal/app"
	"almanac/internal/config"
)

// Embedded dashboard frontend files
//go:embed all:frontend/*
var frontendFiles embed.FS

func main() {
	host := flag.String("host", "", "bind address (overrides ALMANAC_SERVER_HOST and config.yaml)")
	port := flag.Int("port", 0, "listen port (overrides ALMANAC_SERVER_PORT and config.yaml)")
	debug := flag.Bool("debug", false, "debug mode: verbose logging, error details in responses")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	applyFlags(cfg, *host, *port, *debug)

	paths, err := config.GetPaths()
	if err != nil {
		fmt.Printf("Error: failed to initialize paths: %v\n", err)
		os.Exit(1)
	}

	// Create frontend filesystem from embedded files
	var frontendFS fs.FS
	if frontendSubFS, err := fs.Sub(frontendFiles, "frontend"); err == nil {
		frontendFS = frontendSubFS
	} else {
		slog.Warn("Frontend embedding failed, serving API only", slog.String("error", err.Error()))
	}

	application, err := app.NewApplication(cfg, paths, frontendFS)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// applyFlags lays command line overrides on top of the loaded config.
// Zero values mean the flag was not set.
func applyFlags(cfg *config.Config, host string, port int, debug bool) {
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if debug {
		cfg.Server.Debug = true
		cfg.Logging.Level = "debug"
	}
}
