// Command previewd runs the WebSocket preview service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Strowy/ProceduralGame/internal/config"
	"github.com/Strowy/ProceduralGame/internal/database"
	"github.com/Strowy/ProceduralGame/internal/logger"
	"github.com/Strowy/ProceduralGame/internal/preview"
)

func main() {
	configPath := flag.String("config", "procgen.yaml", "Path to config YAML file")
	addr := flag.String("addr", "", "Listen address override")
	memory := flag.Bool("memory", false, "Keep cleared entrances in memory instead of the database")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Preview.Address = *addr
	}

	// Initialize logger first (before any logging)
	if err := logger.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid logging config: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Starting preview service", "seed", cfg.World.Seed, "strategy", cfg.Dungeon.Strategy)

	var store preview.ClearedStore
	if *memory {
		store = preview.NewMemoryStore()
	} else {
		db, err := database.OpenWithConfig(cfg.Database)
		if err != nil {
			logger.Error("Failed to open database", "driver", cfg.Database.Driver, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = db
		logger.Info("Cleared store opened", "driver", cfg.Database.Driver)
	}

	srv, err := preview.New(cfg, store)
	if err != nil {
		logger.Error("Failed to create preview server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("Preview server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Preview service stopped")
}
