// Package main - Entry point for the bonus grid API server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/justinharkelroad/agencybrain-bonusgrid/adapters/storage"
	"github.com/justinharkelroad/agencybrain-bonusgrid/api"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/catalog"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/engine"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/config"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/logging"
)

const version = "1.0.0"

func main() {
	cfgFile := flag.String("config", "", "config file path")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Get()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	// Schema and catalog violations are fatal at boot: a form cannot
	// safely render against an unknown address.
	reg, err := schema.Load()
	if err != nil {
		logging.Error("loading schema", zap.Error(err))
		os.Exit(1)
	}
	cat := catalog.Default()

	var opts []engine.Option
	if cfg.Engine.Strict {
		opts = append(opts, engine.WithStrict())
	}
	eng, err := engine.New(reg, cat, opts...)
	if err != nil {
		logging.Error("building engine", zap.Error(err))
		os.Exit(1)
	}

	store, err := storage.New(storage.Config{
		Backend: storage.Backend(cfg.Storage.Backend),
		Path:    cfg.Storage.Path,
	})
	if err != nil {
		logging.Error("opening workbook store", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	server := api.NewServerWithStore(version, reg, cat, eng, store)

	logging.Info("bonus grid server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("schema", reg.Version()),
		zap.Bool("strict", cfg.Engine.Strict))

	if err := http.ListenAndServe(cfg.Server.Addr, server); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
