// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Engine contains compute-engine configuration
	Engine EngineConfig `json:"engine"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Storage contains workbook storage configuration
	Storage StorageConfig `json:"storage"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// EngineConfig contains compute-engine settings
type EngineConfig struct {
	// Strict makes the engine reject requested addresses with no formula path.
	// Production leaves this off: an unknown address resolves to 0, matching
	// blank-cell spreadsheet semantics. Tests and tooling turn it on to catch
	// catalog typos.
	Strict bool `json:"strict"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default export format (text, json, xlsx)
	DefaultFormat string `json:"default_format"`

	// ShowFactors includes growth/retention/combined factors in text output
	ShowFactors bool `json:"show_factors"`
}

// StorageConfig contains workbook persistence settings
type StorageConfig struct {
	// Backend selects the storage backend (memory, sqlite)
	Backend string `json:"backend"`

	// Path is the SQLite database path
	Path string `json:"path"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".bonusgrid", "workbooks.db")

	return &Config{
		Version: "1",
		Engine:  EngineConfig{Strict: false},
		Output: OutputConfig{
			DefaultFormat: "text",
			ShowFactors:   true,
		},
		Storage: StorageConfig{
			Backend: "memory",
			Path:    dbPath,
		},
		Server:  ServerConfig{Addr: ":8080"},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration from a JSON file, layered over defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("reading config file", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Config("parsing config file", err)
	}
	return cfg, nil
}

var (
	mu      sync.RWMutex
	current = Default()
)

// Get returns the active configuration
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the active configuration
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}
