// Package config handles reading ~/.clario/config.yaml and the CLARIO_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for ~/.clario/config.yaml.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	Model         string `yaml:"model"`
	DrafterModel  string `yaml:"drafter_model"`
	OracleTimeout int    `yaml:"oracle_timeout"` // seconds
	ExportDir     string `yaml:"export_dir"`
}

const configFile = "config.yaml"

// DefaultConfig returns a Config populated with sensible defaults. The
// drafter gets a longer timeout indirectly: OracleTimeout bounds each
// chat call, and drafting is one call.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".clario")
	return Config{
		DataDir:       dataDir,
		Model:         "llama3.1",
		DrafterModel:  "",
		OracleTimeout: 180,
		ExportDir:     filepath.Join(dataDir, "exports"),
	}
}

// Load builds the effective configuration: defaults, overlaid by the
// config file if present, overlaid by CLARIO_* environment variables.
// A missing config file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(cfg.DataDir, configFile)
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)

	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = DefaultConfig().OracleTimeout
	}
	return cfg, nil
}

// applyEnv overlays CLARIO_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CLARIO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("CLARIO_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CLARIO_DRAFTER_MODEL"); v != "" {
		cfg.DrafterModel = v
	}
	if v := os.Getenv("CLARIO_ORACLE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.OracleTimeout = secs
		}
	}
	if v := os.Getenv("CLARIO_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
}

// Timeout returns the oracle timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.OracleTimeout) * time.Second
}
