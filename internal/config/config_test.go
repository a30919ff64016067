package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Model != "llama3.1" {
		t.Errorf("Model = %q, want llama3.1", cfg.Model)
	}
	if cfg.DrafterModel != "" {
		t.Errorf("DrafterModel = %q, want empty (falls back to Model)", cfg.DrafterModel)
	}
	if cfg.OracleTimeout != 180 {
		t.Errorf("OracleTimeout = %d, want 180", cfg.OracleTimeout)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir is empty")
	}
	if cfg.ExportDir == "" {
		t.Error("ExportDir is empty")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CLARIO_DATA_DIR", "/tmp/clario-test")
	t.Setenv("CLARIO_MODEL", "qwen2.5")
	t.Setenv("CLARIO_DRAFTER_MODEL", "llama3.1:70b")
	t.Setenv("CLARIO_ORACLE_TIMEOUT", "60")
	t.Setenv("CLARIO_EXPORT_DIR", "/tmp/clario-exports")

	cfg := DefaultConfig()
	applyEnv(&cfg)

	if cfg.DataDir != "/tmp/clario-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Model != "qwen2.5" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.DrafterModel != "llama3.1:70b" {
		t.Errorf("DrafterModel = %q", cfg.DrafterModel)
	}
	if cfg.OracleTimeout != 60 {
		t.Errorf("OracleTimeout = %d", cfg.OracleTimeout)
	}
	if cfg.ExportDir != "/tmp/clario-exports" {
		t.Errorf("ExportDir = %q", cfg.ExportDir)
	}
}

func TestApplyEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("CLARIO_ORACLE_TIMEOUT", "soon")

	cfg := DefaultConfig()
	applyEnv(&cfg)

	if cfg.OracleTimeout != 180 {
		t.Errorf("OracleTimeout = %d, want default 180 when value is not a number", cfg.OracleTimeout)
	}
}

func TestTimeout(t *testing.T) {
	cfg := Config{OracleTimeout: 90}
	if got := cfg.Timeout(); got != 90*time.Second {
		t.Errorf("Timeout() = %v, want 90s", got)
	}
}
