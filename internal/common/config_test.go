package common

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("expected default HTTP_ADDR :8080, got %q", cfg.Server.HTTPAddr)
	}
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("unexpected default model %q", cfg.LLM.Model)
	}
	if cfg.Rules.AmountThreshold != 50000 {
		t.Errorf("expected default threshold 50000, got %v", cfg.Rules.AmountThreshold)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CLAIM_AMOUNT_THRESHOLD", "100000")
	t.Setenv("GEMINI_TIMEOUT", "10s")

	cfg := LoadConfig()
	if cfg.Server.HTTPAddr != ":9090" {
		t.Errorf("expected :9090, got %q", cfg.Server.HTTPAddr)
	}
	if cfg.Rules.AmountThreshold != 100000 {
		t.Errorf("expected threshold 100000, got %v", cfg.Rules.AmountThreshold)
	}
	if cfg.LLM.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.LLM.Timeout)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/claims")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := LoadConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.Database.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing DB_URL")
	}
}
