package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Capture.AmbiguousCurrency != "expense" {
		t.Fatalf("AmbiguousCurrency = %q, want expense", cfg.Capture.AmbiguousCurrency)
	}
	if cfg.Capture.MaxFetchChars != 10240 {
		t.Fatalf("MaxFetchChars = %d, want 10240", cfg.Capture.MaxFetchChars)
	}
	if cfg.Model.BaseTemperature != 0.7 {
		t.Fatalf("BaseTemperature = %v, want 0.7", cfg.Model.BaseTemperature)
	}
	if cfg.DBPath == "" {
		t.Fatal("DBPath should default to a path")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `addr = ":9090"

[capture]
ambiguous_currency = "income"
max_fetch_chars = 2000

[voice]
name = "Studio North"
traits = ["direct", "warm"]

[model]
name = "claude-sonnet-4-20250514"
max_tokens = 1024
base_temperature = 0.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.Capture.AmbiguousCurrency != "income" {
		t.Fatalf("AmbiguousCurrency = %q, want income", cfg.Capture.AmbiguousCurrency)
	}
	if cfg.Capture.MaxFetchChars != 2000 {
		t.Fatalf("MaxFetchChars = %d, want 2000", cfg.Capture.MaxFetchChars)
	}
	if len(cfg.Voice.Traits) != 2 {
		t.Fatalf("Traits = %v, want 2 entries", cfg.Voice.Traits)
	}
	if cfg.Model.MaxTokens != 1024 || cfg.Model.BaseTemperature != 0.5 {
		t.Fatalf("model config not loaded: %+v", cfg.Model)
	}
}

func TestLoadInvalidCurrencyFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[capture]\nambiguous_currency = \"task\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Capture.AmbiguousCurrency != "expense" {
		t.Fatalf("invalid currency should fall back to expense, got %q", cfg.Capture.AmbiguousCurrency)
	}
}
