package config

import (
	"os"
	"path/filepath"
	"testing"

	"packaging-quote/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.DefaultFormat != "cli" {
		t.Errorf("DefaultFormat = %q, want cli", cfg.Output.DefaultFormat)
	}
	if cfg.Quote.Urgency != "standard" {
		t.Errorf("Urgency = %q, want standard", cfg.Quote.Urgency)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"output": {"default_format": "json"}, "quote": {"urgency": "express"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want json", cfg.Output.DefaultFormat)
	}
	if cfg.Quote.Urgency != "express" {
		t.Errorf("Urgency = %q, want express", cfg.Quote.Urgency)
	}
	// Untouched sections keep their defaults
	if cfg.Quote.PrintingType != "digital" {
		t.Errorf("PrintingType = %q, want digital", cfg.Quote.PrintingType)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad format", `{"output": {"default_format": "html"}}`},
		{"negative cache", `{"engine": {"max_cache_entries": -1}}`},
		{"broken json", `{"output": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Engine.MaxCacheEntries = 512

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Engine.MaxCacheEntries != 512 {
		t.Errorf("MaxCacheEntries = %d, want 512", loaded.Engine.MaxCacheEntries)
	}
}
