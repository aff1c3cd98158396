package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected Listen=:8080, got %s", cfg.Server.Listen)
	}
	if cfg.Encoder.Provider != "openai" {
		t.Errorf("expected Provider=openai, got %s", cfg.Encoder.Provider)
	}
	if cfg.Encoder.BatchSize != 100 {
		t.Errorf("expected BatchSize=100, got %d", cfg.Encoder.BatchSize)
	}
	if cfg.Segmenter.MaxHeadingChars != 100 {
		t.Errorf("expected MaxHeadingChars=100, got %d", cfg.Segmenter.MaxHeadingChars)
	}
	if cfg.Segmenter.DefaultTitle != "Introduction" {
		t.Errorf("expected DefaultTitle=Introduction, got %s", cfg.Segmenter.DefaultTitle)
	}
	if cfg.Retrieval.Mode != "flat" {
		t.Errorf("expected Mode=flat, got %s", cfg.Retrieval.Mode)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "essayqa.yaml")

	content := `
server:
  listen: ":9090"
encoder:
  provider: mock
  dimension: 64
segmenter:
  max_heading_chars: 80
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":9090" {
		t.Errorf("expected Listen=:9090, got %s", cfg.Server.Listen)
	}
	if cfg.Encoder.Provider != "mock" {
		t.Errorf("expected Provider=mock, got %s", cfg.Encoder.Provider)
	}
	if cfg.Encoder.Dimension != 64 {
		t.Errorf("expected Dimension=64, got %d", cfg.Encoder.Dimension)
	}
	if cfg.Segmenter.MaxHeadingChars != 80 {
		t.Errorf("expected MaxHeadingChars=80, got %d", cfg.Segmenter.MaxHeadingChars)
	}
	// Untouched sections keep their defaults.
	if cfg.Retrieval.Mode != "flat" {
		t.Errorf("expected Mode=flat, got %s", cfg.Retrieval.Mode)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "essayqa.yaml")

	content := "server:\n  listen: \":7070\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Listen != ":7070" {
		t.Errorf("expected Listen=:7070, got %s", cfg.Server.Listen)
	}
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected default Listen=:8080, got %s", cfg.Server.Listen)
	}
}
