package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != "parallel" {
		t.Errorf("Backend = %q, want parallel", cfg.Backend)
	}
	if cfg.TopTerms != 100 {
		t.Errorf("TopTerms = %d, want 100", cfg.TopTerms)
	}
	if cfg.Features.NGramLength != 2 {
		t.Errorf("Features.NGramLength = %d, want 2", cfg.Features.NGramLength)
	}
	if cfg.Logistic.Epochs != 20 {
		t.Errorf("Logistic.Epochs = %d, want 20", cfg.Logistic.Epochs)
	}
	if cfg.Boosting.Trees != 100 {
		t.Errorf("Boosting.Trees = %d, want 100", cfg.Boosting.Trees)
	}
}

func TestYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "backend: local\nboosting:\n  trees: 25\nfeatures:\n  ngram_length: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != "local" {
		t.Errorf("Backend = %q, want local", cfg.Backend)
	}
	if cfg.Boosting.Trees != 25 {
		t.Errorf("Boosting.Trees = %d, want 25", cfg.Boosting.Trees)
	}
	if cfg.Features.NGramLength != 3 {
		t.Errorf("Features.NGramLength = %d, want 3", cfg.Features.NGramLength)
	}
	// Untouched keys keep their defaults.
	if cfg.Logistic.Epochs != 20 {
		t.Errorf("Logistic.Epochs = %d, want 20", cfg.Logistic.Epochs)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SENTIMENT_BACKEND", "local")
	t.Setenv("SENTIMENT_LOGISTIC__EPOCHS", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != "local" {
		t.Errorf("Backend = %q, want local", cfg.Backend)
	}
	if cfg.Logistic.Epochs != 3 {
		t.Errorf("Logistic.Epochs = %d, want 3", cfg.Logistic.Epochs)
	}
}

func TestMissingConfigFileIsFatal(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Backend = "spark"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}

	cfg = defaultConfig()
	cfg.Train.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing train path")
	}

	cfg = defaultConfig()
	cfg.TopTerms = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero top_terms")
	}
}
