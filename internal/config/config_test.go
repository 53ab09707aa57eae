package config

import (
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Assets.CorpusPath != DefaultCorpusPath {
		t.Errorf("Expected corpus path %q, got %q", DefaultCorpusPath, cfg.Assets.CorpusPath)
	}
	if cfg.Assets.VectorsPath != DefaultVectorsPath {
		t.Errorf("Expected vectors path %q, got %q", DefaultVectorsPath, cfg.Assets.VectorsPath)
	}
	if cfg.Reducer.MaxWords != DefaultMaxWords {
		t.Errorf("Expected max words %d, got %d", DefaultMaxWords, cfg.Reducer.MaxWords)
	}
	if cfg.Embedder.Workers != 1 {
		t.Errorf("Expected 1 worker, got %d", cfg.Embedder.Workers)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Expected log level %q, got %q", DefaultLogLevel, cfg.Logging.Level)
	}
}

func TestLoadConfigWithPathMissingFile(t *testing.T) {
	// A missing config file falls back to defaults rather than failing.
	cfg, err := LoadConfigWithPath(filepath.Join(t.TempDir(), "no-such-config"))
	if err != nil {
		t.Fatalf("LoadConfigWithPath() error: %v", err)
	}
	if cfg.Reducer.MaxWords != DefaultMaxWords {
		t.Errorf("Expected default max words %d, got %d", DefaultMaxWords, cfg.Reducer.MaxWords)
	}
}

func TestGetLoggerFromConfig(t *testing.T) {
	cfg := NewConfig()

	log := GetLoggerFromConfig(cfg)
	if log == nil {
		t.Fatal("Expected a logger from the configuration")
	}

	// Debug sits below the default info level; the call must be usable
	// without further setup.
	log.Debug("configuration logger ready")
}
