package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/localrivet/configurator"
	"github.com/localrivet/gomcp/logx"
)

// Global configuration instance
var (
	// Global is the global configuration instance
	Global *Config
	// initOnce ensures initialization happens only once
	initOnce sync.Once
)

// InitGlobal initializes the global configuration
func InitGlobal(configPath string) (*Config, error) {
	var err error
	initOnce.Do(func() {
		Global, err = LoadConfigWithPath(configPath)
	})
	return Global, err
}

// Config represents the cmdembed pipeline configuration
type Config struct {
	// Assets contains the input and output artifact paths.
	Assets struct {
		// CorpusPath is the frequency-ordered word vector text corpus.
		CorpusPath string `json:"corpus_path" env:"CORPUS_PATH" validate:"required"`

		// VectorsPath is the binary vector store produced by reduction.
		VectorsPath string `json:"vectors_path" env:"VECTORS_PATH" validate:"required"`

		// CatalogPath is the YAML command catalog.
		CatalogPath string `json:"catalog_path" env:"CATALOG_PATH" validate:"required"`

		// TablePath is the binary embedding table produced by generation.
		TablePath string `json:"table_path" env:"TABLE_PATH" validate:"required"`
	} `json:"assets"`

	// Reducer contains vocabulary reduction settings.
	Reducer struct {
		// MaxWords caps the vocabulary at the first N valid corpus lines.
		MaxWords int `json:"max_words" env:"REDUCER_MAX_WORDS" validate:"min:1"`
	} `json:"reducer"`

	// Embedder contains embedding generation settings.
	Embedder struct {
		// Workers is the number of concurrent embedding workers.
		// 1 computes records sequentially.
		Workers int `json:"workers" env:"EMBEDDER_WORKERS" validate:"min:1"`
	} `json:"embedder"`

	// Store contains optional SQLite index configuration.
	Store struct {
		// SQLitePath enables the embedding index when non-empty.
		SQLitePath string `json:"sqlite_path" env:"SQLITE_PATH"`
	} `json:"store"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath     string       `json:"-"`
	mutex          sync.RWMutex `json:"-"`
	lastModifiedAt time.Time    `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename = ".cmdembedconfig"
	DefaultCorpusPath     = "glove.6B.100d.txt"
	DefaultVectorsPath    = "assets/glove.bin"
	DefaultCatalogPath    = "assets/commands.yml"
	DefaultTablePath      = "assets/cmd_embeddings.bin"
	DefaultMaxWords       = 100000
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	config := &Config{}
	config.Assets.CorpusPath = DefaultCorpusPath
	config.Assets.VectorsPath = DefaultVectorsPath
	config.Assets.CatalogPath = DefaultCatalogPath
	config.Assets.TablePath = DefaultTablePath
	config.Reducer.MaxWords = DefaultMaxWords
	config.Embedder.Workers = 1
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	return config
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath(DefaultConfigFilename)
}

// LoadConfigWithPath loads the configuration from a specific path
func LoadConfigWithPath(configPath string) (*Config, error) {
	// Create a default logger for configuration loading
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create default configuration
	cfg := NewConfig()

	// Try to find config file if path is default
	if configPath == DefaultConfigFilename {
		foundPath, err := configurator.FindConfigFile(configPath)
		if err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	// Check if the file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// File doesn't exist, return default config
		stdLogger.Info("Config file not found, using default configuration", "path", configPath)
		cfg.configPath = configPath
		cfg.lastModifiedAt = time.Now()
		return cfg, nil
	}

	stdLogger.Info("Loading configuration", "path", configPath)

	// Create configurator instance
	config := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider()).
		WithProvider(configurator.NewFileProvider(configPath)).
		WithProvider(configurator.NewEnvProvider("CMDEMBED")).
		WithValidator(configurator.NewDefaultValidator())

	// Load configuration
	ctx := context.Background()
	if err := config.Load(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Store the config path for future operations
	cfg.configPath = configPath
	cfg.lastModifiedAt = time.Now()

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Create directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Save using configurator's SaveToFile function
	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Update internal state
	c.configPath = path
	c.lastModifiedAt = time.Now()

	return nil
}

// Save saves the configuration to the last used file path
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = DefaultConfigFilename
	}
	return c.SaveToFile(c.configPath)
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// GetLoggerFromConfig creates a gomcp logx.Logger based on the configuration
func GetLoggerFromConfig(cfg *Config) logx.Logger {
	return logx.NewLogger(cfg.Logging.Level)
}
