// Package cmdembed builds the binary embedding assets consumed by a
// command-lookup tool: a reduced word-vector store and a per-command
// embedding table averaged from pretrained word vectors.
package cmdembed

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/localrivet/cmdembed/internal/catalog"
	"github.com/localrivet/cmdembed/internal/config"
	"github.com/localrivet/cmdembed/internal/embed"
	"github.com/localrivet/cmdembed/internal/embedstore"
	"github.com/localrivet/cmdembed/internal/logger"
	"github.com/localrivet/cmdembed/internal/telemetry"
	"github.com/localrivet/cmdembed/internal/util"
	"github.com/localrivet/cmdembed/internal/vector"
)

// Config represents the configuration for the cmdembed pipeline.
type Config = config.Config

// Dimension is the fixed width of every vector the pipeline produces.
const Dimension = vector.Dimension

// Pipeline runs the asset generation stages against a configuration.
type Pipeline struct {
	config  *config.Config
	metrics *telemetry.MetricsCollector
	logger  *slog.Logger
}

// PipelineOptions defines the options for creating a new Pipeline.
type PipelineOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewPipeline creates a new Pipeline with the given options.
// If opts.Config is provided, it will be used directly. Otherwise, if
// opts.ConfigPath is provided, configuration will be loaded from that
// path. If neither is provided, DefaultConfig() will be used.
func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
	} else if opts.ConfigPath != "" {
		log.Info("Loading pipeline configuration", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			log.Error("Failed to load configuration", "path", opts.ConfigPath, "error", err)
			return nil, logger.ConfigError(err, "failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		log.Warn("No Config object or ConfigPath provided, using default configuration")
		cfg = DefaultConfig()
	}

	return &Pipeline{
		config:  cfg,
		metrics: telemetry.NewMetricsCollector(),
		logger:  log,
	}, nil
}

// DefaultConfig returns the default configuration for the pipeline.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// BuildVectorStore reduces the configured text corpus to the first
// MaxWords valid entries and writes the binary vector store. The
// corpus must exist before any output is written.
func (p *Pipeline) BuildVectorStore() (*vector.ReduceStats, error) {
	corpusPath := p.config.Assets.CorpusPath

	f, err := os.Open(corpusPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, logger.InputError(err, "word vector corpus not found").
				WithField("path", corpusPath)
		}
		return nil, logger.InputError(err, "failed to open word vector corpus")
	}
	defer f.Close()

	p.logger.Info("Reducing word vector corpus",
		"path", corpusPath, "max_words", p.config.Reducer.MaxWords)

	started := time.Now()
	store, stats, err := vector.ReduceCorpus(f, p.config.Reducer.MaxWords)
	if err != nil {
		return nil, err
	}

	p.metrics.IncrementCounter(telemetry.MetricReduceLinesRead, int64(stats.LinesRead))
	p.metrics.IncrementCounter(telemetry.MetricReduceAccepted, int64(stats.Accepted))
	p.metrics.IncrementCounter(telemetry.MetricReduceSkipped, int64(stats.Skipped))
	p.metrics.RecordTimer(telemetry.MetricReduceDuration, time.Since(started))
	p.metrics.SetGauge(telemetry.MetricVocabSize, float64(store.Len()))

	if err := vector.WriteStoreFile(p.config.Assets.VectorsPath, store); err != nil {
		p.logger.Error("Failed to write vector store", "path", p.config.Assets.VectorsPath, "error", err)
		return nil, err
	}

	p.logger.Info("Vector store written",
		"path", p.config.Assets.VectorsPath,
		"words", store.Len(),
		"skipped_lines", stats.Skipped)
	return stats, nil
}

// BuildEmbeddingTable loads the vector store and command catalog,
// generates one embedding per command, and writes the binary table.
// When a SQLite index path is configured, each row is also indexed for
// inspection. Missing inputs abort before any output is written.
func (p *Pipeline) BuildEmbeddingTable(ctx context.Context) (*embed.Stats, error) {
	store, err := vector.ReadStoreFile(p.config.Assets.VectorsPath)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Loaded vector store",
		"path", p.config.Assets.VectorsPath, "words", store.Len())

	commands, err := catalog.Load(p.config.Assets.CatalogPath)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Loaded command catalog",
		"path", p.config.Assets.CatalogPath, "commands", len(commands))

	started := time.Now()
	gen := embed.NewGenerator(store, p.config.Embedder.Workers)
	table, stats, err := gen.Generate(ctx, commands)
	if err != nil {
		return nil, err
	}

	p.metrics.IncrementCounter(telemetry.MetricEmbedRecords, int64(stats.Records))
	p.metrics.IncrementCounter(telemetry.MetricEmbedZeroMatches, int64(stats.ZeroMatches))
	p.metrics.RecordTimer(telemetry.MetricEmbedDuration, time.Since(started))
	p.metrics.SetGauge(telemetry.MetricTableRows, float64(len(table.Embeddings)))

	if err := embed.WriteTableFile(p.config.Assets.TablePath, table); err != nil {
		p.logger.Error("Failed to write embedding table", "path", p.config.Assets.TablePath, "error", err)
		return nil, err
	}

	p.logger.Info("Embedding table written",
		"path", p.config.Assets.TablePath,
		"commands", stats.Records,
		"zero_matches", stats.ZeroMatches)

	if p.config.Store.SQLitePath != "" {
		if err := p.indexEmbeddings(commands, table); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// indexEmbeddings mirrors the generated table into the SQLite index.
func (p *Pipeline) indexEmbeddings(commands []catalog.Command, table *embed.Table) error {
	store := embedstore.NewSQLiteStore()
	if err := store.Initialize(p.config.Store.SQLitePath); err != nil {
		return logger.DatabaseError(err, "failed to initialize embedding index")
	}
	defer store.Close()

	now := time.Now()
	for i, cmd := range commands {
		blob, err := vector.Float32SliceToBytes(table.Embeddings[i])
		if err != nil {
			return logger.InternalError(err, "failed to encode embedding for index")
		}

		id := util.GenerateID(cmd.Command, i)
		if err := store.Put(id, i, cmd.Command, cmd.Description, blob, now); err != nil {
			return logger.DatabaseError(err, "failed to index embedding").
				WithField("position", i)
		}
	}

	p.metrics.SetGauge(telemetry.MetricIndexedRows, float64(len(commands)))
	p.logger.Info("Embedding index written",
		"path", p.config.Store.SQLitePath, "rows", len(commands))
	return nil
}

// Metrics returns the collector for this pipeline's runs.
func (p *Pipeline) Metrics() *telemetry.MetricsCollector {
	return p.metrics
}

// GetConfig returns the pipeline configuration.
func (p *Pipeline) GetConfig() *Config {
	return p.config
}
