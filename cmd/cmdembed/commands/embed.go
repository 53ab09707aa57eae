package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/localrivet/cmdembed"
	"github.com/localrivet/cmdembed/internal/logger"
)

var (
	embedVectors string
	embedCatalog string
	embedOut     string
	embedIndex   string
	embedWorkers int
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Generate the command embedding table from a catalog",
	Long: `Embed loads the binary vector store and the YAML command catalog,
computes one embedding per command by averaging the word vectors of its
command text, description and keywords, and writes the binary table.

Row i of the table always describes catalog entry i. Commands whose
words match nothing in the vocabulary get the all-zero vector and are
reported as a zero-match count.

Examples:
  cmdembed embed
  cmdembed embed --catalog assets/commands.yml --out assets/cmd_embeddings.bin
  cmdembed embed --workers 8 --index assets/embeddings.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if embedVectors != "" {
			cfg.Assets.VectorsPath = embedVectors
		}
		if embedCatalog != "" {
			cfg.Assets.CatalogPath = embedCatalog
		}
		if embedOut != "" {
			cfg.Assets.TablePath = embedOut
		}
		if embedIndex != "" {
			cfg.Store.SQLitePath = embedIndex
		}
		if embedWorkers > 0 {
			cfg.Embedder.Workers = embedWorkers
		}

		pipeline, err := cmdembed.NewPipeline(cmdembed.PipelineOptions{
			Config: cfg,
			Logger: newSlogLogger(cfg),
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runLog.Info("starting embedding generation",
			"catalog", cfg.Assets.CatalogPath, "workers", cfg.Embedder.Workers)

		stats, err := pipeline.BuildEmbeddingTable(ctx)
		if err != nil {
			logger.LogError(err)
			return err
		}

		runLog.Info("embedding generation finished",
			"commands", stats.Records, "zero_matches", stats.ZeroMatches)

		fmt.Printf("Embedding table written to %s\n", cfg.Assets.TablePath)
		fmt.Printf("  commands:     %d\n", stats.Records)
		fmt.Printf("  zero matches: %d\n", stats.ZeroMatches)
		return nil
	},
}

func init() {
	embedCmd.Flags().StringVar(&embedVectors, "vectors", "", "vector store path (overrides config)")
	embedCmd.Flags().StringVar(&embedCatalog, "catalog", "", "command catalog path (overrides config)")
	embedCmd.Flags().StringVar(&embedOut, "out", "", "output table path (overrides config)")
	embedCmd.Flags().StringVar(&embedIndex, "index", "", "optional SQLite index path (overrides config)")
	embedCmd.Flags().IntVar(&embedWorkers, "workers", 0, "concurrent embedding workers (overrides config)")
	rootCmd.AddCommand(embedCmd)
}
