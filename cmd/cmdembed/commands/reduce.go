package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localrivet/cmdembed"
	"github.com/localrivet/cmdembed/internal/logger"
)

var (
	reduceCorpus   string
	reduceOut      string
	reduceMaxWords int
)

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Reduce a word vector corpus to a binary vector store",
	Long: `Reduce reads a frequency-ordered text corpus of "word <100 floats>"
lines and keeps the first N valid entries (default 100000), writing
them to the compact binary vector store the embed command loads.

Malformed lines are skipped and do not count toward the cap.

Examples:
  cmdembed reduce
  cmdembed reduce --corpus glove.6B.100d.txt --out assets/glove.bin
  cmdembed reduce --max-words 50000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if reduceCorpus != "" {
			cfg.Assets.CorpusPath = reduceCorpus
		}
		if reduceOut != "" {
			cfg.Assets.VectorsPath = reduceOut
		}
		if reduceMaxWords > 0 {
			cfg.Reducer.MaxWords = reduceMaxWords
		}

		pipeline, err := cmdembed.NewPipeline(cmdembed.PipelineOptions{
			Config: cfg,
			Logger: newSlogLogger(cfg),
		})
		if err != nil {
			return err
		}

		runLog.Info("starting corpus reduction",
			"corpus", cfg.Assets.CorpusPath, "max_words", cfg.Reducer.MaxWords)

		stats, err := pipeline.BuildVectorStore()
		if err != nil {
			logger.LogError(err)
			return err
		}

		runLog.Info("corpus reduction finished",
			"accepted", stats.Accepted, "skipped", stats.Skipped)

		fmt.Printf("Vector store written to %s\n", cfg.Assets.VectorsPath)
		fmt.Printf("  accepted: %d words\n", stats.Accepted)
		fmt.Printf("  skipped:  %d malformed lines\n", stats.Skipped)
		return nil
	},
}

func init() {
	reduceCmd.Flags().StringVar(&reduceCorpus, "corpus", "", "word vector corpus path (overrides config)")
	reduceCmd.Flags().StringVar(&reduceOut, "out", "", "output vector store path (overrides config)")
	reduceCmd.Flags().IntVar(&reduceMaxWords, "max-words", 0, "vocabulary cap (overrides config)")
	rootCmd.AddCommand(reduceCmd)
}
