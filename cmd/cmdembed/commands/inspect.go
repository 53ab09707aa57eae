package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localrivet/cmdembed/internal/embed"
	"github.com/localrivet/cmdembed/internal/vector"
)

var inspectSamples int

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print header and sample entries of a binary asset",
}

var inspectStoreCmd = &cobra.Command{
	Use:   "store [path]",
	Short: "Inspect a binary vector store",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := cfg.Assets.VectorsPath
		if len(args) == 1 {
			path = args[0]
		}

		store, err := vector.ReadStoreFile(path)
		if err != nil {
			return err
		}

		fmt.Printf("Vector store: %s\n", path)
		fmt.Printf("  vocab size: %d\n", store.Len())
		fmt.Printf("  dimension:  %d\n", vector.Dimension)

		words := store.Words()
		for i := 0; i < len(words) && i < inspectSamples; i++ {
			vec, _ := store.Lookup(words[i])
			fmt.Printf("  %q: [%.4f %.4f %.4f ...]\n", words[i], vec[0], vec[1], vec[2])
		}
		return nil
	},
}

var inspectTableCmd = &cobra.Command{
	Use:   "table [path]",
	Short: "Inspect a binary embedding table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := cfg.Assets.TablePath
		if len(args) == 1 {
			path = args[0]
		}

		table, err := embed.ReadTableFile(path)
		if err != nil {
			return err
		}

		// A zero norm marks the zero-match sentinel: a command whose
		// words matched nothing in the vocabulary.
		zeroRows := 0
		for _, emb := range table.Embeddings {
			if vector.Norm(emb) == 0 {
				zeroRows++
			}
		}

		fmt.Printf("Embedding table: %s\n", path)
		fmt.Printf("  commands:  %d\n", len(table.Embeddings))
		fmt.Printf("  dimension: %d\n", table.Dim)
		fmt.Printf("  zero rows: %d\n", zeroRows)

		for i := 0; i < len(table.Embeddings) && i < inspectSamples; i++ {
			emb := table.Embeddings[i]
			if table.Dim >= 3 {
				fmt.Printf("  row %d: norm=%.4f values=[%.4f %.4f %.4f ...]\n",
					i, vector.Norm(emb), emb[0], emb[1], emb[2])
			} else {
				fmt.Printf("  row %d: norm=%.4f\n", i, vector.Norm(emb))
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.PersistentFlags().IntVar(&inspectSamples, "samples", 5, "number of entries to print")
	inspectCmd.AddCommand(inspectStoreCmd, inspectTableCmd)
	rootCmd.AddCommand(inspectCmd)
}
