// Package embed turns catalog commands into fixed-width embeddings by
// averaging pretrained word vectors, and serializes the resulting
// table for the downstream matcher.
package embed

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/localrivet/cmdembed/internal/catalog"
	"github.com/localrivet/cmdembed/internal/vector"
)

// Stats reports the outcome of one generation run. ZeroMatches counts
// commands whose token stream matched no vocabulary word; those rows
// carry the zero-vector sentinel and signal low confidence downstream.
type Stats struct {
	Records     int
	ZeroMatches int
}

// Generator computes command embeddings against a read-only vector
// store. Workers above 1 compute records concurrently; each record
// writes only its own positional slot, so output is identical to the
// sequential path.
type Generator struct {
	store   *vector.Store
	workers int
}

// NewGenerator creates a Generator over the given store.
func NewGenerator(store *vector.Store, workers int) *Generator {
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		store:   store,
		workers: workers,
	}
}

// Embed computes the embedding for a single command: the component-wise
// mean of the store vectors matched by the command's token stream, or
// the zero vector when nothing matches. The returned flag reports
// whether any token matched.
func (g *Generator) Embed(cmd catalog.Command) ([]float32, bool) {
	// Token order is fixed: command, then description, then each
	// keyword in list order. Summation follows this order so results
	// are bit-reproducible.
	tokens := vector.Tokenize(cmd.Command)
	tokens = append(tokens, vector.Tokenize(cmd.Description)...)
	for _, kw := range cmd.Keywords {
		tokens = append(tokens, vector.Tokenize(kw)...)
	}

	sum := make([]float32, vector.Dimension)
	matched := 0

	for _, token := range tokens {
		vec, ok := g.store.Lookup(token)
		if !ok {
			continue
		}
		for i, v := range vec {
			sum[i] += v
		}
		matched++
	}

	if matched == 0 {
		return sum, false
	}

	for i := range sum {
		sum[i] /= float32(matched)
	}
	return sum, true
}

// Generate computes one embedding per command, positionally aligned
// with the input list: row i of the table always describes command i.
func (g *Generator) Generate(ctx context.Context, commands []catalog.Command) (*Table, *Stats, error) {
	table := &Table{
		Dim:        vector.Dimension,
		Embeddings: make([][]float32, len(commands)),
	}
	matched := make([]bool, len(commands))

	if g.workers <= 1 {
		for i, cmd := range commands {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			table.Embeddings[i], matched[i] = g.Embed(cmd)
		}
	} else {
		grp, gctx := errgroup.WithContext(ctx)
		grp.SetLimit(g.workers)
		for i := range commands {
			grp.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				table.Embeddings[i], matched[i] = g.Embed(commands[i])
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return nil, nil, err
		}
	}

	stats := &Stats{Records: len(commands)}
	for _, ok := range matched {
		if !ok {
			stats.ZeroMatches++
		}
	}

	return table, stats, nil
}
