package vector

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/localrivet/cmdembed/internal/logger"
)

// DefaultMaxWords is the default vocabulary cap for corpus reduction.
const DefaultMaxWords = 100000

// ReduceStats reports what the reducer consumed from the corpus.
type ReduceStats struct {
	LinesRead int
	Accepted  int
	Skipped   int
}

// ReduceCorpus reads a frequency-ordered text corpus of
// "word <Dimension floats>" lines and keeps the first maxWords valid
// entries. Malformed lines (wrong component count, non-numeric values,
// or a word too long for the store format) are skipped and do not count
// toward the cap. A word that recurs keeps its original position and
// takes the later vector.
//
// The corpus is assumed to be sorted by descending frequency; the
// reducer does not verify that ordering.
func ReduceCorpus(r io.Reader, maxWords int) (*Store, *ReduceStats, error) {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	log := logger.GetLogger("reducer")
	store := NewStore()
	stats := &ReduceStats{}

	scanner := bufio.NewScanner(r)
	// Corpus lines are a word plus 100 floats; the default token limit
	// is enough, but give the scanner room for long words.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for stats.Accepted < maxWords && scanner.Scan() {
		stats.LinesRead++

		word, vec, ok := parseCorpusLine(scanner.Text())
		if !ok {
			stats.Skipped++
			continue
		}

		stats.Accepted++
		store.Put(word, vec)

		if stats.Accepted%10000 == 0 {
			log.Debug("Reduced %d words so far", stats.Accepted)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, logger.InputError(err, "failed to read corpus").
			WithField("line", stats.LinesRead)
	}

	log.Info("Corpus reduction complete: %d accepted, %d skipped", stats.Accepted, stats.Skipped)
	return store, stats, nil
}

// parseCorpusLine parses one "word <floats>" line. It reports ok=false
// for any line that does not carry exactly Dimension numeric components
// or whose word cannot be stored.
func parseCorpusLine(line string) (string, []float32, bool) {
	fields := strings.Fields(line)
	if len(fields) != Dimension+1 {
		return "", nil, false
	}

	word := fields[0]
	if len(word) > math.MaxUint16 {
		return "", nil, false
	}

	vec := make([]float32, Dimension)
	for i, field := range fields[1:] {
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return "", nil, false
		}
		vec[i] = float32(v)
	}

	return word, vec, true
}
