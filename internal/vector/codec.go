package vector

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"github.com/localrivet/cmdembed/internal/logger"
)

// Binary layout of a serialized store (all integers little-endian):
//
//	[vocab_size: uint32]
//	per word: [word_len: uint16][word: UTF-8 bytes][vector: Dimension * float32]
//
// The dimension is the package constant and is not part of the header.

// WriteStore serializes the store to w in insertion order.
func WriteStore(w io.Writer, s *Store) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(s.Len())); err != nil {
		return fmt.Errorf("failed to write vocab size: %w", err)
	}

	for _, word := range s.words {
		if len(word) > math.MaxUint16 {
			return logger.ValidationError(
				fmt.Errorf("word is %d bytes, maximum is %d", len(word), math.MaxUint16),
				"word too long for store format")
		}

		vec := s.index[word]
		if len(vec) != Dimension {
			return logger.ValidationError(
				fmt.Errorf("vector for %q has %d components, expected %d", word, len(vec), Dimension),
				"vector dimension mismatch")
		}

		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("failed to write word length for %q: %w", word, err)
		}
		if _, err := w.Write([]byte(word)); err != nil {
			return fmt.Errorf("failed to write word %q: %w", word, err)
		}
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			return fmt.Errorf("failed to write vector for %q: %w", word, err)
		}
	}

	return nil
}

// ReadStore deserializes a store from r. Truncated streams surface a
// format error and invalid UTF-8 word bytes an encoding error, both
// carrying the byte offset where the problem was detected.
func ReadStore(r io.Reader) (*Store, error) {
	cr := &countingReader{r: r}

	var vocabSize uint32
	if err := binary.Read(cr, binary.LittleEndian, &vocabSize); err != nil {
		return nil, logger.FormatError(err, "failed to read vocab size").
			WithField("offset", cr.n)
	}

	s := NewStore()
	for i := uint32(0); i < vocabSize; i++ {
		var wordLen uint16
		if err := binary.Read(cr, binary.LittleEndian, &wordLen); err != nil {
			return nil, logger.FormatError(truncated(err),
				fmt.Sprintf("failed to read word length at entry %d", i)).
				WithField("offset", cr.n)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(cr, wordBytes); err != nil {
			return nil, logger.FormatError(truncated(err),
				fmt.Sprintf("failed to read word at entry %d", i)).
				WithField("offset", cr.n)
		}
		if !utf8.Valid(wordBytes) {
			return nil, logger.EncodingError(
				fmt.Errorf("word bytes at entry %d are not valid UTF-8", i),
				"invalid word encoding").
				WithField("offset", cr.n)
		}

		vec := make([]float32, Dimension)
		if err := binary.Read(cr, binary.LittleEndian, vec); err != nil {
			return nil, logger.FormatError(truncated(err),
				fmt.Sprintf("failed to read vector at entry %d", i)).
				WithField("offset", cr.n)
		}

		s.Put(string(wordBytes), vec)
	}

	return s, nil
}

// WriteStoreFile serializes the store to the given path.
func WriteStoreFile(path string, s *Store) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create vector store file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := WriteStore(bw, s); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush vector store file: %w", err)
	}

	return f.Close()
}

// ReadStoreFile deserializes a store from the given path. A missing
// file is reported as an input error.
func ReadStoreFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, logger.InputError(err, "vector store file not found").
				WithField("path", path)
		}
		return nil, fmt.Errorf("failed to open vector store file: %w", err)
	}
	defer f.Close()

	return ReadStore(bufio.NewReader(f))
}

// countingReader tracks how many bytes have been consumed so codec
// errors can report the offset where they were detected.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// truncated normalizes EOF conditions so callers see a consistent
// unexpected-end error regardless of where the stream was cut.
func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
