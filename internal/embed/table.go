package embed

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/localrivet/cmdembed/internal/logger"
)

// Table is an ordered sequence of command embeddings. Row i corresponds
// to command i of the catalog the table was generated from; nothing in
// the file format records that pairing, so consumers must load the
// table against the same catalog revision.
type Table struct {
	Dim        int
	Embeddings [][]float32
}

// Binary layout (all integers little-endian):
//
//	[command_count: uint32][dimension: uint32]
//	per command: [embedding: dimension * float32]

// WriteTable serializes the table to w.
func WriteTable(w io.Writer, t *Table) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(t.Embeddings))); err != nil {
		return fmt.Errorf("failed to write command count: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(t.Dim)); err != nil {
		return fmt.Errorf("failed to write dimension: %w", err)
	}

	for i, emb := range t.Embeddings {
		if len(emb) != t.Dim {
			return logger.ValidationError(
				fmt.Errorf("embedding %d has %d components, expected %d", i, len(emb), t.Dim),
				"embedding dimension mismatch")
		}
		if err := binary.Write(w, binary.LittleEndian, emb); err != nil {
			return fmt.Errorf("failed to write embedding %d: %w", i, err)
		}
	}

	return nil
}

// ReadTable deserializes a table from r. A truncated stream surfaces a
// format error carrying the byte offset where it was detected.
func ReadTable(r io.Reader) (*Table, error) {
	cr := &countingReader{r: r}

	var count, dim uint32
	if err := binary.Read(cr, binary.LittleEndian, &count); err != nil {
		return nil, logger.FormatError(err, "failed to read command count").
			WithField("offset", cr.n)
	}
	if err := binary.Read(cr, binary.LittleEndian, &dim); err != nil {
		return nil, logger.FormatError(truncated(err), "failed to read dimension").
			WithField("offset", cr.n)
	}
	if dim == 0 {
		return nil, logger.FormatError(
			errors.New("declared dimension is zero"), "invalid table header").
			WithField("offset", cr.n)
	}

	// Row storage grows as rows are read, so a hostile count in the
	// header cannot demand a huge allocation before the stream runs out.
	capHint := count
	if capHint > 1024 {
		capHint = 1024
	}
	table := &Table{
		Dim:        int(dim),
		Embeddings: make([][]float32, 0, int(capHint)),
	}
	for i := uint32(0); i < count; i++ {
		emb := make([]float32, dim)
		if err := binary.Read(cr, binary.LittleEndian, emb); err != nil {
			return nil, logger.FormatError(truncated(err),
				fmt.Sprintf("failed to read embedding at row %d", i)).
				WithField("offset", cr.n)
		}
		table.Embeddings = append(table.Embeddings, emb)
	}

	return table, nil
}

// WriteTableFile serializes the table to the given path.
func WriteTableFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create embedding table file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := WriteTable(bw, t); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush embedding table file: %w", err)
	}

	return f.Close()
}

// ReadTableFile deserializes a table from the given path. A missing
// file is reported as an input error.
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, logger.InputError(err, "embedding table file not found").
				WithField("path", path)
		}
		return nil, fmt.Errorf("failed to open embedding table file: %w", err)
	}
	defer f.Close()

	return ReadTable(bufio.NewReader(f))
}

// countingReader tracks consumed bytes for codec error reporting.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// truncated normalizes EOF conditions to unexpected-end errors.
func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
