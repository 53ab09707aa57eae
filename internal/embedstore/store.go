// Package embedstore provides an optional SQLite index of generated
// command embeddings, written alongside the binary table so individual
// rows can be inspected without re-parsing the assets.
package embedstore

import (
	"time"
)

// Store defines the interface for the embedding index.
type Store interface {
	// Initialize initializes the store with configuration options.
	Initialize(dbPath string) error

	// Close closes the store and releases any resources.
	Close() error

	// Put records one command embedding at its catalog position.
	Put(id string, position int, command, description string, embedding []byte, timestamp time.Time) error

	// Get returns the entry stored at the given catalog position.
	Get(position int) (*Entry, error)

	// Count returns the number of indexed embeddings.
	Count() (int, error)
}

// Entry is one indexed command embedding.
type Entry struct {
	ID          string
	Position    int
	Command     string
	Description string
	Embedding   []float32
	CreatedAt   time.Time
}
