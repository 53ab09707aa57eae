package embedstore

import (
	"fmt"
	"time"

	"crawshaw.io/sqlite"

	"github.com/localrivet/cmdembed/internal/vector"
)

// SQLiteStore is an implementation of Store that uses SQLite.
type SQLiteStore struct {
	conn   *sqlite.Conn
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Initialize initializes the store with the given database path.
func (s *SQLiteStore) Initialize(dbPath string) error {
	s.dbPath = dbPath

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s.conn = conn

	if err := s.createTable(); err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// createTable creates the command_embeddings table if it doesn't exist.
func (s *SQLiteStore) createTable() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS command_embeddings (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL UNIQUE,
		command TEXT NOT NULL,
		description TEXT NOT NULL,
		embedding BLOB NOT NULL,
		created_at INTEGER NOT NULL
	);`

	stmt, err := s.conn.Prepare(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare create table statement: %w", err)
	}
	defer stmt.Reset()

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to execute create table statement: %w", err)
	}

	return nil
}

// Close closes the store and releases any resources.
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Put records one command embedding at its catalog position. Writing
// the same position again replaces the previous row, so re-running a
// generation over the same index stays consistent.
func (s *SQLiteStore) Put(id string, position int, command, description string, embedding []byte, timestamp time.Time) error {
	insertSQL := `
	INSERT OR REPLACE INTO command_embeddings (id, position, command, description, embedding, created_at)
	VALUES (?, ?, ?, ?, ?, ?);`

	stmt, err := s.conn.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	// Bind parameters - indices in sqlite are 1-based
	stmt.BindText(1, id)
	stmt.BindInt64(2, int64(position))
	stmt.BindText(3, command)
	stmt.BindText(4, description)
	stmt.BindBytes(5, embedding)
	stmt.BindInt64(6, timestamp.Unix())

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to insert embedding row: %w", err)
	}

	return nil
}

// Get returns the entry stored at the given catalog position.
func (s *SQLiteStore) Get(position int) (*Entry, error) {
	selectSQL := `
	SELECT id, command, description, embedding, created_at
	FROM command_embeddings WHERE position = ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, int64(position))

	hasRow, err := stmt.Step()
	if err != nil {
		return nil, fmt.Errorf("failed to execute select statement: %w", err)
	}
	if !hasRow {
		return nil, fmt.Errorf("no embedding stored at position %d", position)
	}

	// For binary data, create a buffer and use ColumnBytes to fill it
	embeddingBytes := make([]byte, stmt.ColumnLen(3))
	stmt.ColumnBytes(3, embeddingBytes)

	embedding, err := vector.BytesToFloat32Slice(embeddingBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedding at position %d: %w", position, err)
	}

	return &Entry{
		ID:          stmt.ColumnText(0),
		Position:    position,
		Command:     stmt.ColumnText(1),
		Description: stmt.ColumnText(2),
		Embedding:   embedding,
		CreatedAt:   time.Unix(stmt.ColumnInt64(4), 0),
	}, nil
}

// Count returns the number of indexed embeddings.
func (s *SQLiteStore) Count() (int, error) {
	stmt, err := s.conn.Prepare(`SELECT COUNT(*) FROM command_embeddings;`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare count statement: %w", err)
	}
	defer stmt.Reset()

	hasRow, err := stmt.Step()
	if err != nil {
		return 0, fmt.Errorf("failed to execute count statement: %w", err)
	}
	if !hasRow {
		return 0, nil
	}

	return int(stmt.ColumnInt64(0)), nil
}
