package storage

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps documents as rows of a single sqlite table. Every save
// gets a fresh revision id.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize document store: %w", err)
	}
	return s, nil
}

// init creates the database schema
func (s *SQLiteStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		revision TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Exists(key string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM documents WHERE key = ?`, key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query document %s: %w", key, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Open(key string) (io.ReadCloser, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// Create returns a writer that buffers the document and stores it when
// closed.
func (s *SQLiteStore) Create(key string) (io.WriteCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("empty document key")
	}
	return &sqliteWriter{store: s, key: key}, nil
}

// Revision returns the revision id of the last save of key.
func (s *SQLiteStore) Revision(key string) (string, error) {
	var revision string
	err := s.db.QueryRow(`SELECT revision FROM documents WHERE key = ?`, key).Scan(&revision)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", err
	}
	return revision, nil
}

// List returns all stored keys in order.
func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM documents ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) put(key string, body []byte) error {
	query := `
	INSERT OR REPLACE INTO documents (key, body, revision, updated_at)
	VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.Exec(query, key, body, uuid.NewString(), time.Now()); err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	return nil
}

type sqliteWriter struct {
	store  *SQLiteStore
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *sqliteWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("write to closed document %s", w.key)
	}
	return w.buf.Write(p)
}

func (w *sqliteWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.store.put(w.key, w.buf.Bytes())
}
