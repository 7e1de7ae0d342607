package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend stores every resource as one row of the documents table.
type SQLiteBackend struct {
	conn *sql.DB
}

func NewSQLiteBackend(dsn string) (*SQLiteBackend, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = conn.Exec(`CREATE TABLE IF NOT EXISTS documents (
		resource TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteBackend{conn: conn}, nil
}

func (s *SQLiteBackend) Name() string {
	return "sqlite"
}

func (s *SQLiteBackend) Load(res Resource) ([]byte, error) {
	if _, ok := emptyDocuments[res]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, res)
	}
	var body string
	err := s.conn.QueryRow(`SELECT body FROM documents WHERE resource = ?`, string(res)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (s *SQLiteBackend) Save(res Resource, data []byte) error {
	if _, ok := emptyDocuments[res]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownResource, res)
	}
	_, err := s.conn.Exec(
		`INSERT INTO documents (resource, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(resource) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(res), string(data), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteBackend) Close() error {
	return s.conn.Close()
}
