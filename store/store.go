package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations.sql
var migrationSQL string

// Dialect selects placeholder syntax for SQLStore queries.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

var placeholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites $N placeholders for drivers that only take ?.
func (d Dialect) rebind(query string) string {
	if d == SQLite {
		return placeholder.ReplaceAllString(query, "?")
	}
	return query
}

const (
	loadQuery   = `SELECT value FROM documents WHERE doc_key = $1`
	upsertQuery = `INSERT INTO documents (doc_key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (doc_key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	deleteQuery = `DELETE FROM documents WHERE doc_key = $1`
)

// SQLStore is a Store backed by a single documents table.
type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect

	now func() time.Time
}

// OpenPostgres connects to dsn and ensures the documents table exists.
func OpenPostgres(dsn string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("database url is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	return newSQLStore(db, Postgres)
}

// OpenSQLite opens the sqlite file at path and ensures the documents table exists.
func OpenSQLite(path string) (*SQLStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return newSQLStore(db, SQLite)
}

func newSQLStore(db *sql.DB, d Dialect) (*SQLStore, error) {
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	s := &SQLStore{DB: db, Dialect: d}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the documents table if it is missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, migrationSQL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func (s *SQLStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, s.Dialect.rebind(loadQuery), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return json.RawMessage(value), true, nil
}

func (s *SQLStore) Save(ctx context.Context, key string, value json.RawMessage) error {
	if _, err := s.DB.ExecContext(ctx, s.Dialect.rebind(upsertQuery), key, string(value), s.stamp()); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, s.Dialect.rebind(deleteQuery), key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Apply writes the batch in one transaction; any failure rolls back all of it.
func (s *SQLStore) Apply(ctx context.Context, b Batch) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stamp := s.stamp()
	for _, key := range sortedKeys(b.Puts) {
		if _, err := tx.ExecContext(ctx, s.Dialect.rebind(upsertQuery), key, string(b.Puts[key]), stamp); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	for _, key := range b.Removes {
		if _, err := tx.ExecContext(ctx, s.Dialect.rebind(deleteQuery), key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	committed = true
	return nil
}

func (s *SQLStore) stamp() int64 {
	if s.now != nil {
		return s.now().UnixMilli()
	}
	return time.Now().UnixMilli()
}
