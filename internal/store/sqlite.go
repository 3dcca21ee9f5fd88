package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"wordrush/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS rounds (
	code       TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	doc        BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS rounds_created_at ON rounds (created_at);
`

// SQLite keeps each round as a JSON document in a single table
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path
func NewSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serializes writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, code string) (*domain.Round, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM rounds WHERE code = ?`, code,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get round %s: %w", code, err)
	}

	var r domain.Round
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, fmt.Errorf("decode round %s: %w", code, err)
	}
	if r.Players == nil {
		r.Players = make(map[string]*domain.Player)
	}
	return &r, nil
}

func (s *SQLite) Put(ctx context.Context, round *domain.Round) error {
	doc, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("encode round %s: %w", round.Code, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rounds (code, created_at, doc) VALUES (?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET doc = excluded.doc`,
		round.Code, round.CreatedAt.UnixNano(), doc,
	)
	if err != nil {
		return fmt.Errorf("put round %s: %w", round.Code, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, code string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rounds WHERE code = ?`, code); err != nil {
		return fmt.Errorf("delete round %s: %w", code, err)
	}
	return nil
}

func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rounds: %w", err)
	}
	return n, nil
}

func (s *SQLite) CreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code FROM rounds WHERE created_at < ?`, cutoff.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("list old rounds: %w", err)
	}
	defer rows.Close()

	codes := make([]string, 0)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list old rounds: %w", err)
	}
	return codes, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
