package store

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/xbraken/holiday-planner/internal/db"
)

// FileSlot persists the document as one JSON file on disk.
type FileSlot struct {
	Path string
}

func (f FileSlot) Get(_ context.Context) (string, bool, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(raw), true, nil
}

func (f FileSlot) Set(_ context.Context, raw string) error {
	return os.WriteFile(f.Path, []byte(raw), 0o644)
}

// PostgresSlot persists the document in a single row of the planner_state
// table, keyed by the document path.
type PostgresSlot struct {
	DB  db.Querier
	Key string
}

func (p PostgresSlot) Get(ctx context.Context) (string, bool, error) {
	var raw string
	err := p.DB.QueryRow(ctx, `SELECT doc FROM planner_state WHERE key=$1`, p.Key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (p PostgresSlot) Set(ctx context.Context, raw string) error {
	_, err := p.DB.Exec(ctx, `
		INSERT INTO planner_state (key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc=EXCLUDED.doc, updated_at=now()
	`, p.Key, raw)
	return err
}
