package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/florianilch/merge-accounting/codec"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	model       TEXT NOT NULL,
	id          TEXT NOT NULL,
	remote_id   TEXT,
	modified_at TEXT,
	deleted     INTEGER NOT NULL DEFAULT 0,
	data        TEXT NOT NULL,
	exported_at TEXT NOT NULL,
	PRIMARY KEY (model, id)
);
CREATE INDEX IF NOT EXISTS idx_records_modified_at ON records(model, modified_at);
`

const sqliteUpsert = `
INSERT INTO records (model, id, remote_id, modified_at, deleted, data, exported_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (model, id) DO UPDATE SET
	remote_id = excluded.remote_id,
	modified_at = excluded.modified_at,
	deleted = excluded.deleted,
	data = excluded.data,
	exported_at = excluded.exported_at
`

// SQLiteSink stores records in a SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens or creates the database at path and its schema.
func NewSQLiteSink(ctx context.Context, path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory:
	// databases alive across statements.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// DB exposes the underlying database for queries.
func (s *SQLiteSink) DB() *sql.DB {
	return s.db
}

func (s *SQLiteSink) Write(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, sqliteUpsert)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := codec.FormatTime(time.Now().UTC())
	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.Model, r.ID, nullString(r.RemoteID), formatTime(r.ModifiedAt), r.Deleted, string(r.Data), now)
		if err != nil {
			return fmt.Errorf("storing %s %s: %w", r.Model, r.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
