package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS merge_records (
	model       TEXT        NOT NULL,
	id          TEXT        NOT NULL,
	remote_id   TEXT,
	modified_at TIMESTAMPTZ,
	deleted     BOOLEAN     NOT NULL DEFAULT FALSE,
	data        JSONB       NOT NULL,
	exported_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (model, id)
)`

const postgresUpsert = `
INSERT INTO merge_records (model, id, remote_id, modified_at, deleted, data, exported_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (model, id) DO UPDATE SET
	remote_id = EXCLUDED.remote_id,
	modified_at = EXCLUDED.modified_at,
	deleted = EXCLUDED.deleted,
	data = EXCLUDED.data,
	exported_at = EXCLUDED.exported_at`

// PostgresSink stores records in a PostgreSQL table, data as JSONB.
type PostgresSink struct {
	Pool *pgxpool.Pool
}

// NewPostgresSink connects to dsn and creates the table if needed.
func NewPostgresSink(ctx context.Context, dsn string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating postgres schema: %w", err)
	}
	return &PostgresSink{Pool: pool}, nil
}

func (s *PostgresSink) Write(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, r := range records {
		var remoteID *string
		if r.RemoteID != "" {
			remoteID = &r.RemoteID
		}
		batch.Queue(postgresUpsert, r.Model, r.ID, remoteID, r.ModifiedAt, r.Deleted, string(r.Data), now)
	}

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("storing batch: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresSink) Close() error {
	s.Pool.Close()
	return nil
}
