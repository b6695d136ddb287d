package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateFailures, downCreateFailures)
}

func upCreateFailures(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE failures (
			id         BIGSERIAL PRIMARY KEY,
			video_id   TEXT NOT NULL,
			lang       TEXT NOT NULL,
			type       TEXT NOT NULL,
			reason     TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("creating failures table: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "CREATE INDEX failures_video_id_idx ON failures (video_id)"); err != nil {
		return fmt.Errorf("creating failures video index: %w", err)
	}

	return nil
}

func downCreateFailures(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE failures"); err != nil {
		return fmt.Errorf("dropping failures table: %w", err)
	}

	return nil
}
