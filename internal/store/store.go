// Package store is the failure log: videos we could not get captions for.
// It is write only from the request path, nothing is ever answered from it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/laytan/ytsubtitles/internal/store/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Failure struct {
	ID        int64
	VideoID   string
	Lang      string
	Type      FailureType
	Reason    string
	CreatedAt time.Time
}

// Open connects to Postgres and brings the schema up to date.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies the registered Go migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}

	return nil
}
