package store

import (
	"context"
	"log"
	"time"
)

type CreateFailureParams struct {
	VideoID string
	Lang    string
	Type    FailureType
	Reason  string
}

const createFailure = `INSERT INTO failures (video_id, lang, type, reason) VALUES ($1, $2, $3, $4)`

func (q *Queries) CreateFailure(ctx context.Context, arg CreateFailureParams) error {
	_, err := q.db.ExecContext(ctx, createFailure, arg.VideoID, arg.Lang, arg.Type, arg.Reason)
	return err
}

const recentFailures = `SELECT id, video_id, lang, type, reason, created_at FROM failures
ORDER BY created_at DESC, id DESC
LIMIT $1`

// RecentFailures returns the newest failures first.
func (q *Queries) RecentFailures(ctx context.Context, limit int32) ([]Failure, error) {
	start := time.Now()
	defer func() {
		log.Printf("[INFO]: failures query took %s", time.Since(start))
	}()

	rows, err := q.db.QueryContext(ctx, recentFailures, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Failure
	for rows.Next() {
		var i Failure
		if err := rows.Scan(
			&i.ID,
			&i.VideoID,
			&i.Lang,
			&i.Type,
			&i.Reason,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
