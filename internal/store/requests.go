package store

import (
	"context"
	"time"
)

// Request is one row of the inbound request queue. A row is unprocessed
// while response is NULL.
type Request struct {
	ID          int
	RequestBody string
	Summary     *string
	Response    *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
}

// Requests is the row-oriented queue of inbound request bodies and their
// outbound (summary, response) pairs. Rows are never deleted or re-ordered.
type Requests struct {
	db *DB
}

func NewRequests(db *DB) *Requests {
	return &Requests{db: db}
}

// Unprocessed returns pending rows, oldest first.
func (r *Requests) Unprocessed(ctx context.Context) ([]Request, error) {
	rows, err := r.db.sql.QueryContext(ctx, `
SELECT id, request_body, summary, response, processed_at, created_at
FROM requests WHERE response IS NULL ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.RequestBody, &req.Summary, &req.Response, &req.ProcessedAt, &req.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// Complete writes the (summary, response) pair and stamps processed_at.
// Guarded on response IS NULL so a row reaches its terminal state at most
// once; re-completing an already-answered row is a no-op. created_at is
// never touched.
func (r *Requests) Complete(ctx context.Context, id int, summary, response string) error {
	_, err := r.db.sql.ExecContext(ctx, `
UPDATE requests SET summary = $2, response = $3, processed_at = now()
WHERE id = $1 AND response IS NULL`, id, summary, response)
	return err
}

// Insert enqueues a request body; used by seeding.
func (r *Requests) Insert(ctx context.Context, body string) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO requests (request_body) VALUES ($1)`, body)
	return err
}
