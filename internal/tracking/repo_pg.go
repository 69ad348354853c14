package tracking

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert stores the event.
func (r *PGRepo) Insert(ctx context.Context, event Event) error {
	const query = `
INSERT INTO tracking_events (id, session_id, event_type, payload, path, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	var payload any
	if len(event.Payload) > 0 {
		payload = []byte(event.Payload)
	}
	var path any
	if event.Path != "" {
		path = event.Path
	}
	_, err := r.DB.ExecContext(ctx, query,
		event.ID,
		event.SessionID,
		string(event.Type),
		payload,
		path,
		event.CreatedAt,
	)
	return err
}

// CountByType counts events created at or after since.
func (r *PGRepo) CountByType(ctx context.Context, since time.Time) (map[EventType]int, error) {
	const query = `
SELECT event_type, COUNT(*)
FROM tracking_events
WHERE created_at >= $1
GROUP BY event_type`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[EventType]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, err
		}
		out[EventType(eventType)] = count
	}
	return out, rows.Err()
}
