package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/talos/hvac-ats/internal/types"
)

// AppendStatusEvent writes one audit-trail row for a status transition.
func (db *DB) AppendStatusEvent(ctx context.Context, event *types.StatusEvent) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pipeline_status_events (entry_id, from_status, to_status, actor, note)
		 VALUES ($1, $2, $3, $4, $5)`,
		event.EntryID, string(event.FromStatus), string(event.ToStatus),
		event.Actor, event.Note)
	if err != nil {
		return fmt.Errorf("failed to append status event: %w", err)
	}
	return nil
}

// ListStatusEvents returns an entry's transition history, oldest first.
func (db *DB) ListStatusEvents(ctx context.Context, entryID uuid.UUID) ([]types.StatusEvent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, entry_id, from_status, to_status, actor, note, created_at
		 FROM pipeline_status_events
		 WHERE entry_id = $1 ORDER BY created_at, id`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status events: %w", err)
	}
	defer rows.Close()

	var events []types.StatusEvent
	for rows.Next() {
		var ev types.StatusEvent
		if err := rows.Scan(&ev.ID, &ev.EntryID, &ev.FromStatus, &ev.ToStatus,
			&ev.Actor, &ev.Note, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status events: %w", err)
	}
	return events, nil
}
