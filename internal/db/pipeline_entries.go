package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/talos/hvac-ats/internal/types"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

const entryColumns = `id, candidate_id, job_id, pipeline_status, tier_score, tier,
	star_rating, give_them_a_chance, vehicle_status, contacted_via, contacted_at,
	internal_notes, created_at, updated_at`

// CreatePipelineEntry inserts a new pipeline entry. The (candidate_id,
// job_id) uniqueness is enforced by the store's constraint so concurrent
// creations resolve atomically; a violation surfaces as
// *types.DuplicateEntryError.
func (db *DB) CreatePipelineEntry(ctx context.Context, entry *types.PipelineEntry) (*types.PipelineEntry, error) {
	var created types.PipelineEntry
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidate_pipeline (candidate_id, job_id, pipeline_status, tier_score,
		                                 tier, star_rating, give_them_a_chance, vehicle_status,
		                                 internal_notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+entryColumns,
		entry.CandidateID, entry.JobID, string(entry.Status), entry.TierScore,
		string(entry.Tier), entry.StarRating, entry.GiveThemAChance,
		string(entry.VehicleStatus), entry.InternalNotes,
	).Scan(scanEntryFields(&created)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, &types.DuplicateEntryError{
				CandidateID: entry.CandidateID,
				JobID:       entry.JobID,
			}
		}
		return nil, fmt.Errorf("failed to create pipeline entry: %w", err)
	}
	return &created, nil
}

// GetPipelineEntry retrieves an entry by ID. Returns (nil, nil) when missing.
func (db *DB) GetPipelineEntry(ctx context.Context, id uuid.UUID) (*types.PipelineEntry, error) {
	var entry types.PipelineEntry
	err := db.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM candidate_pipeline WHERE id = $1`, id,
	).Scan(scanEntryFields(&entry)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pipeline entry: %w", err)
	}
	return &entry, nil
}

// ListEntriesByJob returns a job's pipeline ordered by tier score descending.
func (db *DB) ListEntriesByJob(ctx context.Context, jobID uuid.UUID) ([]types.PipelineEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM candidate_pipeline
		 WHERE job_id = $1 ORDER BY tier_score DESC, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pipeline entries: %w", err)
	}
	defer rows.Close()

	var entries []types.PipelineEntry
	for rows.Next() {
		var entry types.PipelineEntry
		if err := rows.Scan(scanEntryFields(&entry)...); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pipeline entries: %w", err)
	}
	return entries, nil
}

// UpdateEntryStatus sets the pipeline status. Returns (nil, nil) when the
// entry does not exist.
func (db *DB) UpdateEntryStatus(ctx context.Context, id uuid.UUID, status types.PipelineStatus) (*types.PipelineEntry, error) {
	var entry types.PipelineEntry
	err := db.pool.QueryRow(ctx,
		`UPDATE candidate_pipeline
		 SET pipeline_status = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING `+entryColumns,
		string(status), id,
	).Scan(scanEntryFields(&entry)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update pipeline status: %w", err)
	}
	return &entry, nil
}

// UpdateEntryScore writes the derived classification triple in one statement
// so tier and star rating can never drift from the score that produced them.
func (db *DB) UpdateEntryScore(ctx context.Context, id uuid.UUID, tierScore int, tier types.Tier, starRating float64) (*types.PipelineEntry, error) {
	var entry types.PipelineEntry
	err := db.pool.QueryRow(ctx,
		`UPDATE candidate_pipeline
		 SET tier_score = $1, tier = $2, star_rating = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING `+entryColumns,
		tierScore, string(tier), starRating, id,
	).Scan(scanEntryFields(&entry)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update pipeline score: %w", err)
	}
	return &entry, nil
}

// SetEntryContact records or clears the contact sub-state. A non-nil via sets
// contacted_via and contacted_at together; nil clears both. The pairing is
// also guarded by a CHECK constraint.
func (db *DB) SetEntryContact(ctx context.Context, id uuid.UUID, via *types.ContactMethod) (*types.PipelineEntry, error) {
	var entry types.PipelineEntry
	var err error
	if via != nil {
		err = db.pool.QueryRow(ctx,
			`UPDATE candidate_pipeline
			 SET contacted_via = $1, contacted_at = NOW(), updated_at = NOW()
			 WHERE id = $2
			 RETURNING `+entryColumns,
			string(*via), id,
		).Scan(scanEntryFields(&entry)...)
	} else {
		err = db.pool.QueryRow(ctx,
			`UPDATE candidate_pipeline
			 SET contacted_via = NULL, contacted_at = NULL, updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+entryColumns,
			id,
		).Scan(scanEntryFields(&entry)...)
	}
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set contact state: %w", err)
	}
	return &entry, nil
}

func scanEntryFields(entry *types.PipelineEntry) []any {
	return []any{
		&entry.ID, &entry.CandidateID, &entry.JobID, &entry.Status, &entry.TierScore,
		&entry.Tier, &entry.StarRating, &entry.GiveThemAChance, &entry.VehicleStatus,
		&entry.ContactedVia, &entry.ContactedAt, &entry.InternalNotes,
		&entry.CreatedAt, &entry.UpdatedAt,
	}
}
