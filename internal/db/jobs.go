package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/talos/hvac-ats/internal/types"
)

const jobColumns = `id, title, location, position_type, required_years_experience,
	vehicle_required, pay_range_min, pay_range_max, status, created_at, updated_at`

// CreateJob inserts a job and returns it with generated fields populated.
func (db *DB) CreateJob(ctx context.Context, job *types.Job) (*types.Job, error) {
	var created types.Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, location, position_type, required_years_experience,
		                   vehicle_required, pay_range_min, pay_range_max, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE(NULLIF($8, ''), 'active'))
		 RETURNING `+jobColumns,
		job.Title, job.Location, job.PositionType, job.RequiredYearsExp,
		job.VehicleRequired, job.PayRangeMin, job.PayRangeMax, string(job.Status),
	).Scan(scanJobFields(&created)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &created, nil
}

// GetJob retrieves a job by ID. Returns (nil, nil) when it does not exist.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var job types.Job
	err := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id,
	).Scan(scanJobFields(&job)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListActiveJobs returns every job open for matching, ordered by title for a
// stable default listing.
func (db *DB) ListActiveJobs(ctx context.Context) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = 'active' ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		var job types.Job
		if err := rows.Scan(scanJobFields(&job)...); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

func scanJobFields(job *types.Job) []any {
	return []any{
		&job.ID, &job.Title, &job.Location, &job.PositionType, &job.RequiredYearsExp,
		&job.VehicleRequired, &job.PayRangeMin, &job.PayRangeMax, &job.Status,
		&job.CreatedAt, &job.UpdatedAt,
	}
}
