package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/talos/hvac-ats/internal/types"
)

// CreateCandidate inserts a candidate record.
func (db *DB) CreateCandidate(ctx context.Context, candidate *types.Candidate) (*types.Candidate, error) {
	var created types.Candidate
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, phone, filename)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, email, phone, filename, uploaded_at`,
		candidate.Name, candidate.Email, candidate.Phone, candidate.Filename,
	).Scan(&created.ID, &created.Name, &created.Email, &created.Phone,
		&created.Filename, &created.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return &created, nil
}

// GetCandidate retrieves a candidate by ID. Returns (nil, nil) when missing.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	var c types.Candidate
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, filename, uploaded_at
		 FROM candidates WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Filename, &c.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

// FindCandidateByEmail looks up the most recent candidate with the given
// normalized email, the identity hint for duplicate-application checks.
// Returns (nil, nil) when no match exists.
func (db *DB) FindCandidateByEmail(ctx context.Context, email string) (*types.Candidate, error) {
	var c types.Candidate
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, filename, uploaded_at
		 FROM candidates WHERE email = $1
		 ORDER BY uploaded_at DESC LIMIT 1`, email,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Filename, &c.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find candidate by email: %w", err)
	}
	return &c, nil
}

// SaveAnalysis upserts the analysis result for a candidate. The analysis step
// may re-run; the latest result wins.
func (db *DB) SaveAnalysis(ctx context.Context, analysis *types.AnalysisResult) error {
	certsJSON, err := json.Marshal(analysis.Certifications)
	if err != nil {
		return fmt.Errorf("failed to marshal certifications: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (candidate_id, raw_score, years_of_experience, certifications,
		                       certifications_score, technical_skills_score, presentation_score,
		                       summary, vehicle_status, give_them_a_chance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (candidate_id) DO UPDATE SET
		     raw_score = EXCLUDED.raw_score,
		     years_of_experience = EXCLUDED.years_of_experience,
		     certifications = EXCLUDED.certifications,
		     certifications_score = EXCLUDED.certifications_score,
		     technical_skills_score = EXCLUDED.technical_skills_score,
		     presentation_score = EXCLUDED.presentation_score,
		     summary = EXCLUDED.summary,
		     vehicle_status = EXCLUDED.vehicle_status,
		     give_them_a_chance = EXCLUDED.give_them_a_chance`,
		analysis.CandidateID, analysis.RawScore, analysis.YearsOfExperience, certsJSON,
		analysis.CertificationsScore, analysis.TechnicalSkillsScore, analysis.PresentationScore,
		analysis.Summary, string(analysis.VehicleStatus), analysis.GiveThemAChance)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves the analysis result for a candidate.
// Returns (nil, nil) when the candidate has not been analyzed.
func (db *DB) GetAnalysis(ctx context.Context, candidateID uuid.UUID) (*types.AnalysisResult, error) {
	var a types.AnalysisResult
	var certsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT candidate_id, raw_score, years_of_experience, certifications,
		        certifications_score, technical_skills_score, presentation_score,
		        summary, vehicle_status, give_them_a_chance
		 FROM analyses WHERE candidate_id = $1`, candidateID,
	).Scan(&a.CandidateID, &a.RawScore, &a.YearsOfExperience, &certsJSON,
		&a.CertificationsScore, &a.TechnicalSkillsScore, &a.PresentationScore,
		&a.Summary, &a.VehicleStatus, &a.GiveThemAChance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if certsJSON != nil {
		if err := json.Unmarshal(certsJSON, &a.Certifications); err != nil {
			return nil, fmt.Errorf("failed to unmarshal certifications: %w", err)
		}
	}
	return &a, nil
}
