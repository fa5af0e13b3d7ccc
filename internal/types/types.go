// Package types holds the shared domain model for the candidate pipeline:
// jobs, candidates, pipeline entries, and the enums and errors they carry.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Job is a single open position. From the pipeline core's perspective jobs are
// read-only; they are created and edited through the external CRUD surface.
type Job struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Location           string    `json:"location,omitempty"`
	PositionType       string    `json:"position_type,omitempty"`
	RequiredYearsExp   float64   `json:"required_years_experience"`
	VehicleRequired    bool      `json:"vehicle_required"`
	PayRangeMin        *float64  `json:"pay_range_min,omitempty"`
	PayRangeMax        *float64  `json:"pay_range_max,omitempty"`
	Status             JobStatus `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Candidate is one applicant, identified loosely by normalized email to help
// duplicate-application detection.
type Candidate struct {
	ID             uuid.UUID `json:"id"`
	Name           *string   `json:"name,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Filename       string    `json:"filename,omitempty"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// AnalysisResult is the output of the external resume-analysis step for one
// candidate. RawScore arrives pre-validated in [0,100]; anything outside that
// range is a contract violation handled by clamping at the scoring boundary.
type AnalysisResult struct {
	CandidateID          uuid.UUID     `json:"candidate_id"`
	RawScore             float64       `json:"raw_score"`
	YearsOfExperience    float64       `json:"years_of_experience"`
	Certifications       []string      `json:"certifications,omitempty"`
	CertificationsScore  float64       `json:"certifications_score,omitempty"`
	TechnicalSkillsScore float64       `json:"technical_skills_score,omitempty"`
	PresentationScore    float64       `json:"presentation_score,omitempty"`
	Summary              string        `json:"summary,omitempty"`
	VehicleStatus        VehicleStatus `json:"vehicle_status"`
	GiveThemAChance      bool          `json:"give_them_a_chance"`
}

// PipelineEntry is the record of one candidate's standing against one job.
// Exactly one entry exists per (CandidateID, JobID); the store enforces it.
// Tier and StarRating are pure functions of TierScore and are recomputed on
// every write, never set directly.
type PipelineEntry struct {
	ID              uuid.UUID      `json:"id"`
	CandidateID     uuid.UUID      `json:"candidate_id"`
	JobID           uuid.UUID      `json:"job_id"`
	Status          PipelineStatus `json:"pipeline_status"`
	TierScore       int            `json:"tier_score"`
	Tier            Tier           `json:"tier"`
	StarRating      float64        `json:"star_rating"`
	GiveThemAChance bool           `json:"give_them_a_chance"`
	VehicleStatus   VehicleStatus  `json:"vehicle_status"`
	ContactedVia    *ContactMethod `json:"contacted_via,omitempty"`
	ContactedAt     *time.Time     `json:"contacted_at,omitempty"`
	InternalNotes   string         `json:"internal_notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Contacted reports whether a contact event is recorded on the entry.
func (e *PipelineEntry) Contacted() bool {
	return e.ContactedVia != nil && e.ContactedAt != nil
}

// StatusEvent is one row of the audit trail written on every status change.
type StatusEvent struct {
	ID         uuid.UUID      `json:"id"`
	EntryID    uuid.UUID      `json:"entry_id"`
	FromStatus PipelineStatus `json:"from_status"`
	ToStatus   PipelineStatus `json:"to_status"`
	Actor      string         `json:"actor,omitempty"`
	Note       string         `json:"note,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// JobMatch is one row of the cross-job evaluation for a candidate.
// YearsExperienceDiff is positive when the candidate exceeds the requirement.
type JobMatch struct {
	JobID               uuid.UUID `json:"job_id"`
	JobTitle            string    `json:"job_title"`
	MatchScore          int       `json:"match_score"`
	Tier                Tier      `json:"tier"`
	StarRating          float64   `json:"star_rating"`
	YearsExperienceDiff float64   `json:"years_experience_diff"`
	VehicleRequired     bool      `json:"vehicle_required"`
}
