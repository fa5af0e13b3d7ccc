// Package pipeline owns the lifecycle of candidate-job pipeline entries:
// creation with derived scoring, status transitions with an audit trail, the
// contact sub-state, and bulk status updates.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/talos/hvac-ats/internal/scoring"
	"github.com/talos/hvac-ats/internal/types"
	"go.uber.org/zap"
)

// Service drives pipeline entries against an injected store. It holds no
// state of its own; every operation re-reads current rows.
type Service struct {
	store Store
	log   *zap.Logger
}

// NewService builds a pipeline service. The logger must not be nil; callers
// that want silence pass zap.NewNop().
func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// AddCandidateToJob attaches a candidate to a job's pipeline, deriving tier
// score, tier, and star rating from the stored analysis and the job's vehicle
// requirement. A second attach for the same pair returns
// *types.DuplicateEntryError; callers treat that as "already exists", not as
// a transient failure.
func (s *Service) AddCandidateToJob(ctx context.Context, candidateID, jobID uuid.UUID, vehicleStatus types.VehicleStatus, notes string) (*types.PipelineEntry, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, &types.NotFoundError{Kind: "job", ID: jobID}
	}

	analysis, err := s.store.GetAnalysis(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	if analysis == nil {
		return nil, &types.NotFoundError{Kind: "candidate analysis", ID: candidateID}
	}

	// The explicit argument wins; the analysis hint fills the gap.
	if vehicleStatus == "" || vehicleStatus == types.VehicleUnknown {
		vehicleStatus = analysis.VehicleStatus
	}
	if vehicleStatus == "" {
		vehicleStatus = types.VehicleUnknown
	}

	result, clamped := scoring.Evaluate(analysis.RawScore, vehicleStatus, job.VehicleRequired)
	if clamped {
		s.log.Warn("raw score outside [0,100], clamped before classification",
			zap.String("candidate_id", candidateID.String()),
			zap.Float64("raw_score", analysis.RawScore))
	}

	chance := analysis.GiveThemAChance || scoring.GiveThemAChance(analysis, job)

	entry := &types.PipelineEntry{
		CandidateID:     candidateID,
		JobID:           jobID,
		Status:          types.StatusNew,
		TierScore:       result.TierScore,
		Tier:            result.Tier,
		StarRating:      result.StarRating,
		GiveThemAChance: chance,
		VehicleStatus:   vehicleStatus,
		InternalNotes:   notes,
	}

	created, err := s.store.CreatePipelineEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info("candidate added to pipeline",
		zap.String("entry_id", created.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.Int("tier_score", created.TierScore),
		zap.String("tier", string(created.Tier)))
	return created, nil
}

// UpdateStatus moves an entry to the target status. Any status may move to
// any other; the change is recorded as a StatusEvent so reversals stay
// traceable. A no-op transition (same status) skips the audit write.
func (s *Service) UpdateStatus(ctx context.Context, entryID uuid.UUID, status types.PipelineStatus, actor, note string) (*types.PipelineEntry, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid pipeline status %q", status)
	}

	entry, err := s.store.GetPipelineEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline entry: %w", err)
	}
	if entry == nil {
		return nil, &types.NotFoundError{Kind: "pipeline entry", ID: entryID}
	}

	from := entry.Status
	updated, err := s.store.UpdateEntryStatus(ctx, entryID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if from != status {
		event := &types.StatusEvent{
			EntryID:    entryID,
			FromStatus: from,
			ToStatus:   status,
			Actor:      actor,
			Note:       note,
		}
		if err := s.store.AppendStatusEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("failed to record status event: %w", err)
		}
		s.log.Info("pipeline status updated",
			zap.String("entry_id", entryID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(status)))
	}
	return updated, nil
}

// Contact records that a human reached out via the given method. The store
// sets contacted_via and contacted_at in one write, and the entry moves to
// contacted.
func (s *Service) Contact(ctx context.Context, entryID uuid.UUID, via types.ContactMethod, actor string) (*types.PipelineEntry, error) {
	entry, err := s.store.SetEntryContact(ctx, entryID, &via)
	if err != nil {
		return nil, fmt.Errorf("failed to record contact: %w", err)
	}
	if entry == nil {
		return nil, &types.NotFoundError{Kind: "pipeline entry", ID: entryID}
	}

	return s.UpdateStatus(ctx, entryID, types.StatusContacted, actor, "contacted via "+string(via))
}

// ClearContact removes the contact record, nulling contacted_via and
// contacted_at together. Status is left alone; un-contacting is a correction,
// not a transition.
func (s *Service) ClearContact(ctx context.Context, entryID uuid.UUID) (*types.PipelineEntry, error) {
	entry, err := s.store.SetEntryContact(ctx, entryID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to clear contact: %w", err)
	}
	if entry == nil {
		return nil, &types.NotFoundError{Kind: "pipeline entry", ID: entryID}
	}
	return entry, nil
}

// Rescore recomputes tier score, tier, and star rating for an entry from the
// candidate's stored raw score, the entry's vehicle status, and the job's
// current vehicle requirement. Tier and rating are never written except
// through this derivation.
func (s *Service) Rescore(ctx context.Context, entryID uuid.UUID) (*types.PipelineEntry, error) {
	entry, err := s.store.GetPipelineEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline entry: %w", err)
	}
	if entry == nil {
		return nil, &types.NotFoundError{Kind: "pipeline entry", ID: entryID}
	}

	job, err := s.store.GetJob(ctx, entry.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, &types.NotFoundError{Kind: "job", ID: entry.JobID}
	}

	analysis, err := s.store.GetAnalysis(ctx, entry.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	if analysis == nil {
		return nil, &types.NotFoundError{Kind: "candidate analysis", ID: entry.CandidateID}
	}

	result, clamped := scoring.Evaluate(analysis.RawScore, entry.VehicleStatus, job.VehicleRequired)
	if clamped {
		s.log.Warn("raw score outside [0,100], clamped during rescore",
			zap.String("entry_id", entryID.String()),
			zap.Float64("raw_score", analysis.RawScore))
	}

	updated, err := s.store.UpdateEntryScore(ctx, entryID, result.TierScore, result.Tier, result.StarRating)
	if err != nil {
		return nil, fmt.Errorf("failed to update score: %w", err)
	}
	return updated, nil
}
