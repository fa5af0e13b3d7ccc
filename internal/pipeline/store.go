package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/talos/hvac-ats/internal/types"
)

// Store is the persistence surface the pipeline service depends on. Read
// methods return (nil, nil) when the row does not exist; CreatePipelineEntry
// returns *types.DuplicateEntryError when the (candidate, job) pair already
// has an entry, resolved by the store's atomic uniqueness constraint.
type Store interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error)
	GetAnalysis(ctx context.Context, candidateID uuid.UUID) (*types.AnalysisResult, error)

	CreatePipelineEntry(ctx context.Context, entry *types.PipelineEntry) (*types.PipelineEntry, error)
	GetPipelineEntry(ctx context.Context, id uuid.UUID) (*types.PipelineEntry, error)
	UpdateEntryStatus(ctx context.Context, id uuid.UUID, status types.PipelineStatus) (*types.PipelineEntry, error)
	UpdateEntryScore(ctx context.Context, id uuid.UUID, tierScore int, tier types.Tier, starRating float64) (*types.PipelineEntry, error)
	SetEntryContact(ctx context.Context, id uuid.UUID, via *types.ContactMethod) (*types.PipelineEntry, error)

	AppendStatusEvent(ctx context.Context, event *types.StatusEvent) error
}
