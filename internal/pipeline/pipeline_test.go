package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talos/hvac-ats/internal/types"
	"go.uber.org/zap"
)

// memStore is an in-memory Store used to exercise the service without a
// database. It enforces the same (candidate, job) uniqueness the real store
// enforces with a constraint.
type memStore struct {
	jobs     map[uuid.UUID]*types.Job
	analyses map[uuid.UUID]*types.AnalysisResult
	entries  map[uuid.UUID]*types.PipelineEntry
	byPair   map[[2]uuid.UUID]uuid.UUID
	events   []*types.StatusEvent
}

func newMemStore() *memStore {
	return &memStore{
		jobs:     make(map[uuid.UUID]*types.Job),
		analyses: make(map[uuid.UUID]*types.AnalysisResult),
		entries:  make(map[uuid.UUID]*types.PipelineEntry),
		byPair:   make(map[[2]uuid.UUID]uuid.UUID),
	}
}

func (m *memStore) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	return m.jobs[id], nil
}

func (m *memStore) GetCandidate(_ context.Context, _ uuid.UUID) (*types.Candidate, error) {
	return nil, nil
}

func (m *memStore) GetAnalysis(_ context.Context, candidateID uuid.UUID) (*types.AnalysisResult, error) {
	return m.analyses[candidateID], nil
}

func (m *memStore) CreatePipelineEntry(_ context.Context, entry *types.PipelineEntry) (*types.PipelineEntry, error) {
	pair := [2]uuid.UUID{entry.CandidateID, entry.JobID}
	if _, exists := m.byPair[pair]; exists {
		return nil, &types.DuplicateEntryError{CandidateID: entry.CandidateID, JobID: entry.JobID}
	}
	stored := *entry
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.entries[stored.ID] = &stored
	m.byPair[pair] = stored.ID
	return &stored, nil
}

func (m *memStore) GetPipelineEntry(_ context.Context, id uuid.UUID) (*types.PipelineEntry, error) {
	return m.entries[id], nil
}

func (m *memStore) UpdateEntryStatus(_ context.Context, id uuid.UUID, status types.PipelineStatus) (*types.PipelineEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	entry.Status = status
	entry.UpdatedAt = time.Now()
	return entry, nil
}

func (m *memStore) UpdateEntryScore(_ context.Context, id uuid.UUID, tierScore int, tier types.Tier, starRating float64) (*types.PipelineEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	entry.TierScore = tierScore
	entry.Tier = tier
	entry.StarRating = starRating
	entry.UpdatedAt = time.Now()
	return entry, nil
}

func (m *memStore) SetEntryContact(_ context.Context, id uuid.UUID, via *types.ContactMethod) (*types.PipelineEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	if via != nil {
		now := time.Now()
		entry.ContactedVia = via
		entry.ContactedAt = &now
	} else {
		entry.ContactedVia = nil
		entry.ContactedAt = nil
	}
	entry.UpdatedAt = time.Now()
	return entry, nil
}

func (m *memStore) AppendStatusEvent(_ context.Context, event *types.StatusEvent) error {
	stored := *event
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	m.events = append(m.events, &stored)
	return nil
}

func seedCandidateAndJob(store *memStore, rawScore float64, vehicleRequired bool) (uuid.UUID, uuid.UUID) {
	candidateID := uuid.New()
	jobID := uuid.New()
	store.jobs[jobID] = &types.Job{
		ID:               jobID,
		Title:            "HVAC Service Technician",
		RequiredYearsExp: 3,
		VehicleRequired:  vehicleRequired,
		Status:           types.JobActive,
	}
	store.analyses[candidateID] = &types.AnalysisResult{
		CandidateID:       candidateID,
		RawScore:          rawScore,
		YearsOfExperience: 5,
		VehicleStatus:     types.VehicleUnknown,
	}
	return candidateID, jobID
}

func TestAddCandidateToJob_DerivesScoreTierAndRating(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 90, false)
	svc := NewService(store, zap.NewNop())

	entry, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)

	assert.Equal(t, types.StatusNew, entry.Status)
	assert.Equal(t, 90, entry.TierScore)
	assert.Equal(t, types.TierGreen, entry.Tier)
	assert.InDelta(t, 4.5, entry.StarRating, 1e-9)
	assert.Nil(t, entry.ContactedVia)
	assert.Nil(t, entry.ContactedAt)
}

func TestAddCandidateToJob_VehicleAdjustmentPrecedesClassification(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 77, true)
	svc := NewService(store, zap.NewNop())

	entry, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleHas, "")
	require.NoError(t, err)

	assert.Equal(t, 82, entry.TierScore)
	assert.Equal(t, types.TierGreen, entry.Tier)
	assert.Equal(t, types.VehicleHas, entry.VehicleStatus)
}

func TestAddCandidateToJob_DuplicatePairRejected(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 60, false)
	svc := NewService(store, zap.NewNop())

	_, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)

	_, err = svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleUnknown, "")
	var dup *types.DuplicateEntryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, candidateID, dup.CandidateID)
	assert.Equal(t, jobID, dup.JobID)
}

func TestAddCandidateToJob_MissingJob(t *testing.T) {
	store := newMemStore()
	candidateID, _ := seedCandidateAndJob(store, 60, false)
	svc := NewService(store, zap.NewNop())

	_, err := svc.AddCandidateToJob(context.Background(), candidateID, uuid.New(), types.VehicleUnknown, "")
	var notFound *types.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "job", notFound.Kind)
}

func TestAddCandidateToJob_ClampsOutOfRangeScore(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 130, false)
	svc := NewService(store, zap.NewNop())

	entry, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)
	assert.Equal(t, 100, entry.TierScore)
	assert.Equal(t, types.TierGreen, entry.Tier)
}

func TestUpdateStatus_AnyToAnyIncludingReversal(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 60, false)
	svc := NewService(store, zap.NewNop())

	entry, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)

	for _, status := range []types.PipelineStatus{
		types.StatusRejected,
		types.StatusApproved, // rejected -> approved is deliberately legal
		types.StatusBackup,
		types.StatusNew,
	} {
		updated, err := svc.UpdateStatus(context.Background(), entry.ID, status, "recruiter", "")
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	require.Len(t, store.events, 4)
	assert.Equal(t, types.StatusRejected, store.events[1].FromStatus)
	assert.Equal(t, types.StatusApproved, store.events[1].ToStatus)
}

func TestUpdateStatus_SameStatusSkipsAuditEvent(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 60, false)
	svc := NewService(store, zap.NewNop())

	entry, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), entry.ID, types.StatusNew, "recruiter", "")
	require.NoError(t, err)
	assert.Empty(t, store.events)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop())
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), types.PipelineStatus("archived"), "", "")
	assert.Error(t, err)
}

func TestUpdateStatus_MissingEntry(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop())
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), types.StatusApproved, "", "")
	var notFound *types.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestContact_SetsBothFieldsAndMovesToContacted(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 60, false)
	svc := NewService(store, zap.NewNop())

	entry, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)

	updated, err := svc.Contact(context.Background(), entry.ID, types.ContactSMS, "recruiter")
	require.NoError(t, err)

	require.NotNil(t, updated.ContactedVia)
	require.NotNil(t, updated.ContactedAt)
	assert.Equal(t, types.ContactSMS, *updated.ContactedVia)
	assert.Equal(t, types.StatusContacted, updated.Status)
	assert.True(t, updated.Contacted())
}

func TestClearContact_NullsBothFieldsTogether(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 60, false)
	svc := NewService(store, zap.NewNop())

	entry, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)

	_, err = svc.Contact(context.Background(), entry.ID, types.ContactEmail, "recruiter")
	require.NoError(t, err)

	cleared, err := svc.ClearContact(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.ContactedVia)
	assert.Nil(t, cleared.ContactedAt)
	// Clearing contact is a correction, not a transition.
	assert.Equal(t, types.StatusContacted, cleared.Status)
}

func TestRescore_FollowsJobRequirementChange(t *testing.T) {
	store := newMemStore()
	candidateID, jobID := seedCandidateAndJob(store, 70, false)
	svc := NewService(store, zap.NewNop())

	entry, err := svc.AddCandidateToJob(context.Background(), candidateID, jobID, types.VehicleNone, "")
	require.NoError(t, err)
	assert.Equal(t, 70, entry.TierScore)
	assert.Equal(t, types.TierYellow, entry.Tier)

	// The job now requires a vehicle; the candidate has none.
	store.jobs[jobID].VehicleRequired = true

	updated, err := svc.Rescore(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, updated.TierScore)
	assert.Equal(t, types.TierYellow, updated.Tier)
	assert.InDelta(t, 2.7, updated.StarRating, 0.05)
}

func TestBulkUpdateStatus_PartialSuccessIsExplicit(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, zap.NewNop())

	candidateA, jobID := seedCandidateAndJob(store, 60, false)
	entryA, err := svc.AddCandidateToJob(context.Background(), candidateA, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)

	candidateB := uuid.New()
	store.analyses[candidateB] = &types.AnalysisResult{CandidateID: candidateB, RawScore: 85}
	entryB, err := svc.AddCandidateToJob(context.Background(), candidateB, jobID, types.VehicleUnknown, "")
	require.NoError(t, err)

	missing := uuid.New()
	ids := []uuid.UUID{entryA.ID, missing, entryB.ID}

	results, err := svc.BulkUpdateStatus(context.Background(), ids, types.StatusApproved, "recruiter")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, entryA.ID, results[0].ID)
	assert.True(t, results[0].OK)
	assert.Equal(t, missing, results[1].ID)
	assert.False(t, results[1].OK)
	var notFound *types.NotFoundError
	assert.True(t, errors.As(results[1].Err, &notFound))
	assert.True(t, results[2].OK)

	assert.Equal(t, types.StatusApproved, store.entries[entryA.ID].Status)
	assert.Equal(t, types.StatusApproved, store.entries[entryB.ID].Status)
}

func TestBulkUpdateStatus_InvalidStatusRejectedUpFront(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop())
	_, err := svc.BulkUpdateStatus(context.Background(), []uuid.UUID{uuid.New()}, types.PipelineStatus("nope"), "")
	assert.Error(t, err)
}
