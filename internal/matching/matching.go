// Package matching recomputes a candidate's fitness against every open job,
// producing a ranked cross-job match list.
package matching

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/talos/hvac-ats/internal/scoring"
	"github.com/talos/hvac-ats/internal/types"
	"go.uber.org/zap"
)

// Experience adjustment applied when re-evaluating against another job's
// requirement: meeting it earns a small bonus, falling below half of it
// costs more.
const (
	experienceBonus   = 5.0
	experiencePenalty = 10.0
)

// Store is the read-only persistence surface the evaluator needs.
type Store interface {
	GetAnalysis(ctx context.Context, candidateID uuid.UUID) (*types.AnalysisResult, error)
	ListActiveJobs(ctx context.Context) ([]types.Job, error)
}

// Evaluator ranks a candidate against the current set of active jobs.
type Evaluator struct {
	store Store
	log   *zap.Logger
}

// NewEvaluator builds an evaluator over the given store.
func NewEvaluator(store Store, log *zap.Logger) *Evaluator {
	return &Evaluator{store: store, log: log}
}

// EvaluateAcrossJobs recomputes a match score for the candidate against every
// active job, including the one they originally applied to, so callers see
// the full ranked board. Results are ordered by match score descending with
// ties broken by ascending job ID, keeping the output reproducible.
func (e *Evaluator) EvaluateAcrossJobs(ctx context.Context, candidateID uuid.UUID) ([]types.JobMatch, error) {
	analysis, err := e.store.GetAnalysis(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	if analysis == nil {
		return nil, &types.NotFoundError{Kind: "candidate analysis", ID: candidateID}
	}

	jobs, err := e.store.ListActiveJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}

	score, clamped := scoring.ClampScore(analysis.RawScore)
	if clamped {
		e.log.Warn("raw score outside [0,100], clamped before matching",
			zap.String("candidate_id", candidateID.String()),
			zap.Float64("raw_score", analysis.RawScore))
	}

	matches := make([]types.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		// Tier and rating derive from the rounded score so they always
		// agree with the MatchScore the caller sees.
		rounded := math.Round(matchScore(score, analysis, &job))
		matches = append(matches, types.JobMatch{
			JobID:               job.ID,
			JobTitle:            job.Title,
			MatchScore:          int(rounded),
			Tier:                scoring.Classify(rounded),
			StarRating:          scoring.StarRating(rounded),
			YearsExperienceDiff: analysis.YearsOfExperience - job.RequiredYearsExp,
			VehicleRequired:     job.VehicleRequired,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return matches[i].JobID.String() < matches[j].JobID.String()
	})
	return matches, nil
}

// matchScore substitutes the target job's vehicle requirement and experience
// bar into the scoring composition: vehicle adjustment first, then the
// experience adjustment, clamped to [0,100].
func matchScore(score float64, analysis *types.AnalysisResult, job *types.Job) float64 {
	adjusted := scoring.AdjustForVehicle(score, analysis.VehicleStatus, job.VehicleRequired)

	switch {
	case analysis.YearsOfExperience >= job.RequiredYearsExp:
		adjusted += experienceBonus
	case analysis.YearsOfExperience < job.RequiredYearsExp*0.5:
		adjusted -= experiencePenalty
	}

	adjusted, _ = scoring.ClampScore(adjusted)
	return adjusted
}
