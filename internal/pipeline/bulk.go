package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/talos/hvac-ats/internal/types"
	"go.uber.org/zap"
)

// BulkResult reports the outcome for one entry of a bulk status update.
type BulkResult struct {
	ID  uuid.UUID
	OK  bool
	Err error
}

// BulkUpdateStatus applies one target status to every entry in ids,
// sequentially and independently. Partial success is the normal result
// shape: one BulkResult per input id, in input order, so the caller always
// knows exactly which entries moved. No transaction spans the batch.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status types.PipelineStatus, actor string) ([]BulkResult, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid pipeline status %q", status)
	}

	results := make([]BulkResult, 0, len(ids))
	succeeded := 0
	for _, id := range ids {
		_, err := s.UpdateStatus(ctx, id, status, actor, "bulk update")
		if err != nil {
			results = append(results, BulkResult{ID: id, Err: err})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true})
		succeeded++
	}

	s.log.Info("bulk status update finished",
		zap.String("status", string(status)),
		zap.Int("total", len(ids)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(ids)-succeeded))
	return results, nil
}
