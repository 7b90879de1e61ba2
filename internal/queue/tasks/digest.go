package tasks

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/sentinelos/engine/internal/services"
	"github.com/sentinelos/engine/pkg/logger"
	"go.uber.org/zap"
)

func NewDigestTask() *asynq.Task {
	return asynq.NewTask(TypePeriodicDigest, nil, asynq.MaxRetry(1))
}

// DigestTaskHandler logs the digest of every org that has sent updates.
type DigestTaskHandler struct {
	state services.StateService
}

func NewDigestTaskHandler(state services.StateService) *DigestTaskHandler {
	return &DigestTaskHandler{state: state}
}

// HandleDigest keeps going past orgs that fail and returns the last error.
func (h *DigestTaskHandler) HandleDigest(ctx context.Context, _ *asynq.Task) error {
	orgs, err := h.state.ListOrgs(ctx)
	if err != nil {
		logger.L().Error("list orgs for digest failed", zap.Error(err))
		return err
	}

	var lastErr error
	for _, org := range orgs {
		d, err := h.state.Digest(ctx, org)
		if err != nil {
			logger.Org(org).Error("digest failed", zap.Error(err))
			lastErr = err
			continue
		}
		fields := []zap.Field{
			zap.Int("truths", len(d.Truths)),
			zap.Int("conflicts", len(d.Conflicts)),
			zap.Int("recent_updates", len(d.RecentUpdates)),
		}
		if d.LatestRisk != nil {
			fields = append(fields, zap.String("risk_level", d.LatestRisk.Level), zap.Int("risk_score", d.LatestRisk.Score))
		}
		logger.Org(org).Info("org digest", fields...)
	}
	return lastErr
}

// Register wires both handlers into mux.
func Register(mux *asynq.ServeMux, ingest *IngestTaskHandler, digest *DigestTaskHandler) {
	mux.HandleFunc(TypeIngestUpdate, ingest.HandleIngest)
	mux.HandleFunc(TypePeriodicDigest, digest.HandleDigest)
}
