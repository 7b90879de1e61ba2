package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sentinelos/engine/internal/services"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"github.com/sentinelos/engine/pkg/logger"
	"go.uber.org/zap"
)

const (
	TypeIngestUpdate   = "update:ingest"
	TypePeriodicDigest = "digest:periodic"
)

// IngestPayload is the task payload for a queued status update.
type IngestPayload struct {
	OrgID  string `json:"org_id"`
	Text   string `json:"text"`
	Source string `json:"source"`
	// Subject is the authenticated caller that queued the update, if any.
	Subject string `json:"subject,omitempty"`
}

func NewIngestTask(p IngestPayload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeIngestUpdate, b, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

// IngestTaskHandler runs queued updates through the ingest service.
type IngestTaskHandler struct {
	ingest services.IngestService
}

func NewIngestTaskHandler(ingest services.IngestService) *IngestTaskHandler {
	return &IngestTaskHandler{ingest: ingest}
}

// HandleIngest retries store failures; malformed payloads and rejected
// updates are dropped.
func (h *IngestTaskHandler) HandleIngest(ctx context.Context, t *asynq.Task) error {
	var p IngestPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid ingest task payload", zap.Error(err))
		return fmt.Errorf("decode ingest payload: %v: %w", err, asynq.SkipRetry)
	}

	log := logger.Org(p.OrgID).With(zap.String("subject", p.Subject))
	log.Info("handling ingest task")

	res, err := h.ingest.Ingest(ctx, p.OrgID, p.Text, p.Source)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeInvalid) {
			log.Warn("ingest task rejected", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		log.Error("ingest task failed", zap.Error(err))
		return err
	}

	log.Info("ingest task completed",
		zap.String("ingest_id", res.IngestID.String()),
		zap.String("risk_level", string(res.RiskLevel)),
		zap.Int("conflicts", len(res.Conflicts)),
	)
	return nil
}

// Client enqueues ingest tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(opt asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

// EnqueueIngest queues p and returns the task id.
func (c *Client) EnqueueIngest(ctx context.Context, p IngestPayload) (string, error) {
	task, err := NewIngestTask(p)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "encode ingest task failed")
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeUnavailable, "enqueue ingest task failed")
	}
	return info.ID, nil
}

func (c *Client) Close() error { return c.client.Close() }
