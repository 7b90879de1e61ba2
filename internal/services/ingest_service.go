package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sentinelos/engine/internal/intelligence"
	"github.com/sentinelos/engine/internal/models"
	"github.com/sentinelos/engine/internal/repository"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"github.com/sentinelos/engine/pkg/logger"
	"github.com/sentinelos/engine/pkg/utils"
	"go.uber.org/zap"
)

// DefaultSource labels updates submitted without a source.
const DefaultSource = "Chat update"

type IngestService interface {
	Ingest(ctx context.Context, orgID, text, source string) (*IngestResult, error)
}

// IngestResult is everything derived from one accepted update.
type IngestResult struct {
	IngestID      uuid.UUID               `json:"ingest_id"`
	Tasks         []intelligence.Task     `json:"tasks"`
	TruthsUpdated []intelligence.Truth    `json:"truths_updated"`
	Conflicts     []intelligence.Conflict `json:"conflicts"`
	RiskScore     int                     `json:"risk_score"`
	RiskLevel     intelligence.Level      `json:"risk_level"`
	Reasons       []string                `json:"reasons"`
	Routing       []string                `json:"routing"`
	Graph         intelligence.Graph      `json:"graph"`
	Briefing      string                  `json:"briefing"`
}

type IngestOption func(*ingestService)

// WithClock overrides the time source used to stamp persisted rows.
func WithClock(now func() time.Time) IngestOption {
	return func(s *ingestService) { s.now = now }
}

type ingestService struct {
	store    *repository.Store
	analyzer *intelligence.Analyzer
	truths   TruthStore
	now      func() time.Time
}

func NewIngestService(store *repository.Store, analyzer *intelligence.Analyzer, truths TruthStore, opts ...IngestOption) IngestService {
	s := &ingestService{
		store:    store,
		analyzer: analyzer,
		truths:   truths,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ IngestService = (*ingestService)(nil)

// Ingest analyzes text and commits the update, its truths, conflicts, tasks
// and risk assessment in one transaction. Graph and briefing are built from
// the in-memory results after commit.
func (s *ingestService) Ingest(ctx context.Context, orgID, text, source string) (*IngestResult, error) {
	in, err := NewUpdate(orgID, text, source)
	if err != nil {
		return nil, err
	}

	log := logger.Org(in.OrgID)
	log.Info("ingest start", zap.String("source", in.Source))

	an := s.analyzer.Analyze(in.Text)
	ingest := &models.Ingest{
		ID:        uuid.New(),
		OrgID:     in.OrgID,
		Source:    in.Source,
		Text:      in.Text,
		Checksum:  utils.ChecksumHex(in.Text),
		CreatedAt: s.now().UTC(),
	}

	var conflicts []intelligence.Conflict
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Ingests.Create(ctx, ingest); err != nil {
			return err
		}

		var err error
		if conflicts, err = s.truths.Record(ctx, tx, ingest, an.Truths); err != nil {
			return err
		}

		for i, t := range an.Tasks {
			if err := tx.Tasks.Create(ctx, &models.Task{
				OrgID:      ingest.OrgID,
				IngestID:   ingest.ID,
				Position:   i,
				Label:      t.Label,
				Owner:      t.Owner,
				Status:     t.Status,
				Deadline:   t.Deadline,
				Dependency: t.Dependency,
				CreatedAt:  ingest.CreatedAt,
			}); err != nil {
				return err
			}
		}

		risk := &models.RiskAssessment{
			OrgID:     ingest.OrgID,
			IngestID:  ingest.ID,
			Score:     an.Risk.Score,
			Level:     string(an.Risk.Level),
			CreatedAt: ingest.CreatedAt,
		}
		if err := risk.SetReasons(an.Risk.Reasons); err != nil {
			return appErr.Store(err, "encode risk reasons failed")
		}
		return tx.Risks.Create(ctx, risk)
	})
	if err != nil {
		log.Error("ingest failed", zap.Error(err))
		var ae *appErr.AppError
		if !errors.As(err, &ae) {
			err = appErr.Store(err, "ingest failed")
		}
		return nil, err
	}

	res := &IngestResult{
		IngestID:      ingest.ID,
		Tasks:         nonNil(an.Tasks),
		TruthsUpdated: nonNil(an.Truths),
		Conflicts:     conflicts,
		RiskScore:     an.Risk.Score,
		RiskLevel:     an.Risk.Level,
		Reasons:       nonNil(an.Risk.Reasons),
		Routing:       an.Routing,
		Graph:         an.Graph(),
		Briefing:      an.Briefing(conflicts),
	}

	log.Info("ingest committed",
		zap.String("ingest_id", ingest.ID.String()),
		zap.Int("truths", len(res.TruthsUpdated)),
		zap.Int("tasks", len(res.Tasks)),
		zap.Int("conflicts", len(conflicts)),
		zap.String("risk_level", string(res.RiskLevel)),
	)
	return res, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
