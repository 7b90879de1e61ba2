package services

import (
	"context"
	"strings"
	"time"

	"github.com/sentinelos/engine/internal/intelligence"
	"github.com/sentinelos/engine/internal/models"
	"github.com/sentinelos/engine/internal/repository"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"github.com/sentinelos/engine/pkg/logger"
)

const (
	DefaultConflictLimit = 10
	DefaultHistoryLimit  = 50
	digestItemLimit      = 5
)

// AskHint is returned for questions the digest does not answer.
const AskHint = "Try: What changed today?"

var digestTriggers = []string{"changed", "today", "digest"}

type StateService interface {
	GetOrgState(ctx context.Context, orgID string) (*OrgState, error)
	Digest(ctx context.Context, orgID string) (*Digest, error)
	Ask(ctx context.Context, orgID, question string) (*Answer, error)
	LatestGraph(ctx context.Context, orgID string) (*intelligence.Graph, error)
	ListOrgs(ctx context.Context) ([]string, error)
}

// TruthEntry is one version of a truth as reported in org state.
type TruthEntry struct {
	Value   string    `json:"value"`
	Version int       `json:"version"`
	Time    time.Time `json:"time"`
}

type RiskView struct {
	Score   int       `json:"score"`
	Level   string    `json:"level"`
	Reasons []string  `json:"reasons"`
	Time    time.Time `json:"time"`
}

// OrgState is a snapshot of everything known about one org.
type OrgState struct {
	OrgID         string                  `json:"org_id"`
	LatestTruths  map[string]TruthEntry   `json:"latest_truths"`
	TruthTimeline map[string][]TruthEntry `json:"truth_timeline"`
	LatestRisk    *RiskView               `json:"latest_risk"`
	Conflicts     []models.Conflict       `json:"conflicts"`
	LatestTasks   []models.Task           `json:"latest_tasks"`
	History       []models.Ingest         `json:"history"`
}

type Digest struct {
	LatestRisk    *RiskView             `json:"latest_risk"`
	Truths        map[string]TruthEntry `json:"truths"`
	Conflicts     []models.Conflict     `json:"conflicts"`
	RecentUpdates []models.Ingest       `json:"recent_updates"`
}

// Answer carries either a digest or a hint.
type Answer struct {
	Digest *Digest `json:"digest,omitempty"`
	Hint   string  `json:"hint,omitempty"`
}

type StateOption func(*stateService)

// WithLimits caps the conflicts and history returned in org state.
// Non-positive values keep the defaults.
func WithLimits(conflicts, history int) StateOption {
	return func(s *stateService) {
		if conflicts > 0 {
			s.conflictLimit = conflicts
		}
		if history > 0 {
			s.historyLimit = history
		}
	}
}

type stateService struct {
	store         *repository.Store
	analyzer      *intelligence.Analyzer
	conflictLimit int
	historyLimit  int
}

func NewStateService(store *repository.Store, analyzer *intelligence.Analyzer, opts ...StateOption) StateService {
	s := &stateService{
		store:         store,
		analyzer:      analyzer,
		conflictLimit: DefaultConflictLimit,
		historyLimit:  DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ StateService = (*stateService)(nil)

// GetOrgState reads the org snapshot. Reads are not locked against concurrent
// ingests. An org with no ingests yields empty collections and a nil risk.
func (s *stateService) GetOrgState(ctx context.Context, orgID string) (*OrgState, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, appErr.Validation("org id is required")
	}
	logger.Org(orgID).Debug("get org state")

	state := &OrgState{
		OrgID:         orgID,
		LatestTruths:  map[string]TruthEntry{},
		TruthTimeline: map[string][]TruthEntry{},
		LatestTasks:   []models.Task{},
	}

	truths, err := s.store.Truths.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	for _, t := range truths {
		e := TruthEntry{Value: t.Value, Version: t.Version, Time: t.CreatedAt}
		if _, ok := state.LatestTruths[t.Key]; !ok {
			state.LatestTruths[t.Key] = e
		}
		state.TruthTimeline[t.Key] = append(state.TruthTimeline[t.Key], e)
	}

	if state.Conflicts, err = s.store.Conflicts.ListRecent(ctx, orgID, s.conflictLimit); err != nil {
		return nil, err
	}
	if state.History, err = s.store.Ingests.ListRecent(ctx, orgID, s.historyLimit); err != nil {
		return nil, err
	}
	if state.LatestRisk, err = s.latestRisk(ctx, orgID); err != nil {
		return nil, err
	}
	if len(state.History) > 0 {
		if state.LatestTasks, err = s.store.Tasks.ListByIngest(ctx, state.History[0].ID); err != nil {
			return nil, err
		}
	}

	return state, nil
}

func (s *stateService) latestRisk(ctx context.Context, orgID string) (*RiskView, error) {
	var r models.RiskAssessment
	if err := s.store.Risks.GetLatest(ctx, orgID, &r); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	reasons, err := r.ReasonList()
	if err != nil {
		return nil, appErr.Store(err, "decode risk reasons failed")
	}
	return &RiskView{Score: r.Score, Level: r.Level, Reasons: reasons, Time: r.CreatedAt}, nil
}

// Digest summarizes the org state: latest risk, current truths and the most
// recent conflicts and updates.
func (s *stateService) Digest(ctx context.Context, orgID string) (*Digest, error) {
	state, err := s.GetOrgState(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return &Digest{
		LatestRisk:    state.LatestRisk,
		Truths:        state.LatestTruths,
		Conflicts:     head(state.Conflicts, digestItemLimit),
		RecentUpdates: head(state.History, digestItemLimit),
	}, nil
}

// Ask answers "what changed" style questions with the digest.
func (s *stateService) Ask(ctx context.Context, orgID, question string) (*Answer, error) {
	q := strings.ToLower(question)
	for _, trigger := range digestTriggers {
		if strings.Contains(q, trigger) {
			d, err := s.Digest(ctx, orgID)
			if err != nil {
				return nil, err
			}
			return &Answer{Digest: d}, nil
		}
	}
	if strings.TrimSpace(orgID) == "" {
		return nil, appErr.Validation("org id is required")
	}
	return &Answer{Hint: AskHint}, nil
}

// LatestGraph rebuilds the relationship graph of the most recent update.
// Graphs are never persisted, so the stored text is analyzed again.
func (s *stateService) LatestGraph(ctx context.Context, orgID string) (*intelligence.Graph, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, appErr.Validation("org id is required")
	}
	var last models.Ingest
	if err := s.store.Ingests.GetLatest(ctx, orgID, &last); err != nil {
		return nil, err
	}
	g := s.analyzer.Analyze(last.Text).Graph()
	return &g, nil
}

func (s *stateService) ListOrgs(ctx context.Context) ([]string, error) {
	return s.store.Ingests.ListOrgs(ctx)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
