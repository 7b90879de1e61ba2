package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sentinelos/engine/internal/intelligence"
	"github.com/sentinelos/engine/internal/services"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"github.com/sentinelos/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockIngestService struct {
	mock.Mock
}

func (m *mockIngestService) Ingest(ctx context.Context, orgID, text, source string) (*services.IngestResult, error) {
	args := m.Called(ctx, orgID, text, source)
	if v := args.Get(0); v != nil {
		return v.(*services.IngestResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStateService struct {
	mock.Mock
}

func (m *mockStateService) GetOrgState(ctx context.Context, orgID string) (*services.OrgState, error) {
	args := m.Called(ctx, orgID)
	if v := args.Get(0); v != nil {
		return v.(*services.OrgState), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStateService) Digest(ctx context.Context, orgID string) (*services.Digest, error) {
	args := m.Called(ctx, orgID)
	if v := args.Get(0); v != nil {
		return v.(*services.Digest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStateService) Ask(ctx context.Context, orgID, question string) (*services.Answer, error) {
	args := m.Called(ctx, orgID, question)
	if v := args.Get(0); v != nil {
		return v.(*services.Answer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStateService) LatestGraph(ctx context.Context, orgID string) (*intelligence.Graph, error) {
	args := m.Called(ctx, orgID)
	if v := args.Get(0); v != nil {
		return v.(*intelligence.Graph), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStateService) ListOrgs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func ingestTask(t *testing.T, p IngestPayload) *asynq.Task {
	t.Helper()
	task, err := NewIngestTask(p)
	require.NoError(t, err)
	return task
}

func TestIngestTaskHandler(t *testing.T) {
	payload := IngestPayload{OrgID: "acme", Text: "Launch Friday.", Source: "slack"}

	t.Run("successful ingest", func(t *testing.T) {
		svc := &mockIngestService{}
		svc.On("Ingest", mock.Anything, "acme", "Launch Friday.", "slack").
			Return(&services.IngestResult{IngestID: uuid.New(), RiskLevel: intelligence.LevelLow}, nil).Once()

		err := NewIngestTaskHandler(svc).HandleIngest(context.Background(), ingestTask(t, payload))
		require.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("validation failure is not retried", func(t *testing.T) {
		svc := &mockIngestService{}
		svc.On("Ingest", mock.Anything, "acme", "", "").
			Return(nil, appErr.Validation("empty text")).Once()

		err := NewIngestTaskHandler(svc).HandleIngest(context.Background(), ingestTask(t, IngestPayload{OrgID: "acme"}))
		require.Error(t, err)
		assert.ErrorIs(t, err, asynq.SkipRetry)
		svc.AssertExpectations(t)
	})

	t.Run("store failure is retried", func(t *testing.T) {
		svc := &mockIngestService{}
		storeErr := appErr.Store(errors.New("connection reset"), "ingest failed")
		svc.On("Ingest", mock.Anything, "acme", "Launch Friday.", "slack").Return(nil, storeErr).Once()

		err := NewIngestTaskHandler(svc).HandleIngest(context.Background(), ingestTask(t, payload))
		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
		assert.True(t, appErr.IsCode(err, appErr.CodeInternal))
	})

	t.Run("malformed payload", func(t *testing.T) {
		svc := &mockIngestService{}
		err := NewIngestTaskHandler(svc).HandleIngest(context.Background(), asynq.NewTask(TypeIngestUpdate, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
		svc.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNewIngestTaskPayload(t *testing.T) {
	task := ingestTask(t, IngestPayload{OrgID: "acme", Text: "hi", Source: "cli"})
	assert.Equal(t, TypeIngestUpdate, task.Type())

	var got map[string]string
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, map[string]string{"org_id": "acme", "text": "hi", "source": "cli"}, got)

	task = ingestTask(t, IngestPayload{OrgID: "acme", Text: "hi", Source: "cli", Subject: "ops-bot"})
	got = nil
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, "ops-bot", got["subject"])
}

func TestDigestTaskHandler(t *testing.T) {
	state := &mockStateService{}
	state.On("ListOrgs", mock.Anything).Return([]string{"acme", "globex"}, nil).Once()
	state.On("Digest", mock.Anything, "acme").Return(nil, appErr.Store(errors.New("timeout"), "list truths failed")).Once()
	state.On("Digest", mock.Anything, "globex").Return(&services.Digest{
		LatestRisk: &services.RiskView{Score: 15, Level: "LOW"},
		Truths:     map[string]services.TruthEntry{"priority": {Value: "P1", Version: 2}},
	}, nil).Once()

	err := NewDigestTaskHandler(state).HandleDigest(context.Background(), NewDigestTask())
	require.Error(t, err, "a failed org is reported after the others are processed")
	state.AssertExpectations(t)
}

func TestDigestTaskHandlerListFailure(t *testing.T) {
	state := &mockStateService{}
	state.On("ListOrgs", mock.Anything).Return(nil, errors.New("db down")).Once()

	err := NewDigestTaskHandler(state).HandleDigest(context.Background(), NewDigestTask())
	require.EqualError(t, err, "db down")
	state.AssertNotCalled(t, "Digest", mock.Anything, mock.Anything)
}
