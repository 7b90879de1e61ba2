package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/sentinelos/engine/internal/api/middleware"
	"github.com/sentinelos/engine/internal/api/types"
	"github.com/sentinelos/engine/internal/queue/tasks"
	"github.com/sentinelos/engine/internal/services"
	appErr "github.com/sentinelos/engine/pkg/errors"
)

// IngestEnqueuer queues updates for the worker.
type IngestEnqueuer interface {
	EnqueueIngest(ctx context.Context, p tasks.IngestPayload) (string, error)
}

type OrgsHandler struct {
	ingest services.IngestService
	state  services.StateService
	queue  IngestEnqueuer
}

// NewOrgsHandler builds the org handler. queue may be nil, in which case
// asynchronous ingestion is reported as unavailable.
func NewOrgsHandler(ingest services.IngestService, state services.StateService, queue IngestEnqueuer) *OrgsHandler {
	return &OrgsHandler{ingest: ingest, state: state, queue: queue}
}

// PostUpdate godoc
// @Summary      Ingest a status update
// @Tags         orgs
// @Accept       json
// @Produce      json
// @Param        orgID  path   string               true   "Org ID"
// @Param        async  query  bool                 false  "Queue instead of ingesting inline"
// @Param        body   body   types.IngestRequest  true   "Update"
// @Success      201  {object}  types.APIResponse{data=services.IngestResult}
// @Success      202  {object}  types.APIResponse{data=types.AcceptedResponse}
// @Failure      400  {object}  types.APIResponse
// @Failure      503  {object}  types.APIResponse
// @Security     BearerAuth
// @Router       /orgs/{orgID}/updates [post]
func (h *OrgsHandler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	var req types.IngestRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("async") == "true" {
		if h.queue == nil {
			writeError(w, r, appErr.New(appErr.CodeUnavailable, "async ingestion is not configured"))
			return
		}
		u, err := services.NewUpdate(orgID, req.Text, req.Source)
		if err != nil {
			writeError(w, r, err)
			return
		}
		id, err := h.queue.EnqueueIngest(r.Context(), tasks.IngestPayload{
			OrgID:   u.OrgID,
			Text:    u.Text,
			Source:  u.Source,
			Subject: mw.GetSubject(r.Context()),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusAccepted, types.AcceptedResponse{TaskID: id})
		return
	}

	res, err := h.ingest.Ingest(r.Context(), orgID, req.Text, req.Source)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, res)
}

// State godoc
// @Summary      Current org state
// @Tags         orgs
// @Produce      json
// @Param        orgID  path  string  true  "Org ID"
// @Success      200  {object}  types.APIResponse{data=services.OrgState}
// @Security     BearerAuth
// @Router       /orgs/{orgID}/state [get]
func (h *OrgsHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.state.GetOrgState(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, state)
}

// Ask godoc
// @Summary      Ask about an org
// @Description  Questions about what changed return the org digest; anything else returns a hint.
// @Tags         orgs
// @Accept       json
// @Produce      json
// @Param        orgID  path  string            true  "Org ID"
// @Param        body   body  types.AskRequest  true  "Question"
// @Success      200  {object}  types.APIResponse{data=services.Answer}
// @Security     BearerAuth
// @Router       /orgs/{orgID}/ask [post]
func (h *OrgsHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req types.AskRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ans, err := h.state.Ask(r.Context(), chi.URLParam(r, "orgID"), req.Question)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, ans)
}
