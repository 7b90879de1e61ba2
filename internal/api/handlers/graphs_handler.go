package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sentinelos/engine/internal/services"
)

type GraphsHandler struct {
	state services.StateService
}

func NewGraphsHandler(state services.StateService) *GraphsHandler { return &GraphsHandler{state: state} }

// Latest godoc
// @Summary      Relationship graph of the latest update
// @Tags         orgs
// @Produce      json
// @Param        orgID  path  string  true  "Org ID"
// @Success      200  {object}  types.APIResponse{data=intelligence.Graph}
// @Failure      404  {object}  types.APIResponse
// @Security     BearerAuth
// @Router       /orgs/{orgID}/graph [get]
func (h *GraphsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	g, err := h.state.LatestGraph(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, g)
}
