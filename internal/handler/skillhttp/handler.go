// Package skillhttp adapts the skill dispatcher to HTTP. It only decodes
// the inbound envelope and encodes the dispatched response; every routing
// and error decision lives in the skill service.
package skillhttp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joemocode/cakewalk-skill/internal/model/request"
	"github.com/joemocode/cakewalk-skill/internal/service/skill"
	"github.com/joemocode/cakewalk-skill/pkg/utils"
)

// Handler serves skill events over HTTP.
type Handler struct {
	skill *skill.Service
}

// New creates the skill HTTP handler.
func New(svc *skill.Service) *Handler {
	return &Handler{skill: svc}
}

// RegisterRoutes mounts the skill endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/skill", h.handleEvent)
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	var env request.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if env.Type == "" {
		utils.RespondError(w, http.StatusBadRequest, "type is required")
		return
	}

	resp := h.skill.Dispatch(r.Context(), env)
	utils.RespondJSON(w, http.StatusOK, resp)
}
