package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/omnara-ai/webhook-server/internal/service"
)

// AgentHandler serves the unauthenticated agent stub endpoints.
type AgentHandler struct {
	svc *service.AgentService
}

func NewAgentHandler(svc *service.AgentService) *AgentHandler {
	return &AgentHandler{svc: svc}
}

// Create handles POST /api/agents. The entire body is taken as the agent
// configuration; an absent body means an empty configuration, anything
// that is not a single JSON object is a processing failure.
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		internalError(w, fmt.Errorf("invalid agent config: %w", err))
		return
	}

	var config map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &config); err != nil {
			internalError(w, fmt.Errorf("invalid agent config: %w", err))
			return
		}
	}

	created, err := h.svc.Create(r.Context(), config)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
