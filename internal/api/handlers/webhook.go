package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/omnara-ai/webhook-server/internal/domain"
)

// WebhookHandler receives authenticated webhook calls and hands them to
// the dispatcher.
type WebhookHandler struct {
	dispatcher domain.Dispatcher
}

func NewWebhookHandler(dispatcher domain.Dispatcher) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher}
}

// Receive handles POST /webhook.
// The body must be exactly one JSON document; malformed bodies, trailing
// content, and dispatch failures all surface as 500 responses carrying the
// error text.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		internalError(w, fmt.Errorf("invalid webhook payload: %w", err))
		return
	}

	var payload domain.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		internalError(w, fmt.Errorf("invalid webhook payload: %w", err))
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), &payload)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
