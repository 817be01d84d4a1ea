package domain

import "context"

// Actions with dedicated webhook handlers. Anything else is acknowledged
// with a generic message.
const (
	ActionCreateAgent = "create_agent"
	ActionDeploy      = "deploy"
	ActionCodeReview  = "code_review"
)

// ActionUnknown substitutes for an absent action field.
const ActionUnknown = "unknown"

// StatusSuccess is reported by every handled action and listing.
const StatusSuccess = "success"

// WebhookPayload is the body of POST /webhook. Both fields are optional:
// a missing action dispatches as ActionUnknown, a missing data block is
// treated as empty.
type WebhookPayload struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

// Dispatcher routes a webhook payload to the handler registered for its
// action.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload *WebhookPayload) (any, error)
}

type ActionAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AgentCreated struct {
	Status  string         `json:"status"`
	AgentID string         `json:"agent_id"`
	Message string         `json:"message"`
	Config  map[string]any `json:"config"`
}

type DeploymentAck struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type ReviewAck struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Repository string `json:"repository"`
	Branch     string `json:"branch"`
}
