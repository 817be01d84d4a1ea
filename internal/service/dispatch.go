package service

import (
	"context"
	"fmt"

	"github.com/omnara-ai/webhook-server/internal/domain"
	"go.uber.org/zap"
)

// ActionFunc handles one webhook action using the payload's data block.
type ActionFunc func(ctx context.Context, data map[string]any) (any, error)

// Dispatcher routes webhook payloads to per-action handlers. Actions
// without a registered handler are acknowledged with a generic message.
type Dispatcher struct {
	actions map[string]ActionFunc
	logger  *zap.Logger
}

func NewDispatcher(agents *AgentService, deploys *DeployService, reviews *ReviewService, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		actions: make(map[string]ActionFunc),
		logger:  logger,
	}

	d.actions[domain.ActionCreateAgent] = func(ctx context.Context, data map[string]any) (any, error) {
		return agents.Create(ctx, data)
	}
	d.actions[domain.ActionDeploy] = func(ctx context.Context, data map[string]any) (any, error) {
		return deploys.Deploy(ctx, data)
	}
	d.actions[domain.ActionCodeReview] = func(ctx context.Context, data map[string]any) (any, error) {
		return reviews.Review(ctx, data)
	}

	return d
}

// Dispatch resolves the payload's action and runs its handler. A missing
// action falls back to domain.ActionUnknown, a missing data block to an
// empty map. Handler errors propagate to the caller untouched.
func (d *Dispatcher) Dispatch(ctx context.Context, payload *domain.WebhookPayload) (any, error) {
	action := payload.Action
	if action == "" {
		action = domain.ActionUnknown
	}
	data := payload.Data
	if data == nil {
		data = map[string]any{}
	}

	d.logger.Info("webhook received", zap.String("action", action))

	if handle, ok := d.actions[action]; ok {
		return handle(ctx, data)
	}

	return &domain.ActionAck{
		Status:  domain.StatusSuccess,
		Message: fmt.Sprintf("Action '%s' received", action),
	}, nil
}

// stringField pulls a string out of payload data. The fallback applies
// when the key is absent or the value is not a string; an empty string
// present under the key is returned as-is.
func stringField(data map[string]any, key, fallback string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}
