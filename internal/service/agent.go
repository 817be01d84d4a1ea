package service

import (
	"context"

	"github.com/omnara-ai/webhook-server/internal/domain"
	"go.uber.org/zap"
)

// AgentService fabricates agent acknowledgements. No agent process is
// provisioned and nothing is stored; records live only in the response.
type AgentService struct {
	ids    *IDGenerator
	logger *zap.Logger
}

func NewAgentService(ids *IDGenerator, logger *zap.Logger) *AgentService {
	return &AgentService{ids: ids, logger: logger}
}

// Create assigns a fresh agent identifier and echoes the requested
// configuration back. A nil config is treated as empty.
func (s *AgentService) Create(ctx context.Context, config map[string]any) (*domain.AgentCreated, error) {
	if config == nil {
		config = map[string]any{}
	}

	id := s.ids.Next()
	s.logger.Info("agent created", zap.String("agent_id", id))

	return &domain.AgentCreated{
		Status:  domain.StatusSuccess,
		AgentID: id,
		Message: "Agent created successfully",
		Config:  config,
	}, nil
}

// List returns the fixed agent catalogue. Creates never alter it.
func (s *AgentService) List(ctx context.Context) (*domain.AgentList, error) {
	return &domain.AgentList{
		Status: domain.StatusSuccess,
		Agents: []domain.AgentSummary{
			{ID: "agent_1", Status: "running", Created: "2024-01-01"},
			{ID: "agent_2", Status: "stopped", Created: "2024-01-02"},
		},
	}, nil
}
