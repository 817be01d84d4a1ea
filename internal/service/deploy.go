package service

import (
	"context"

	"github.com/omnara-ai/webhook-server/internal/domain"
	"go.uber.org/zap"
)

// DeployService acknowledges deployment webhooks. No deployment happens;
// the requested target is echoed back.
type DeployService struct {
	logger *zap.Logger
}

func NewDeployService(logger *zap.Logger) *DeployService {
	return &DeployService{logger: logger}
}

// Deploy reads the target environment and version from the payload data,
// falling back to "production" and "latest".
func (s *DeployService) Deploy(ctx context.Context, data map[string]any) (*domain.DeploymentAck, error) {
	environment := stringField(data, "environment", "production")
	version := stringField(data, "version", "latest")

	s.logger.Info("deployment requested",
		zap.String("environment", environment),
		zap.String("version", version),
	)

	return &domain.DeploymentAck{
		Status:      domain.StatusSuccess,
		Message:     "Deployment initiated",
		Environment: environment,
		Version:     version,
	}, nil
}
