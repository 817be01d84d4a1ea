package service

import (
	"context"

	"github.com/omnara-ai/webhook-server/internal/domain"
	"go.uber.org/zap"
)

// ReviewService acknowledges code review webhooks. No review is started;
// the requested repository and branch are echoed back.
type ReviewService struct {
	logger *zap.Logger
}

func NewReviewService(logger *zap.Logger) *ReviewService {
	return &ReviewService{logger: logger}
}

// Review reads the repository and branch from the payload data, falling
// back to "unknown" and "main".
func (s *ReviewService) Review(ctx context.Context, data map[string]any) (*domain.ReviewAck, error) {
	repository := stringField(data, "repository", "unknown")
	branch := stringField(data, "branch", "main")

	s.logger.Info("code review requested",
		zap.String("repository", repository),
		zap.String("branch", branch),
	)

	return &domain.ReviewAck{
		Status:     domain.StatusSuccess,
		Message:    "Code review initiated",
		Repository: repository,
		Branch:     branch,
	}, nil
}
