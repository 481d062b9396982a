package contract

import (
	"context"

	"urban-assistant-be/internal/entity"
)

type QuestionLogRepository interface {
	Create(ctx context.Context, log *entity.QuestionLog) error
	FindByCorrelationId(ctx context.Context, correlationId string) (*entity.QuestionLog, error)
	FindRecent(ctx context.Context, limit, offset int) ([]*entity.QuestionLog, error)
}
