package implementation

import (
	"context"
	"errors"

	"urban-assistant-be/internal/entity"
	"urban-assistant-be/internal/mapper"
	"urban-assistant-be/internal/model"
	"urban-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
)

type QuestionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuestionLogMapper
}

func NewQuestionLogRepository(db *gorm.DB) contract.QuestionLogRepository {
	return &QuestionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuestionLogMapper(),
	}
}

func (r *QuestionLogRepositoryImpl) Create(ctx context.Context, log *entity.QuestionLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuestionLogRepositoryImpl) FindByCorrelationId(ctx context.Context, correlationId string) (*entity.QuestionLog, error) {
	var m model.QuestionLog
	err := r.db.WithContext(ctx).
		Where("correlation_id = ?", correlationId).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuestionLogRepositoryImpl) FindRecent(ctx context.Context, limit, offset int) ([]*entity.QuestionLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []*model.QuestionLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*entity.QuestionLog, len(models))
	for i, m := range models {
		logs[i] = r.mapper.ToEntity(m)
	}
	return logs, nil
}
