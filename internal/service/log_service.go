package service

import (
	"context"
	"fmt"

	"urban-assistant-be/internal/dto"
	"urban-assistant-be/internal/entity"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/internal/repository/contract"
)

type ILogService interface {
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, id string) (*dto.LogDetailResponse, error)
	GetQuestionLogs(ctx context.Context, page, limit int) ([]dto.QuestionLogResponse, error)
	GetQuestionLog(ctx context.Context, correlationId string) (*dto.QuestionLogResponse, error)
}

type logService struct {
	logger logger.ILogger
	repo   contract.QuestionLogRepository
}

func NewLogService(log logger.ILogger, repo contract.QuestionLogRepository) ILogService {
	return &logService{logger: log, repo: repo}
}

func (s *logService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]dto.LogListResponse, error) {
	page, limit = normalizePage(page, limit)

	entries, err := s.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]dto.LogListResponse, len(entries))
	for i, e := range entries {
		res[i] = toLogListResponse(e)
	}
	return res, nil
}

func (s *logService) GetLogDetail(ctx context.Context, id string) (*dto.LogDetailResponse, error) {
	e, err := s.logger.GetLogById(id)
	if err != nil {
		return nil, err
	}
	return &dto.LogDetailResponse{
		LogListResponse: toLogListResponse(*e),
		Details:         e.Details,
	}, nil
}

func (s *logService) GetQuestionLogs(ctx context.Context, page, limit int) ([]dto.QuestionLogResponse, error) {
	page, limit = normalizePage(page, limit)

	logs, err := s.repo.FindRecent(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]dto.QuestionLogResponse, len(logs))
	for i, l := range logs {
		res[i] = toQuestionLogResponse(l)
	}
	return res, nil
}

// GetQuestionLog returns nil without error when no question has the id.
// The decision records still present in the active log file are attached.
func (s *logService) GetQuestionLog(ctx context.Context, correlationId string) (*dto.QuestionLogResponse, error) {
	l, err := s.repo.FindByCorrelationId(ctx, correlationId)
	if err != nil || l == nil {
		return nil, err
	}
	res := toQuestionLogResponse(l)

	entries, err := s.logger.GetLogsByCorrelationID(correlationId)
	if err != nil {
		return nil, err
	}
	for _, e := range logger.FilterDecisionRecords(entries) {
		res.Logs = append(res.Logs, fmt.Sprintf("%s - %s", e.Level, e.Message))
	}
	return &res, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func toLogListResponse(e logger.LogEntry) dto.LogListResponse {
	return dto.LogListResponse{
		Id:            e.Id,
		Timestamp:     e.Timestamp,
		Level:         e.Level,
		Module:        e.Module,
		Message:       e.Message,
		CorrelationId: e.CorrelationID,
	}
}

func toQuestionLogResponse(l *entity.QuestionLog) dto.QuestionLogResponse {
	return dto.QuestionLogResponse{
		Id:              l.Id.String(),
		CorrelationId:   l.CorrelationId,
		Question:        l.Question,
		TerritoryType:   l.TerritoryType,
		TerritoryNameId: l.TerritoryNameId,
		Pipeline:        l.Pipeline,
		Actions:         l.Actions,
		Answer:          l.Answer,
		Error:           l.Error,
		LatencyMs:       l.LatencyMs,
		CreatedAt:       l.CreatedAt,
	}
}
