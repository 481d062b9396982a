package service

import (
	"context"
	"fmt"
	"time"

	"urban-assistant-be/internal/dto"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/router"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/events"

	"github.com/google/uuid"
)

// Dispatcher routes a question to a pipeline and answers it
type Dispatcher interface {
	Execute(ctx context.Context, req router.Request) (*router.ExecuteResult, error)
}

// DecisionSource hands out the decision records captured for one request
type DecisionSource interface {
	TakeDecisions(id string) []logger.DecisionRecord
}

type IQuestionService interface {
	Ask(ctx context.Context, req dto.QuestionRequest) (*dto.QuestionResponse, error)
}

type questionService struct {
	dispatcher Dispatcher
	publisher  IPublisherService
	decisions  DecisionSource
	logger     logger.ILogger
}

func NewQuestionService(dispatcher Dispatcher, publisher IPublisherService, decisions DecisionSource, log logger.ILogger) IQuestionService {
	return &questionService{
		dispatcher: dispatcher,
		publisher:  publisher,
		decisions:  decisions,
		logger:     log,
	}
}

func (s *questionService) Ask(ctx context.Context, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	correlationID := logger.CorrelationID(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
		ctx = logger.WithCorrelation(ctx, s.logger, correlationID)
	}
	log := logger.Ctx(ctx, s.logger)

	log.Info("Question", "Question received", map[string]interface{}{
		"question":  req.QuestionBody,
		"chunk_num": req.ChunkNum,
	})

	start := time.Now()
	res, err := s.dispatcher.Execute(ctx, router.Request{
		Question:  req.QuestionBody,
		ChunkNum:  req.ChunkNum,
		Territory: req.Territory(),
	})
	latency := time.Since(start)

	event := events.QuestionAnswered{
		CorrelationID:   correlationID,
		Question:        req.QuestionBody,
		TerritoryType:   string(req.TerritoryType),
		TerritoryNameID: req.TerritoryNameId.String(),
		LatencyMs:       latency.Milliseconds(),
		OccurredAt:      time.Now(),
	}
	if err != nil {
		event.Error = err.Error()
	} else {
		event.Pipeline = res.Pipeline.String()
		event.Actions = actionNames(res.Functions)
		event.Answer = res.Answer
	}
	if pubErr := s.publisher.PublishQuestionAnswered(ctx, event); pubErr != nil {
		log.Warn("Question", "Failed to publish audit event", map[string]interface{}{"error": pubErr.Error()})
	}

	if err != nil {
		log.Error("Question", "Question failed", map[string]interface{}{
			"error":      err.Error(),
			"latency_ms": latency.Milliseconds(),
		})
		s.decisions.TakeDecisions(correlationID)
		return nil, err
	}

	log.Info("Question", "Question answered", map[string]interface{}{
		"pipeline":   res.Pipeline,
		"latency_ms": latency.Milliseconds(),
	})

	return &dto.QuestionResponse{
		LlmRes:      res.Answer,
		Pipeline:    res.Pipeline.String(),
		Functions:   actionNames(res.Functions),
		ContextList: nonNil(res.ContextList),
		Logs:        s.decisionLog(correlationID),
	}, nil
}

// decisionLog returns the request's decision records as "LEVEL - message" lines
func (s *questionService) decisionLog(correlationID string) []string {
	records := s.decisions.TakeDecisions(correlationID)
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("%s - %s", r.Level, r.Message)
	}
	return lines
}

func actionNames(actions []tools.ActionName) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.String()
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
