package service

import (
	"context"
	"encoding/json"
	"time"

	"urban-assistant-be/internal/entity"
	"urban-assistant-be/internal/metrics"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/internal/repository/contract"
	"urban-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService persists every answered question to the audit table
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	repo       contract.QuestionLogRepository
	logger     logger.ILogger
	retry      middleware.Retry
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	repo contract.QuestionLogRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		repo:       repo,
		logger:     log,
		retry: middleware.Retry{
			MaxRetries:      4,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
		},
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	log := cs.logger.WithCorrelationID(msg.Metadata.Get(logger.CorrelationKey))

	var event events.QuestionAnswered
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Error("Audit", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never become valid
		return
	}

	record := &entity.QuestionLog{
		Id:              uuid.New(),
		CorrelationId:   event.CorrelationID,
		Question:        event.Question,
		TerritoryType:   event.TerritoryType,
		TerritoryNameId: event.TerritoryNameID,
		Pipeline:        event.Pipeline,
		Actions:         event.Actions,
		Answer:          event.Answer,
		LatencyMs:       event.LatencyMs,
		CreatedAt:       event.OccurredAt,
	}
	if event.Error != "" {
		record.Error = &event.Error
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	// a failed write is retried with backoff, then dropped so the bus keeps moving
	msg.SetContext(ctx)
	persist := cs.retry.Middleware(func(*message.Message) ([]*message.Message, error) {
		return nil, cs.repo.Create(ctx, record)
	})
	if _, err := persist(msg); err != nil {
		metrics.AuditDropped.Inc()
		log.Error("Audit", "Failed to persist question log", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	log.Debug("Audit", "Question log persisted", map[string]interface{}{"id": record.Id.String()})
	msg.Ack()
}
