package service

import (
	"context"
	"encoding/json"

	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher forwards events to an external bus
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IPublisherService interface {
	PublishQuestionAnswered(ctx context.Context, event events.QuestionAnswered) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	external  EventPublisher // nil when NATS is unavailable
	logger    logger.ILogger
}

func NewPublisherService(topicName string, publisher message.Publisher, external EventPublisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		external:  external,
		logger:    log,
	}
}

// PublishQuestionAnswered hands the event to the in-process audit topic and,
// best effort, to the external bus.
func (ps *publisherService) PublishQuestionAnswered(ctx context.Context, event events.QuestionAnswered) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(logger.CorrelationKey, event.CorrelationID)
	msg.SetContext(context.WithoutCancel(ctx))

	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		return err
	}

	if ps.external != nil {
		if err := ps.external.Publish(ctx, event); err != nil {
			logger.Ctx(ctx, ps.logger).Warn("Publisher", "Failed to forward event", map[string]interface{}{
				"event": event.EventType(),
				"error": err.Error(),
			})
		}
	}
	return nil
}
