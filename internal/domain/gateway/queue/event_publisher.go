package queue

import (
	"context"

	"forecast-api/internal/domain/model"
	"forecast-api/pkg/log"
	"forecast-api/pkg/msg"

	"go.uber.org/zap"
)

const eventTypeForecastServed = "ForecastServed"

// EventPublisher publishes domain events after a request is served
type EventPublisher interface {
	HealthGateway
	PublishForecastServed(ctx context.Context, event model.ForecastServedEvent) error
}

type sqsEventPublisher struct {
	sender    Sender
	queueName string
}

// NewSQSEventPublisher publishes events as JSON messages on queueName
func NewSQSEventPublisher(sender Sender, queueName string) EventPublisher {
	return &sqsEventPublisher{
		sender:    sender,
		queueName: queueName,
	}
}

func (publisher *sqsEventPublisher) PublishForecastServed(ctx context.Context, event model.ForecastServedEvent) error {
	messageID, err := publisher.sender.SendMessage(ctx, publisher.queueName, event, map[string]string{
		"eventType": eventTypeForecastServed,
		"eventId":   event.EventID,
	})
	if err != nil {
		return err
	}

	log.Debug(msg.GetMessage("forecast.event.published", event.EventID, publisher.queueName), zap.String("message_id", messageID))
	return nil
}

func (publisher *sqsEventPublisher) Health(ctx context.Context) model.ComponentHealthStatus {
	details := map[string]string{"queue_name": publisher.queueName}

	queueURL, err := publisher.sender.CheckQueue(ctx, publisher.queueName)
	if err != nil {
		details["error"] = err.Error()
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	details["queue_url"] = queueURL
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}

type noopEventPublisher struct{}

// NewNoopEventPublisher drops every event, used when events are disabled
func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) PublishForecastServed(context.Context, model.ForecastServedEvent) error {
	return nil
}

func (noopEventPublisher) Health(context.Context) model.ComponentHealthStatus {
	return model.DisabledComponent("events disabled")
}
