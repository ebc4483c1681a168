package service

import (
	"context"

	"tidybook/pkg/kafka"
	"tidybook/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingCancelled     = "booking.cancelled"

	eventSchemaVersion = "1"
	eventSource        = "tidybook-api"
)

// EventPublisher emits booking lifecycle events. Publish failures must never
// fail the request that triggered them.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *model.Booking) error
}

type kafkaEventPublisher struct {
	producer *kafka.Producer
}

func NewKafkaEventPublisher(producer *kafka.Producer) EventPublisher {
	return &kafkaEventPublisher{producer: producer}
}

func (p *kafkaEventPublisher) PublishBookingEvent(ctx context.Context, eventType string, booking *model.Booking) error {
	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(booking).
		WithEventType(eventType).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(eventSource).
		Build()

	return p.producer.Publish(ctx, msg)
}

type noopEventPublisher struct{}

// NewNoopEventPublisher is used when Kafka is disabled.
func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) PublishBookingEvent(context.Context, string, *model.Booking) error {
	return nil
}
