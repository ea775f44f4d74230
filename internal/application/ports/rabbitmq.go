package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"user-profile-api/internal/infrastructure/mq"
)

// EventPublisher hands lifecycle events to the outbound worker.
type EventPublisher interface {
	Publish(ctx context.Context, e mq.Event)
}

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetInputChan() chan mq.Event
	GetConn() *amqp091.Connection
}
