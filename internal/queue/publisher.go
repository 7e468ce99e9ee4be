package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher interface {
	PublishReceiptIssued(ctx context.Context, event ReceiptIssuedEvent) error
	Close() error
}

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpPublisher struct {
	conn  *amqp.Connection
	open  func() (channel, error)
	queue string
	log   *zap.Logger
}

// NewPublisher dials the broker once; each publish opens a short-lived channel.
func NewPublisher(url, queue string, log *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	return &amqpPublisher{
		conn: conn,
		open: func() (channel, error) {
			return conn.Channel()
		},
		queue: queue,
		log:   log.With(zap.String("component", "publisher")),
	}, nil
}

func (p *amqpPublisher) PublishReceiptIssued(ctx context.Context, event ReceiptIssuedEvent) error {
	ch, err := p.open()
	if err != nil {
		p.log.Error("Failed to open channel", zap.Error(err))
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.log.Error("Failed to declare queue", zap.Error(err), zap.String("queue", p.queue))
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode receipt event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.Code,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Error("Failed to publish receipt event", zap.Error(err), zap.String("code", event.Code))
		return fmt.Errorf("publish receipt %s: %w", event.Code, err)
	}

	p.log.Info("Receipt event published", zap.String("code", event.Code), zap.String("queue", p.queue))
	return nil
}

func (p *amqpPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishReceiptIssued(context.Context, ReceiptIssuedEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
