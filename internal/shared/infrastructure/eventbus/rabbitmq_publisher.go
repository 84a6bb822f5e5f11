package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pulsedev/pulse/internal/shared/domain"
)

// ExchangeName is the topic exchange for domain events.
const ExchangeName = "pulse.domain.events"

// eventEnvelope is the wire format for events leaving the process.
type eventEnvelope struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	RoutingKey  string    `json:"routingKey"`
	OccurredAt  time.Time `json:"occurredAt"`
	Payload     any       `json:"payload"`
}

// RabbitMQPublisher publishes domain events to RabbitMQ for multi-process
// deployments. Consumers in this process use the in-process bus instead.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewRabbitMQPublisher connects to the broker and declares the exchange.
func NewRabbitMQPublisher(url string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info("RabbitMQ publisher connected", "exchange", ExchangeName)

	return &RabbitMQPublisher{conn: conn, channel: ch, logger: logger}, nil
}

// PublishEvent serializes the event and publishes it with its routing key.
func (p *RabbitMQPublisher) PublishEvent(ctx context.Context, event domain.DomainEvent) error {
	body, err := json.Marshal(eventEnvelope{
		EventID:     event.EventID().String(),
		AggregateID: event.AggregateID().String(),
		RoutingKey:  event.RoutingKey(),
		OccurredAt:  event.OccurredAt(),
		Payload:     event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		ExchangeName,
		event.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("failed to publish event",
			"routing_key", event.RoutingKey(),
			"error", err,
		)
		return err
	}

	p.logger.Debug("event published", "routing_key", event.RoutingKey(), "size", len(body))
	return nil
}

// Close closes the channel and connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Warn("error closing channel", "error", err)
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// FanoutPublisher publishes every event to multiple publishers, ignoring
// individual failures beyond logging. Used to pair the in-process bus with a
// broker publisher.
type FanoutPublisher struct {
	publishers []Publisher
	logger     *slog.Logger
}

// NewFanoutPublisher creates a publisher that delegates to all targets.
func NewFanoutPublisher(logger *slog.Logger, publishers ...Publisher) *FanoutPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FanoutPublisher{publishers: publishers, logger: logger}
}

// PublishEvent delivers the event to every target publisher.
func (p *FanoutPublisher) PublishEvent(ctx context.Context, event domain.DomainEvent) error {
	for _, pub := range p.publishers {
		if err := pub.PublishEvent(ctx, event); err != nil {
			p.logger.Error("publisher failed", "routing_key", event.RoutingKey(), "error", err)
		}
	}
	return nil
}

// Close closes all target publishers, returning the first error.
func (p *FanoutPublisher) Close() error {
	var firstErr error
	for _, pub := range p.publishers {
		if err := pub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
