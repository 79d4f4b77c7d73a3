package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

const submissionCreatedType = "submission.created"

// EventPublisher отправляет события о новых заявках. Сервис только публикует:
// очереди и их привязки объявляют потребители.
type EventPublisher interface {
	PublishSubmissionCreated(ctx context.Context, event *models.SubmissionCreatedEvent) error
	Close() error
}

type rabbitMQPublisher struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
	timeout    time.Duration
	logger     zerolog.Logger
}

func NewRabbitMQPublisher(url, exchange, routingKey string, logger zerolog.Logger) (EventPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// topic: потребители могут подписаться на submission.*
	if err := channel.ExchangeDeclare(exchange, amqp091.ExchangeTopic, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Info().
		Str("exchange", exchange).
		Str("routing_key", routingKey).
		Msg("RabbitMQ publisher ready")

	return &rabbitMQPublisher{
		conn:       conn,
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		timeout:    5 * time.Second,
		logger:     logger,
	}, nil
}

func (p *rabbitMQPublisher) PublishSubmissionCreated(ctx context.Context, event *models.SubmissionCreatedEvent) error {
	msg, err := submissionMessage(event)
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.channel.PublishWithContext(publishCtx, p.exchange, p.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", submissionCreatedType, err)
	}

	p.logger.Debug().
		Str("primary_id", event.PrimaryID).
		Str("session_id", event.SessionID).
		Str("message_id", msg.MessageId).
		Msg("Submission created event published")

	return nil
}

// submissionMessage собирает persistent JSON-сообщение; время сообщения берется из события.
func submissionMessage(event *models.SubmissionCreatedEvent) (amqp091.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.New().String(),
		Type:         submissionCreatedType,
		Timestamp:    time.Unix(event.Timestamp, 0).UTC(),
		Body:         body,
	}, nil
}

func (p *rabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
	}
	return p.conn.Close()
}
