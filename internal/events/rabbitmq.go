package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/senyabanana/freight-service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// notificationTypes - события, о которых участникам отправляются уведомления.
var notificationTypes = map[models.EventType]bool{
	models.QuoteRequested: true,
	models.QuoteResponded: true,
	models.OfferCreated:   true,
	models.OfferAccepted:  true,
	models.OfferCompleted: true,
}

// Channel - подмножество amqp.Channel для публикации.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Notification - сообщение в очередь уведомлений.
type Notification struct {
	EventID     string           `json:"eventId"`
	Type        models.EventType `json:"type"`
	AggregateID string           `json:"aggregateId"`
	Recipients  []string         `json:"recipients"`
	Payload     json.RawMessage  `json:"payload"`
}

// RabbitSink кладёт события, требующие уведомления, в устойчивую очередь.
type RabbitSink struct {
	conn  *amqp.Connection
	ch    Channel
	queue string
}

// NewRabbitSink подключается к RabbitMQ и объявляет durable-очередь.
func NewRabbitSink(url, queue string) (*RabbitSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &RabbitSink{conn: conn, ch: ch, queue: queue}, nil
}

// NewRabbitSinkWithChannel позволяет подменить канал в тестах.
func NewRabbitSinkWithChannel(ch Channel, queue string) *RabbitSink {
	return &RabbitSink{ch: ch, queue: queue}
}

func (s *RabbitSink) Name() string { return "rabbitmq" }

func (s *RabbitSink) Send(ctx context.Context, event models.OutboxEvent) error {
	if !notificationTypes[event.EventType] || len(event.Recipients) == 0 {
		return nil
	}
	body, err := json.Marshal(Notification{
		EventID:     event.ID,
		Type:        event.EventType,
		AggregateID: event.AggregateID,
		Recipients:  event.Recipients,
		Payload:     event.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return s.ch.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.EventType),
		Body:         body,
	})
}

func (s *RabbitSink) Close() error {
	if err := s.ch.Close(); err != nil {
		return err
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
