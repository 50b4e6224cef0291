// Package events доставляет события из outbox во внешние каналы: Kafka, RabbitMQ и Redis pub/sub.
package events

import (
	"context"

	"github.com/senyabanana/freight-service/internal/models"
)

// Sink - один канал доставки событий.
type Sink interface {
	Name() string
	Send(ctx context.Context, event models.OutboxEvent) error
	Close() error
}

// UserChannel - канал Redis с подсказками на обновление для пользователя.
func UserChannel(userId string) string {
	return "freight:user:" + userId
}
