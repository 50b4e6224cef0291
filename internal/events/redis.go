package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher - подмножество *redis.Client для PUBLISH.
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink рассылает получателям события короткую подсказку {type, aggregateId}:
// клиенту достаточно перечитать затронутые данные.
type RedisSink struct {
	rdb RedisPublisher
}

func NewRedisSink(rdb RedisPublisher) *RedisSink {
	return &RedisSink{rdb: rdb}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Send(ctx context.Context, event models.OutboxEvent) error {
	hint, err := json.Marshal(models.RefreshHint{Type: event.EventType, AggregateID: event.AggregateID})
	if err != nil {
		return err
	}
	for _, userId := range event.Recipients {
		if err := s.rdb.Publish(ctx, UserChannel(userId), hint).Err(); err != nil {
			return fmt.Errorf("publish to %s: %w", userId, err)
		}
	}
	return nil
}

func (s *RedisSink) Close() error { return nil }

// RedisSubscriber подписывает SSE-поток на канал пользователя.
type RedisSubscriber struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisSubscriber(rdb *redis.Client, logger *zap.Logger) *RedisSubscriber {
	return &RedisSubscriber{rdb: rdb, logger: logger}
}

// Subscribe возвращает поток подсказок; поток закрывается при отмене ctx.
func (s *RedisSubscriber) Subscribe(ctx context.Context, userId string) (<-chan models.RefreshHint, error) {
	sub := s.rdb.Subscribe(ctx, UserChannel(userId))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	hints := make(chan models.RefreshHint, 16)
	go func() {
		defer close(hints)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var hint models.RefreshHint
				if err := json.Unmarshal([]byte(msg.Payload), &hint); err != nil {
					s.logger.Warn("malformed refresh hint", zap.String("user_id", userId), zap.Error(err))
					continue
				}
				select {
				case hints <- hint:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return hints, nil
}
