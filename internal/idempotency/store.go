// Package idempotency сохраняет первый ответ на мутирующий запрос с заголовком Idempotency-Key
// и повторяет его для дубликатов.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Response - сохранённый ответ.
type Response struct {
	Done        bool   `json:"done"`
	StatusCode  int    `json:"statusCode,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// Store хранит резервации и ответы по ключу.
type Store interface {
	// Reserve атомарно занимает ключ; false, если ключ уже занят.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Get возвращает запись по ключу или nil.
	Get(ctx context.Context, key string) (*Response, error)
	Save(ctx context.Context, key string, resp Response, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// RedisStore - Store поверх SETNX.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	pending, err := json.Marshal(Response{})
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, pending, ttl).Result()
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Response, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode idempotent response: %w", err)
	}
	return &resp, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, resp Response, ttl time.Duration) error {
	resp.Done = true
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, ttl).Err()
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// responseRecorder пишет ответ клиенту и одновременно копирует его.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body = append(r.body, b...)
	return r.ResponseWriter.Write(b)
}
