//go:generate mockgen -source=outbox_repo.go -destination=mocks/outbox_repo.go -package=mock_repository

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// staleProcessing - через сколько задача в PROCESSING считается брошенной упавшим экземпляром.
const staleProcessing = 5 * time.Minute

const outboxColumns = `id, event_type, aggregate_id, recipients, payload, status, attempts, last_error,
	created_at, updated_at, completed_at`

// OutboxRepository - интерфейс для работы с таблицей исходящих событий.
type OutboxRepository interface {
	ClaimBatch(ctx context.Context, limit, maxAttempts int) ([]models.OutboxEvent, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	Backlog(ctx context.Context, maxAttempts int) (int, error)
}

// PostgresOutboxRepository - реализация OutboxRepository для базы данных.
type PostgresOutboxRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresOutboxRepository(db *pgxpool.Pool) *PostgresOutboxRepository {
	return &PostgresOutboxRepository{DB: db}
}

// newEvent собирает событие outbox; пустые и повторяющиеся получатели отбрасываются.
func newEvent(eventType models.EventType, aggregateID string, payload any, recipients ...string) (models.OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	seen := make(map[string]struct{}, len(recipients))
	to := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		to = append(to, r)
	}
	return models.OutboxEvent{
		ID:          uuid.New().String(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Recipients:  to,
		Payload:     body,
		Status:      models.OutboxCreated,
	}, nil
}

// insertOutbox пишет события в той же транзакции, что и изменение состояния.
func insertOutbox(ctx context.Context, q querier, events ...models.OutboxEvent) error {
	query := `INSERT INTO outbox_events (id, event_type, aggregate_id, recipients, payload, status)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	for _, e := range events {
		if _, err := q.Exec(ctx, query, e.ID, e.EventType, e.AggregateID, e.Recipients, []byte(e.Payload), models.OutboxCreated); err != nil {
			return fmt.Errorf("failed to insert outbox event %s: %w", e.EventType, err)
		}
	}
	return nil
}

// emit создаёт событие и сразу пишет его в outbox.
func emit(ctx context.Context, q querier, eventType models.EventType, aggregateID string, payload any, recipients ...string) error {
	e, err := newEvent(eventType, aggregateID, payload, recipients...)
	if err != nil {
		return err
	}
	return insertOutbox(ctx, q, e)
}

// ClaimBatch атомарно забирает пачку событий в обработку (FOR UPDATE SKIP LOCKED).
func (r *PostgresOutboxRepository) ClaimBatch(ctx context.Context, limit, maxAttempts int) ([]models.OutboxEvent, error) {
	query := `
		UPDATE outbox_events SET status = $1, updated_at = now()
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE status = $2
			   OR (status = $3 AND attempts < $4)
			   OR (status = $1 AND updated_at < $5)
			ORDER BY created_at
			LIMIT $6
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + outboxColumns

	var events []models.OutboxEvent
	err := pgxscan.Select(ctx, r.DB, &events, query,
		models.OutboxProcessing,
		models.OutboxCreated,
		models.OutboxFailed,
		maxAttempts,
		time.Now().UTC().Add(-staleProcessing),
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim outbox events: %w", err)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })
	return events, nil
}

// MarkDone помечает событие доставленным.
func (r *PostgresOutboxRepository) MarkDone(ctx context.Context, id string) error {
	query := `UPDATE outbox_events
	          SET status = $2, attempts = attempts + 1, last_error = NULL, completed_at = now(), updated_at = now()
	          WHERE id = $1`
	tag, err := r.DB.Exec(ctx, query, id, models.OutboxDone)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event %s done: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFailed увеличивает счётчик попыток и сохраняет причину.
func (r *PostgresOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	query := `UPDATE outbox_events
	          SET status = $2, attempts = attempts + 1, last_error = $3, updated_at = now()
	          WHERE id = $1`
	tag, err := r.DB.Exec(ctx, query, id, models.OutboxFailed, reason)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event %s failed: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Backlog возвращает число событий, которые ещё будут доставляться.
func (r *PostgresOutboxRepository) Backlog(ctx context.Context, maxAttempts int) (int, error) {
	var n int
	query := `SELECT count(*) FROM outbox_events
	          WHERE status IN ($1, $2) OR (status = $3 AND attempts < $4)`
	err := r.DB.QueryRow(ctx, query, models.OutboxCreated, models.OutboxProcessing, models.OutboxFailed, maxAttempts).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count outbox backlog: %w", err)
	}
	return n, nil
}
