package worker

import (
	"context"
	"time"

	"github.com/senyabanana/freight-service/internal/metrics"
	"github.com/senyabanana/freight-service/internal/repository"

	"go.uber.org/zap"
)

// QuoteExpiryJob переводит просроченные запросы цены в expired.
type QuoteExpiryJob struct {
	Repo     repository.QuoteRepository
	Logger   *zap.Logger
	Interval string
	Now      func() time.Time
}

func (j *QuoteExpiryJob) Name() string     { return "quote-expiry" }
func (j *QuoteExpiryJob) Schedule() string { return j.Interval }

func (j *QuoteExpiryJob) Run(ctx context.Context) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	expired, err := j.Repo.ExpireQuotes(ctx, now().UTC())
	if err != nil {
		return err
	}
	if len(expired) > 0 {
		metrics.QuotesExpiredTotal.Add(float64(len(expired)))
		j.Logger.Info("quotes expired", zap.Int("count", len(expired)))
	}
	return nil
}

// OutboxBacklogJob обновляет метрику количества недоставленных событий.
type OutboxBacklogJob struct {
	Repo        repository.OutboxRepository
	MaxAttempts int
	Interval    string
}

func (j *OutboxBacklogJob) Name() string     { return "outbox-backlog" }
func (j *OutboxBacklogJob) Schedule() string { return j.Interval }

func (j *OutboxBacklogJob) Run(ctx context.Context) error {
	n, err := j.Repo.Backlog(ctx, j.MaxAttempts)
	if err != nil {
		return err
	}
	metrics.OutboxBacklog.Set(float64(n))
	return nil
}
