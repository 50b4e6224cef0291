package events

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/senyabanana/freight-service/internal/metrics"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"

	"go.uber.org/zap"
)

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Publisher периодически забирает события из outbox и рассылает их во все каналы.
// Доставка "хотя бы один раз": при ошибке любого канала событие уходит повторно во все.
type Publisher struct {
	repo           repository.OutboxRepository
	sinks          []Sink
	config         PublisherConfig
	logger         *zap.Logger
	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
}

func NewPublisher(repo repository.OutboxRepository, sinks []Sink, config PublisherConfig, logger *zap.Logger) *Publisher {
	return &Publisher{
		repo:           repo,
		sinks:          sinks,
		config:         config,
		logger:         logger,
		shutdownSignal: make(chan struct{}),
	}
}

// Run крутит цикл до отмены ctx или Shutdown.
func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("starting outbox publisher", zap.Duration("poll_interval", p.config.PollInterval))
	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := p.ProcessBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				p.logger.Error("outbox publisher failed to process batch", zap.Error(err))
			}
		case <-p.shutdownSignal:
			p.logger.Info("outbox publisher received shutdown signal, stopping")
			return
		case <-ctx.Done():
			p.logger.Info("outbox publisher context cancelled, stopping")
			return
		}
	}
}

// Shutdown останавливает цикл, дожидается текущей пачки и закрывает каналы.
func (p *Publisher) Shutdown(ctx context.Context) {
	p.stopOnce.Do(func() {
		close(p.shutdownSignal)
		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			p.logger.Info("outbox publisher shutdown complete")
		case <-ctx.Done():
			p.logger.Warn("outbox publisher shutdown timed out")
		}

		for _, s := range p.sinks {
			if err := s.Close(); err != nil {
				p.logger.Error("failed to close sink", zap.String("sink", s.Name()), zap.Error(err))
			}
		}
	})
}

// ProcessBatch доставляет одну пачку и возвращает число успешно доставленных событий.
func (p *Publisher) ProcessBatch(ctx context.Context) (int, error) {
	batch, err := p.repo.ClaimBatch(ctx, p.config.BatchSize, p.config.MaxAttempts)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, event := range batch {
		select {
		case <-p.shutdownSignal:
			// оставшиеся события останутся в PROCESSING и будут подобраны после staleProcessing
			return delivered, nil
		case <-ctx.Done():
			return delivered, ctx.Err()
		default:
		}

		if err := p.deliver(ctx, event); err != nil {
			metrics.OutboxFailedTotal.Inc()
			p.logger.Warn("outbox event delivery failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.EventType)),
				zap.Int("attempt", event.Attempts+1),
				zap.Error(err))
			if markErr := p.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				p.logger.Error("failed to mark outbox event failed", zap.String("event_id", event.ID), zap.Error(markErr))
			}
			if event.Attempts+1 >= p.config.MaxAttempts {
				p.logger.Error("outbox event gave up", zap.String("event_id", event.ID), zap.Error(err))
			}
			continue
		}

		if err := p.repo.MarkDone(ctx, event.ID); err != nil {
			p.logger.Error("failed to mark outbox event done", zap.String("event_id", event.ID), zap.Error(err))
			continue
		}
		metrics.OutboxPublishedTotal.Inc()
		delivered++
	}
	return delivered, nil
}

func (p *Publisher) deliver(ctx context.Context, event models.OutboxEvent) error {
	var failed []string
	var errs []error
	for _, s := range p.sinks {
		if err := s.Send(ctx, event); err != nil {
			failed = append(failed, s.Name())
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(failed, ",") + ": " + errors.Join(errs...).Error())
}
