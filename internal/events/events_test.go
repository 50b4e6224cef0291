package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"
	mock_repository "github.com/senyabanana/freight-service/internal/repository/mocks"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error { return nil }

type fakeRedis struct {
	channels []string
	err      error
}

func (r *fakeRedis) Publish(_ context.Context, channel string, _ interface{}) *redis.IntCmd {
	r.channels = append(r.channels, channel)
	return redis.NewIntResult(1, r.err)
}

type stubSink struct {
	name string
	err  error
	sent int
}

func (s *stubSink) Name() string { return s.name }
func (s *stubSink) Send(context.Context, models.OutboxEvent) error {
	s.sent++
	return s.err
}
func (s *stubSink) Close() error { return nil }

func sampleEvent(t models.EventType) models.OutboxEvent {
	return models.OutboxEvent{
		ID:          "evt-1",
		EventType:   t,
		AggregateID: "ship-1",
		Recipients:  []string{"client-1", "transporter-1"},
		Payload:     json.RawMessage(`{"offerId":"offer-1"}`),
	}
}

func TestKafkaSink_Send(t *testing.T) {
	w := &fakeWriter{}
	sink := NewKafkaSinkWithWriter(w)

	require.NoError(t, sink.Send(context.Background(), sampleEvent(models.OfferAccepted)))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "ship-1", string(w.msgs[0].Key))

	var decoded models.OutboxEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, models.OfferAccepted, decoded.EventType)
	assert.Equal(t, []string{"client-1", "transporter-1"}, decoded.Recipients)
}

func TestRabbitSink_OnlyNotifications(t *testing.T) {
	ch := &fakeChannel{}
	sink := NewRabbitSinkWithChannel(ch, "freight.notifications")

	require.NoError(t, sink.Send(context.Background(), sampleEvent(models.ShipmentUpdated)))
	assert.Empty(t, ch.published)

	require.NoError(t, sink.Send(context.Background(), sampleEvent(models.QuoteRequested)))
	require.Len(t, ch.published, 1)
	assert.Equal(t, "freight.notifications", ch.keys[0])
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var n Notification
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &n))
	assert.Equal(t, models.QuoteRequested, n.Type)
	assert.Equal(t, "evt-1", n.EventID)
}

func TestRedisSink_PublishesPerRecipient(t *testing.T) {
	r := &fakeRedis{}
	sink := NewRedisSink(r)

	require.NoError(t, sink.Send(context.Background(), sampleEvent(models.OfferCreated)))
	assert.Equal(t, []string{"freight:user:client-1", "freight:user:transporter-1"}, r.channels)

	r.err = errors.New("down")
	assert.Error(t, sink.Send(context.Background(), sampleEvent(models.OfferCreated)))
}

func TestPublisher_ProcessBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockOutboxRepository(ctrl)

	ok := &stubSink{name: "ok"}
	flaky := &secondCallSink{name: "flaky"}
	p := NewPublisher(repo, []Sink{ok, flaky}, PublisherConfig{BatchSize: 10, MaxAttempts: 3}, zap.NewNop())

	good := sampleEvent(models.OfferCreated)
	bad := sampleEvent(models.OfferAccepted)
	bad.ID = "evt-2"

	repo.EXPECT().ClaimBatch(gomock.Any(), 10, 3).Return([]models.OutboxEvent{good, bad}, nil)
	repo.EXPECT().MarkDone(gomock.Any(), "evt-1").Return(nil)
	repo.EXPECT().MarkFailed(gomock.Any(), "evt-2", gomock.Any()).Return(nil)

	delivered, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 2, ok.sent)
}

func TestPublisher_ClaimError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockOutboxRepository(ctrl)
	p := NewPublisher(repo, nil, PublisherConfig{BatchSize: 5, MaxAttempts: 5}, zap.NewNop())

	repo.EXPECT().ClaimBatch(gomock.Any(), 5, 5).Return(nil, errors.New("db down"))

	_, err := p.ProcessBatch(context.Background())
	assert.Error(t, err)
}

// secondCallSink падает на каждом втором вызове.
type secondCallSink struct {
	name  string
	calls int
}

func (s *secondCallSink) Name() string { return s.name }
func (s *secondCallSink) Send(context.Context, models.OutboxEvent) error {
	s.calls++
	if s.calls%2 == 0 {
		return errors.New("broker unavailable")
	}
	return nil
}
func (s *secondCallSink) Close() error { return nil }
