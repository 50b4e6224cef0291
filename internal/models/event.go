package models

import (
	"encoding/json"
	"time"
)

type (
	EventType    string // Тип доменного события
	OutboxStatus string // Статус записи outbox
)

const (
	ShipmentCreated   EventType = "shipment.created"
	ShipmentUpdated   EventType = "shipment.updated"
	ShipmentCancelled EventType = "shipment.cancelled"
	TrackingChanged   EventType = "shipment.tracking_changed"
	OfferCreated      EventType = "offer.created"
	OfferAccepted     EventType = "offer.accepted"
	OfferRejected     EventType = "offer.rejected"
	OfferPaid         EventType = "offer.paid"
	OfferCompleted    EventType = "offer.completed"
	QuoteRequested    EventType = "quote.requested"
	QuoteResponded    EventType = "quote.responded"
	QuoteAccepted     EventType = "quote.accepted"
	QuoteRejected     EventType = "quote.rejected"
	QuoteExpired      EventType = "quote.expired"
	ReviewCreated     EventType = "review.created"

	OutboxCreated    OutboxStatus = "CREATED"
	OutboxProcessing OutboxStatus = "PROCESSING"
	OutboxFailed     OutboxStatus = "FAILED"
	OutboxDone       OutboxStatus = "DONE"
)

// OutboxEvent - доменное событие, записанное в той же транзакции, что и изменение.
type OutboxEvent struct {
	ID          string          `json:"id" db:"id"`
	EventType   EventType       `json:"type" db:"event_type"`
	AggregateID string          `json:"aggregateId" db:"aggregate_id"`
	Recipients  []string        `json:"recipients" db:"recipients"`
	Payload     json.RawMessage `json:"payload" db:"payload"`
	Status      OutboxStatus    `json:"-" db:"status"`
	Attempts    int             `json:"-" db:"attempts"`
	LastError   *string         `json:"-" db:"last_error"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"-" db:"updated_at"`
	CompletedAt *time.Time      `json:"-" db:"completed_at"`
}

// RefreshHint - короткое уведомление клиенту о том, что данные нужно перечитать.
type RefreshHint struct {
	Type        EventType `json:"type"`
	AggregateID string    `json:"aggregateId"`
}
