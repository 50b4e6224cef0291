package models

import "time"

type OfferStatus string // Статус предложения перевозчика

const (
	PendingOffer   OfferStatus = "pending"   // Ждёт решения клиента
	AcceptedOffer  OfferStatus = "accepted"  // Принято клиентом
	RejectedOffer  OfferStatus = "rejected"  // Отклонено
	PaidOffer      OfferStatus = "paid"      // Оплачено
	CompletedOffer OfferStatus = "completed" // Перевозка выполнена
)

// Holds сообщает, закрепляет ли предложение в этом статусе отправку за перевозчиком.
func (s OfferStatus) Holds() bool {
	return s == AcceptedOffer || s == PaidOffer || s == CompletedOffer
}

// Offer представляет модель предложения перевозчика по отправке.
type Offer struct {
	ID                string      `json:"id" db:"id"`
	ShipmentID        string      `json:"shipmentId" db:"shipment_id"`
	TransporterID     string      `json:"transporterId" db:"transporter_id"`
	VehicleID         *string     `json:"vehicleId,omitempty" db:"vehicle_id"`
	QuoteRequestID    *string     `json:"quoteRequestId,omitempty" db:"quote_request_id"`
	Amount            float64     `json:"amount" db:"amount"`
	EstimatedDuration string      `json:"estimatedDuration" db:"estimated_duration"`
	Comments          string      `json:"comments" db:"comments"`
	Status            OfferStatus `json:"status" db:"status"`
	AcceptedAt        *time.Time  `json:"acceptedAt,omitempty" db:"accepted_at"`
	PaidAt            *time.Time  `json:"paidAt,omitempty" db:"paid_at"`
	CompletedAt       *time.Time  `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
	CompletionLabel   string      `json:"completionLabel,omitempty" db:"-"`
}

// OfferRequest представляет структуру запроса на создание предложения.
type OfferRequest struct {
	ShipmentID        string  `json:"shipmentId"`
	VehicleID         string  `json:"vehicleId"`
	Amount            float64 `json:"amount"`
	EstimatedDuration string  `json:"estimatedDuration"`
	Comments          string  `json:"comments"`
}
