package models

import "time"

type QuoteStatus string // Статус запроса котировки

const (
	PendingQuote   QuoteStatus = "pending"   // Ждёт ответа перевозчика
	RespondedQuote QuoteStatus = "responded" // Перевозчик назвал цену
	AcceptedQuote  QuoteStatus = "accepted"  // Клиент принял цену
	RejectedQuote  QuoteStatus = "rejected"  // Клиент отказался
	ExpiredQuote   QuoteStatus = "expired"   // Истёк срок
)

// Open сообщает, можно ли ещё ответить на запрос или принять его.
func (s QuoteStatus) Open() bool {
	return s == PendingQuote || s == RespondedQuote
}

// QuoteRequest представляет запрос клиента на цену у конкретного перевозчика.
type QuoteRequest struct {
	ID               string      `json:"id" db:"id"`
	ShipmentID       string      `json:"shipmentId" db:"shipment_id"`
	ClientID         string      `json:"clientId" db:"client_id"`
	TransporterID    string      `json:"transporterId" db:"transporter_id"`
	Message          string      `json:"message" db:"message"`
	Status           QuoteStatus `json:"status" db:"status"`
	ResponseAmount   *float64    `json:"responseAmount,omitempty" db:"response_amount"`
	ResponseMessage  string      `json:"responseMessage" db:"response_message"`
	ResponseDuration string      `json:"responseDuration" db:"response_duration"`
	RespondedAt      *time.Time  `json:"respondedAt,omitempty" db:"responded_at"`
	ExpiresAt        time.Time   `json:"expiresAt" db:"expires_at"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}

// QuoteRequestBody представляет запрос клиента на создание котировки.
type QuoteRequestBody struct {
	ShipmentID    string `json:"shipmentId"`
	TransporterID string `json:"transporterId"`
	Message       string `json:"message"`
}

// QuoteResponse - ответ перевозчика на запрос котировки.
type QuoteResponse struct {
	Amount   float64 `json:"amount"`
	Message  string  `json:"message"`
	Duration string  `json:"duration"`
}
