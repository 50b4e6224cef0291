package models

import "time"

// Review представляет отзыв клиента о перевозчике по завершённой отправке.
type Review struct {
	ID            string    `json:"id" db:"id"`
	ShipmentID    string    `json:"shipmentId" db:"shipment_id"`
	TransporterID string    `json:"transporterId" db:"transporter_id"`
	ClientID      string    `json:"clientId" db:"client_id"`
	Rating        int       `json:"rating" db:"rating"`
	Comment       string    `json:"comment" db:"comment"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// ReviewRequest представляет структуру запроса на создание отзыва.
type ReviewRequest struct {
	ShipmentID string `json:"shipmentId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// RatingSummary - средняя оценка и число отзывов перевозчика.
type RatingSummary struct {
	Average float64 `json:"average" db:"average"`
	Count   int     `json:"count" db:"count"`
}

// TransporterReviews - ответ со списком отзывов перевозчика.
type TransporterReviews struct {
	Summary RatingSummary `json:"summary"`
	Reviews []Review      `json:"reviews"`
}
