package models

import "time"

type DocumentStatus string // Статус проверки документа

const (
	PendingDocument  DocumentStatus = "pending"
	ApprovedDocument DocumentStatus = "approved"
	RejectedDocument DocumentStatus = "rejected"
)

// Vehicle представляет транспортное средство перевозчика.
type Vehicle struct {
	ID            string    `json:"id" db:"id"`
	TransporterID string    `json:"transporterId" db:"transporter_id"`
	Plate         string    `json:"plate" db:"plate"`
	VehicleType   string    `json:"vehicleType" db:"vehicle_type"`
	Brand         string    `json:"brand" db:"brand"`
	Model         string    `json:"model" db:"model"`
	Year          int       `json:"year" db:"year"`
	CapacityKg    float64   `json:"capacityKg" db:"capacity_kg"`
	VolumeM3      float64   `json:"volumeM3" db:"volume_m3"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// VehicleRequest представляет структуру запроса на добавление транспорта.
type VehicleRequest struct {
	Plate       string  `json:"plate"`
	VehicleType string  `json:"vehicleType"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	CapacityKg  float64 `json:"capacityKg"`
	VolumeM3    float64 `json:"volumeM3"`
}

// TransporterDocument представляет документ перевозчика (лицензия, страховка и т.п.).
type TransporterDocument struct {
	ID            string         `json:"id" db:"id"`
	TransporterID string         `json:"transporterId" db:"transporter_id"`
	DocType       string         `json:"docType" db:"doc_type"`
	FileName      string         `json:"fileName" db:"file_name"`
	FilePath      string         `json:"-" db:"file_path"`
	ContentType   string         `json:"contentType" db:"content_type"`
	SizeBytes     int64          `json:"sizeBytes" db:"size_bytes"`
	Status        DocumentStatus `json:"status" db:"status"`
	ReviewNote    string         `json:"reviewNote" db:"review_note"`
	UploadedAt    time.Time      `json:"uploadedAt" db:"uploaded_at"`
	ReviewedAt    *time.Time     `json:"reviewedAt,omitempty" db:"reviewed_at"`
}

// SignedURL - временная ссылка на скачивание документа.
type SignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
