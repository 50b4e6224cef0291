package models

import "time"

type (
	ShipmentStatus string // Статус отправки
	CargoType      string // Тип груза
)

const (
	PendingShipment   ShipmentStatus = "pending"   // Отправка ждёт перевозчика
	BookedShipment    ShipmentStatus = "booked"    // Перевозчик выбран
	CompletedShipment ShipmentStatus = "completed" // Перевозка завершена
	CancelledShipment ShipmentStatus = "cancelled" // Отменена клиентом

	GeneralCargo    CargoType = "general"
	FragileCargo    CargoType = "fragile"
	PerishableCargo CargoType = "perishable"
	HazardousCargo  CargoType = "hazardous"
)

// Shipment представляет заявку клиента на перевозку груза.
type Shipment struct {
	ID                  string         `json:"id" db:"id"`
	ClientID            string         `json:"clientId" db:"client_id"`
	Title               string         `json:"title" db:"title"`
	Description         string         `json:"description" db:"description"`
	PickupAddress       string         `json:"pickupAddress" db:"pickup_address"`
	PickupLat           float64        `json:"pickupLat" db:"pickup_lat"`
	PickupLng           float64        `json:"pickupLng" db:"pickup_lng"`
	DeliveryAddress     string         `json:"deliveryAddress" db:"delivery_address"`
	DeliveryLat         float64        `json:"deliveryLat" db:"delivery_lat"`
	DeliveryLng         float64        `json:"deliveryLng" db:"delivery_lng"`
	WeightKg            float64        `json:"weightKg" db:"weight_kg"`
	VolumeM3            float64        `json:"volumeM3" db:"volume_m3"`
	LengthCm            float64        `json:"lengthCm" db:"length_cm"`
	WidthCm             float64        `json:"widthCm" db:"width_cm"`
	HeightCm            float64        `json:"heightCm" db:"height_cm"`
	Pieces              int            `json:"pieces" db:"pieces"`
	CargoType           CargoType      `json:"cargoType" db:"cargo_type"`
	Packaging           string         `json:"packaging" db:"packaging"`
	PickupDate          *time.Time     `json:"pickupDate,omitempty" db:"pickup_date"`
	PickupTime          string         `json:"pickupTime" db:"pickup_time"`
	DeliveryDate        *time.Time     `json:"deliveryDate,omitempty" db:"delivery_date"`
	DeliveryTime        string         `json:"deliveryTime" db:"delivery_time"`
	SpecialRequirements string         `json:"specialRequirements" db:"special_requirements"`
	InsuranceValue      float64        `json:"insuranceValue" db:"insurance_value"`
	Status              ShipmentStatus `json:"status" db:"status"`
	EstimatedPrice      float64        `json:"estimatedPrice" db:"estimated_price"`
	PriceFormula        string         `json:"priceFormula" db:"price_formula"`
	TrackingEnabled     bool           `json:"trackingEnabled" db:"tracking_enabled"`
	Version             int            `json:"version" db:"version"`
	CreatedAt           time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time      `json:"updatedAt" db:"updated_at"`
}

// ShipmentRequest представляет структуру запроса на создание отправки.
type ShipmentRequest struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	PickupAddress       string    `json:"pickupAddress"`
	PickupLat           float64   `json:"pickupLat"`
	PickupLng           float64   `json:"pickupLng"`
	DeliveryAddress     string    `json:"deliveryAddress"`
	DeliveryLat         float64   `json:"deliveryLat"`
	DeliveryLng         float64   `json:"deliveryLng"`
	WeightKg            float64   `json:"weightKg"`
	VolumeM3            float64   `json:"volumeM3"`
	LengthCm            float64   `json:"lengthCm"`
	WidthCm             float64   `json:"widthCm"`
	HeightCm            float64   `json:"heightCm"`
	Pieces              int       `json:"pieces"`
	CargoType           CargoType `json:"cargoType"`
	Packaging           string    `json:"packaging"`
	PickupDate          string    `json:"pickupDate"`
	PickupTime          string    `json:"pickupTime"`
	DeliveryDate        string    `json:"deliveryDate"`
	DeliveryTime        string    `json:"deliveryTime"`
	SpecialRequirements string    `json:"specialRequirements"`
	InsuranceValue      float64   `json:"insuranceValue"`
}

// ShipmentPatch описывает частичное изменение отправки; nil-поля не меняются.
type ShipmentPatch struct {
	Title               *string  `json:"title"`
	Description         *string  `json:"description"`
	PickupAddress       *string  `json:"pickupAddress"`
	PickupLat           *float64 `json:"pickupLat"`
	PickupLng           *float64 `json:"pickupLng"`
	DeliveryAddress     *string  `json:"deliveryAddress"`
	DeliveryLat         *float64 `json:"deliveryLat"`
	DeliveryLng         *float64 `json:"deliveryLng"`
	WeightKg            *float64 `json:"weightKg"`
	VolumeM3            *float64 `json:"volumeM3"`
	LengthCm            *float64 `json:"lengthCm"`
	WidthCm             *float64 `json:"widthCm"`
	HeightCm            *float64 `json:"heightCm"`
	Pieces              *int     `json:"pieces"`
	CargoType           *string  `json:"cargoType"`
	Packaging           *string  `json:"packaging"`
	PickupDate          *string  `json:"pickupDate"` // "" очищает дату
	PickupTime          *string  `json:"pickupTime"`
	DeliveryDate        *string  `json:"deliveryDate"`
	DeliveryTime        *string  `json:"deliveryTime"`
	SpecialRequirements *string  `json:"specialRequirements"`
	InsuranceValue      *float64 `json:"insuranceValue"`
}

// TrackingState - флаг отслеживания вместе с данными для проверки доступа.
type TrackingState struct {
	ShipmentID      string         `json:"shipmentId" db:"id"`
	ClientID        string         `json:"-" db:"client_id"`
	TransporterID   *string        `json:"-" db:"transporter_id"`
	Status          ShipmentStatus `json:"status" db:"status"`
	TrackingEnabled bool           `json:"trackingEnabled" db:"tracking_enabled"`
}

// MarketplaceFilter - параметры выборки открытых отправок.
type MarketplaceFilter struct {
	CargoType CargoType
	Sort      string
	Limit     int
	Offset    int
}
