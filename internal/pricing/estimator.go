package pricing

import (
	"math"

	"github.com/senyabanana/freight-service/internal/models"
)

// FormulaVersion сохраняется вместе с оценкой, чтобы старые цены можно было объяснить после смены констант.
const FormulaVersion = "v1"

const (
	perKg            = 2.5
	perPiece         = 5.0
	kmPerFactorStep  = 50.0
	minDistanceRatio = 1.0
)

var cargoMultipliers = map[models.CargoType]float64{
	models.FragileCargo:    1.3,
	models.PerishableCargo: 1.2,
	models.HazardousCargo:  1.5,
}

// EstimateInput - параметры расчёта цены перевозки.
type EstimateInput struct {
	Pickup    Point            `json:"pickup"`
	Delivery  Point            `json:"delivery"`
	WeightKg  float64          `json:"weightKg"`
	Pieces    int              `json:"pieces"`
	CargoType models.CargoType `json:"cargoType"`
}

// Estimate - результат расчёта с промежуточными величинами.
type Estimate struct {
	DistanceKm     float64 `json:"distanceKm"`
	Base           float64 `json:"base"`
	DistanceFactor float64 `json:"distanceFactor"`
	Multiplier     float64 `json:"multiplier"`
	Price          float64 `json:"price"`
	FormulaVersion string  `json:"formulaVersion"`
}

// Multiplier возвращает коэффициент для типа груза; неизвестные типы считаются обычными.
func Multiplier(cargo models.CargoType) float64 {
	if m, ok := cargoMultipliers[cargo]; ok {
		return m
	}
	return 1.0
}

// Calculate считает цену: (вес×2.5 + места×5) × max(1, км/50) × коэффициент груза, с округлением.
func Calculate(in EstimateInput) Estimate {
	pieces := in.Pieces
	if pieces <= 0 {
		pieces = 1
	}
	weight := math.Max(0, in.WeightKg)

	distance := Haversine(in.Pickup, in.Delivery)
	base := weight*perKg + float64(pieces)*perPiece
	factor := math.Max(minDistanceRatio, distance/kmPerFactorStep)
	multiplier := Multiplier(in.CargoType)

	return Estimate{
		DistanceKm:     math.Round(distance*100) / 100,
		Base:           base,
		DistanceFactor: factor,
		Multiplier:     multiplier,
		Price:          math.Round(base * factor * multiplier),
		FormulaVersion: FormulaVersion,
	}
}

// ForShipment считает цену по полям отправки.
func ForShipment(s *models.Shipment) Estimate {
	return Calculate(EstimateInput{
		Pickup:    Point{Lat: s.PickupLat, Lng: s.PickupLng},
		Delivery:  Point{Lat: s.DeliveryLat, Lng: s.DeliveryLng},
		WeightKg:  s.WeightKg,
		Pieces:    s.Pieces,
		CargoType: s.CargoType,
	})
}
