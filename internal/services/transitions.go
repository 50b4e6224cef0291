package services

import (
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/utils"
)

var shipmentTransitions = map[models.ShipmentStatus][]models.ShipmentStatus{
	models.PendingShipment: {models.BookedShipment, models.CancelledShipment},
	models.BookedShipment:  {models.CompletedShipment},
}

var offerTransitions = map[models.OfferStatus][]models.OfferStatus{
	models.PendingOffer:  {models.AcceptedOffer, models.RejectedOffer},
	models.AcceptedOffer: {models.PaidOffer},
	models.PaidOffer:     {models.CompletedOffer},
}

var quoteTransitions = map[models.QuoteStatus][]models.QuoteStatus{
	models.PendingQuote:   {models.RespondedQuote, models.RejectedQuote, models.ExpiredQuote},
	models.RespondedQuote: {models.AcceptedQuote, models.RejectedQuote, models.ExpiredQuote},
}

// CanMoveShipment сообщает, допустим ли переход статуса отправки.
func CanMoveShipment(from, to models.ShipmentStatus) bool {
	return utils.Contains(shipmentTransitions[from], to)
}

// CanMoveOffer сообщает, допустим ли переход статуса предложения.
func CanMoveOffer(from, to models.OfferStatus) bool {
	return utils.Contains(offerTransitions[from], to)
}

// CanMoveQuote сообщает, допустим ли переход статуса запроса котировки.
func CanMoveQuote(from, to models.QuoteStatus) bool {
	return utils.Contains(quoteTransitions[from], to)
}

func validShipmentStatus(s models.ShipmentStatus) bool {
	return s == "" || utils.Contains([]models.ShipmentStatus{
		models.PendingShipment, models.BookedShipment, models.CompletedShipment, models.CancelledShipment}, s)
}

func validOfferStatus(s models.OfferStatus) bool {
	return s == "" || utils.Contains([]models.OfferStatus{
		models.PendingOffer, models.AcceptedOffer, models.RejectedOffer, models.PaidOffer, models.CompletedOffer}, s)
}

func validQuoteStatus(s models.QuoteStatus) bool {
	return s == "" || utils.Contains([]models.QuoteStatus{
		models.PendingQuote, models.RespondedQuote, models.AcceptedQuote, models.RejectedQuote, models.ExpiredQuote}, s)
}
