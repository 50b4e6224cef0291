package handlers

import (
	"net/http"

	"github.com/senyabanana/freight-service/internal/pricing"
	"github.com/senyabanana/freight-service/internal/utils"
)

// EstimatePrice считает ориентировочную цену перевозки без сохранения.
func EstimatePrice(w http.ResponseWriter, r *http.Request) {
	var in pricing.EstimateInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if !in.Pickup.Valid() || !in.Delivery.Valid() {
		utils.SendErrorResponse(w, http.StatusBadRequest, "coordinates are out of range")
		return
	}
	if in.WeightKg <= 0 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "weightKg must be positive")
		return
	}
	utils.SendJSON(w, http.StatusOK, pricing.Calculate(in))
}
