package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/chocovilla/chocovilla-backend/api/responses"
	"github.com/chocovilla/chocovilla-backend/internal/promo"
	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/types"
)

type validatePromoRequest struct {
	Code         string   `json:"code"`
	CartSubtotal *float64 `json:"cartSubtotal"`
}

// ValidatePromo keeps the storefront's legacy wire contract: malformed input
// is a 400, unexpected failure a 500, and every business outcome (valid or
// not) rides a 200 with success and an optional error message.
func ValidatePromo(svc promo.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteJSON(w, http.StatusInternalServerError, types.PromoValidationResponse{
				Success: false,
				Error:   "Unable to validate promo code. Please try again.",
			})
			return
		}

		var payload validatePromoRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Code == "" || payload.CartSubtotal == nil {
			responses.WriteJSON(w, http.StatusBadRequest, types.PromoValidationResponse{
				Success: false,
				Error:   "Invalid request data",
			})
			return
		}

		result := svc.Validate(r.Context(), payload.Code, *payload.CartSubtotal)

		resp := types.PromoValidationResponse{
			Success: result.Valid,
			Error:   result.Error,
		}
		if result.Valid {
			resp.PromoCode = result.PromoCode
			discount := result.Discount
			resp.Discount = &discount
		}
		responses.WriteJSON(w, http.StatusOK, resp)
	}
}
