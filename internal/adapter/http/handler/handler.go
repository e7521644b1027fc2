package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/usecase"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/wizard"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
	Field string `json:"field,omitempty"`
}

// respondError maps domain and workflow errors onto HTTP statuses with a
// single user-facing message.
func respondError(w http.ResponseWriter, log logger.Logger, err error) {
	var stepErr *wizard.StepError
	if errors.As(err, &stepErr) {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: stepErr.Message,
			Step:  stepErr.Step.String(),
			Field: stepErr.Field,
		})
		return
	}
	var billingErr *usecase.BillingError
	if errors.As(err, &billingErr) {
		log.Errorf("Billing failure: %v", billingErr.Err)
		respondJSON(w, http.StatusPaymentRequired, errorResponse{Error: billingErr.Reason})
		return
	}

	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Listing not found"})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "You are not allowed to modify this listing"})
	case errors.Is(err, domain.ErrUnauthenticated):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Please sign in and try again"})
	case errors.Is(err, domain.ErrInvalidVendor):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Unknown vendor type"})
	case errors.Is(err, domain.ErrInvalidListing):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid listing data"})
	case errors.Is(err, domain.ErrDuplicateListing):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "You already have a listing for this service"})
	default:
		log.Errorf("Request failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Something went wrong. Please try again."})
	}
}
