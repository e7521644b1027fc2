package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/http/middleware"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/payment"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/usecase"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

// BillingHandler serves the standalone billing endpoints.
type BillingHandler struct {
	usecase *usecase.BillingUsecase
	logger  logger.Logger
}

func NewBillingHandler(uc *usecase.BillingUsecase, log logger.Logger) *BillingHandler {
	return &BillingHandler{usecase: uc, logger: log}
}

type checkoutRequest struct {
	PriceID   string `json:"priceId"`
	TierType  string `json:"tierType"`
	IsAnnual  bool   `json:"isAnnual"`
	ListingID string `json:"listingId"`
}

// CreateCheckoutSession opens a hosted checkout session for a tier
// purchase and returns the session id for the client redirect.
func (h *BillingHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	sessionID, err := h.usecase.CheckoutSession(r.Context(), actorID, payment.CheckoutParams{
		PriceID:   req.PriceID,
		TierType:  req.TierType,
		IsAnnual:  req.IsAnnual,
		ListingID: req.ListingID,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"sessionId": sessionID})
}
