package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/payment"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

// DeclineMessage maps a provider error to the user-facing string. Known
// decline codes get specific messages; everything else falls back to a
// generic one.
func DeclineMessage(err error) string {
	var de *payment.DeclineError
	if errors.As(err, &de) {
		switch de.Code {
		case payment.DeclineCardDeclined:
			return "Your card was declined. Please try a different payment method."
		case payment.DeclineInsufficientFunds:
			return "Your card has insufficient funds."
		case payment.DeclineExpiredCard:
			return "Your card has expired. Please update your payment method."
		}
	}
	return "Payment could not be completed. Please try again."
}

// BillingUsecase covers the billing operations that are not part of a
// wizard submit: hosted checkout sessions for tier purchases.
type BillingUsecase struct {
	listings domain.ListingRepository
	payments payment.Provider
	logger   logger.Logger
}

func NewBillingUsecase(listings domain.ListingRepository, payments payment.Provider, log logger.Logger) *BillingUsecase {
	return &BillingUsecase{
		listings: listings,
		payments: payments,
		logger:   log,
	}
}

// CheckoutSession creates a hosted checkout session for the actor's own
// listing and returns the session id used for the redirect.
func (uc *BillingUsecase) CheckoutSession(ctx context.Context, actorID string, params payment.CheckoutParams) (string, error) {
	if actorID == "" {
		return "", domain.ErrUnauthenticated
	}
	params.UserID = actorID

	if params.ListingID != "" {
		listing, err := uc.listings.FindByID(ctx, params.ListingID)
		if err != nil {
			return "", fmt.Errorf("failed to load listing %s: %w", params.ListingID, err)
		}
		if listing.UserID != actorID {
			return "", domain.ErrForbidden
		}
		params.ServiceType = string(listing.VendorType)
	}

	sessionID, err := uc.payments.CreateCheckoutSession(ctx, params)
	if err != nil {
		uc.logger.Errorf("Failed to create checkout session for user %s: %v", actorID, err)
		return "", &BillingError{Reason: DeclineMessage(err), Err: err}
	}
	uc.logger.Infof("Checkout session %s created for user %s", sessionID, actorID)
	return sessionID, nil
}
