package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, logger.NewNop())
}

func TestHasPaymentMethod(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/customers/user-1/payment-method", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]bool{"exists": true})
	})

	has, err := c.HasPaymentMethod(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCreateSetupIntent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/setup-intents", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user-1", body["userId"])
		_ = json.NewEncoder(w).Encode(map[string]string{"clientSecret": "seti_secret"})
	})

	secret, err := c.CreateSetupIntent(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "seti_secret", secret)
}

func TestCreateSubscription(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/subscriptions", r.URL.Path)
		var params SubscriptionParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "price_basic", params.PriceID)
		assert.Equal(t, "dj", params.ServiceType)
		_ = json.NewEncoder(w).Encode(SubscriptionResult{SubscriptionID: "sub_1", RedirectURL: "/done"})
	})

	result, err := c.CreateSubscription(context.Background(), SubscriptionParams{
		PriceID:     "price_basic",
		UserID:      "user-1",
		ServiceType: "dj",
		ListingID:   "listing-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub_1", result.SubscriptionID)
	assert.Equal(t, "/done", result.RedirectURL)
}

func TestCreateSubscription_DeclineParsedFromErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"code":    "card_declined",
				"message": "Your card was declined.",
			},
		})
	})

	_, err := c.CreateSubscription(context.Background(), SubscriptionParams{PriceID: "p"})
	var decline *DeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, DeclineCardDeclined, decline.Code)
	assert.Equal(t, "Your card was declined.", decline.Message)
}

func TestCreateCheckoutSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"sessionId": "cs_123"})
	})

	sessionID, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{PriceID: "p"})
	require.NoError(t, err)
	assert.Equal(t, "cs_123", sessionID)
}

func TestDo_UnstructuredErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream broke"))
	})

	_, err := c.HasPaymentMethod(context.Background(), "user-1")
	require.Error(t, err)
	var decline *DeclineError
	assert.False(t, errors.As(err, &decline))
}
