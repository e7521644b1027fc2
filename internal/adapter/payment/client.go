package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

// Provider is the payment collaborator: stored payment-method lookups,
// setup intents, subscriptions and hosted checkout sessions. The service
// only constrains call ordering; provider internals stay opaque.
type Provider interface {
	HasPaymentMethod(ctx context.Context, userID string) (bool, error)
	CreateSetupIntent(ctx context.Context, userID string) (string, error)
	CreateSubscription(ctx context.Context, params SubscriptionParams) (*SubscriptionResult, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)
}

// SubscriptionParams creates a recurring subscription tied to a listing.
type SubscriptionParams struct {
	PriceID     string `json:"priceId"`
	UserID      string `json:"userId"`
	ServiceType string `json:"serviceType"`
	TierType    string `json:"tierType"`
	IsAnnual    bool   `json:"isAnnual"`
	ListingID   string `json:"listingId"`
}

type SubscriptionResult struct {
	SubscriptionID string `json:"subscriptionId"`
	RedirectURL    string `json:"url"`
}

// CheckoutParams creates a hosted checkout session; the returned session
// id is used to redirect the buyer to the provider's checkout page.
type CheckoutParams struct {
	PriceID     string `json:"priceId"`
	UserID      string `json:"userId"`
	ServiceType string `json:"serviceType"`
	TierType    string `json:"tierType"`
	IsAnnual    bool   `json:"isAnnual"`
	ListingID   string `json:"listingId"`
}

// Decline codes the provider reports with a structured error body.
const (
	DeclineCardDeclined      = "card_declined"
	DeclineInsufficientFunds = "insufficient_funds"
	DeclineExpiredCard       = "expired_card"
)

// DeclineError is a structured provider rejection. Code distinguishes
// specific decline reasons from generic failures.
type DeclineError struct {
	Code    string
	Message string
}

func (e *DeclineError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment declined (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("payment declined (%s)", e.Code)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks JSON over HTTP to the payment provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg Config, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal payment request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil && eb.Error.Code != "" {
			return &DeclineError{Code: eb.Error.Code, Message: eb.Error.Message}
		}
		return fmt.Errorf("payment provider returned status %d for %s", resp.StatusCode, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode payment response: %w", err)
		}
	}
	return nil
}

func (c *Client) HasPaymentMethod(ctx context.Context, userID string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/customers/"+userID+"/payment-method", nil, &resp); err != nil {
		return false, fmt.Errorf("failed to check payment method for user %s: %w", userID, err)
	}
	return resp.Exists, nil
}

func (c *Client) CreateSetupIntent(ctx context.Context, userID string) (string, error) {
	body := map[string]string{"userId": userID}
	var resp struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/setup-intents", body, &resp); err != nil {
		return "", fmt.Errorf("failed to create setup intent for user %s: %w", userID, err)
	}
	return resp.ClientSecret, nil
}

func (c *Client) CreateSubscription(ctx context.Context, params SubscriptionParams) (*SubscriptionResult, error) {
	var resp SubscriptionResult
	if err := c.do(ctx, http.MethodPost, "/v1/subscriptions", params, &resp); err != nil {
		return nil, err
	}
	c.logger.Infof("Subscription %s created for listing %s", resp.SubscriptionID, params.ListingID)
	return &resp, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error) {
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", params, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}
