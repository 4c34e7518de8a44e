package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client talks to a YooKassa-style payment provider. It creates payment
// sessions; webhook confirmation is out of scope.
type Client struct {
	baseURL    string
	shopID     string
	secretKey  string
	currency   string
	returnURL  string
	httpClient *http.Client
}

// Config holds payment-provider connection details.
type Config struct {
	BaseURL   string
	ShopID    string
	SecretKey string
	Currency  string
	ReturnURL string
	Timeout   time.Duration
}

// Session is a provider-side pending checkout: the customer completes
// payment at ConfirmationURL, ID is the provider's payment identifier.
type Session struct {
	ID              string
	ConfirmationURL string
}

type amountPayload struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type confirmationPayload struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url"`
}

type createPaymentRequest struct {
	Amount       amountPayload       `json:"amount"`
	Confirmation confirmationPayload `json:"confirmation"`
	Capture      bool                `json:"capture"`
	Description  string              `json:"description"`
}

type createPaymentResponse struct {
	ID           string `json:"id"`
	Confirmation struct {
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

// NewClient creates a new payment provider client. The timeout bounds
// the whole create-payment round trip so a hung provider cannot block
// a request indefinitely.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		shopID:     cfg.ShopID,
		secretKey:  cfg.SecretKey,
		currency:   cfg.Currency,
		returnURL:  cfg.ReturnURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateSession asks the provider to create a redirect payment session
// for the given order. A fresh idempotency key is generated per attempt
// so provider-side retries do not create duplicate charges.
func (c *Client) CreateSession(ctx context.Context, orderID uint, amount decimal.Decimal) (*Session, error) {
	payload := createPaymentRequest{
		Amount: amountPayload{
			Value:    amount.StringFixed(2),
			Currency: c.currency,
		},
		Confirmation: confirmationPayload{
			Type:      "redirect",
			ReturnURL: fmt.Sprintf("%s?order_id=%d", c.returnURL, orderID),
		},
		Capture:     true,
		Description: fmt.Sprintf("Order #%d at CyberShop", orderID),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.New().String())
	req.SetBasicAuth(c.shopID, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var result createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	if result.ID == "" || result.Confirmation.ConfirmationURL == "" {
		return nil, fmt.Errorf("payment response missing id or confirmation url")
	}

	return &Session{
		ID:              result.ID,
		ConfirmationURL: result.Confirmation.ConfirmationURL,
	}, nil
}
