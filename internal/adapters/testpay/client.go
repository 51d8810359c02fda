// Package testpay integrates the TestPay credit-card authorization API.
package testpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

const authorizePath = "/api/v1/pay/credit-card"

// Config holds the TestPay connection settings. APIKey and IV come from the
// secret manager, not the environment.
type Config struct {
	BaseURL string
	APIKey  string
	IV      string

	// Outbound request budget against the sandbox.
	RequestsPerSecond float64
	Burst             int
}

// Client implements ports.PaymentGateway for TestPay
type Client struct {
	baseURL    string
	apiKey     string
	enc        *Encryptor
	httpClient ports.HTTPClient
	limiter    *rate.Limiter
	logger     ports.Logger
}

// NewClient creates a TestPay client with an injected HTTP client
func NewClient(cfg Config, httpClient ports.HTTPClient, logger ports.Logger) (*Client, error) {
	enc, err := NewEncryptor(cfg.APIKey, cfg.IV)
	if err != nil {
		return nil, fmt.Errorf("init testpay encryption: %w", err)
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		enc:        enc,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		logger:     logger,
	}, nil
}

// NewClientWithDefaults creates a TestPay client with a default HTTP client
func NewClientWithDefaults(cfg Config, logger ports.Logger) (*Client, error) {
	return NewClient(cfg, &http.Client{Timeout: 30 * time.Second}, logger)
}

// Type implements ports.PaymentGateway
func (c *Client) Type() models.GatewayType {
	return models.GatewayTestPay
}

// cardPayload is the plaintext the API expects inside the encrypted envelope.
// The sandbox only accepts this fixed card; real card data never reaches us.
type cardPayload struct {
	CardNumber string `json:"cardNumber"`
	BirthDate  string `json:"birthDate"`
	Expiry     string `json:"expiry"`
	Password   string `json:"password"`
	Amount     int64  `json:"amount"`
}

type authorizeRequest struct {
	Enc string `json:"enc"`
}

type authorizeResponse struct {
	ApprovalCode string `json:"approvalCode"`
	ApprovedAt   string `json:"approvedAt"`
	Status       string `json:"status"`
}

// Authorize implements ports.PaymentGateway.Authorize
func (c *Client) Authorize(ctx context.Context, req *ports.AuthorizeRequest) (*ports.AuthorizeResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("testpay rate limit: %w", err)
	}

	plain, err := json.Marshal(cardPayload{
		CardNumber: "1111111111111111",
		BirthDate:  "19900101",
		Expiry:     "1227",
		Password:   "12",
		Amount:     req.Amount.IntPart(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal card payload: %w", err)
	}

	body, err := json.Marshal(authorizeRequest{Enc: c.enc.Encrypt(plain)})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authorizePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("testpay request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read testpay response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("testpay returned status %d: %s", resp.StatusCode, respBody)
	}

	var parsed authorizeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode testpay response: %w", err)
	}

	approvedAt, err := parseApprovedAt(parsed.ApprovedAt)
	if err != nil {
		return nil, fmt.Errorf("parse approvedAt %q: %w", parsed.ApprovedAt, err)
	}

	c.logger.Debug("testpay authorization approved",
		ports.Int64("partner_id", req.PartnerID),
		ports.String("approval_code", parsed.ApprovalCode))

	return &ports.AuthorizeResult{
		ApprovalCode: parsed.ApprovalCode,
		ApprovedAt:   approvedAt,
		Status:       models.PaymentStatus(parsed.Status),
	}, nil
}

// parseApprovedAt accepts the API's ISO local datetime with or without
// fractional seconds.
func parseApprovedAt(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse("2006-01-02T15:04:05.999999999", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
