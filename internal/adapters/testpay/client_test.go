package testpay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL: serverURL,
		APIKey:  testAPIKey,
		IV:      testIV,
	}, http.DefaultClient, nopLogger{})
	require.NoError(t, err)
	return client
}

func makeRequest(amount int64) *ports.AuthorizeRequest {
	return &ports.AuthorizeRequest{
		PartnerID:   2,
		Amount:      decimal.NewFromInt(amount),
		CardBin:     "111111",
		CardLast4:   "1111",
		ProductName: "subscription",
	}
}

// TestClientAuthorize_Success tests the request shape and response parsing
// against a fake sandbox
func TestClientAuthorize_Success(t *testing.T) {
	var captured struct {
		method string
		path   string
		apiKey string
		enc    string
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("API-KEY")

		body, _ := io.ReadAll(r.Body)
		var req authorizeRequest
		require.NoError(t, json.Unmarshal(body, &req))
		captured.enc = req.Enc

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(authorizeResponse{
			ApprovalCode: "TP-20260301-0042",
			ApprovedAt:   "2026-03-01T12:30:45",
			Status:       "APPROVED",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Authorize(context.Background(), makeRequest(10000))

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/api/v1/pay/credit-card", captured.path)
	assert.Equal(t, testAPIKey, captured.apiKey)

	assert.Equal(t, "TP-20260301-0042", result.ApprovalCode)
	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC), result.ApprovedAt)
}

// TestClientAuthorize_EncryptedPayload tests that the envelope decrypts to the
// sandbox card with the charge amount
func TestClientAuthorize_EncryptedPayload(t *testing.T) {
	var enc string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req authorizeRequest
		require.NoError(t, json.Unmarshal(body, &req))
		enc = req.Enc
		json.NewEncoder(w).Encode(authorizeResponse{
			ApprovalCode: "TP-1",
			ApprovedAt:   "2026-03-01T12:00:00",
			Status:       "APPROVED",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Authorize(context.Background(), makeRequest(12345))
	require.NoError(t, err)

	decryptor, err := NewEncryptor(testAPIKey, testIV)
	require.NoError(t, err)
	plain, err := decryptor.Decrypt(enc)
	require.NoError(t, err)

	var payload cardPayload
	require.NoError(t, json.Unmarshal(plain, &payload))
	assert.Equal(t, "1111111111111111", payload.CardNumber)
	assert.Equal(t, "19900101", payload.BirthDate)
	assert.Equal(t, "1227", payload.Expiry)
	assert.Equal(t, "12", payload.Password)
	assert.Equal(t, int64(12345), payload.Amount)
}

// TestClientAuthorize_FractionalApprovedAt tests the alternate timestamp
// layout the API sometimes emits
func TestClientAuthorize_FractionalApprovedAt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authorizeResponse{
			ApprovalCode: "TP-2",
			ApprovedAt:   "2026-03-01T12:30:45.123456",
			Status:       "APPROVED",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Authorize(context.Background(), makeRequest(100))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 30, 45, 123_456_000, time.UTC), result.ApprovedAt)
}

// TestClientAuthorize_Non200 tests that an upstream failure surfaces with the
// status and body
func TestClientAuthorize_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"error":"upstream unavailable"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Authorize(context.Background(), makeRequest(100))

	require.Nil(t, result)
	assert.ErrorContains(t, err, "status 502")
	assert.ErrorContains(t, err, "upstream unavailable")
}

// TestClientAuthorize_MalformedResponse tests a body that is not the expected
// JSON shape
func TestClientAuthorize_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not-json")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Authorize(context.Background(), makeRequest(100))

	require.Nil(t, result)
	assert.ErrorContains(t, err, "decode testpay response")
}

// TestClientAuthorize_ContextCanceled tests that a canceled context aborts
// before the request leaves
func TestClientAuthorize_ContextCanceled(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := client.Authorize(ctx, makeRequest(100))

	require.Nil(t, result)
	assert.Error(t, err)
}
