package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
	"github.com/nanobananapay/payment-gateway/internal/services/ledger"
	"github.com/nanobananapay/payment-gateway/internal/services/payment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

type stubAuthorizeService struct {
	payment *models.Payment
	err     error
	gotCmd  payment.AuthorizeCommand
}

func (s *stubAuthorizeService) Authorize(_ context.Context, cmd payment.AuthorizeCommand) (*models.Payment, error) {
	s.gotCmd = cmd
	if s.err != nil {
		return nil, s.err
	}
	return s.payment, nil
}

type stubLedgerService struct {
	result    *ledger.Result
	err       error
	gotFilter ledger.Filter
}

func (s *stubLedgerService) Query(_ context.Context, filter ledger.Filter) (*ledger.Result, error) {
	s.gotFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newMux(auth AuthorizeService, ledgerSvc LedgerService) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(auth, ledgerSvc, nopLogger{}).RegisterRoutes(mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var envelope APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

// TestHandleAuthorize_Created tests the 201 happy path
func TestHandleAuthorize_Created(t *testing.T) {
	auth := &stubAuthorizeService{payment: &models.Payment{
		ID:           42,
		PartnerID:    1,
		Amount:       decimal.NewFromInt(10000),
		FeeAmount:    decimal.NewFromInt(400),
		NetAmount:    decimal.NewFromInt(9600),
		ApprovalCode: "MOCK-abc",
		ApprovedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:       models.StatusApproved,
	}}
	mux := newMux(auth, &stubLedgerService{})

	rec := doRequest(mux, http.MethodPost, "/api/v1/payments",
		`{"partnerId":1,"amount":"10000","cardBin":"111111","cardLast4":"1111","productName":"subscription"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Nil(t, envelope.Error)

	assert.Equal(t, int64(1), auth.gotCmd.PartnerID)
	assert.True(t, decimal.NewFromInt(10000).Equal(auth.gotCmd.Amount))
	assert.Equal(t, "111111", auth.gotCmd.CardBin)
}

// TestHandleAuthorize_InvalidBody tests malformed JSON rejection
func TestHandleAuthorize_InvalidBody(t *testing.T) {
	mux := newMux(&stubAuthorizeService{}, &stubLedgerService{})

	rec := doRequest(mux, http.MethodPost, "/api/v1/payments", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

// TestHandleAuthorize_MissingPartner tests the required-field validation
func TestHandleAuthorize_MissingPartner(t *testing.T) {
	mux := newMux(&stubAuthorizeService{}, &stubLedgerService{})

	rec := doRequest(mux, http.MethodPost, "/api/v1/payments", `{"amount":"10000"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

// TestHandleAuthorize_ErrorMapping tests the service error taxonomy to HTTP
// status mapping
func TestHandleAuthorize_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"partner not found", &payment.PartnerNotFoundError{PartnerID: 1},
			http.StatusNotFound, "PARTNER_NOT_FOUND"},
		{"partner inactive", &payment.PartnerInactiveError{PartnerID: 1},
			http.StatusUnprocessableEntity, "PARTNER_INACTIVE"},
		{"invalid amount", &payment.InvalidAmountError{Amount: decimal.Zero},
			http.StatusBadRequest, "INVALID_AMOUNT"},
		{"no route", &payment.NoRouteConfiguredError{PartnerID: 1},
			http.StatusInternalServerError, "NO_ROUTE_CONFIGURED"},
		{"no fee schedule", &payment.NoEffectiveFeeScheduleError{PartnerID: 1},
			http.StatusInternalServerError, "NO_FEE_SCHEDULE_EFFECTIVE"},
		{"all gateways failed", &payment.AllGatewaysFailedError{PartnerID: 1, Attempts: []string{"MOCKPAY(timeout)"}},
			http.StatusBadGateway, "ALL_GATEWAYS_FAILED"},
		{"unclassified", errors.New("boom"),
			http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newMux(&stubAuthorizeService{err: tc.err}, &stubLedgerService{})

			rec := doRequest(mux, http.MethodPost, "/api/v1/payments",
				`{"partnerId":1,"amount":"10000"}`)

			assert.Equal(t, tc.wantStatus, rec.Code)
			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tc.wantCode, envelope.Error.Code)
		})
	}
}

// TestHandleQuery_FilterParsing tests that query parameters reach the ledger
// filter
func TestHandleQuery_FilterParsing(t *testing.T) {
	ledgerSvc := &stubLedgerService{result: &ledger.Result{
		Items:   nil,
		Summary: models.PaymentSummary{TotalAmount: decimal.Zero, TotalNetAmount: decimal.Zero},
	}}
	mux := newMux(&stubAuthorizeService{}, ledgerSvc)

	rec := doRequest(mux, http.MethodGet,
		"/api/v1/payments?partnerId=3&status=APPROVED&from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z&limit=50&cursor=abc", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ledgerSvc.gotFilter.PartnerID)
	assert.Equal(t, int64(3), *ledgerSvc.gotFilter.PartnerID)
	require.NotNil(t, ledgerSvc.gotFilter.Status)
	assert.Equal(t, models.StatusApproved, *ledgerSvc.gotFilter.Status)
	require.NotNil(t, ledgerSvc.gotFilter.From)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), ledgerSvc.gotFilter.From.UTC())
	assert.Equal(t, int32(50), ledgerSvc.gotFilter.Limit)
	assert.Equal(t, "abc", ledgerSvc.gotFilter.Cursor)
}

// TestHandleQuery_BadParams tests rejection of unparseable filter values
func TestHandleQuery_BadParams(t *testing.T) {
	for name, target := range map[string]string{
		"partnerId": "/api/v1/payments?partnerId=abc",
		"from":      "/api/v1/payments?from=yesterday",
		"to":        "/api/v1/payments?to=2026-13-99",
		"limit":     "/api/v1/payments?limit=many",
	} {
		t.Run(name, func(t *testing.T) {
			mux := newMux(&stubAuthorizeService{}, &stubLedgerService{})

			rec := doRequest(mux, http.MethodGet, target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			envelope := decodeEnvelope(t, rec)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
		})
	}
}

// TestHandleQuery_ResponseShape tests the page envelope including the
// nullable cursor
func TestHandleQuery_ResponseShape(t *testing.T) {
	ledgerSvc := &stubLedgerService{result: &ledger.Result{
		Items: []*models.Payment{{
			ID:        10,
			PartnerID: 1,
			Amount:    decimal.NewFromInt(10000),
			FeeAmount: decimal.NewFromInt(400),
			NetAmount: decimal.NewFromInt(9600),
			Status:    models.StatusApproved,
		}},
		Summary: models.PaymentSummary{
			Count:          37,
			TotalAmount:    decimal.NewFromInt(370000),
			TotalNetAmount: decimal.NewFromInt(358900),
		},
		NextCursor: "next-token",
		HasNext:    true,
	}}
	mux := newMux(&stubAuthorizeService{}, ledgerSvc)

	rec := doRequest(mux, http.MethodGet, "/api/v1/payments", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"nextCursor":"next-token"`)
	assert.Contains(t, body, `"hasNext":true`)
	assert.Contains(t, body, `"count":37`)
}

// TestHandleQuery_LastPageNullCursor tests that an exhausted ledger yields a
// null cursor, not an empty string
func TestHandleQuery_LastPageNullCursor(t *testing.T) {
	ledgerSvc := &stubLedgerService{result: &ledger.Result{
		Summary: models.PaymentSummary{TotalAmount: decimal.Zero, TotalNetAmount: decimal.Zero},
	}}
	mux := newMux(&stubAuthorizeService{}, ledgerSvc)

	rec := doRequest(mux, http.MethodGet, "/api/v1/payments", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nextCursor":null`)
}
