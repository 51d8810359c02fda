// Package rest exposes the authorize and ledger-query operations over JSON.
package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
	"github.com/nanobananapay/payment-gateway/internal/services/ledger"
	"github.com/nanobananapay/payment-gateway/internal/services/payment"
)

// AuthorizeService is the authorization use case consumed by the handler.
type AuthorizeService interface {
	Authorize(ctx context.Context, cmd payment.AuthorizeCommand) (*models.Payment, error)
}

// LedgerService is the ledger query use case consumed by the handler.
type LedgerService interface {
	Query(ctx context.Context, filter ledger.Filter) (*ledger.Result, error)
}

// Handler serves the payment API endpoints
type Handler struct {
	authService   AuthorizeService
	ledgerService LedgerService
	validate      *validator.Validate
	logger        ports.Logger
}

// NewHandler creates a new payment API handler
func NewHandler(authService AuthorizeService, ledgerService LedgerService, logger ports.Logger) *Handler {
	return &Handler{
		authService:   authService,
		ledgerService: ledgerService,
		validate:      validator.New(),
		logger:        logger,
	}
}

// RegisterRoutes mounts the API endpoints on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/payments", h.HandleAuthorize)
	mux.HandleFunc("GET /api/v1/payments", h.HandleQuery)
}

// HandleAuthorize processes a payment authorization request
func (h *Handler) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithValidationError(w, "invalid request body: "+err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	p, err := h.authService.Authorize(r.Context(), payment.AuthorizeCommand{
		PartnerID:   req.PartnerID,
		Amount:      req.Amount,
		CardBin:     req.CardBin,
		CardLast4:   req.CardLast4,
		ProductName: req.ProductName,
	})
	if err != nil {
		h.logger.Warn("authorization request failed",
			ports.Int64("partner_id", req.PartnerID),
			ports.Err(err))
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toPaymentResponse(p))
}

// HandleQuery serves the paginated, aggregated payment ledger
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	filter, err := parseQueryFilter(r)
	if err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	result, err := h.ledgerService.Query(r.Context(), filter)
	if err != nil {
		h.logger.Warn("ledger query failed", ports.Err(err))
		respondWithError(w, err)
		return
	}

	items := make([]PaymentResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toPaymentResponse(p))
	}

	var nextCursor *string
	if result.NextCursor != "" {
		nextCursor = &result.NextCursor
	}

	respondWithJSON(w, http.StatusOK, QueryResponse{
		Items: items,
		Summary: SummaryResponse{
			Count:          result.Summary.Count,
			TotalAmount:    result.Summary.TotalAmount,
			TotalNetAmount: result.Summary.TotalNetAmount,
		},
		NextCursor: nextCursor,
		HasNext:    result.HasNext,
	})
}

func parseQueryFilter(r *http.Request) (ledger.Filter, error) {
	q := r.URL.Query()
	var filter ledger.Filter

	if v := q.Get("partnerId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, &queryParamError{param: "partnerId", value: v}
		}
		filter.PartnerID = &id
	}
	if v := q.Get("status"); v != "" {
		status := models.PaymentStatus(v)
		filter.Status = &status
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, &queryParamError{param: "from", value: v}
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, &queryParamError{param: "to", value: v}
		}
		filter.To = &t
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return filter, &queryParamError{param: "limit", value: v}
		}
		filter.Limit = int32(limit)
	}
	// A malformed cursor is not an error; the ledger service degrades it to
	// "start from the beginning".
	filter.Cursor = q.Get("cursor")

	return filter, nil
}

type queryParamError struct {
	param string
	value string
}

func (e *queryParamError) Error() string {
	return "invalid query parameter " + e.param + ": " + e.value
}

func respondWithValidationError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   &APIError{Code: "VALIDATION_ERROR", Message: message},
	})
}
