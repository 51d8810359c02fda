package rest

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/nanobananapay/payment-gateway/internal/services/payment"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func respondWithError(w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: err.Error()},
	})
}

// classifyError maps the service error taxonomy onto HTTP semantics:
// client faults are 4xx, configuration gaps are 500, exhausted gateway
// failover is 502.
func classifyError(err error) (int, string) {
	var (
		notFound   *payment.PartnerNotFoundError
		inactive   *payment.PartnerInactiveError
		badAmount  *payment.InvalidAmountError
		noRoute    *payment.NoRouteConfiguredError
		noSchedule *payment.NoEffectiveFeeScheduleError
		allFailed  *payment.AllGatewaysFailedError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, "PARTNER_NOT_FOUND"
	case errors.As(err, &inactive):
		return http.StatusUnprocessableEntity, "PARTNER_INACTIVE"
	case errors.As(err, &badAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case errors.As(err, &noRoute):
		return http.StatusInternalServerError, "NO_ROUTE_CONFIGURED"
	case errors.As(err, &noSchedule):
		return http.StatusInternalServerError, "NO_FEE_SCHEDULE_EFFECTIVE"
	case errors.As(err, &allFailed):
		return http.StatusBadGateway, "ALL_GATEWAYS_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
