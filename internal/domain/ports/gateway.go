package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
)

// AuthorizeRequest carries the charge details sent to an external gateway.
// Only BIN and last-4 of the card ever reach this service; full PANs are the
// gateway's problem.
type AuthorizeRequest struct {
	PartnerID   int64
	Amount      decimal.Decimal
	CardBin     string
	CardLast4   string
	ProductName string
}

// AuthorizeResult is the transient outcome of one gateway attempt. It is
// consumed immediately to build a Payment and never persisted on its own.
type AuthorizeResult struct {
	ApprovalCode string
	ApprovedAt   time.Time
	Status       models.PaymentStatus
}

// PaymentGateway is the capability interface every integrated gateway
// implements. Authorize returns an error for any failure (network, decline,
// validation); callers do not distinguish failure subtypes, only success
// versus error.
type PaymentGateway interface {
	Type() models.GatewayType
	Authorize(ctx context.Context, req *AuthorizeRequest) (*AuthorizeResult, error)
}
