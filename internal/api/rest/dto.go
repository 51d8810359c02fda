package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
)

// CreatePaymentRequest is the authorize request body.
type CreatePaymentRequest struct {
	PartnerID   int64           `json:"partnerId" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	CardBin     string          `json:"cardBin"`
	CardLast4   string          `json:"cardLast4"`
	ProductName string          `json:"productName"`
}

// PaymentResponse mirrors the persisted payment. Money fields serialize as
// decimal strings to keep exact values on the wire.
type PaymentResponse struct {
	ID             int64           `json:"id"`
	PartnerID      int64           `json:"partnerId"`
	Amount         decimal.Decimal `json:"amount"`
	AppliedFeeRate decimal.Decimal `json:"appliedFeeRate"`
	FeeAmount      decimal.Decimal `json:"feeAmount"`
	NetAmount      decimal.Decimal `json:"netAmount"`
	CardBin        string          `json:"cardBin,omitempty"`
	CardLast4      string          `json:"cardLast4,omitempty"`
	ApprovalCode   string          `json:"approvalCode"`
	ApprovedAt     time.Time       `json:"approvedAt"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// QueryResponse is one ledger page plus the filter-wide summary.
type QueryResponse struct {
	Items      []PaymentResponse `json:"items"`
	Summary    SummaryResponse   `json:"summary"`
	NextCursor *string           `json:"nextCursor"`
	HasNext    bool              `json:"hasNext"`
}

// SummaryResponse aggregates the whole filtered population.
type SummaryResponse struct {
	Count          int64           `json:"count"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalNetAmount decimal.Decimal `json:"totalNetAmount"`
}

func toPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		PartnerID:      p.PartnerID,
		Amount:         p.Amount,
		AppliedFeeRate: p.AppliedFeeRate,
		FeeAmount:      p.FeeAmount,
		NetAmount:      p.NetAmount,
		CardBin:        p.CardBin,
		CardLast4:      p.CardLast4,
		ApprovalCode:   p.ApprovalCode,
		ApprovedAt:     p.ApprovedAt,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
	}
}
