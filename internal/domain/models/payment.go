package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the outcome recorded on a payment.
// The authorization flow only persists approved payments; declined and failed
// are representable for gateway results and future flows.
type PaymentStatus string

const (
	StatusApproved PaymentStatus = "APPROVED"
	StatusDeclined PaymentStatus = "DECLINED"
	StatusFailed   PaymentStatus = "FAILED"
)

// Payment is the authorized-transaction ledger record. Rows are append-only:
// once persisted a payment is never updated or deleted.
//
// Invariant: FeeAmount + NetAmount == Amount exactly.
type Payment struct {
	ID             int64
	PartnerID      int64
	Amount         decimal.Decimal
	AppliedFeeRate decimal.Decimal
	FeeAmount      decimal.Decimal
	NetAmount      decimal.Decimal
	CardBin        string
	CardLast4      string
	ApprovalCode   string
	ApprovedAt     time.Time
	Status         PaymentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaymentSummary aggregates the full filtered ledger population,
// independent of pagination.
type PaymentSummary struct {
	Count          int64
	TotalAmount    decimal.Decimal
	TotalNetAmount decimal.Decimal
}
