package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner is a merchant-side account that submits charges. Inactive partners
// keep their history but cannot authorize new payments.
type Partner struct {
	ID        int64
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeeSchedule is one fee rule for a partner, in force from EffectiveFrom
// until a later schedule supersedes it. Percentage is a fraction (0.0235 for
// 2.35%); FixedFee is an absolute amount added after the percentage part is
// rounded.
type FeeSchedule struct {
	ID            int64
	PartnerID     int64
	EffectiveFrom time.Time
	Percentage    decimal.Decimal
	FixedFee      decimal.Decimal
	CreatedAt     time.Time
}
