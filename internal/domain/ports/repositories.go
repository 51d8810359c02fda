package ports

import (
	"context"
	"time"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
)

// PartnerRepository reads partner identities. Partners are managed elsewhere;
// a nil result with a nil error means the partner does not exist.
type PartnerRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*models.Partner, error)
}

// FeeScheduleRepository resolves the fee rule in force for a partner.
type FeeScheduleRepository interface {
	// FindEffective returns the schedule with the latest EffectiveFrom <= asOf,
	// or nil when no schedule has taken effect yet.
	FindEffective(ctx context.Context, db DBTX, partnerID int64, asOf time.Time) (*models.FeeSchedule, error)
}

// RouteRepository reads a partner's gateway bindings.
type RouteRepository interface {
	// FindActiveByPartner returns active routes ordered by ascending priority.
	// An empty slice means the partner has no failover chain configured.
	FindActiveByPartner(ctx context.Context, db DBTX, partnerID int64) ([]models.GatewayRoute, error)
}

// PaymentQuery selects one ledger page: the filter plus the keyset position
// of the previous page's last row under (created_at DESC, id DESC) ordering.
type PaymentQuery struct {
	PartnerID       *int64
	Status          *models.PaymentStatus
	From            *time.Time
	To              *time.Time
	CursorCreatedAt *time.Time
	CursorID        *int64
	Limit           int32
}

// PaymentPage is one page of ledger rows plus the keyset of its last row.
type PaymentPage struct {
	Items         []*models.Payment
	HasNext       bool
	NextCreatedAt *time.Time
	NextID        *int64
}

// PaymentSummaryFilter mirrors PaymentQuery without the cursor position:
// summaries always cover the whole filtered population.
type PaymentSummaryFilter struct {
	PartnerID *int64
	Status    *models.PaymentStatus
	From      *time.Time
	To        *time.Time
}

// PaymentRepository persists and reads the payment ledger.
type PaymentRepository interface {
	// Save inserts the payment and returns the persisted form with the
	// database-assigned id and timestamps.
	Save(ctx context.Context, db DBTX, payment *models.Payment) (*models.Payment, error)
	FindPage(ctx context.Context, db DBTX, query PaymentQuery) (*PaymentPage, error)
	Summarize(ctx context.Context, db DBTX, filter PaymentSummaryFilter) (*models.PaymentSummary, error)
}
