// Package ledger serves the cursor-paginated, aggregated transaction history.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
	"github.com/nanobananapay/payment-gateway/pkg/observability"
)

const (
	defaultLimit int32 = 20
	maxLimit     int32 = 100
)

// Filter selects the ledger rows to return. All fields are optional; Cursor
// is the opaque token from a previous response.
type Filter struct {
	PartnerID *int64
	Status    *models.PaymentStatus
	From      *time.Time
	To        *time.Time
	Cursor    string
	Limit     int32
}

// Result is one ledger page plus the aggregate over the whole filtered
// population. NextCursor is "" when there is no further page.
type Result struct {
	Items      []*models.Payment
	Summary    models.PaymentSummary
	NextCursor string
	HasNext    bool
}

// Service coordinates the two logically independent reads behind one ledger
// query: the cursor-bounded page and the cursor-free aggregate. The aggregate
// covers the entire filtered population, so it is stable across pages of the
// same filter.
type Service struct {
	payments ports.PaymentRepository
	logger   ports.Logger
}

// NewService creates a new ledger query service
func NewService(payments ports.PaymentRepository, logger ports.Logger) *Service {
	return &Service{payments: payments, logger: logger}
}

// Query returns the next page of payments matching the filter, ordered
// (createdAt DESC, id DESC) strictly after the cursor position, together with
// the filter-wide summary and a fresh cursor for the page's last row.
func (s *Service) Query(ctx context.Context, filter Filter) (*Result, error) {
	start := time.Now()

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cursorCreatedAt, cursorID := decodeCursor(filter.Cursor)

	page, err := s.payments.FindPage(ctx, nil, ports.PaymentQuery{
		PartnerID:       filter.PartnerID,
		Status:          filter.Status,
		From:            filter.From,
		To:              filter.To,
		CursorCreatedAt: cursorCreatedAt,
		CursorID:        cursorID,
		Limit:           limit,
	})
	if err != nil {
		observability.RecordLedgerQuery("error", time.Since(start))
		return nil, fmt.Errorf("find payment page: %w", err)
	}

	summary, err := s.payments.Summarize(ctx, nil, ports.PaymentSummaryFilter{
		PartnerID: filter.PartnerID,
		Status:    filter.Status,
		From:      filter.From,
		To:        filter.To,
	})
	if err != nil {
		observability.RecordLedgerQuery("error", time.Since(start))
		return nil, fmt.Errorf("summarize payments: %w", err)
	}

	observability.RecordLedgerQuery("success", time.Since(start))
	return &Result{
		Items:      page.Items,
		Summary:    *summary,
		NextCursor: encodeCursor(page.NextCreatedAt, page.NextID),
		HasNext:    page.HasNext,
	}, nil
}
