package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// PaymentRepository implements ports.PaymentRepository
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db ports.DBPort) *PaymentRepository {
	return &PaymentRepository{pool: db.GetDB()}
}

// Save inserts the payment and returns it with the database-assigned id and
// timestamps. The ledger is append-only; there is no update path.
func (r *PaymentRepository) Save(ctx context.Context, db ports.DBTX, payment *models.Payment) (*models.Payment, error) {
	const query = `
		INSERT INTO payments (
			partner_id, amount, applied_fee_rate, fee_amount, net_amount,
			card_bin, card_last4, approval_code, approved_at, status
		) VALUES ($1, $2::numeric, $3::numeric, $4::numeric, $5::numeric, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	saved := *payment
	err := querier(r.pool, db).QueryRow(ctx, query,
		payment.PartnerID,
		payment.Amount.String(),
		payment.AppliedFeeRate.String(),
		payment.FeeAmount.String(),
		payment.NetAmount.String(),
		payment.CardBin,
		payment.CardLast4,
		payment.ApprovalCode,
		payment.ApprovedAt,
		string(payment.Status),
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return &saved, nil
}

// FindPage returns one keyset page ordered (created_at DESC, id DESC). The
// cursor position bounds the page strictly: earlier created_at, or equal
// created_at with a smaller id. One extra row is fetched to learn whether a
// further page exists.
func (r *PaymentRepository) FindPage(ctx context.Context, db ports.DBTX, q ports.PaymentQuery) (*ports.PaymentPage, error) {
	where, args := filterConditions(q.PartnerID, q.Status, q.From, q.To)
	if q.CursorCreatedAt != nil && q.CursorID != nil {
		args = append(args, *q.CursorCreatedAt, *q.CursorID)
		where = append(where, fmt.Sprintf(
			"(created_at < $%d OR (created_at = $%d AND id < $%d))",
			len(args)-1, len(args)-1, len(args)))
	}

	args = append(args, q.Limit+1)
	query := fmt.Sprintf(`
		SELECT id, partner_id, amount::text, applied_fee_rate::text, fee_amount::text,
		       net_amount::text, card_bin, card_last4, approval_code, approved_at,
		       status, created_at, updated_at
		FROM payments
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d`, whereClause(where), len(args))

	rows, err := querier(r.pool, db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payment page: %w", err)
	}
	defer rows.Close()

	var items []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	page := &ports.PaymentPage{}
	if int32(len(items)) > q.Limit {
		page.HasNext = true
		items = items[:q.Limit]
	}
	page.Items = items
	if page.HasNext && len(items) > 0 {
		last := items[len(items)-1]
		page.NextCreatedAt = &last.CreatedAt
		page.NextID = &last.ID
	}
	return page, nil
}

// Summarize aggregates the entire filtered population. The cursor never
// participates here, so the summary is identical on every page of a filter.
func (r *PaymentRepository) Summarize(ctx context.Context, db ports.DBTX, f ports.PaymentSummaryFilter) (*models.PaymentSummary, error) {
	where, args := filterConditions(f.PartnerID, f.Status, f.From, f.To)
	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0)::text,
		       COALESCE(SUM(net_amount), 0)::text
		FROM payments
		%s`, whereClause(where))

	var (
		summary     models.PaymentSummary
		totalAmount string
		totalNet    string
	)
	err := querier(r.pool, db).QueryRow(ctx, query, args...).Scan(
		&summary.Count, &totalAmount, &totalNet,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize payments: %w", err)
	}

	if summary.TotalAmount, err = decimal.NewFromString(totalAmount); err != nil {
		return nil, fmt.Errorf("parse total amount: %w", err)
	}
	if summary.TotalNetAmount, err = decimal.NewFromString(totalNet); err != nil {
		return nil, fmt.Errorf("parse total net amount: %w", err)
	}
	return &summary, nil
}
