package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
)

// filterConditions builds the WHERE fragments shared by the page and summary
// queries, keeping both reads over the exact same population.
func filterConditions(partnerID *int64, status *models.PaymentStatus, from, to *time.Time) ([]string, []any) {
	var (
		where []string
		args  []any
	)
	if partnerID != nil {
		args = append(args, *partnerID)
		where = append(where, fmt.Sprintf("partner_id = $%d", len(args)))
	}
	if status != nil {
		args = append(args, string(*status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if from != nil {
		args = append(args, *from)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	return where, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

func scanPayment(rows pgx.Rows) (*models.Payment, error) {
	var (
		p      models.Payment
		amount string
		rate   string
		fee    string
		net    string
		status string
	)
	err := rows.Scan(
		&p.ID, &p.PartnerID, &amount, &rate, &fee, &net,
		&p.CardBin, &p.CardLast4, &p.ApprovalCode, &p.ApprovedAt,
		&status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	if p.AppliedFeeRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("parse applied fee rate: %w", err)
	}
	if p.FeeAmount, err = decimal.NewFromString(fee); err != nil {
		return nil, fmt.Errorf("parse fee amount: %w", err)
	}
	if p.NetAmount, err = decimal.NewFromString(net); err != nil {
		return nil, fmt.Errorf("parse net amount: %w", err)
	}
	p.Status = models.PaymentStatus(status)
	return &p, nil
}
