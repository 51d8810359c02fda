package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// FeeScheduleRepository implements ports.FeeScheduleRepository
type FeeScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewFeeScheduleRepository creates a new fee schedule repository
func NewFeeScheduleRepository(db ports.DBPort) *FeeScheduleRepository {
	return &FeeScheduleRepository{pool: db.GetDB()}
}

// FindEffective returns the schedule with the latest effective_from <= asOf,
// or nil when none has taken effect. Identical effective_from values resolve
// to the highest id, so the later-inserted rule wins.
func (r *FeeScheduleRepository) FindEffective(ctx context.Context, db ports.DBTX, partnerID int64, asOf time.Time) (*models.FeeSchedule, error) {
	const query = `
		SELECT id, partner_id, effective_from, percentage::text, fixed_fee::text, created_at
		FROM fee_schedules
		WHERE partner_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC, id DESC
		LIMIT 1`

	var (
		s          models.FeeSchedule
		percentage string
		fixedFee   string
	)
	err := querier(r.pool, db).QueryRow(ctx, query, partnerID, asOf).Scan(
		&s.ID, &s.PartnerID, &s.EffectiveFrom, &percentage, &fixedFee, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find effective fee schedule: %w", err)
	}

	if s.Percentage, err = decimal.NewFromString(percentage); err != nil {
		return nil, fmt.Errorf("parse percentage: %w", err)
	}
	if s.FixedFee, err = decimal.NewFromString(fixedFee); err != nil {
		return nil, fmt.Errorf("parse fixed fee: %w", err)
	}
	return &s, nil
}
