package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// PartnerRepository implements ports.PartnerRepository
type PartnerRepository struct {
	pool *pgxpool.Pool
}

// NewPartnerRepository creates a new partner repository
func NewPartnerRepository(db ports.DBPort) *PartnerRepository {
	return &PartnerRepository{pool: db.GetDB()}
}

// FindByID returns the partner or nil when no row exists.
func (r *PartnerRepository) FindByID(ctx context.Context, db ports.DBTX, id int64) (*models.Partner, error) {
	const query = `
		SELECT id, code, name, active, created_at, updated_at
		FROM partners
		WHERE id = $1`

	var p models.Partner
	err := querier(r.pool, db).QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Code, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find partner by id: %w", err)
	}
	return &p, nil
}
