package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// RouteRepository implements ports.RouteRepository
type RouteRepository struct {
	pool *pgxpool.Pool
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db ports.DBPort) *RouteRepository {
	return &RouteRepository{pool: db.GetDB()}
}

// FindActiveByPartner returns the partner's active routes ordered by ascending
// priority. Inactive routes are excluded entirely, not demoted.
func (r *RouteRepository) FindActiveByPartner(ctx context.Context, db ports.DBTX, partnerID int64) ([]models.GatewayRoute, error) {
	const query = `
		SELECT id, partner_id, gateway_type, priority, active, created_at, updated_at
		FROM gateway_routes
		WHERE partner_id = $1 AND active
		ORDER BY priority ASC, id ASC`

	rows, err := querier(r.pool, db).Query(ctx, query, partnerID)
	if err != nil {
		return nil, fmt.Errorf("find active routes: %w", err)
	}
	defer rows.Close()

	var routes []models.GatewayRoute
	for rows.Next() {
		var (
			rt      models.GatewayRoute
			gateway string
		)
		if err := rows.Scan(&rt.ID, &rt.PartnerID, &gateway, &rt.Priority, &rt.Active, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		rt.Gateway = models.GatewayType(gateway)
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routes: %w", err)
	}
	return routes, nil
}
