package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
	"github.com/nanobananapay/payment-gateway/pkg/observability"
	"github.com/nanobananapay/payment-gateway/pkg/resilience"
)

// Router picks a partner's gateways in priority order and fails over
// sequentially: the first successful attempt wins, every failed attempt is
// recorded on the returned error. Attempts are deliberately not parallelized;
// priority order is a correctness requirement, not an optimization target.
type Router struct {
	routes   ports.RouteRepository
	gateways map[models.GatewayType]ports.PaymentGateway
	timeouts *resilience.TimeoutConfig
	logger   ports.Logger
}

// NewRouter creates a router over the registered gateway implementations.
func NewRouter(
	routes ports.RouteRepository,
	gateways []ports.PaymentGateway,
	timeouts *resilience.TimeoutConfig,
	logger ports.Logger,
) *Router {
	registry := make(map[models.GatewayType]ports.PaymentGateway, len(gateways))
	for _, gw := range gateways {
		registry[gw.Type()] = gw
	}
	return &Router{
		routes:   routes,
		gateways: registry,
		timeouts: timeouts,
		logger:   logger,
	}
}

// Authorize attempts the partner's active routes in ascending priority order.
//
// A route whose gateway type has no registered implementation is recorded as
// "<type>(no implementation)" and skipped. A route whose gateway returns an
// error is recorded as "<type>(<error>)" and the next route is tried. The
// first success is returned immediately; exhaustion yields
// AllGatewaysFailedError carrying the ordered attempt list.
func (r *Router) Authorize(ctx context.Context, partnerID int64, req *ports.AuthorizeRequest) (*ports.AuthorizeResult, error) {
	routeList, err := r.routes.FindActiveByPartner(ctx, nil, partnerID)
	if err != nil {
		return nil, fmt.Errorf("find active routes: %w", err)
	}
	if len(routeList) == 0 {
		r.logger.Warn("no gateway route configured",
			ports.Int64("partner_id", partnerID))
		return nil, &NoRouteConfiguredError{PartnerID: partnerID}
	}

	attempts := make([]string, 0, len(routeList))
	for _, route := range routeList {
		gateway, ok := r.gateways[route.Gateway]
		if !ok {
			attempts = append(attempts, fmt.Sprintf("%s(no implementation)", route.Gateway))
			observability.RecordGatewayAttempt(string(route.Gateway), "no_implementation", 0)
			r.logger.Warn("no implementation registered for routed gateway",
				ports.Int64("partner_id", partnerID),
				ports.String("gateway", string(route.Gateway)),
				ports.Int("priority", int(route.Priority)))
			continue
		}

		start := time.Now()
		callCtx, cancel := r.timeouts.GatewayCallContext(ctx)
		result, err := gateway.Authorize(callCtx, req)
		cancel()

		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s(%s)", route.Gateway, err.Error()))
			observability.RecordGatewayAttempt(string(route.Gateway), "error", time.Since(start))
			r.logger.Warn("gateway authorization failed, failing over",
				ports.Int64("partner_id", partnerID),
				ports.String("gateway", string(route.Gateway)),
				ports.Int("priority", int(route.Priority)),
				ports.Err(err))
			continue
		}

		observability.RecordGatewayAttempt(string(route.Gateway), "success", time.Since(start))
		r.logger.Info("gateway authorization approved",
			ports.Int64("partner_id", partnerID),
			ports.String("gateway", string(route.Gateway)),
			ports.String("approval_code", result.ApprovalCode))
		return result, nil
	}

	r.logger.Error("all gateway attempts failed",
		ports.Int64("partner_id", partnerID),
		ports.Strings("attempts", attempts))
	return nil, &AllGatewaysFailedError{PartnerID: partnerID, Attempts: attempts}
}

// SelectPrimary returns the implementation behind the partner's top-priority
// active route without attempting a call, for callers that want a handle
// rather than an outcome.
func (r *Router) SelectPrimary(ctx context.Context, partnerID int64) (ports.PaymentGateway, error) {
	routeList, err := r.routes.FindActiveByPartner(ctx, nil, partnerID)
	if err != nil {
		return nil, fmt.Errorf("find active routes: %w", err)
	}
	if len(routeList) == 0 {
		return nil, &NoRouteConfiguredError{PartnerID: partnerID}
	}

	primary := routeList[0]
	gateway, ok := r.gateways[primary.Gateway]
	if !ok {
		return nil, fmt.Errorf("no implementation registered for gateway %s", primary.Gateway)
	}
	return gateway, nil
}
