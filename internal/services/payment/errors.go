package payment

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PartnerNotFoundError indicates the requested partner does not exist.
type PartnerNotFoundError struct {
	PartnerID int64
}

func (e *PartnerNotFoundError) Error() string {
	return fmt.Sprintf("partner not found: %d", e.PartnerID)
}

// PartnerInactiveError indicates the partner exists but is disabled.
// Inactive partners can never produce a new authorized payment.
type PartnerInactiveError struct {
	PartnerID int64
}

func (e *PartnerInactiveError) Error() string {
	return fmt.Sprintf("partner is inactive: %d", e.PartnerID)
}

// InvalidAmountError indicates a non-positive charge amount.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount must be positive: %s", e.Amount)
}

// NoRouteConfiguredError indicates the partner has zero active gateway routes.
// This is a configuration gap, not a gateway failure: no attempt was made.
type NoRouteConfiguredError struct {
	PartnerID int64
}

func (e *NoRouteConfiguredError) Error() string {
	return fmt.Sprintf("no gateway route configured for partner %d", e.PartnerID)
}

// AllGatewaysFailedError indicates every configured gateway attempt failed.
// Attempts holds one "<gateway>(<reason>)" entry per route, in priority order,
// so operators can tell a failing gateway from an unregistered one.
type AllGatewaysFailedError struct {
	PartnerID int64
	Attempts  []string
}

func (e *AllGatewaysFailedError) Error() string {
	return fmt.Sprintf("all gateways failed for partner %d: [%s]",
		e.PartnerID, strings.Join(e.Attempts, ", "))
}

// NoEffectiveFeeScheduleError indicates no fee schedule has taken effect for
// the partner at the charge time.
type NoEffectiveFeeScheduleError struct {
	PartnerID int64
}

func (e *NoEffectiveFeeScheduleError) Error() string {
	return fmt.Sprintf("no effective fee schedule for partner %d", e.PartnerID)
}
