package resilience

import (
	"context"
	"time"
)

// TimeoutConfig defines the application's timeout hierarchy, outermost to
// innermost:
//
//	HTTP Handler (60s) > Service (50s) > Gateway call (30s) > DB query (2s/5s)
//
// Each layer completes before its parent times out, so a slow gateway surfaces
// as a gateway error inside the failover loop instead of a dead request.
type TimeoutConfig struct {
	HTTPHandler time.Duration // Overall request timeout
	Service     time.Duration // Service operation timeout (must be < HTTPHandler)
	GatewayCall time.Duration // Single external gateway authorization attempt

	SimpleQuery  time.Duration // ID lookups, single row operations
	ComplexQuery time.Duration // Filtered page scans, aggregations
}

// DefaultTimeoutConfig returns production timeout values
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		HTTPHandler:  60 * time.Second,
		Service:      50 * time.Second,
		GatewayCall:  30 * time.Second,
		SimpleQuery:  2 * time.Second,
		ComplexQuery: 5 * time.Second,
	}
}

// TestTimeoutConfig returns shorter timeouts for testing
func TestTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		HTTPHandler:  5 * time.Second,
		Service:      4 * time.Second,
		GatewayCall:  2 * time.Second,
		SimpleQuery:  time.Second,
		ComplexQuery: time.Second,
	}
}

// HandlerContext creates a context with timeout for HTTP handlers
func (tc *TimeoutConfig) HandlerContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, tc.HTTPHandler)
}

// ServiceContext creates a context with timeout for service layer operations
func (tc *TimeoutConfig) ServiceContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, tc.Service)
}

// GatewayCallContext creates a context for a single gateway attempt
func (tc *TimeoutConfig) GatewayCallContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, tc.GatewayCall)
}

// SimpleQueryContext creates a context for single-row database operations
func (tc *TimeoutConfig) SimpleQueryContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, tc.SimpleQuery)
}

// ComplexQueryContext creates a context for page and aggregate queries
func (tc *TimeoutConfig) ComplexQueryContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, tc.ComplexQuery)
}
