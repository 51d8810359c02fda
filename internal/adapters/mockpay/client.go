// Package mockpay provides a local gateway that always approves, for demo
// partners and failover drills.
package mockpay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// Client implements ports.PaymentGateway without any network call.
type Client struct{}

// NewClient creates a MockPay client
func NewClient() *Client {
	return &Client{}
}

// Type implements ports.PaymentGateway
func (c *Client) Type() models.GatewayType {
	return models.GatewayMockPay
}

// Authorize approves every charge with a MOCK-<uuid> approval code.
func (c *Client) Authorize(_ context.Context, _ *ports.AuthorizeRequest) (*ports.AuthorizeResult, error) {
	return &ports.AuthorizeResult{
		ApprovalCode: fmt.Sprintf("MOCK-%s", uuid.NewString()),
		ApprovedAt:   time.Now().UTC(),
		Status:       models.StatusApproved,
	}, nil
}
