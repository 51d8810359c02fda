// Package dummypay is a second local gateway used as a failover target.
package dummypay

import (
	"context"
	"fmt"
	"time"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// Client implements ports.PaymentGateway; approval codes are DUMMY-<millis>.
type Client struct{}

// NewClient creates a DummyPay client
func NewClient() *Client {
	return &Client{}
}

// Type implements ports.PaymentGateway
func (c *Client) Type() models.GatewayType {
	return models.GatewayDummyPay
}

// Authorize approves every charge without a network call.
func (c *Client) Authorize(_ context.Context, _ *ports.AuthorizeRequest) (*ports.AuthorizeResult, error) {
	return &ports.AuthorizeResult{
		ApprovalCode: fmt.Sprintf("DUMMY-%d", time.Now().UnixMilli()),
		ApprovedAt:   time.Now().UTC(),
		Status:       models.StatusApproved,
	}, nil
}
