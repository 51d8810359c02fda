package models

import "time"

// GatewayType identifies an external payment gateway integration.
type GatewayType string

const (
	GatewayMockPay  GatewayType = "MOCKPAY"
	GatewayTestPay  GatewayType = "TESTPAY"
	GatewayDummyPay GatewayType = "DUMMYPAY"
)

// GatewayRoute binds a partner to a gateway with a failover priority.
// Lower priority is tried first; inactive routes are never attempted.
type GatewayRoute struct {
	ID        int64
	PartnerID int64
	Gateway   GatewayType
	Priority  int32
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
