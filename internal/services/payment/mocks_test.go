package payment

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// nopLogger discards everything; tests assert on behavior, not log output.
type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByID(ctx context.Context, db ports.DBTX, id int64) (*models.Partner, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

type MockFeeScheduleRepository struct {
	mock.Mock
}

func (m *MockFeeScheduleRepository) FindEffective(ctx context.Context, db ports.DBTX, partnerID int64, asOf time.Time) (*models.FeeSchedule, error) {
	args := m.Called(ctx, db, partnerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeSchedule), args.Error(1)
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) FindActiveByPartner(ctx context.Context, db ports.DBTX, partnerID int64) ([]models.GatewayRoute, error) {
	args := m.Called(ctx, db, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GatewayRoute), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Save(ctx context.Context, db ports.DBTX, payment *models.Payment) (*models.Payment, error) {
	args := m.Called(ctx, db, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPage(ctx context.Context, db ports.DBTX, query ports.PaymentQuery) (*ports.PaymentPage, error) {
	args := m.Called(ctx, db, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentPage), args.Error(1)
}

func (m *MockPaymentRepository) Summarize(ctx context.Context, db ports.DBTX, filter ports.PaymentSummaryFilter) (*models.PaymentSummary, error) {
	args := m.Called(ctx, db, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentSummary), args.Error(1)
}

type MockGateway struct {
	mock.Mock
	gatewayType models.GatewayType
}

func NewMockGateway(t models.GatewayType) *MockGateway {
	return &MockGateway{gatewayType: t}
}

func (m *MockGateway) Type() models.GatewayType {
	return m.gatewayType
}

func (m *MockGateway) Authorize(ctx context.Context, req *ports.AuthorizeRequest) (*ports.AuthorizeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.AuthorizeResult), args.Error(1)
}
