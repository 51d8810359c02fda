package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nanobananapay/payment-gateway/internal/domain/fees"
	"github.com/nanobananapay/payment-gateway/internal/domain/models"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
	"github.com/nanobananapay/payment-gateway/pkg/observability"
)

// AuthorizeCommand carries one authorization request into the service.
type AuthorizeCommand struct {
	PartnerID   int64
	Amount      decimal.Decimal
	CardBin     string
	CardLast4   string
	ProductName string
}

// Service implements the authorization use case: validate the partner, route
// the charge through the failover chain, apply the partner's effective fee
// schedule, and persist the approved payment. Exactly one durable write
// happens, and only after both the authorization and the fee resolution
// succeeded; failed attempts never leave a record.
type Service struct {
	partners     ports.PartnerRepository
	feeSchedules ports.FeeScheduleRepository
	payments     ports.PaymentRepository
	router       *Router
	logger       ports.Logger

	now func() time.Time
}

// NewService creates a new authorization service
func NewService(
	partners ports.PartnerRepository,
	feeSchedules ports.FeeScheduleRepository,
	payments ports.PaymentRepository,
	router *Router,
	logger ports.Logger,
) *Service {
	return &Service{
		partners:     partners,
		feeSchedules: feeSchedules,
		payments:     payments,
		router:       router,
		logger:       logger,
		now:          time.Now,
	}
}

// Authorize processes one charge and returns the persisted payment.
func (s *Service) Authorize(ctx context.Context, cmd AuthorizeCommand) (*models.Payment, error) {
	if !cmd.Amount.IsPositive() {
		observability.RecordAuthorization(cmd.PartnerID, "rejected")
		return nil, &InvalidAmountError{Amount: cmd.Amount}
	}

	partner, err := s.partners.FindByID(ctx, nil, cmd.PartnerID)
	if err != nil {
		observability.RecordAuthorization(cmd.PartnerID, "error")
		return nil, fmt.Errorf("find partner: %w", err)
	}
	if partner == nil {
		observability.RecordAuthorization(cmd.PartnerID, "rejected")
		return nil, &PartnerNotFoundError{PartnerID: cmd.PartnerID}
	}
	if !partner.Active {
		observability.RecordAuthorization(cmd.PartnerID, "rejected")
		return nil, &PartnerInactiveError{PartnerID: partner.ID}
	}

	result, err := s.router.Authorize(ctx, partner.ID, &ports.AuthorizeRequest{
		PartnerID:   partner.ID,
		Amount:      cmd.Amount,
		CardBin:     cmd.CardBin,
		CardLast4:   cmd.CardLast4,
		ProductName: cmd.ProductName,
	})
	if err != nil {
		// Router failures propagate unchanged; retrying the request as a
		// whole is the caller's call.
		observability.RecordAuthorization(cmd.PartnerID, "routing_failed")
		return nil, err
	}

	schedule, err := s.feeSchedules.FindEffective(ctx, nil, partner.ID, s.now())
	if err != nil {
		observability.RecordAuthorization(cmd.PartnerID, "error")
		return nil, fmt.Errorf("find effective fee schedule: %w", err)
	}
	if schedule == nil {
		observability.RecordAuthorization(cmd.PartnerID, "error")
		return nil, &NoEffectiveFeeScheduleError{PartnerID: partner.ID}
	}

	fee, net := fees.Calculate(cmd.Amount, schedule.Percentage, schedule.FixedFee)

	saved, err := s.payments.Save(ctx, nil, &models.Payment{
		PartnerID:      partner.ID,
		Amount:         cmd.Amount,
		AppliedFeeRate: schedule.Percentage,
		FeeAmount:      fee,
		NetAmount:      net,
		CardBin:        cmd.CardBin,
		CardLast4:      cmd.CardLast4,
		ApprovalCode:   result.ApprovalCode,
		ApprovedAt:     result.ApprovedAt,
		Status:         models.StatusApproved,
	})
	if err != nil {
		observability.RecordAuthorization(cmd.PartnerID, "error")
		return nil, fmt.Errorf("save payment: %w", err)
	}

	observability.RecordAuthorization(cmd.PartnerID, "approved")
	s.logger.Info("payment authorized",
		ports.Int64("payment_id", saved.ID),
		ports.Int64("partner_id", saved.PartnerID),
		ports.String("approval_code", saved.ApprovalCode),
		ports.String("fee_amount", saved.FeeAmount.String()),
		ports.String("net_amount", saved.NetAmount.String()))
	return saved, nil
}
