package finance

import (
	"context"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RefundPaymentService records money handed back to clients against refund
// ledgers. Payouts are bounded by the refund's remaining balance and, since
// money leaves the drawer, card is not an accepted method.
type RefundPaymentService struct {
	refundPaymentRepo finance.RefundPaymentRepository
	refundRepo        finance.RefundRepository
	logger            *zap.Logger
}

// NewRefundPaymentService creates a new RefundPaymentService
func NewRefundPaymentService(
	refundPaymentRepo finance.RefundPaymentRepository,
	refundRepo finance.RefundRepository,
	logger *zap.Logger,
) *RefundPaymentService {
	return &RefundPaymentService{
		refundPaymentRepo: refundPaymentRepo,
		refundRepo:        refundRepo,
		logger:            logger,
	}
}

// Create records a payout against a refund, in the refund's currency
func (s *RefundPaymentService) Create(ctx context.Context, createdBy uuid.UUID, req CreateRefundPaymentRequest) (*RefundPaymentResponse, error) {
	refund, err := s.refundRepo.FindByID(ctx, req.RefundID)
	if err != nil {
		return nil, err
	}

	method := finance.PaymentMethod(req.Method)
	if method == finance.PaymentMethodCard {
		return nil, shared.NewDomainError("INVALID_METHOD", "Refunds cannot be paid out by card")
	}

	paidOut, err := s.refundPaymentRepo.ActiveTotal(ctx, refund.ID)
	if err != nil {
		return nil, err
	}

	if req.Amount.GreaterThan(refund.Remaining(paidOut)) {
		return nil, shared.NewDomainError("EXCEEDS_REFUND_BALANCE", "Payout exceeds the refund's remaining balance")
	}

	payment, err := finance.NewRefundPayment(refund.ID, req.Amount, refund.Currency, method, req.Reference, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.refundPaymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	if refund.IsSettled(paidOut.Add(req.Amount)) {
		s.logger.Info("refund settled",
			zap.String("refund_id", refund.ID.String()),
			zap.String("total", refund.TotalRefundAmount.String()))
	}

	response := ToRefundPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a refund payout by ID
func (s *RefundPaymentService) GetByID(ctx context.Context, id uuid.UUID) (*RefundPaymentResponse, error) {
	payment, err := s.refundPaymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToRefundPaymentResponse(payment)
	return &response, nil
}

// GetByRefund retrieves all payouts recorded against a refund
func (s *RefundPaymentService) GetByRefund(ctx context.Context, refundID uuid.UUID) ([]RefundPaymentResponse, error) {
	payments, err := s.refundPaymentRepo.FindByRefund(ctx, refundID)
	if err != nil {
		return nil, err
	}

	responses := make([]RefundPaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = ToRefundPaymentResponse(payment)
	}
	return responses, nil
}

// Cancel voids a payout, restoring the refund's remaining balance
func (s *RefundPaymentService) Cancel(ctx context.Context, id uuid.UUID) (*RefundPaymentResponse, error) {
	payment, err := s.refundPaymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payment.Cancel(); err != nil {
		return nil, err
	}

	if err := s.refundPaymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToRefundPaymentResponse(payment)
	return &response, nil
}

// Delete physically removes a payout. Only canceled payouts may be deleted.
func (s *RefundPaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.refundPaymentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !payment.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only canceled payouts can be deleted")
	}
	return s.refundPaymentRepo.Delete(ctx, id)
}
