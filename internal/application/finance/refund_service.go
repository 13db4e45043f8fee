package finance

import (
	"context"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// RefundService exposes the refund ledgers. Refunds are created and resized
// by the return workflow; this service only reads them, enriched with the
// active payout totals.
type RefundService struct {
	refundRepo        finance.RefundRepository
	refundPaymentRepo finance.RefundPaymentRepository
}

// NewRefundService creates a new RefundService
func NewRefundService(refundRepo finance.RefundRepository, refundPaymentRepo finance.RefundPaymentRepository) *RefundService {
	return &RefundService{
		refundRepo:        refundRepo,
		refundPaymentRepo: refundPaymentRepo,
	}
}

// GetByID retrieves a refund with its payout totals
func (s *RefundService) GetByID(ctx context.Context, id uuid.UUID) (*RefundResponse, error) {
	refund, err := s.refundRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, refund)
}

// GetBySale retrieves the refund ledger of a sale
func (s *RefundService) GetBySale(ctx context.Context, saleID uuid.UUID) (*RefundResponse, error) {
	refund, err := s.refundRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, refund)
}

// List retrieves refunds with pagination
func (s *RefundService) List(ctx context.Context, filter ListFilter) ([]RefundResponse, int64, error) {
	page, err := s.refundRepo.FindAll(ctx, buildFilter(filter))
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RefundResponse, 0, len(page.Items))
	for _, refund := range page.Items {
		resp, err := s.toResponse(ctx, refund)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *resp)
	}
	return responses, page.Total, nil
}

func (s *RefundService) toResponse(ctx context.Context, refund *finance.Refund) (*RefundResponse, error) {
	paidOut, err := s.refundPaymentRepo.ActiveTotal(ctx, refund.ID)
	if err != nil {
		return nil, err
	}
	response := ToRefundResponse(refund, paidOut)
	return &response, nil
}
