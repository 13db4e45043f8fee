package trade

import (
	"context"
	"errors"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReturnService handles sale returns. Each committed return restores stock
// through the created event handler and feeds the sale's refund ledger, both
// inside the transaction that writes the return; canceling a return reverses
// both, as long as the refund has not already been paid out past the reduced
// total.
type ReturnService struct {
	returnRepo        trade.ReturnRepository
	saleRepo          trade.SaleRepository
	refundRepo        finance.RefundRepository
	refundPaymentRepo finance.RefundPaymentRepository
	tx                shared.TransactionManager
	publisher         shared.EventPublisher
	logger            *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(
	returnRepo trade.ReturnRepository,
	saleRepo trade.SaleRepository,
	refundRepo finance.RefundRepository,
	refundPaymentRepo finance.RefundPaymentRepository,
	tx shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ReturnService {
	return &ReturnService{
		returnRepo:        returnRepo,
		saleRepo:          saleRepo,
		refundRepo:        refundRepo,
		refundPaymentRepo: refundPaymentRepo,
		tx:                tx,
		publisher:         publisher,
		logger:            logger,
	}
}

// Create records a return against a sale. Quantities are bounded by what was
// sold minus what earlier active returns already took back. The sale's refund
// ledger is created on first return and grown on later ones.
func (s *ReturnService) Create(ctx context.Context, createdBy uuid.UUID, req CreateReturnRequest) (*ReturnResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}

	ret, err := trade.NewReturn(sale, createdBy)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		saleItem := sale.GetItemByProduct(line.ProductID)
		if saleItem == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Product was not part of this sale")
		}

		alreadyReturned, err := s.returnRepo.ReturnedQuantity(ctx, sale.ID, line.ProductID)
		if err != nil {
			return nil, err
		}

		if err := ret.AddItem(saleItem, line.Quantity, alreadyReturned); err != nil {
			return nil, err
		}
	}

	if req.Remarks != "" {
		ret.SetRemarks(req.Remarks)
	}

	if err := ret.Commit(); err != nil {
		return nil, err
	}

	if err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.returnRepo.Save(ctx, ret); err != nil {
			return err
		}
		if err := s.upsertRefund(ctx, sale, ret, createdBy); err != nil {
			return err
		}
		return s.publisher.Publish(ctx, ret.GetDomainEvents()...)
	}); err != nil {
		return nil, err
	}
	ret.ClearDomainEvents()

	response := ToReturnResponse(ret)
	return &response, nil
}

// GetByID retrieves a return with its lines
func (s *ReturnService) GetByID(ctx context.Context, id uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToReturnResponse(ret)
	return &response, nil
}

// GetBySale retrieves all returns recorded against a sale
func (s *ReturnService) GetBySale(ctx context.Context, saleID uuid.UUID) ([]ReturnResponse, error) {
	returns, err := s.returnRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReturnResponse, len(returns))
	for i, ret := range returns {
		responses[i] = ToReturnResponse(ret)
	}
	return responses, nil
}

// List retrieves returns with filtering and pagination
func (s *ReturnService) List(ctx context.Context, filter ListFilter) ([]ReturnResponse, int64, error) {
	page, err := s.returnRepo.FindAll(ctx, buildFilter(filter, "created_at", "desc"))
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReturnResponse, len(page.Items))
	for i, ret := range page.Items {
		responses[i] = ToReturnResponse(ret)
	}
	return responses, page.Total, nil
}

// Cancel voids a return: restored stock is taken back out and the sale's
// refund shrinks by the return's value. Rejected when the refund has already
// been paid out beyond the reduced total.
func (s *ReturnService) Cancel(ctx context.Context, id uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refund, err := s.refundRepo.FindBySale(ctx, ret.SaleID)
	if err != nil {
		return nil, err
	}

	paidOut, err := s.refundPaymentRepo.ActiveTotal(ctx, refund.ID)
	if err != nil {
		return nil, err
	}

	if err := refund.DecreaseTotal(ret.TotalAmount, paidOut); err != nil {
		return nil, err
	}

	if err := ret.Cancel(); err != nil {
		return nil, err
	}

	if err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.returnRepo.Save(ctx, ret); err != nil {
			return err
		}
		if err := s.refundRepo.Save(ctx, refund); err != nil {
			return err
		}
		return s.publisher.Publish(ctx, ret.GetDomainEvents()...)
	}); err != nil {
		return nil, err
	}
	ret.ClearDomainEvents()

	response := ToReturnResponse(ret)
	return &response, nil
}

// upsertRefund creates the sale's refund ledger on the first return and
// grows it on later ones
func (s *ReturnService) upsertRefund(ctx context.Context, sale *trade.Sale, ret *trade.Return, createdBy uuid.UUID) error {
	refund, err := s.refundRepo.FindBySale(ctx, sale.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		refund, err = finance.NewRefund(sale.ID, sale.ClientID, sale.Currency, ret.TotalAmount, createdBy)
		if err != nil {
			return err
		}
		return s.refundRepo.Save(ctx, refund)
	}

	if err := refund.IncreaseTotal(ret.TotalAmount); err != nil {
		return err
	}
	return s.refundRepo.Save(ctx, refund)
}
