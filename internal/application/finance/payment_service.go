package finance

import (
	"context"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService records money received against sales. A payment may never
// push the collected total past the sale total; when the balance reaches
// zero the sale transitions to completed. Completion is monotonic: canceling
// a payment afterwards re-opens the books, not the sale.
type PaymentService struct {
	paymentRepo finance.PaymentRepository
	saleRepo    trade.SaleRepository
	tx          shared.TransactionManager
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo finance.PaymentRepository, saleRepo trade.SaleRepository, tx shared.TransactionManager, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
		tx:          tx,
		logger:      logger,
	}
}

// Create records a payment against a sale, in the sale's currency
func (s *PaymentService) Create(ctx context.Context, createdBy uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if sale.IsCanceled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot record a payment against a canceled sale")
	}

	paid, err := s.paymentRepo.ActiveTotal(ctx, sale.ID)
	if err != nil {
		return nil, err
	}

	remaining := sale.TotalAmount.Sub(paid)
	if req.Amount.GreaterThan(remaining) {
		return nil, shared.NewDomainError("EXCEEDS_BALANCE", "Payment exceeds the sale's remaining balance")
	}

	payment, err := finance.NewPayment(sale.ID, req.Amount, sale.Currency, finance.PaymentMethod(req.Method), req.Reference, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return err
		}

		// Settle the sale once nothing remains after this payment
		if !remaining.Sub(req.Amount).IsPositive() && sale.Status == trade.SaleStatusPending {
			if err := sale.MarkCompleted(); err != nil {
				return err
			}
			if err := s.saleRepo.Save(ctx, sale); err != nil {
				return err
			}
			s.logger.Info("sale settled",
				zap.String("sale_id", sale.ID.String()),
				zap.String("total", sale.TotalAmount.String()))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Update corrects the method and reference of an active payment
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payment.UpdateDetails(finance.PaymentMethod(req.Method), req.Reference); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with pagination
func (s *PaymentService) List(ctx context.Context, filter ListFilter) ([]PaymentResponse, int64, error) {
	page, err := s.paymentRepo.FindAll(ctx, buildFilter(filter))
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(page.Items))
	for i, payment := range page.Items {
		responses[i] = ToPaymentResponse(payment)
	}
	return responses, page.Total, nil
}

// SaleBalance returns the sale's payment history and remaining balance
func (s *PaymentService) SaleBalance(ctx context.Context, saleID uuid.UUID) (*SaleBalanceResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	paid, err := s.paymentRepo.ActiveTotal(ctx, saleID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = ToPaymentResponse(payment)
	}

	return &SaleBalanceResponse{
		SaleID:    sale.ID,
		Currency:  sale.Currency.String(),
		Total:     sale.TotalAmount,
		Paid:      paid,
		Remaining: sale.TotalAmount.Sub(paid),
		Payments:  responses,
	}, nil
}

// Cancel voids a payment. The sale's status is unchanged: a settled sale
// stays completed and the books show the re-opened balance.
func (s *PaymentService) Cancel(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payment.Cancel(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Delete physically removes a payment. Only canceled payments may be deleted.
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !payment.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only canceled payments can be deleted")
	}
	return s.paymentRepo.Delete(ctx, id)
}

// buildFilter converts an API list filter into a domain filter with defaults
func buildFilter(filter ListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}
