package trade

import (
	"context"
	"fmt"

	"github.com/boutikla/backend/internal/domain/catalog"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockMovementHandler applies the stock effects of trade events: sales
// consume stock, cancellations restore it, completed purchase orders receive
// it and returns bring it back. The bus delivers events synchronously inside
// the request, so a failed stock move fails the operation that caused it.
type StockMovementHandler struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewStockMovementHandler creates a new StockMovementHandler
func NewStockMovementHandler(productRepo catalog.ProductRepository, logger *zap.Logger) *StockMovementHandler {
	return &StockMovementHandler{
		productRepo: productRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *StockMovementHandler) EventTypes() []string {
	return []string{
		trade.EventTypeSaleCreated,
		trade.EventTypeSaleCanceled,
		trade.EventTypePurchaseOrderCompleted,
		trade.EventTypeReturnCreated,
		trade.EventTypeReturnCanceled,
	}
}

// Handle applies the stock movement for a single event
func (h *StockMovementHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.SaleCreatedEvent:
		return h.decrease(ctx, e.Lines, "sale", e.SaleID)
	case *trade.SaleCanceledEvent:
		return h.increase(ctx, e.Lines, "sale cancellation", e.SaleID)
	case *trade.PurchaseOrderCompletedEvent:
		return h.receiveOrder(ctx, e)
	case *trade.ReturnCreatedEvent:
		return h.increase(ctx, e.Lines, "return", e.ReturnID)
	case *trade.ReturnCanceledEvent:
		return h.decrease(ctx, e.Lines, "return cancellation", e.ReturnID)
	default:
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}
}

func (h *StockMovementHandler) decrease(ctx context.Context, lines []trade.SaleLine, cause string, sourceID uuid.UUID) error {
	for _, line := range lines {
		product, err := h.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if err := product.DecreaseStock(line.Quantity); err != nil {
			h.logger.Error("stock decrease rejected",
				zap.String("cause", cause),
				zap.String("source_id", sourceID.String()),
				zap.String("product_id", line.ProductID.String()),
				zap.Int("quantity", line.Quantity),
				zap.Error(err))
			return err
		}
		if err := h.saveProduct(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func (h *StockMovementHandler) increase(ctx context.Context, lines []trade.SaleLine, cause string, sourceID uuid.UUID) error {
	for _, line := range lines {
		product, err := h.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if err := product.IncreaseStock(line.Quantity); err != nil {
			h.logger.Error("stock increase rejected",
				zap.String("cause", cause),
				zap.String("source_id", sourceID.String()),
				zap.String("product_id", line.ProductID.String()),
				zap.Error(err))
			return err
		}
		if err := h.saveProduct(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

// receiveOrder puts a completed order's quantities into stock and, when
// requested, writes the line prices back to the catalog
func (h *StockMovementHandler) receiveOrder(ctx context.Context, e *trade.PurchaseOrderCompletedEvent) error {
	for _, line := range e.Lines {
		product, err := h.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if err := product.IncreaseStock(line.Quantity); err != nil {
			return err
		}
		if e.UpdatePrices {
			if err := product.UpdatePrices(line.PurchasePrice, line.SalePrice); err != nil {
				return err
			}
		}
		if err := h.saveProduct(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func (h *StockMovementHandler) saveProduct(ctx context.Context, product *catalog.Product) error {
	if err := h.productRepo.Save(ctx, product); err != nil {
		return err
	}
	product.ClearDomainEvents()
	return nil
}

var _ shared.EventHandler = (*StockMovementHandler)(nil)
