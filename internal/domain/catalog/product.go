package catalog

import (
	"fmt"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Prices are stored in the base currency (USD);
// display prices in other currencies are derived at the current exchange rate.
// StockQuantity is the on-hand count, adjusted by completed purchase orders,
// sales and returns, and must never go negative.
type Product struct {
	shared.BaseAggregateRoot
	Name          string
	Description   string
	Barcode       string
	SalePrice     decimal.Decimal // base price in USD
	PurchasePrice decimal.Decimal
	StockQuantity int
	CategoryIDs   []uuid.UUID
}

// NewProduct creates a new product
func NewProduct(name, description, barcode string, salePrice, purchasePrice decimal.Decimal, stockQuantity int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Barcode:           barcode,
		SalePrice:         salePrice,
		PurchasePrice:     purchasePrice,
		StockQuantity:     stockQuantity,
		CategoryIDs:       make([]uuid.UUID, 0),
	}, nil
}

// Update changes the product's descriptive fields and prices
func (p *Product) Update(name, description, barcode string, salePrice, purchasePrice decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if salePrice.IsNegative() || purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Barcode = barcode
	p.SalePrice = salePrice
	p.PurchasePrice = purchasePrice
	p.Touch()
	return nil
}

// UpdatePrices overwrites the purchase and sale price, used when a purchase
// order is completed with the update-prices option.
func (p *Product) UpdatePrices(purchasePrice, salePrice decimal.Decimal) error {
	if salePrice.IsNegative() || purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.PurchasePrice = purchasePrice
	p.SalePrice = salePrice
	p.Touch()
	return nil
}

// AssignCategories replaces the product's category set
func (p *Product) AssignCategories(categoryIDs []uuid.UUID) {
	seen := make(map[uuid.UUID]struct{}, len(categoryIDs))
	unique := make([]uuid.UUID, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	p.CategoryIDs = unique
	p.Touch()
}

// IncreaseStock adds quantity to the on-hand count
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	p.StockQuantity += quantity
	p.Touch()
	p.AddDomainEvent(NewProductStockChangedEvent(p, quantity))
	return nil
}

// DecreaseStock removes quantity from the on-hand count.
// Stock can never go below zero.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.StockQuantity < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: have %d, need %d", p.Name, p.StockQuantity, quantity))
	}
	p.StockQuantity -= quantity
	p.Touch()
	p.AddDomainEvent(NewProductStockChangedEvent(p, -quantity))
	return nil
}

// IsInStock returns true if at least one unit is on hand
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}
