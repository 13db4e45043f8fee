package catalog

import (
	"context"
	"errors"

	"github.com/boutikla/backend/internal/domain/catalog"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductListFilter carries product list parameters from the API layer
type ProductListFilter struct {
	ListFilter
	Barcode    string     `form:"barcode"`
	CategoryID *uuid.UUID `form:"category_id"`
	MinStock   *int       `form:"min_stock"`
	MaxStock   *int       `form:"max_stock"`
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.Barcode != "" {
		existing, err := s.productRepo.FindByBarcode(ctx, req.Barcode)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this barcode already exists")
		}
	}

	product, err := catalog.NewProduct(req.Name, req.Description, req.Barcode, req.SalePrice, req.PurchasePrice, req.StockQuantity)
	if err != nil {
		return nil, err
	}

	if len(req.CategoryIDs) > 0 {
		if err := s.validateCategories(ctx, req.CategoryIDs); err != nil {
			return nil, err
		}
		product.AssignCategories(req.CategoryIDs)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByBarcode retrieves a product by its barcode
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := buildFilter(filter.ListFilter, "name", "asc")

	if filter.Barcode != "" {
		domainFilter.Filters["barcode"] = filter.Barcode
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.MinStock != nil {
		domainFilter.Filters["min_stock"] = *filter.MinStock
	}
	if filter.MaxStock != nil {
		domainFilter.Filters["max_stock"] = *filter.MaxStock
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update updates a product's descriptive fields, prices and categories
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Barcode != "" && req.Barcode != product.Barcode {
		existing, err := s.productRepo.FindByBarcode(ctx, req.Barcode)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this barcode already exists")
		}
	}

	if err := product.Update(req.Name, req.Description, req.Barcode, req.SalePrice, req.PurchasePrice); err != nil {
		return nil, err
	}

	if req.CategoryIDs != nil {
		if len(req.CategoryIDs) > 0 {
			if err := s.validateCategories(ctx, req.CategoryIDs); err != nil {
				return nil, err
			}
		}
		product.AssignCategories(req.CategoryIDs)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) validateCategories(ctx context.Context, ids []uuid.UUID) error {
	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(categories) != len(ids) {
		return shared.NewDomainError("CATEGORY_NOT_FOUND", "One or more categories do not exist")
	}
	return nil
}
