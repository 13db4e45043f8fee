package currency

import (
	"context"
	"errors"
	"strings"

	"github.com/boutikla/backend/internal/domain/currency"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CurrencyService manages the currencies recognized by the store
type CurrencyService struct {
	currencyRepo currency.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(currencyRepo currency.CurrencyRepository) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
	}
}

// List returns all currencies ordered by code
func (s *CurrencyService) List(ctx context.Context) ([]CurrencyResponse, error) {
	currencies, err := s.currencyRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = ToCurrencyResponse(&currencies[i])
	}
	return responses, nil
}

// GetByID returns a single currency
func (s *CurrencyService) GetByID(ctx context.Context, id uuid.UUID) (*CurrencyResponse, error) {
	cur, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCurrencyResponse(cur)
	return &response, nil
}

// Create registers a new currency
func (s *CurrencyService) Create(ctx context.Context, req CreateCurrencyRequest) (*CurrencyResponse, error) {
	code := valueobject.Currency(strings.ToUpper(strings.TrimSpace(req.Code)))

	existing, err := s.currencyRepo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A currency with this code already exists")
	}

	cur, err := currency.NewCurrency(code, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.currencyRepo.Save(ctx, cur); err != nil {
		return nil, err
	}

	response := ToCurrencyResponse(cur)
	return &response, nil
}

// Update renames a currency
func (s *CurrencyService) Update(ctx context.Context, id uuid.UUID, req UpdateCurrencyRequest) (*CurrencyResponse, error) {
	cur, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cur.Rename(req.Name); err != nil {
		return nil, err
	}

	if err := s.currencyRepo.Save(ctx, cur); err != nil {
		return nil, err
	}

	response := ToCurrencyResponse(cur)
	return &response, nil
}

// Delete removes a currency. The base pricing currency cannot be removed.
func (s *CurrencyService) Delete(ctx context.Context, id uuid.UUID) error {
	cur, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if cur.IsBase() {
		return shared.NewDomainError("INVALID_STATE", "The base currency cannot be removed")
	}

	return s.currencyRepo.Delete(ctx, id)
}
