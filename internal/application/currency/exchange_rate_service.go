package currency

import (
	"context"
	"errors"
	"time"

	"github.com/boutikla/backend/internal/domain/currency"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExchangeRateService manages the HTG-per-USD exchange rate. The current
// rate is cached; the database remains the source of truth and the bootstrap
// default only applies before the first rate is recorded.
type ExchangeRateService struct {
	rateRepo    currency.ExchangeRateRepository
	rateCache   cache.RateCache
	cacheTTL    time.Duration
	defaultRate decimal.Decimal
	logger      *zap.Logger
}

// NewExchangeRateService creates a new ExchangeRateService
func NewExchangeRateService(
	rateRepo currency.ExchangeRateRepository,
	rateCache cache.RateCache,
	cacheTTL time.Duration,
	defaultRate decimal.Decimal,
	logger *zap.Logger,
) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:    rateRepo,
		rateCache:   rateCache,
		cacheTTL:    cacheTTL,
		defaultRate: defaultRate,
		logger:      logger,
	}
}

// CurrentRate returns the rate applied to new sales: the cached value when
// fresh, otherwise the latest persisted rate, otherwise the configured
// bootstrap default.
func (s *ExchangeRateService) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	if rate, ok, err := s.rateCache.Get(ctx); err == nil && ok {
		return rate, nil
	} else if err != nil {
		s.logger.Warn("rate cache read failed", zap.Error(err))
	}

	current, err := s.rateRepo.FindCurrent(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.defaultRate, nil
		}
		return decimal.Zero, err
	}

	if err := s.rateCache.Set(ctx, current.Rate, s.cacheTTL); err != nil {
		s.logger.Warn("rate cache write failed", zap.Error(err))
	}
	return current.Rate, nil
}

// UpdateRate records a new exchange rate. Rates are append-only; existing
// sales keep the rate frozen at the time they were recorded.
func (s *ExchangeRateService) UpdateRate(ctx context.Context, req UpdateRateRequest) (*ExchangeRateResponse, error) {
	rate, err := currency.NewExchangeRate(req.Rate)
	if err != nil {
		return nil, err
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	if err := s.rateCache.Set(ctx, rate.Rate, s.cacheTTL); err != nil {
		s.logger.Warn("rate cache write failed", zap.Error(err))
	}

	s.logger.Info("exchange rate updated", zap.String("rate", rate.Rate.String()))

	response := ToExchangeRateResponse(rate)
	return &response, nil
}

// History returns past exchange rates, newest first
func (s *ExchangeRateService) History(ctx context.Context, filter HistoryFilter) ([]ExchangeRateResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	rates, err := s.rateRepo.FindHistory(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses, nil
}
