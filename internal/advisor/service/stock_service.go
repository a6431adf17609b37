package service

import (
	"context"
	"errors"
	"fmt"

	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

// StockService serves the instrument read API.
type StockService interface {
	GetStocks(ctx context.Context) ([]entity.Stock, error)
	GetStock(ctx context.Context, symbol string) (*entity.Stock, error)
}

// NewStockService creates a new stock service.
func NewStockService(stocksRepo repository.StocksRepository) StockService {
	return &stockService{stocksRepo: stocksRepo}
}

type stockService struct {
	stocksRepo repository.StocksRepository
}

// GetStocks lists every tracked instrument.
func (s *stockService) GetStocks(ctx context.Context) ([]entity.Stock, error) {
	return s.stocksRepo.GetStocks(ctx)
}

// GetStock retrieves one instrument by symbol, case-insensitively.
func (s *stockService) GetStock(ctx context.Context, symbol string) (*entity.Stock, error) {
	stock, err := s.stocksRepo.FindBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStockNotFound, symbol)
		}
		return nil, err
	}
	return stock, nil
}
