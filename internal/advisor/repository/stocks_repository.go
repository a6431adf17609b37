package repository

import (
	"context"
	"errors"
	"fmt"

	"golang-stock-advisor/internal/entity"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrStockExists is returned when seeding an instrument whose symbol is
// already tracked.
var ErrStockExists = errors.New("stock already exists")

const pqUniqueViolation = "23505"

// StocksRepository manages tracked instruments. Mutating methods accept
// the caller's transaction handle so the evaluate-insert-update sequence
// of the alert engine stays atomic.
type StocksRepository interface {
	GetStocks(ctx context.Context) ([]entity.Stock, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	FindBySymbolTx(tx *gorm.DB, symbol string) (*entity.Stock, error)
	UpdatePriceFieldsTx(tx *gorm.DB, stock *entity.Stock, expectedLTP float64) (int64, error)
	Create(ctx context.Context, stock *entity.Stock) error
}

type stocksRepository struct {
	db *gorm.DB
}

// NewStocksRepository creates a new GORM-based stocks repository.
func NewStocksRepository(db *gorm.DB) StocksRepository {
	return &stocksRepository{db: db}
}

// GetStocks retrieves all tracked instruments.
func (s *stocksRepository) GetStocks(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := s.db.WithContext(ctx).Order("symbol").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindBySymbol retrieves an instrument by symbol, case-insensitively.
func (s *stocksRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	return s.FindBySymbolTx(s.db.WithContext(ctx), symbol)
}

// FindBySymbolTx is FindBySymbol on an explicit transaction handle.
func (s *stocksRepository) FindBySymbolTx(tx *gorm.DB, symbol string) (*entity.Stock, error) {
	var stock entity.Stock
	if err := tx.Where("UPPER(symbol) = UPPER(?)", symbol).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// UpdatePriceFieldsTx persists the refreshed price fields, guarded by a
// compare-and-swap on the last traded price read at the start of the
// operation. Returns the number of rows updated: zero means a concurrent
// quote won the race and the caller must roll back.
func (s *stocksRepository) UpdatePriceFieldsTx(tx *gorm.DB, stock *entity.Stock, expectedLTP float64) (int64, error) {
	res := tx.Model(&entity.Stock{}).
		Where("id = ? AND last_traded_price = ?", stock.ID, expectedLTP).
		Updates(map[string]interface{}{
			"open":                  stock.Open,
			"high":                  stock.High,
			"low":                   stock.Low,
			"previous_close":        stock.PreviousClose,
			"last_traded_price":     stock.LastTradedPrice,
			"price_change":          stock.PriceChange,
			"percentage_change":     stock.PercentageChange,
			"day_percentage_change": stock.DayPercentageChange,
			"share_volume":          stock.ShareVolume,
			"traded_value":          stock.TradedValue,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Create seeds a new instrument into the catalog.
func (s *stocksRepository) Create(ctx context.Context, stock *entity.Stock) error {
	if err := s.db.WithContext(ctx).Create(stock).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("%w: %s", ErrStockExists, stock.Symbol)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrStockExists, stock.Symbol)
		}
		return err
	}
	return nil
}
