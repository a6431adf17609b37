package repository

import (
	"context"
	"testing"

	"golang-stock-advisor/internal/entity"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newStocksTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.Stock{}))
	return db
}

func TestFindBySymbol_CaseInsensitive(t *testing.T) {
	db := newStocksTestDB(t)
	repo := NewStocksRepository(db)
	require.NoError(t, repo.Create(context.Background(), &entity.Stock{Symbol: "AAPL", LastTradedPrice: 175.43}))

	for _, symbol := range []string{"AAPL", "aapl", "Aapl"} {
		stock, err := repo.FindBySymbol(context.Background(), symbol)
		require.NoError(t, err, symbol)
		assert.Equal(t, "AAPL", stock.Symbol)
	}

	_, err := repo.FindBySymbol(context.Background(), "MSFT")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdatePriceFieldsTx_CompareAndSwap(t *testing.T) {
	db := newStocksTestDB(t)
	repo := NewStocksRepository(db)
	require.NoError(t, repo.Create(context.Background(), &entity.Stock{Symbol: "AAPL", LastTradedPrice: 175.43}))

	stock, err := repo.FindBySymbol(context.Background(), "AAPL")
	require.NoError(t, err)

	stock.LastTradedPrice = 178.50
	stock.PreviousClose = 175.43
	stock.PriceChange = 3.07

	rows, err := repo.UpdatePriceFieldsTx(db, stock, 175.43)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// A stale expected price means a concurrent writer got there first;
	// no row may change.
	stock.LastTradedPrice = 180.00
	rows, err = repo.UpdatePriceFieldsTx(db, stock, 175.43)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	reloaded, err := repo.FindBySymbol(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 178.50, reloaded.LastTradedPrice)
}

func TestCreate_DuplicateSymbol(t *testing.T) {
	db := newStocksTestDB(t)
	repo := NewStocksRepository(db)

	require.NoError(t, repo.Create(context.Background(), &entity.Stock{Symbol: "AAPL"}))
	err := repo.Create(context.Background(), &entity.Stock{Symbol: "AAPL"})
	assert.ErrorIs(t, err, ErrStockExists)
}
