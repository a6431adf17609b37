package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/common"
	"golang-stock-advisor/pkg/logger"
	redisPkg "golang-stock-advisor/pkg/redis"
	"golang-stock-advisor/pkg/telegram"
	"golang-stock-advisor/pkg/utils"

	"github.com/patrickmn/go-cache"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PriceChange is the evaluated delta between a new close and the last
// known traded price. Direction is empty when the price is unchanged.
type PriceChange struct {
	Change        float64
	PercentChange float64
	Direction     string
}

// EvaluatePriceChange computes the absolute and percentage change of the
// quote's close against previousPrice, rounded to two decimals. A zero
// or unset previous price yields a zero change with no direction, which
// also guards the divide by zero.
func EvaluatePriceChange(previousPrice float64, quote dto.Quote) PriceChange {
	if previousPrice == 0 {
		return PriceChange{}
	}

	change := utils.RoundFloat(quote.Close-previousPrice, 2)
	percent := utils.RoundFloat(change/previousPrice*100, 2)

	result := PriceChange{Change: change, PercentChange: percent}
	switch {
	case change > 0:
		result.Direction = common.DirectionUp
	case change < 0:
		result.Direction = common.DirectionDown
	}
	return result
}

// PriceAlertService applies incoming quotes to tracked instruments and
// conditionally emits notifications.
type PriceAlertService interface {
	ApplyQuote(ctx context.Context, symbol string, userID uint, req *dto.QuoteUpdateRequest) (*PriceChange, error)
	ApplyQuoteForAll(ctx context.Context, symbol string, req *dto.QuoteUpdateRequest) (*PriceChange, error)
}

// NewPriceAlertService creates a new price alert service. redisClient
// and notifier may be nil; cooldowns then live only in process memory
// and no alerts are forwarded to Telegram.
func NewPriceAlertService(
	db *gorm.DB,
	stocksRepo repository.StocksRepository,
	notificationRepo repository.NotificationRepository,
	preferenceRepo repository.NotificationPreferenceRepository,
	redisClient *redisPkg.Client,
	notifier telegram.Notifier,
	log *logger.Logger,
) PriceAlertService {
	return &priceAlertService{
		db:               db,
		stocksRepo:       stocksRepo,
		notificationRepo: notificationRepo,
		preferenceRepo:   preferenceRepo,
		redisClient:      redisClient,
		notifier:         notifier,
		logger:           log,
		cooldownCache:    cache.New(5*time.Minute, 10*time.Minute),
	}
}

type priceAlertService struct {
	db               *gorm.DB
	stocksRepo       repository.StocksRepository
	notificationRepo repository.NotificationRepository
	preferenceRepo   repository.NotificationPreferenceRepository
	redisClient      *redisPkg.Client
	notifier         telegram.Notifier
	logger           *logger.Logger
	cooldownCache    *cache.Cache
}

// ApplyQuote applies a quote on behalf of a single user: evaluate the
// change against the stored last traded price, emit at most one
// notification, and refresh the instrument's price fields. The whole
// lookup-compute-insert-update sequence runs in one transaction.
func (s *priceAlertService) ApplyQuote(ctx context.Context, symbol string, userID uint, req *dto.QuoteUpdateRequest) (*PriceChange, error) {
	return s.applyQuote(ctx, symbol, []uint{userID}, req)
}

// ApplyQuoteForAll applies a quote once and fans the notification out to
// every user with price alerts enabled. Used by the poller so that a
// single tick never makes later recipients observe a zero change.
func (s *priceAlertService) ApplyQuoteForAll(ctx context.Context, symbol string, req *dto.QuoteUpdateRequest) (*PriceChange, error) {
	userIDs, err := s.preferenceRepo.ListUserIDsWithPriceAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return s.applyQuote(ctx, symbol, userIDs, req)
}

func (s *priceAlertService) applyQuote(ctx context.Context, symbol string, userIDs []uint, req *dto.QuoteUpdateRequest) (*PriceChange, error) {
	if req == nil || !req.Complete() {
		s.logger.InfoContext(ctx, "Skipping quote with missing OHLC field", logger.StringField("symbol", symbol))
		return nil, ErrInvalidQuote
	}
	quote := req.ToQuote()

	var (
		result   PriceChange
		previous float64
		notified []uint
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stock, err := s.stocksRepo.FindBySymbolTx(tx, symbol)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrStockNotFound, symbol)
			}
			return err
		}

		previous = stock.LastTradedPrice
		result = EvaluatePriceChange(previous, quote)

		if result.Change != 0 {
			for _, userID := range userIDs {
				ok, err := s.shouldNotify(ctx, tx, userID, stock.Symbol, quote, result)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				notification, err := buildNotification(userID, stock.Symbol, previous, quote, result)
				if err != nil {
					return err
				}
				if err := s.notificationRepo.CreateTx(tx, notification); err != nil {
					return err
				}
				notified = append(notified, userID)
			}
		}

		applyQuoteToStock(stock, previous, quote, result)

		rows, err := s.stocksRepo.UpdatePriceFieldsTx(tx, stock, previous)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: %s", ErrConcurrentUpdate, symbol)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, symbol, previous, quote, result, notified)

	return &result, nil
}

// shouldNotify consults the user's preference gate: alerts enabled, the
// percent threshold, the optional absolute price bounds, and the
// cooldown window.
func (s *priceAlertService) shouldNotify(ctx context.Context, tx *gorm.DB, userID uint, symbol string, quote dto.Quote, change PriceChange) (bool, error) {
	pref, err := s.preferenceRepo.GetOrCreateTx(tx, userID)
	if err != nil {
		return false, err
	}

	if !pref.PriceAlertsEnabled {
		return false, nil
	}

	absPercent := change.PercentChange
	if absPercent < 0 {
		absPercent = -absPercent
	}
	if absPercent < pref.PercentChangeThreshold {
		return false, nil
	}

	// Absolute bounds, when configured, require the close to cross one
	// of them.
	if pref.PriceUpperThreshold != nil || pref.PriceLowerThreshold != nil {
		crossedUpper := pref.PriceUpperThreshold != nil && quote.Close >= *pref.PriceUpperThreshold
		crossedLower := pref.PriceLowerThreshold != nil && quote.Close <= *pref.PriceLowerThreshold
		if !crossedUpper && !crossedLower {
			return false, nil
		}
	}

	if s.inCooldown(ctx, userID, symbol) {
		s.logger.DebugContext(ctx, "Skipping alert in cooldown window",
			logger.Field("user_id", userID), logger.StringField("symbol", symbol))
		return false, nil
	}

	return true, nil
}

func (s *priceAlertService) inCooldown(ctx context.Context, userID uint, symbol string) bool {
	key := fmt.Sprintf(common.RedisKeyAlertCooldown, userID, symbol)
	if _, found := s.cooldownCache.Get(key); found {
		return true
	}
	if s.redisClient != nil {
		exists, err := s.redisClient.Exists(ctx, key).Result()
		if err != nil {
			s.logger.Error("Failed to check cooldown in redis", logger.ErrorField(err))
			return false
		}
		return exists > 0
	}
	return false
}

func (s *priceAlertService) markCooldown(ctx context.Context, userID uint, symbol string, cooldown time.Duration) {
	if cooldown <= 0 {
		return
	}
	key := fmt.Sprintf(common.RedisKeyAlertCooldown, userID, symbol)
	s.cooldownCache.Set(key, true, cooldown)
	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, key, 1, cooldown).Err(); err != nil {
			s.logger.Error("Failed to mark cooldown in redis", logger.ErrorField(err))
		}
	}
}

// afterCommit performs the non-transactional side effects of a
// successfully applied quote: cooldown markers and the optional
// Telegram forward. Failures here are logged, never surfaced.
func (s *priceAlertService) afterCommit(ctx context.Context, symbol string, previous float64, quote dto.Quote, change PriceChange, notified []uint) {
	for _, userID := range notified {
		pref, err := s.preferenceRepo.GetOrCreate(ctx, userID)
		if err != nil {
			s.logger.Error("Failed to load preferences for cooldown", logger.ErrorField(err), logger.Field("user_id", userID))
			continue
		}
		s.markCooldown(ctx, userID, symbol, time.Duration(pref.CooldownMinutes)*time.Minute)
	}

	if len(notified) > 0 && s.notifier != nil {
		message := telegram.FormatPriceAlert(symbol, change.Direction, previous, quote.Close, change.Change, change.PercentChange)
		if err := s.notifier.SendMessage(message); err != nil {
			s.logger.Error("Failed to forward alert to Telegram", logger.ErrorField(err), logger.StringField("symbol", symbol))
		}
	}
}

func buildNotification(userID uint, symbol string, previous float64, quote dto.Quote, change PriceChange) (*entity.Notification, error) {
	payload := dto.PriceAlertPayload{
		PreviousPrice: previous,
		CurrentPrice:  quote.Close,
		Change:        change.Change,
		PercentChange: change.PercentChange,
		Direction:     change.Direction,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert payload: %w", err)
	}

	return &entity.Notification{
		UserID:  userID,
		Type:    common.NotificationTypeStockAlert,
		Title:   fmt.Sprintf("Stock Alert: %s", symbol),
		Message: fmt.Sprintf("%s is %s by %.2f (%.2f%%)", symbol, change.Direction, change.Change, change.PercentChange),
		Symbol:  symbol,
		Data:    datatypes.JSON(data),
	}, nil
}

// applyQuoteToStock refreshes the instrument's price fields in place.
// PreviousClose takes the prior last traded price, not the quote's open;
// the invariant PriceChange = LastTradedPrice - PreviousClose holds
// after every update.
func applyQuoteToStock(stock *entity.Stock, previous float64, quote dto.Quote, change PriceChange) {
	stock.Open = quote.Open
	stock.High = quote.High
	stock.Low = quote.Low
	stock.PreviousClose = previous
	stock.LastTradedPrice = quote.Close
	stock.PriceChange = change.Change
	stock.PercentageChange = change.PercentChange
	if quote.Open != 0 {
		stock.DayPercentageChange = utils.RoundFloat((quote.Close-quote.Open)/quote.Open*100, 2)
	} else {
		stock.DayPercentageChange = 0
	}
	if quote.ShareVolume != 0 {
		stock.ShareVolume = quote.ShareVolume
	}
	if quote.TradedValue != 0 {
		stock.TradedValue = quote.TradedValue
	}
}
