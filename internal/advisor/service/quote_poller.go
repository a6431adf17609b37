package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/utils"

	"github.com/robfig/cron/v3"
)

// QuotePoller periodically fetches quotes for every tracked instrument
// and feeds them to the price alert engine, one symbol at a time.
type QuotePoller interface {
	Start(ctx context.Context)
	Poll(ctx context.Context)
}

// NewQuotePoller creates a poller driven by the given cron expression
// (standard five-field syntax, descriptors like @every accepted).
func NewQuotePoller(
	stocksRepo repository.StocksRepository,
	marketDataRepo repository.MarketDataRepository,
	alertService PriceAlertService,
	log *logger.Logger,
	cronExpression string,
) (QuotePoller, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid poller cron expression %q: %w", cronExpression, err)
	}
	return &quotePoller{
		stocksRepo:     stocksRepo,
		marketDataRepo: marketDataRepo,
		alertService:   alertService,
		logger:         log,
		schedule:       schedule,
	}, nil
}

type quotePoller struct {
	stocksRepo     repository.StocksRepository
	marketDataRepo repository.MarketDataRepository
	alertService   PriceAlertService
	logger         *logger.Logger
	schedule       cron.Schedule
}

// Start runs the polling loop until ctx is cancelled.
func (p *quotePoller) Start(ctx context.Context) {
	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info("Quote poller stopping")
			return
		case <-timer.C:
			p.Poll(ctx)
		}
	}
}

// Poll runs one tick: fetch and apply a quote per tracked symbol.
// Per-symbol failures are logged and skipped so one bad instrument does
// not starve the rest.
func (p *quotePoller) Poll(ctx context.Context) {
	stocks, err := p.stocksRepo.GetStocks(ctx)
	if err != nil {
		p.logger.Error("Failed to list stocks for polling", logger.ErrorField(err))
		return
	}

	for _, stock := range stocks {
		quote, err := p.marketDataRepo.GetQuote(ctx, stock.Symbol)
		if err != nil {
			p.logger.Error("Failed to fetch quote", logger.ErrorField(err), logger.StringField("symbol", stock.Symbol))
			continue
		}

		req := &dto.QuoteUpdateRequest{
			Open:        utils.ToPointer(quote.Open),
			High:        utils.ToPointer(quote.High),
			Low:         utils.ToPointer(quote.Low),
			Close:       utils.ToPointer(quote.Close),
			ShareVolume: utils.ToPointer(quote.ShareVolume),
			TradedValue: utils.ToPointer(quote.TradedValue),
		}

		change, err := p.alertService.ApplyQuoteForAll(ctx, stock.Symbol, req)
		if err != nil {
			// A lost CAS race just means a fresher quote already landed.
			if errors.Is(err, ErrConcurrentUpdate) {
				p.logger.DebugContext(ctx, "Skipped concurrent quote update", logger.StringField("symbol", stock.Symbol))
				continue
			}
			p.logger.Error("Failed to apply quote", logger.ErrorField(err), logger.StringField("symbol", stock.Symbol))
			continue
		}

		p.logger.DebugContext(ctx, "Applied quote",
			logger.StringField("symbol", stock.Symbol),
			logger.Float64Field("close", quote.Close),
			logger.Float64Field("change", change.Change),
		)
	}
}
