package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"encoding/json"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// MarketDataRepository fetches the latest OHLC quote for an instrument.
type MarketDataRepository interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
}

type marketDataRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewMarketDataRepository creates a quote source. The provider is
// config-switchable between a JSON quote API and an HTML scrape
// fallback for exchanges that publish quotes only as web pages.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	maxPerMinute := cfg.MarketData.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)
	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// GetQuote fetches and validates the latest quote for symbol. Responses
// missing any OHLC field are rejected at this boundary.
func (r *marketDataRepository) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	switch r.cfg.MarketData.Provider {
	case "scrape":
		return r.scrapeQuote(ctx, symbol)
	default:
		return r.fetchQuoteJSON(ctx, symbol)
	}
}

func (r *marketDataRepository) fetchQuoteJSON(ctx context.Context, symbol string) (*dto.Quote, error) {
	url := fmt.Sprintf("%s/quote?symbol=%s", r.cfg.MarketData.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from quote provider: %d - %s", resp.StatusCode, string(body))
	}

	var quoteResp dto.MarketDataQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if quoteResp.Open == nil || quoteResp.High == nil || quoteResp.Low == nil || quoteResp.Close == nil {
		return nil, fmt.Errorf("incomplete quote for %s: missing OHLC field", symbol)
	}

	quote := &dto.Quote{
		Open:  *quoteResp.Open,
		High:  *quoteResp.High,
		Low:   *quoteResp.Low,
		Close: *quoteResp.Close,
	}
	if quoteResp.ShareVolume != nil {
		quote.ShareVolume = *quoteResp.ShareVolume
	}
	if quoteResp.TradedValue != nil {
		quote.TradedValue = *quoteResp.TradedValue
	}
	return quote, nil
}

// scrapeQuote parses a quote page whose cells are tagged with
// data-field attributes (open/high/low/close).
func (r *marketDataRepository) scrapeQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	url := fmt.Sprintf("%s/quote/%s", r.cfg.MarketData.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote page request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote page for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK response from quote page: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote page: %w", err)
	}

	fields := map[string]float64{}
	var parseErr error
	doc.Find("[data-field]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("data-field")
		raw := strings.TrimSpace(strings.ReplaceAll(sel.Text(), ",", ""))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			parseErr = fmt.Errorf("failed to parse %s value %q: %w", name, raw, err)
			return
		}
		fields[name] = value
	})
	if parseErr != nil {
		return nil, parseErr
	}

	for _, required := range []string{"open", "high", "low", "close"} {
		if _, ok := fields[required]; !ok {
			return nil, fmt.Errorf("incomplete quote page for %s: missing %s", symbol, required)
		}
	}

	r.log.DebugContext(ctx, "Scraped quote", logger.StringField("symbol", symbol), logger.Float64Field("close", fields["close"]))

	return &dto.Quote{
		Open:        fields["open"],
		High:        fields["high"],
		Low:         fields["low"],
		Close:       fields["close"],
		ShareVolume: int64(fields["volume"]),
		TradedValue: fields["traded_value"],
	}, nil
}
