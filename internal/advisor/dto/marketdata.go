package dto

// MarketDataQuoteResponse is the typed contract for the JSON quote
// provider. Pointers distinguish absent fields so incomplete responses
// are rejected at the boundary instead of flowing deeper as zeros.
type MarketDataQuoteResponse struct {
	Symbol      string   `json:"symbol"`
	Open        *float64 `json:"open"`
	High        *float64 `json:"high"`
	Low         *float64 `json:"low"`
	Close       *float64 `json:"close"`
	ShareVolume *int64   `json:"share_volume"`
	TradedValue *float64 `json:"traded_value"`
}
