package dto

// Quote is one validated OHLC observation for an instrument.
type Quote struct {
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	ShareVolume int64   `json:"share_volume,omitempty"`
	TradedValue float64 `json:"traded_value,omitempty"`
}

// QuoteUpdateRequest is the raw quote ingest payload. All four OHLC
// fields are required; pointers distinguish absent from zero.
type QuoteUpdateRequest struct {
	Open        *float64 `json:"open"`
	High        *float64 `json:"high"`
	Low         *float64 `json:"low"`
	Close       *float64 `json:"close"`
	ShareVolume *int64   `json:"share_volume"`
	TradedValue *float64 `json:"traded_value"`
}

// Complete reports whether every required OHLC field is present.
func (r *QuoteUpdateRequest) Complete() bool {
	return r.Open != nil && r.High != nil && r.Low != nil && r.Close != nil
}

// ToQuote converts a complete request into a Quote. Callers must check
// Complete first.
func (r *QuoteUpdateRequest) ToQuote() Quote {
	q := Quote{
		Open:  *r.Open,
		High:  *r.High,
		Low:   *r.Low,
		Close: *r.Close,
	}
	if r.ShareVolume != nil {
		q.ShareVolume = *r.ShareVolume
	}
	if r.TradedValue != nil {
		q.TradedValue = *r.TradedValue
	}
	return q
}

// PriceAlertPayload is the structured payload attached to an emitted
// notification.
type PriceAlertPayload struct {
	PreviousPrice float64 `json:"previous_price"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	Direction     string  `json:"direction"`
}
