package entity

import "time"

// Stock is one tracked instrument. Price fields are refreshed on every
// applied quote; PriceChange always equals LastTradedPrice minus
// PreviousClose at the time of the update.
type Stock struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Symbol              string    `gorm:"uniqueIndex;not null" json:"symbol"`
	Company             string    `json:"company"`
	Industry            string    `json:"industry"`
	Series              string    `json:"series"`
	Open                float64   `json:"open"`
	High                float64   `json:"high"`
	Low                 float64   `json:"low"`
	PreviousClose       float64   `json:"previous_close"`
	LastTradedPrice     float64   `json:"last_traded_price"`
	PriceChange         float64   `json:"price_change"`
	PercentageChange    float64   `json:"percentage_change"`
	DayPercentageChange float64   `json:"day_percentage_change"`
	ShareVolume         int64     `json:"share_volume"`
	TradedValue         float64   `json:"traded_value"`
	Week52High          float64   `gorm:"column:week_52_high" json:"week_52_high"`
	Week52Low           float64   `gorm:"column:week_52_low" json:"week_52_low"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}
