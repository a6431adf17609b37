package entity

import "time"

// NotificationPreference holds per-user alerting thresholds and the
// cooldown window consulted before a price alert is emitted.
type NotificationPreference struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	UserID                 uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	PriceAlertsEnabled     bool      `gorm:"not null;default:true" json:"price_alerts_enabled"`
	AISignalAlertsEnabled  bool      `gorm:"not null;default:true" json:"ai_signal_alerts_enabled"`
	RiskAlertsEnabled      bool      `gorm:"not null;default:true" json:"risk_alerts_enabled"`
	PriceUpperThreshold    *float64  `json:"price_upper_threshold"`
	PriceLowerThreshold    *float64  `json:"price_lower_threshold"`
	PercentChangeThreshold float64   `gorm:"not null;default:0" json:"percent_change_threshold"`
	AIConfidenceThreshold  float64   `gorm:"not null;default:0.7" json:"ai_confidence_threshold"`
	CooldownMinutes        int       `gorm:"not null;default:15" json:"cooldown_minutes"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}
