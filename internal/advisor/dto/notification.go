package dto

import (
	"encoding/json"
	"time"
)

// NotificationResponse is one notification row projected for the API.
type NotificationResponse struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Symbol    string          `json:"symbol,omitempty"`
	Data      json.RawMessage `json:"data" swaggertype:"object"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationListResponse is the list endpoint response body.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// PreferencesResponse projects a user's notification preferences.
type PreferencesResponse struct {
	PriceAlertsEnabled     bool     `json:"price_alerts_enabled"`
	AISignalAlertsEnabled  bool     `json:"ai_signal_alerts_enabled"`
	RiskAlertsEnabled      bool     `json:"risk_alerts_enabled"`
	PriceUpperThreshold    *float64 `json:"price_upper_threshold"`
	PriceLowerThreshold    *float64 `json:"price_lower_threshold"`
	PercentChangeThreshold float64  `json:"percent_change_threshold"`
	AIConfidenceThreshold  float64  `json:"ai_confidence_threshold"`
	CooldownMinutes        int      `json:"cooldown_minutes"`
}

// UpdatePreferencesRequest carries partial preference updates; nil fields
// keep their stored values.
type UpdatePreferencesRequest struct {
	PriceAlertsEnabled     *bool    `json:"price_alerts_enabled"`
	AISignalAlertsEnabled  *bool    `json:"ai_signal_alerts_enabled"`
	RiskAlertsEnabled      *bool    `json:"risk_alerts_enabled"`
	PriceUpperThreshold    *float64 `json:"price_upper_threshold"`
	PriceLowerThreshold    *float64 `json:"price_lower_threshold"`
	PercentChangeThreshold *float64 `json:"percent_change_threshold"`
	AIConfidenceThreshold  *float64 `json:"ai_confidence_threshold"`
	CooldownMinutes        *int     `json:"cooldown_minutes"`
}
