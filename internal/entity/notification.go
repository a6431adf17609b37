package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is one emitted alert. Data carries the structured payload
// (previous/current price, change, percent, direction) and is never
// modified after creation.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Type      string         `gorm:"not null" json:"type"`
	Title     string         `gorm:"not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Symbol    string         `json:"symbol,omitempty"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data"`
	IsRead    bool           `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
