package entity

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// ChatMessage is one stored conversation turn. User turns carry the
// embedding used for nearest-neighbor retrieval; assistant turns do not.
// Rows are append-only: never updated, never deleted.
type ChatMessage struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Role      string           `gorm:"not null" json:"role"`
	Content   string           `gorm:"type:text;not null" json:"content"`
	Embedding *pgvector.Vector `gorm:"type:vector(768)" json:"-"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
