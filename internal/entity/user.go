package entity

import "time"

// User is referenced only for notification ownership and not-found
// checks; registration and authentication live in an external service.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	ContactNo    string    `gorm:"uniqueIndex" json:"contact_no"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users_info"
}
