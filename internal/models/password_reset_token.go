package models

import "time"

// PasswordResetToken is a single-use, time-limited secondary credential.
// Lifecycle: created unused, then either redeemed (used = true) exactly once
// or left to expire. It is never updated otherwise.
type PasswordResetToken struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
}
