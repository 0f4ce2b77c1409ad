package models

import (
	"time"

	"studyhub/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Rows are deleted for real:
// the (user, name, period) uniqueness rule on subjects must not be blocked
// by tombstones, and user deletion cascades through the schema.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
