package models

// EventType is global reference data classifying calendar events. It is not
// user-owned and is seeded once by the migrations.
type EventType struct {
	Base
	Name                string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	DefaultReminderDays int    `gorm:"not null;default:1" json:"default_reminder_days"`
	Color               string `gorm:"size:7;default:'#3B82F6'" json:"color"`
}
