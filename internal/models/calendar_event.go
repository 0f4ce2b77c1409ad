package models

import "time"

// CalendarEvent represents a dated event on the user's calendar. The
// reminder lead time is copied from the event type's default at creation
// when the caller does not supply one; later changes to the type's default
// do not touch existing events.
type CalendarEvent struct {
	Base
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	EventTypeID  string    `gorm:"type:uuid;not null" json:"event_type_id"`
	SubjectID    *string   `gorm:"type:uuid" json:"subject_id,omitempty"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	EventDate    time.Time `gorm:"type:date;not null;index" json:"event_date"`
	EventTime    *string   `gorm:"size:5" json:"event_time,omitempty"`
	ReminderDays int       `gorm:"default:1" json:"reminder_days"`
	ReminderSent bool      `gorm:"default:false;index" json:"reminder_sent"`

	EventType *EventType `gorm:"foreignKey:EventTypeID" json:"event_type,omitempty"`
	Subject   *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}
