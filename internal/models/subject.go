package models

// Subject represents a course the user is enrolled in. A user cannot have
// two subjects with the same name in the same period.
type Subject struct {
	Base
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_subjects_user_name_period" json:"user_id"`
	Name   string `gorm:"not null;uniqueIndex:idx_subjects_user_name_period" json:"name"`
	Period int    `gorm:"not null;index;uniqueIndex:idx_subjects_user_name_period" json:"period"`
	Color  string `gorm:"size:7;default:'#3B82F6'" json:"color"`

	Notes []Note `gorm:"foreignKey:SubjectID" json:"notes,omitempty"`
}
