package models

// Note represents a study note attached to one of the user's subjects.
type Note struct {
	Base
	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`
	SubjectID string `gorm:"type:uuid;not null;index" json:"subject_id"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}
