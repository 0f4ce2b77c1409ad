package models

// User represents the user model in the database
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Name     string `gorm:"not null" json:"name"`
	Password string `gorm:"not null" json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Subjects            []Subject            `gorm:"foreignKey:UserID" json:"subjects,omitempty"`
	Notes               []Note               `gorm:"foreignKey:UserID" json:"notes,omitempty"`
	CalendarEvents      []CalendarEvent      `gorm:"foreignKey:UserID" json:"calendar_events,omitempty"`
	PasswordResetTokens []PasswordResetToken `gorm:"foreignKey:UserID" json:"-"`
}

// UserSettings holds per-user preferences, created with defaults at registration.
type UserSettings struct {
	Base
	UserID             string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	EmailNotifications bool   `gorm:"default:true" json:"email_notifications"`
	Timezone           string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`
}

// TableName overrides the default pluralization ("user_settings" is already plural).
func (UserSettings) TableName() string { return "user_settings" }
