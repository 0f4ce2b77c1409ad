package services

import (
	"context"
	"time"

	"studyhub/internal/models"
	"studyhub/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	GetSettings(userID string) (*models.UserSettings, error)
	UpdateSettings(userID string, params UpdateSettingsParams) (*models.UserSettings, error)
}

// UpdateSettingsParams holds the optional fields of a settings update.
// Nil fields are left unchanged.
type UpdateSettingsParams struct {
	EmailNotifications *bool
	Timezone           *string
}

// PasswordResetServicer defines the contract for the password reset flow.
type PasswordResetServicer interface {
	RequestReset(email string) error
	ResetPassword(tokenString, newPassword string) error
}

// Mailer defines the contract for outbound email dispatch.
type Mailer interface {
	SendPasswordResetEmail(toEmail, userName, resetToken string) error
}

// SubjectServicer defines the contract for subject-related business logic.
type SubjectServicer interface {
	CreateSubject(userID, name string, period int, color string) (*models.Subject, error)
	GetUserSubjects(userID string, period *int, page pagination.PageRequest) (*pagination.PageResponse[models.Subject], error)
	GetSubjectByID(userID, subjectID string) (*models.Subject, error)
	UpdateSubject(userID, subjectID string, params UpdateSubjectParams) (*models.Subject, error)
	DeleteSubject(userID, subjectID string) error
}

// UpdateSubjectParams holds the optional fields of a subject update.
// Nil fields are left unchanged.
type UpdateSubjectParams struct {
	Name   *string
	Period *int
	Color  *string
}

// NoteServicer defines the contract for note-related business logic.
type NoteServicer interface {
	CreateNote(userID, subjectID, title, content string) (*models.Note, error)
	GetUserNotes(userID string, subjectID *string, page pagination.PageRequest) (*pagination.PageResponse[models.Note], error)
	GetNoteByID(userID, noteID string) (*models.Note, error)
	UpdateNote(userID, noteID string, params UpdateNoteParams) (*models.Note, error)
	DeleteNote(userID, noteID string) error
}

// UpdateNoteParams holds the optional fields of a note update.
// Nil fields are left unchanged.
type UpdateNoteParams struct {
	Title     *string
	Content   *string
	SubjectID *string
}

// EventFilter holds optional filter parameters for listing calendar events.
type EventFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	EventTypeID *string
}

// CreateEventParams holds the fields of a new calendar event. A nil
// ReminderDays is populated from the event type's default.
type CreateEventParams struct {
	EventTypeID  string
	SubjectID    *string
	Title        string
	Description  string
	EventDate    time.Time
	EventTime    *string
	ReminderDays *int
}

// UpdateEventParams holds the optional fields of a calendar event update.
// Nil fields are left unchanged; a non-nil empty SubjectID detaches the subject.
type UpdateEventParams struct {
	Title        *string
	Description  *string
	EventDate    *time.Time
	EventTime    *string
	EventTypeID  *string
	SubjectID    *string
	ReminderDays *int
}

// CalendarServicer defines the contract for calendar-related business logic.
type CalendarServicer interface {
	ListEventTypes() ([]models.EventType, error)
	CreateEvent(userID string, params CreateEventParams) (*models.CalendarEvent, error)
	GetUserEvents(userID string, filter EventFilter, page pagination.PageRequest) (*pagination.PageResponse[models.CalendarEvent], error)
	GetEventByID(userID, eventID string) (*models.CalendarEvent, error)
	UpdateEvent(userID, eventID string, params UpdateEventParams) (*models.CalendarEvent, error)
	DeleteEvent(userID, eventID string) error
}

// Flashcard is a single generated question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlashcardServicer defines the contract for LLM-backed flashcard generation.
type FlashcardServicer interface {
	GenerateFlashcards(ctx context.Context, subject, topic string, count int) ([]Flashcard, error)
}
