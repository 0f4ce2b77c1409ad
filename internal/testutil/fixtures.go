package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"studyhub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	settings := &models.UserSettings{
		UserID:             user.ID,
		EmailNotifications: true,
		Timezone:           "America/Sao_Paulo",
	}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test user settings: %v", err)
	}

	return user
}

// CreateTestSubject creates a subject for the given user in period 1.
func CreateTestSubject(t *testing.T, db *gorm.DB, userID string) *models.Subject {
	t.Helper()
	return CreateTestSubjectInPeriod(t, db, userID, 1)
}

// CreateTestSubjectInPeriod creates a subject in the given period.
func CreateTestSubjectInPeriod(t *testing.T, db *gorm.DB, userID string, period int) *models.Subject {
	t.Helper()

	subject := &models.Subject{
		UserID: userID,
		Name:   fmt.Sprintf("Test Subject %d", nextID()),
		Period: period,
		Color:  "#3B82F6",
	}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("failed to create test subject: %v", err)
	}
	return subject
}

// CreateTestNote creates a note attached to the given subject.
func CreateTestNote(t *testing.T, db *gorm.DB, userID, subjectID string) *models.Note {
	t.Helper()

	n := nextID()
	note := &models.Note{
		UserID:    userID,
		SubjectID: subjectID,
		Title:     fmt.Sprintf("Test Note %d", n),
		Content:   fmt.Sprintf("Content of test note %d.", n),
	}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}
	return note
}

// CreateTestEventType creates an event type with the given default reminder lead time.
func CreateTestEventType(t *testing.T, db *gorm.DB, defaultReminderDays int) *models.EventType {
	t.Helper()

	eventType := &models.EventType{
		Name:                fmt.Sprintf("Test Event Type %d", nextID()),
		DefaultReminderDays: defaultReminderDays,
		Color:               "#6B7280",
	}
	if err := db.Create(eventType).Error; err != nil {
		t.Fatalf("failed to create test event type: %v", err)
	}
	return eventType
}

// CreateTestEvent creates a calendar event one week from now.
func CreateTestEvent(t *testing.T, db *gorm.DB, userID, eventTypeID string) *models.CalendarEvent {
	t.Helper()

	event := &models.CalendarEvent{
		UserID:       userID,
		EventTypeID:  eventTypeID,
		Title:        fmt.Sprintf("Test Event %d", nextID()),
		EventDate:    time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		ReminderDays: 1,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestResetToken creates an unused password reset token expiring at the given time.
func CreateTestResetToken(t *testing.T, db *gorm.DB, userID string, expiresAt time.Time) *models.PasswordResetToken {
	t.Helper()

	record := &models.PasswordResetToken{
		UserID:    userID,
		Token:     fmt.Sprintf("testtoken%023d", nextID()),
		ExpiresAt: expiresAt,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test reset token: %v", err)
	}
	return record
}
