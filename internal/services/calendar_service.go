package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/models"
	"studyhub/internal/pagination"
)

// calendarService handles calendar-related business logic.
type calendarService struct {
	db *gorm.DB
}

// NewCalendarService creates a new CalendarServicer.
func NewCalendarService(db *gorm.DB) CalendarServicer {
	return &calendarService{db: db}
}

// ListEventTypes returns all event types. They are global reference data,
// not scoped to any user.
func (s *calendarService) ListEventTypes() ([]models.EventType, error) {
	var types []models.EventType
	if err := s.db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return types, nil
}

// CreateEvent creates a new calendar event. The event type must exist and a
// referenced subject must belong to the same user. When the caller omits
// reminder_days it is copied from the event type's default; the copy happens
// here once and is never re-derived.
func (s *calendarService) CreateEvent(userID string, params CreateEventParams) (*models.CalendarEvent, error) {
	if params.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}

	eventType, err := s.getEventType(params.EventTypeID)
	if err != nil {
		return nil, err
	}

	if params.SubjectID != nil {
		if err := s.checkSubjectOwnership(userID, *params.SubjectID); err != nil {
			return nil, err
		}
	}

	reminderDays := eventType.DefaultReminderDays
	if params.ReminderDays != nil {
		reminderDays = *params.ReminderDays
	}

	event := &models.CalendarEvent{
		UserID:       userID,
		EventTypeID:  params.EventTypeID,
		SubjectID:    params.SubjectID,
		Title:        params.Title,
		Description:  params.Description,
		EventDate:    params.EventDate,
		EventTime:    params.EventTime,
		ReminderDays: reminderDays,
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return event, nil
}

// GetUserEvents retrieves a paginated list of the user's events, optionally
// filtered by date range and event type, in chronological order.
func (s *calendarService) GetUserEvents(userID string, filter EventFilter, page pagination.PageRequest) (*pagination.PageResponse[models.CalendarEvent], error) {
	page.Defaults()

	base := s.db.Model(&models.CalendarEvent{}).Where("user_id = ?", userID)
	if filter.StartDate != nil {
		base = base.Where("event_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		base = base.Where("event_date <= ?", *filter.EndDate)
	}
	if filter.EventTypeID != nil {
		base = base.Where("event_type_id = ?", *filter.EventTypeID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.CalendarEvent
	if err := base.Preload("EventType").Preload("Subject").
		Order("event_date ASC").
		Scopes(pagination.Paginate(page)).
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEventByID retrieves a calendar event by ID for a specific user.
func (s *calendarService) GetEventByID(userID, eventID string) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := s.db.Preload("EventType").Preload("Subject").
		Where("id = ? AND user_id = ?", eventID, userID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}

// UpdateEvent applies the supplied fields to an existing event. Event type
// and subject changes are re-validated; an empty subject ID detaches the
// subject. An explicit reminder_days survives later event type changes.
func (s *calendarService) UpdateEvent(userID, eventID string, params UpdateEventParams) (*models.CalendarEvent, error) {
	event, err := s.GetEventByID(userID, eventID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if params.Title != nil {
		if *params.Title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title cannot be empty")
		}
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.EventDate != nil {
		updates["event_date"] = *params.EventDate
	}
	if params.EventTime != nil {
		updates["event_time"] = *params.EventTime
	}
	if params.EventTypeID != nil {
		if _, err := s.getEventType(*params.EventTypeID); err != nil {
			return nil, err
		}
		updates["event_type_id"] = *params.EventTypeID
	}
	if params.SubjectID != nil {
		if *params.SubjectID == "" {
			updates["subject_id"] = nil
		} else {
			if err := s.checkSubjectOwnership(userID, *params.SubjectID); err != nil {
				return nil, err
			}
			updates["subject_id"] = *params.SubjectID
		}
	}
	if params.ReminderDays != nil {
		updates["reminder_days"] = *params.ReminderDays
	}

	if len(updates) > 0 {
		if err := s.db.Model(event).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return event, nil
}

// DeleteEvent removes a calendar event.
func (s *calendarService) DeleteEvent(userID, eventID string) error {
	event, err := s.GetEventByID(userID, eventID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(event).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getEventType fetches a global event type by ID.
func (s *calendarService) getEventType(eventTypeID string) (*models.EventType, error) {
	var eventType models.EventType
	if err := s.db.Where("id = ?", eventTypeID).First(&eventType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &eventType, nil
}

// checkSubjectOwnership verifies that the subject exists and belongs to the user.
func (s *calendarService) checkSubjectOwnership(userID, subjectID string) error {
	var count int64
	if err := s.db.Model(&models.Subject{}).
		Where("id = ? AND user_id = ?", subjectID, userID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}
