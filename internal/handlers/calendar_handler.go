package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/pagination"
	"studyhub/internal/services"
)

const eventDateLayout = "2006-01-02"

// CalendarHandler handles calendar-related requests
type CalendarHandler struct {
	calendarService services.CalendarServicer
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarService services.CalendarServicer) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// CreateEventRequest represents the calendar event creation payload.
// A missing reminder_days is populated from the event type's default.
type CreateEventRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	Description  string  `json:"description"`
	EventDate    string  `json:"event_date" binding:"required,datetime=2006-01-02"`
	EventTime    *string `json:"event_time" binding:"omitempty,event_time"`
	EventTypeID  string  `json:"event_type_id" binding:"required,uuid"`
	SubjectID    *string `json:"subject_id" binding:"omitempty,uuid"`
	ReminderDays *int    `json:"reminder_days" binding:"omitempty,min=0"`
}

// UpdateEventRequest represents the calendar event update payload.
// Omitted fields are left unchanged; an empty subject_id detaches the subject.
type UpdateEventRequest struct {
	Title        *string `json:"title" binding:"omitempty,max=255"`
	Description  *string `json:"description"`
	EventDate    *string `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	EventTime    *string `json:"event_time" binding:"omitempty,event_time"`
	EventTypeID  *string `json:"event_type_id" binding:"omitempty,uuid"`
	SubjectID    *string `json:"subject_id" binding:"omitempty"`
	ReminderDays *int    `json:"reminder_days" binding:"omitempty,min=0"`
}

// ListEventsQuery represents the event list query parameters
type ListEventsQuery struct {
	pagination.PageRequest
	StartDate   *string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	EventTypeID *string `form:"event_type_id" binding:"omitempty,uuid"`
}

// ListEventTypes lists the global event types
// @Summary     List event types
// @Description List the global event types with their default reminder lead times
// @Tags        calendar
// @Produce     json
// @Success     200 {object} map[string]interface{} "Event types"
// @Router      /calendar/event-types [get]
func (h *CalendarHandler) ListEventTypes(c *gin.Context) {
	types, err := h.calendarService.ListEventTypes()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_types": types})
}

// CreateEvent handles calendar event creation
// @Summary     Create a calendar event
// @Description Create a calendar event; reminder_days defaults from the event type
// @Tags        calendar
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEventRequest true "Event data"
// @Success     201 {object} map[string]interface{} "Created event"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Event type or subject not found"
// @Router      /calendar [post]
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	eventDate, _ := time.Parse(eventDateLayout, req.EventDate)

	event, err := h.calendarService.CreateEvent(userID, services.CreateEventParams{
		EventTypeID:  req.EventTypeID,
		SubjectID:    req.SubjectID,
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    eventDate,
		EventTime:    req.EventTime,
		ReminderDays: req.ReminderDays,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetUserEvents lists the user's calendar events
// @Summary     List calendar events
// @Description List the user's events, optionally filtered by date range and type
// @Tags        calendar
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Earliest event date (YYYY-MM-DD)"
// @Param       end_date query string false "Latest event date (YYYY-MM-DD)"
// @Param       event_type_id query string false "Filter by event type"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated events"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /calendar [get]
func (h *CalendarHandler) GetUserEvents(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.EventFilter{EventTypeID: query.EventTypeID}
	if query.StartDate != nil {
		start, _ := time.Parse(eventDateLayout, *query.StartDate)
		filter.StartDate = &start
	}
	if query.EndDate != nil {
		end, _ := time.Parse(eventDateLayout, *query.EndDate)
		filter.EndDate = &end
	}

	result, err := h.calendarService.GetUserEvents(userID, filter, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEventByID returns one calendar event
// @Summary     Get a calendar event
// @Description Get one of the user's events by ID
// @Tags        calendar
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Success     200 {object} map[string]interface{} "Event"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /calendar/{id} [get]
func (h *CalendarHandler) GetEventByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.calendarService.GetEventByID(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// UpdateEvent updates a calendar event
// @Summary     Update a calendar event
// @Description Update the supplied fields of one of the user's events
// @Tags        calendar
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Param       request body UpdateEventRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated event"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /calendar/{id} [put]
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	params := services.UpdateEventParams{
		Title:        req.Title,
		Description:  req.Description,
		EventTime:    req.EventTime,
		EventTypeID:  req.EventTypeID,
		SubjectID:    req.SubjectID,
		ReminderDays: req.ReminderDays,
	}
	if req.EventDate != nil {
		eventDate, _ := time.Parse(eventDateLayout, *req.EventDate)
		params.EventDate = &eventDate
	}

	event, err := h.calendarService.UpdateEvent(userID, eventID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent deletes a calendar event
// @Summary     Delete a calendar event
// @Description Delete one of the user's events
// @Tags        calendar
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /calendar/{id} [delete]
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.calendarService.DeleteEvent(userID, eventID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
