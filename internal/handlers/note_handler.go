package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/pagination"
	"studyhub/internal/services"
)

// NoteHandler handles note-related requests
type NoteHandler struct {
	noteService services.NoteServicer
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService services.NoteServicer) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents the note creation payload
type CreateNoteRequest struct {
	SubjectID string `json:"subject_id" binding:"required,uuid"`
	Title     string `json:"title" binding:"required,max=255"`
	Content   string `json:"content" binding:"required"`
}

// UpdateNoteRequest represents the note update payload.
// Omitted fields are left unchanged.
type UpdateNoteRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=255"`
	Content   *string `json:"content"`
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
}

// ListNotesQuery represents the note list query parameters
type ListNotesQuery struct {
	pagination.PageRequest
	SubjectID *string `form:"subject_id" binding:"omitempty,uuid"`
}

// CreateNote handles note creation
// @Summary     Create a note
// @Description Create a note attached to one of the user's subjects
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNoteRequest true "Note data"
// @Success     201 {object} map[string]interface{} "Created note"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Subject not found"
// @Router      /notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	note, err := h.noteService.CreateNote(userID, req.SubjectID, req.Title, req.Content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// GetUserNotes lists the user's notes
// @Summary     List notes
// @Description List the user's notes, optionally filtered by subject
// @Tags        notes
// @Produce     json
// @Security    BearerAuth
// @Param       subject_id query string false "Filter by subject"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated notes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /notes [get]
func (h *NoteHandler) GetUserNotes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListNotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.noteService.GetUserNotes(userID, query.SubjectID, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetNoteByID returns one note
// @Summary     Get a note
// @Description Get one of the user's notes by ID
// @Tags        notes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Note ID"
// @Success     200 {object} map[string]interface{} "Note"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /notes/{id} [get]
func (h *NoteHandler) GetNoteByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	noteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	note, err := h.noteService.GetNoteByID(userID, noteID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note})
}

// UpdateNote updates a note
// @Summary     Update a note
// @Description Update the supplied fields of one of the user's notes
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Note ID"
// @Param       request body UpdateNoteRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated note"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	noteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	note, err := h.noteService.UpdateNote(userID, noteID, services.UpdateNoteParams{
		Title:     req.Title,
		Content:   req.Content,
		SubjectID: req.SubjectID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note})
}

// DeleteNote deletes a note
// @Summary     Delete a note
// @Description Delete one of the user's notes
// @Tags        notes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Note ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	noteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.noteService.DeleteNote(userID, noteID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}
