package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/pagination"
	"studyhub/internal/services"
)

// SubjectHandler handles subject-related requests
type SubjectHandler struct {
	subjectService services.SubjectServicer
}

// NewSubjectHandler creates a new SubjectHandler
func NewSubjectHandler(subjectService services.SubjectServicer) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// CreateSubjectRequest represents the subject creation payload
type CreateSubjectRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	Period int    `json:"period" binding:"required,min=1"`
	Color  string `json:"color" binding:"omitempty,hex_color"`
}

// UpdateSubjectRequest represents the subject update payload.
// Omitted fields are left unchanged.
type UpdateSubjectRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=255"`
	Period *int    `json:"period" binding:"omitempty,min=1"`
	Color  *string `json:"color" binding:"omitempty,hex_color"`
}

// ListSubjectsQuery represents the subject list query parameters
type ListSubjectsQuery struct {
	pagination.PageRequest
	Period *int `form:"period" binding:"omitempty,min=1"`
}

// CreateSubject handles subject creation
// @Summary     Create a subject
// @Description Create a subject; (name, period) must be unique per user
// @Tags        subjects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSubjectRequest true "Subject data"
// @Success     201 {object} map[string]interface{} "Created subject"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Subject already exists in this period"
// @Router      /subjects [post]
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	subject, err := h.subjectService.CreateSubject(userID, req.Name, req.Period, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subject": subject})
}

// GetUserSubjects lists the user's subjects
// @Summary     List subjects
// @Description List the user's subjects, optionally filtered by period
// @Tags        subjects
// @Produce     json
// @Security    BearerAuth
// @Param       period query int false "Filter by period"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated subjects"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /subjects [get]
func (h *SubjectHandler) GetUserSubjects(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListSubjectsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.subjectService.GetUserSubjects(userID, query.Period, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSubjectByID returns one subject
// @Summary     Get a subject
// @Description Get one of the user's subjects by ID
// @Tags        subjects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Subject ID"
// @Success     200 {object} map[string]interface{} "Subject"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /subjects/{id} [get]
func (h *SubjectHandler) GetSubjectByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subjectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	subject, err := h.subjectService.GetSubjectByID(userID, subjectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subject": subject})
}

// UpdateSubject updates a subject
// @Summary     Update a subject
// @Description Update the supplied fields of one of the user's subjects
// @Tags        subjects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Subject ID"
// @Param       request body UpdateSubjectRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated subject"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /subjects/{id} [put]
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subjectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	subject, err := h.subjectService.UpdateSubject(userID, subjectID, services.UpdateSubjectParams{
		Name:   req.Name,
		Period: req.Period,
		Color:  req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subject": subject})
}

// DeleteSubject deletes a subject
// @Summary     Delete a subject
// @Description Delete one of the user's subjects and its notes
// @Tags        subjects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Subject ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /subjects/{id} [delete]
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subjectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.subjectService.DeleteSubject(userID, subjectID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted successfully"})
}
