package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/services"
)

const defaultFlashcardCount = 20

// FlashcardHandler handles flashcard generation requests
type FlashcardHandler struct {
	flashcardService services.FlashcardServicer
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(flashcardService services.FlashcardServicer) *FlashcardHandler {
	return &FlashcardHandler{flashcardService: flashcardService}
}

// GenerateFlashcardsRequest represents the flashcard generation payload.
// Count defaults to 20 when omitted.
type GenerateFlashcardsRequest struct {
	Subject string `json:"subject" binding:"required,max=255"`
	Topic   string `json:"topic" binding:"omitempty,max=255"`
	Count   *int   `json:"count" binding:"omitempty,min=1,max=50"`
}

// GenerateFlashcardsResponse represents the generated flashcard set
type GenerateFlashcardsResponse struct {
	Subject    string               `json:"subject"`
	Flashcards []services.Flashcard `json:"flashcards"`
}

// GenerateFlashcards generates study flashcards via the LLM provider
// @Summary     Generate flashcards
// @Description Generate question/answer flashcards for a subject, optionally narrowed to a topic
// @Tags        flashcards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GenerateFlashcardsRequest true "Generation parameters"
// @Success     200 {object} GenerateFlashcardsResponse "Generated flashcards"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Upstream provider failure"
// @Router      /flashcards/generate [post]
func (h *FlashcardHandler) GenerateFlashcards(c *gin.Context) {
	var req GenerateFlashcardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count := defaultFlashcardCount
	if req.Count != nil {
		count = *req.Count
	}

	flashcards, err := h.flashcardService.GenerateFlashcards(c.Request.Context(), req.Subject, req.Topic, count)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateFlashcardsResponse{
		Subject:    req.Subject,
		Flashcards: flashcards,
	})
}
