package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/services"
)

// UserHandler handles requests about the authenticated user
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateSettingsRequest represents the settings update payload.
// Omitted fields are left unchanged.
type UpdateSettingsRequest struct {
	EmailNotifications *bool   `json:"email_notifications"`
	Timezone           *string `json:"timezone" binding:"omitempty,max=50"`
}

// GetMe returns the authenticated user's record
// @Summary     Get current user
// @Description Get the authenticated user's record
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "User record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// GetSettings returns the authenticated user's settings
// @Summary     Get user settings
// @Description Get the authenticated user's settings
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users/me/settings [get]
func (h *UserHandler) GetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.userService.GetSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings updates the authenticated user's settings
// @Summary     Update user settings
// @Description Update the supplied settings fields, leaving the rest unchanged
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateSettingsRequest true "Settings fields to update"
// @Success     200 {object} map[string]interface{} "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users/me/settings [put]
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.userService.UpdateSettings(userID, services.UpdateSettingsParams{
		EmailNotifications: req.EmailNotifications,
		Timezone:           req.Timezone,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
