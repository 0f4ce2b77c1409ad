package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/models"
	"studyhub/internal/services"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	users := r.Group("/users", injectUserID(testUserID))
	users.GET("/me", handler.GetMe)
	users.GET("/me/settings", handler.GetSettings)
	users.PUT("/me/settings", handler.UpdateSettings)
	return r
}

func TestUserHandler_GetMe(t *testing.T) {
	t.Run("returns 200 with user record", func(t *testing.T) {
		svc := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return &models.User{
					Base:     models.Base{ID: id},
					Email:    "me@example.com",
					Name:     "Me",
					IsActive: true,
				}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, "GET", "/users/me", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["email"] != "me@example.com" {
			t.Errorf("expected me@example.com, got %v", user["email"])
		}
		if _, leaked := user["password"]; leaked {
			t.Error("response must not contain the password")
		}
	})

	t.Run("returns 401 without auth context", func(t *testing.T) {
		handler := NewUserHandler(&mockUserService{})
		r := gin.New()
		r.GET("/users/me", handler.GetMe)

		rec := doRequest(r, "GET", "/users/me", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when user is gone", func(t *testing.T) {
		svc := &mockUserService{
			getUserByIDFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, "GET", "/users/me", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestUserHandler_UpdateSettings(t *testing.T) {
	t.Run("passes only supplied fields", func(t *testing.T) {
		var gotParams services.UpdateSettingsParams
		svc := &mockUserService{
			updateSettingsFn: func(_ string, params services.UpdateSettingsParams) (*models.UserSettings, error) {
				gotParams = params
				return &models.UserSettings{}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, "PUT", "/users/me/settings", `{"email_notifications":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotParams.EmailNotifications == nil || *gotParams.EmailNotifications {
			t.Errorf("expected email_notifications false, got %v", gotParams.EmailNotifications)
		}
		if gotParams.Timezone != nil {
			t.Error("expected omitted timezone to stay nil")
		}
	})

	t.Run("returns 400 on overlong timezone", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}))

		rec := doRequest(r, "PUT", "/users/me/settings",
			`{"timezone":"This/Timezone/Name/Is/Much/Too/Long/To/Be/A/Real/One/Anywhere"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
