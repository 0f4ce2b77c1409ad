package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/middleware"
	"studyhub/internal/models"
	"studyhub/internal/services"
	"studyhub/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn     func(email, password, name string) (*models.User, error)
	getUserByEmailFn func(email string) (*models.User, error)
	getUserByIDFn    func(id string) (*models.User, error)
	verifyPasswordFn func(user *models.User, password string) bool
	attemptLoginFn   func(email, password string) (*models.User, error)
	getSettingsFn    func(userID string) (*models.UserSettings, error)
	updateSettingsFn func(userID string, params services.UpdateSettingsParams) (*models.UserSettings, error)
}

func (m *mockUserService) CreateUser(email, password, name string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, name)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetSettings(userID string) (*models.UserSettings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(userID)
	}
	return &models.UserSettings{}, nil
}

func (m *mockUserService) UpdateSettings(userID string, params services.UpdateSettingsParams) (*models.UserSettings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(userID, params)
	}
	return &models.UserSettings{}, nil
}

type mockResetService struct {
	requestResetFn  func(email string) error
	resetPasswordFn func(tokenString, newPassword string) error
}

func (m *mockResetService) RequestReset(email string) error {
	if m.requestResetFn != nil {
		return m.requestResetFn(email)
	}
	return nil
}

func (m *mockResetService) ResetPassword(tokenString, newPassword string) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(tokenString, newPassword)
	}
	return nil
}

// --- test helpers ---

const testUserID = "018f4f2e-aaaa-7000-8000-000000000001"

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func testJWTManager() *middleware.JWTManager {
	return middleware.NewJWTManager("test-secret", 30*time.Minute)
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/forgot-password", handler.ForgotPassword)
	r.POST("/auth/reset-password", handler.ResetPassword)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 200 with user on success", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, name string) (*models.User, error) {
				return &models.User{
					Base:     models.Base{ID: testUserID},
					Email:    email,
					Name:     name,
					IsActive: true,
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"name":"John Doe","email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["email"] != "test@example.com" {
			t.Errorf("expected email test@example.com, got %v", user["email"])
		}
		if user["name"] != "John Doe" {
			t.Errorf("expected name John Doe, got %v", user["name"])
		}
		if _, leaked := user["password"]; leaked {
			t.Error("response must not contain the password")
		}
		if result["token"] != nil {
			t.Error("registration must not hand out a token")
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"name":"John","password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"name":"John","email":"test@example.com","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid email format", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"name":"John","email":"not-an-email","password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on taken email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrEmailTaken
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"name":"John","email":"dup@example.com","password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EMAIL_TAKEN")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with bearer token", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(email, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == nil || result["token"] == "" {
			t.Error("expected non-empty token")
		}
		if result["token_type"] != "bearer" {
			t.Errorf("expected token_type bearer, got %v", result["token_type"])
		}

		// The token must verify and carry the user's identity.
		claims, err := testJWTManager().Parse(result["token"].(string))
		if err != nil {
			t.Fatalf("issued token failed to parse: %v", err)
		}
		if claims.UserID != testUserID {
			t.Errorf("expected user ID %s in claims, got %s", testUserID, claims.UserID)
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on inactive account", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInactiveAccount
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"inactive@example.com","password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INACTIVE_ACCOUNT")
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	t.Run("identical response for known and unknown email", func(t *testing.T) {
		resetSvc := &mockResetService{
			requestResetFn: func(email string) error {
				// The service treats both cases as success.
				return nil
			},
		}
		handler := NewAuthHandler(&mockUserService{}, resetSvc, testJWTManager())
		r := setupAuthRouter(handler)

		known := doRequest(r, "POST", "/auth/forgot-password", `{"email":"known@example.com"}`)
		unknown := doRequest(r, "POST", "/auth/forgot-password", `{"email":"unknown@example.com"}`)

		if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
			t.Fatalf("expected 200/200, got %d/%d", known.Code, unknown.Code)
		}
		if known.Body.String() != unknown.Body.String() {
			t.Errorf("responses must be byte-identical:\nknown:   %s\nunknown: %s",
				known.Body.String(), unknown.Body.String())
		}
	})

	t.Run("returns 400 on invalid email", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/forgot-password", `{"email":"not-an-email"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotToken, gotPassword string
		resetSvc := &mockResetService{
			resetPasswordFn: func(tokenString, newPassword string) error {
				gotToken = tokenString
				gotPassword = newPassword
				return nil
			},
		}
		handler := NewAuthHandler(&mockUserService{}, resetSvc, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/reset-password",
			`{"token":"sometoken","new_password":"newpassword456"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotToken != "sometoken" || gotPassword != "newpassword456" {
			t.Errorf("service received %q/%q", gotToken, gotPassword)
		}
	})

	t.Run("returns 400 on invalid token", func(t *testing.T) {
		resetSvc := &mockResetService{
			resetPasswordFn: func(_, _ string) error {
				return apperrors.ErrInvalidResetToken
			},
		}
		handler := NewAuthHandler(&mockUserService{}, resetSvc, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/reset-password",
			`{"token":"expired","new_password":"newpassword456"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_RESET_TOKEN")
	})

	t.Run("returns 400 on short new password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{}, testJWTManager())
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/reset-password", `{"token":"sometoken","new_password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
