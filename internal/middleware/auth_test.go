package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"studyhub/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testUser() *models.User {
	return &models.User{
		Base:  models.Base{ID: "018f4f2e-aaaa-7000-8000-000000000001"},
		Email: "claims@example.com",
	}
}

func TestJWTManager_GenerateAndParse(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		mgr := NewJWTManager("test-secret", 30*time.Minute)
		user := testUser()

		token, err := mgr.Generate(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		claims, err := mgr.Parse(token)
		if err != nil {
			t.Fatalf("failed to parse token: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("expected user ID %s, got %s", user.ID, claims.UserID)
		}
		if claims.Email != user.Email {
			t.Errorf("expected email %s, got %s", user.Email, claims.Email)
		}
		if claims.Issuer != "studyhub-api" {
			t.Errorf("expected issuer studyhub-api, got %s", claims.Issuer)
		}
	})

	t.Run("expired_token", func(t *testing.T) {
		mgr := NewJWTManager("test-secret", -time.Minute)

		token, err := mgr.Generate(testUser())
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		if _, err := mgr.Parse(token); err == nil {
			t.Error("expected expired token to be rejected")
		}
	})

	t.Run("wrong_key", func(t *testing.T) {
		issuer := NewJWTManager("secret-a", 30*time.Minute)
		verifier := NewJWTManager("secret-b", 30*time.Minute)

		token, err := issuer.Generate(testUser())
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		if _, err := verifier.Parse(token); err == nil {
			t.Error("expected token signed with a different key to be rejected")
		}
	})

	t.Run("malformed_token", func(t *testing.T) {
		mgr := NewJWTManager("test-secret", 30*time.Minute)

		for _, bad := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
			if _, err := mgr.Parse(bad); err == nil {
				t.Errorf("expected %q to be rejected", bad)
			}
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	mgr := NewJWTManager("test-secret", 30*time.Minute)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/protected", AuthMiddleware(mgr), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id": c.GetString(ContextUserID),
				"email":   c.GetString(ContextEmail),
			})
		})
		return r
	}

	request := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid_token_sets_context", func(t *testing.T) {
		token, err := mgr.Generate(testUser())
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		rec := request("Bearer " + token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		rec := request("")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong_scheme", func(t *testing.T) {
		token, _ := mgr.Generate(testUser())
		rec := request("Basic " + token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("bare_token_without_scheme", func(t *testing.T) {
		token, _ := mgr.Generate(testUser())
		rec := request(token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("invalid_token", func(t *testing.T) {
		rec := request("Bearer not-a-token")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
