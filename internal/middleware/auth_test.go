package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/travel-agency/internal/auth"
	"github.com/ukydev/travel-agency/internal/models"
	"github.com/ukydev/travel-agency/internal/session"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func tokenFor(t *testing.T, authService *auth.Service, role models.Role) (*models.User, string) {
	t.Helper()
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Staff",
		Email: string(role) + "@agency.test",
		Role:  role,
	}
	token, err := authService.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authService := auth.NewService("test-secret", time.Hour)
	middleware := NewAuthMiddleware(authService)

	t.Run("valid token", func(t *testing.T) {
		user, token := tokenFor(t, authService, models.RoleEditor)

		req := httptest.NewRequest("GET", "/api/cms", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
			claims, ok := GetUserFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, user.Email, claims.Email)
			assert.Equal(t, user.Role, claims.Role)
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("signs in the visitor session", func(t *testing.T) {
		user, token := tokenFor(t, authService, models.RoleAdmin)
		sess := session.NewStore(time.Hour, nil).New()

		req := httptest.NewRequest("GET", "/api/dashboard", nil)
		req = req.WithContext(session.NewContext(req.Context(), sess))
		req.Header.Set("Authorization", "Bearer "+token)

		middleware.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(httptest.NewRecorder(), req)

		signedIn, ok := sess.Auth.User()
		require.True(t, ok)
		assert.Equal(t, user.ID.Hex(), signedIn.UserID)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cms", nil)
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cms", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_RequirePermission(t *testing.T) {
	authService := auth.NewService("test-secret", time.Hour)
	middleware := NewAuthMiddleware(authService)

	tests := []struct {
		name     string
		role     models.Role
		action   string
		expected int
	}{
		{"admin manages users", models.RoleAdmin, models.ActionManageUsers, http.StatusOK},
		{"editor manages content", models.RoleEditor, models.ActionManageContent, http.StatusOK},
		{"editor views inquiries", models.RoleEditor, models.ActionViewInquiries, http.StatusOK},
		{"editor cannot manage users", models.RoleEditor, models.ActionManageUsers, http.StatusForbidden},
		{"unknown role is denied", models.Role("viewer"), models.ActionManageContent, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, token := tokenFor(t, authService, tt.role)
			req := httptest.NewRequest("GET", "/api/cms", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			middleware.Authenticate(middleware.RequirePermission(tt.action)(handler)).ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}

	t.Run("no user context", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		middleware.RequirePermission(models.ActionManageContent)(handler).ServeHTTP(w, httptest.NewRequest("GET", "/api/cms", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	middleware := NewRateLimitMiddleware()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	middleware.now = func() time.Time { return now }

	t.Run("rate limit not exceeded", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/contact", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		middleware.RateLimit(5, 60)(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rate limit exceeded then window passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/contact", nil)
		req.RemoteAddr = "192.168.1.2:12345"

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})
		rateLimitHandler := middleware.RateLimit(1, 60)(handler)

		w := httptest.NewRecorder()
		rateLimitHandler.ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handlerCalled = false
		rateLimitHandler.ServeHTTP(w, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		now = now.Add(61 * time.Second)
		w = httptest.NewRecorder()
		rateLimitHandler.ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forwarded header identifies client", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/contact", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.9, 172.16.0.1")
		assert.Equal(t, "10.0.0.9", getClientIP(req))
	})
}

func TestGetUserFromContext(t *testing.T) {
	claims := &models.Claims{
		UserID: "test-id",
		Email:  "ana@agency.test",
		Role:   models.RoleAdmin,
	}

	retrievedClaims, ok := GetUserFromContext(WithUser(context.Background(), claims))
	assert.True(t, ok)
	assert.Equal(t, claims.UserID, retrievedClaims.UserID)
	assert.Equal(t, claims.Email, retrievedClaims.Email)

	_, ok = GetUserFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
