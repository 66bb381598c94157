package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/travel-agency/internal/auth"
	"github.com/ukydev/travel-agency/internal/catalog"
	"github.com/ukydev/travel-agency/internal/cms"
	"github.com/ukydev/travel-agency/internal/db/dbtest"
	"github.com/ukydev/travel-agency/internal/middleware"
	"github.com/ukydev/travel-agency/internal/models"
	"github.com/ukydev/travel-agency/internal/session"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type routerFixture struct {
	packages    *dbtest.MockPackageCollection
	cars        *dbtest.MockCarCollection
	inquiries   *dbtest.MockInquiryCollection
	users       *dbtest.MockUserCollection
	authService *auth.Service
	sessions    *session.Store
	router      *mux.Router
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		packages:    new(dbtest.MockPackageCollection),
		cars:        new(dbtest.MockCarCollection),
		inquiries:   new(dbtest.MockInquiryCollection),
		users:       new(dbtest.MockUserCollection),
		authService: auth.NewService("router-secret", time.Hour),
		sessions:    session.NewStore(time.Hour, nil),
	}
	manager := cms.NewManager(f.packages, f.cars, nil, nil)
	service := catalog.NewService(f.packages, f.cars, f.inquiries, nil, "+355 69 123 4567")
	f.router = NewRouter(RouterDeps{
		Catalog:  NewCatalogHandler(service, DefaultAbout("+355 69 123 4567")),
		Session:  NewSessionHandler(),
		Auth:     NewAuthHandler(f.authService, f.users, manager.Drop),
		CMS:      NewCMSHandler(manager),
		Sessions: f.sessions,
		AuthMW:   middleware.NewAuthMiddleware(f.authService),
		RateMW:   middleware.NewRateLimitMiddleware(),
	})
	return f
}

func (f *routerFixture) token(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := f.authService.GenerateToken(&models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Staff",
		Email: "staff@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *routerFixture) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture()

	w := f.serve(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK\n", w.Body.String())
}

func TestRouter_VisitorCookieIssuedOnFirstWrite(t *testing.T) {
	f := newRouterFixture()
	f.packages.On("ListPackages", mock.Anything, mock.Anything).Return([]models.PackageRow{}, nil)

	w := f.serve(httptest.NewRequest(http.MethodGet, "/api/packages", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, 0, f.sessions.Len())

	w = f.serve(httptest.NewRequest(http.MethodPut, "/api/session/theme", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found)
	assert.Equal(t, 1, f.sessions.Len())
}

func TestRouter_SessionSearchFeedsListings(t *testing.T) {
	f := newRouterFixture()
	f.cars.On("ListCars", mock.Anything, mock.Anything).Return([]models.CarRow{}, nil)

	w := f.serve(httptest.NewRequest(http.MethodPut, "/api/session/search", bytes.NewBufferString(`{"query":"golf"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = f.serve(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"query":"golf"`)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	f := newRouterFixture()

	w := f.serve(httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_StaffRoutes(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		role     models.Role
		expected int
	}{
		{"cms without token", http.MethodGet, "/api/cms", "", http.StatusUnauthorized},
		{"cms as editor", http.MethodGet, "/api/cms", models.RoleEditor, http.StatusOK},
		{"register as editor", http.MethodPost, "/api/auth/register", models.RoleEditor, http.StatusForbidden},
		{"register without token", http.MethodPost, "/api/auth/register", "", http.StatusUnauthorized},
		{"inquiries without token", http.MethodGet, "/api/inquiries", "", http.StatusUnauthorized},
		{"unknown cms tab", http.MethodPut, "/api/cms/hotels", models.RoleAdmin, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture()
			f.packages.On("ListPackages", mock.Anything, mock.Anything).Return([]models.PackageRow{}, nil)
			f.cars.On("ListCars", mock.Anything, mock.Anything).Return([]models.CarRow{}, nil)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(`{}`))
			if tt.role != "" {
				req.Header.Set("Authorization", f.token(t, tt.role))
			}
			w := f.serve(req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestRouter_InquiriesAreRateLimited(t *testing.T) {
	f := newRouterFixture()

	var last int
	for i := 0; i <= InquiryRateLimit; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(`{"name":"A"}`))
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		last = f.serve(req).Code
		if i < InquiryRateLimit {
			assert.Equal(t, http.StatusBadRequest, last)
		}
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
	f.inquiries.AssertNotCalled(t, "CreateInquiry", mock.Anything, mock.Anything)
}
