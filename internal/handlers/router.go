package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ukydev/travel-agency/internal/middleware"
	"github.com/ukydev/travel-agency/internal/models"
	"github.com/ukydev/travel-agency/internal/session"
)

// InquiryRateLimit caps inquiry submissions per client within InquiryRateWindow seconds.
const (
	InquiryRateLimit  = 10
	InquiryRateWindow = 60
)

// RouterDeps are the handlers and middleware the router mounts.
type RouterDeps struct {
	Catalog  *CatalogHandler
	Session  *SessionHandler
	Auth     *AuthHandler
	CMS      *CMSHandler
	Sessions *session.Store
	AuthMW   *middleware.AuthMiddleware
	RateMW   *middleware.RateLimitMiddleware
}

// NewRouter builds the HTTP routes. Every request gets a visitor session;
// staff routes additionally require a valid token.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(deps.Sessions.Middleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/home", deps.Catalog.Home).Methods(http.MethodGet)
	api.HandleFunc("/packages", deps.Catalog.ListPackages).Methods(http.MethodGet)
	api.HandleFunc("/packages/{id}", deps.Catalog.GetPackage).Methods(http.MethodGet)
	api.HandleFunc("/cars", deps.Catalog.ListCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id}/rent", deps.Catalog.RentalPage).Methods(http.MethodGet)
	api.HandleFunc("/about", deps.Catalog.About).Methods(http.MethodGet)

	limit := deps.RateMW.RateLimit(InquiryRateLimit, InquiryRateWindow)
	api.Handle("/packages/{id}/book", limit(http.HandlerFunc(deps.Catalog.BookPackage))).Methods(http.MethodPost)
	api.Handle("/cars/{id}/rent", limit(http.HandlerFunc(deps.Catalog.RentCar))).Methods(http.MethodPost)
	api.Handle("/contact", limit(http.HandlerFunc(deps.Catalog.Contact))).Methods(http.MethodPost)

	api.HandleFunc("/session", deps.Session.Get).Methods(http.MethodGet)
	api.HandleFunc("/session/search", deps.Session.SetSearch).Methods(http.MethodPut)
	api.HandleFunc("/session/theme", deps.Session.SetTheme).Methods(http.MethodPut)

	api.HandleFunc("/auth/login", deps.Auth.Login).Methods(http.MethodPost)

	staff := api.NewRoute().Subrouter()
	staff.Use(deps.AuthMW.Authenticate)
	staff.HandleFunc("/auth/logout", deps.Auth.Logout).Methods(http.MethodPost)
	staff.HandleFunc("/auth/profile", deps.Auth.GetProfile).Methods(http.MethodGet)
	staff.HandleFunc("/auth/password", deps.Auth.ChangePassword).Methods(http.MethodPost)

	admin := staff.NewRoute().Subrouter()
	admin.Use(deps.AuthMW.RequirePermission(models.ActionManageUsers))
	admin.HandleFunc("/auth/register", deps.Auth.Register).Methods(http.MethodPost)

	inquiries := staff.NewRoute().Subrouter()
	inquiries.Use(deps.AuthMW.RequirePermission(models.ActionViewInquiries))
	inquiries.HandleFunc("/dashboard", deps.Catalog.Dashboard).Methods(http.MethodGet)
	inquiries.HandleFunc("/inquiries", deps.Catalog.Inquiries).Methods(http.MethodGet)

	content := staff.PathPrefix("/cms").Subrouter()
	content.Use(deps.AuthMW.RequirePermission(models.ActionManageContent))
	content.HandleFunc("", deps.CMS.State).Methods(http.MethodGet)
	content.HandleFunc("/cars/modal/features", deps.CMS.AddFeature).Methods(http.MethodPost)
	content.HandleFunc("/cars/modal/features", deps.CMS.RemoveFeature).Methods(http.MethodDelete)
	content.HandleFunc("/{tab}", deps.CMS.SelectTab).Methods(http.MethodPut)
	content.HandleFunc("/{tab}/modal", deps.CMS.OpenModal).Methods(http.MethodPost)
	content.HandleFunc("/{tab}/modal", deps.CMS.EditDraft).Methods(http.MethodPut)
	content.HandleFunc("/{tab}/modal", deps.CMS.CloseModal).Methods(http.MethodDelete)
	content.HandleFunc("/{tab}/modal/image", deps.CMS.UploadImage).Methods(http.MethodPost)
	content.HandleFunc("/{tab}/modal/save", deps.CMS.Save).Methods(http.MethodPost)
	content.HandleFunc("/{tab}/items/{id}", deps.CMS.Delete).Methods(http.MethodDelete)

	return r
}
