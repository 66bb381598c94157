package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/travel-agency/internal/catalog"
	"github.com/ukydev/travel-agency/internal/db"
	"github.com/ukydev/travel-agency/internal/models"
)

// CatalogHandler serves the public listing, detail and inquiry endpoints.
type CatalogHandler struct {
	service *catalog.Service
	about   AboutPage
}

// AboutPage is the static agency profile.
type AboutPage struct {
	Name     string       `json:"name"`
	Tagline  string       `json:"tagline"`
	Values   []AboutValue `json:"values"`
	WhatsApp string       `json:"whatsapp"`
}

// AboutValue is one headline on the about page.
type AboutValue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultAbout returns the agency profile shown on /api/about.
func DefaultAbout(whatsApp string) AboutPage {
	return AboutPage{
		Name:     "Albania Travel",
		Tagline:  "Tours and car rentals across Albania",
		WhatsApp: whatsApp,
		Values: []AboutValue{
			{"Albanian Expertise", "Deep local knowledge of Albania's best destinations and hidden gems"},
			{"Passion for Albania", "We love sharing the beauty and culture of our country"},
			{"Excellence", "Award-winning service and authentic Albanian experiences"},
			{"Local Community", "Supporting local businesses and building lasting relationships"},
		},
	}
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(service *catalog.Service, about AboutPage) *CatalogHandler {
	return &CatalogHandler{service: service, about: about}
}

// listing is the response shape of a listing view. Message is set instead of
// an error status when the store could not be reached.
type listing[V any] struct {
	Items    []V    `json:"items"`
	Query    string `json:"query"`
	Category string `json:"category"`
	Message  string `json:"message,omitempty"`
}

// notFound is the detail-view panel for a missing record.
type notFound struct {
	Error    string `json:"error"`
	BackLink string `json:"back_link"`
}

// Home returns the featured packages and cars
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.service.Home(r.Context(), searchQuery(r))
	if err != nil {
		writeJSON(w, http.StatusOK, struct {
			catalog.HomePage
			Message string `json:"message"`
		}{home, "Unable to load listings right now"})
		return
	}
	writeJSON(w, http.StatusOK, home)
}

// ListPackages returns published packages filtered by search and category
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	query := searchQuery(r)
	category := catalog.ParsePackageCategory(r.URL.Query().Get("category"))

	resp := listing[models.PackageView]{Items: []models.PackageView{}, Query: query, Category: string(category)}
	views, err := h.service.ListPackages(r.Context(), query, category)
	if err != nil {
		resp.Message = "Unable to load packages right now"
	} else {
		resp.Items = views
		if len(views) == 0 {
			resp.Message = "No packages found"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetPackage returns a single package or the not-found panel
func (h *CatalogHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Package(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFound{Error: "Package not found", BackLink: "/packages"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// BookPackage stores a booking inquiry for a package
func (h *CatalogHandler) BookPackage(w http.ResponseWriter, r *http.Request) {
	var form catalog.BookingForm
	if !decodeBody(w, r, &form) {
		return
	}
	inquiry, err := h.service.SubmitPackageBooking(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		h.inquiryError(w, err, "/packages", "Package not found")
		return
	}
	writeJSON(w, http.StatusCreated, inquiry)
}

// ListCars returns published cars filtered by search and category
func (h *CatalogHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	query := searchQuery(r)
	category := catalog.ParseCarCategory(r.URL.Query().Get("category"))

	resp := listing[models.CarView]{Items: []models.CarView{}, Query: query, Category: string(category)}
	views, err := h.service.ListCars(r.Context(), query, category)
	if err != nil {
		resp.Message = "Unable to load cars right now"
	} else {
		resp.Items = views
		if len(views) == 0 {
			resp.Message = "No cars found"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// RentalPage returns the car and the chat link for the rental view
func (h *CatalogHandler) RentalPage(w http.ResponseWriter, r *http.Request) {
	car, err := h.service.Car(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFound{Error: "Car not found", BackLink: "/cars"})
		return
	}
	q := r.URL.Query()
	form := catalog.RentalForm{StartDate: q.Get("start_date"), EndDate: q.Get("end_date"), Message: q.Get("message")}
	writeJSON(w, http.StatusOK, map[string]any{
		"car":       car,
		"chat_link": h.service.ChatLink(*car, form),
	})
}

// RentCar stores a rental inquiry for a car
func (h *CatalogHandler) RentCar(w http.ResponseWriter, r *http.Request) {
	var form catalog.RentalForm
	if !decodeBody(w, r, &form) {
		return
	}
	receipt, err := h.service.SubmitRental(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		h.inquiryError(w, err, "/cars", "Car not found")
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// Contact stores a contact form message
func (h *CatalogHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var form catalog.ContactForm
	if !decodeBody(w, r, &form) {
		return
	}
	inquiry, err := h.service.SubmitContact(r.Context(), form)
	if err != nil {
		h.inquiryError(w, err, "/", "")
		return
	}
	writeJSON(w, http.StatusCreated, inquiry)
}

// About returns the agency profile
func (h *CatalogHandler) About(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.about)
}

// Inquiries lists every stored inquiry for staff
func (h *CatalogHandler) Inquiries(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.Inquiries(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list inquiries")
		http.Error(w, "Failed to load inquiries", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// Dashboard returns collection counts for staff
func (h *CatalogHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to load dashboard stats")
		http.Error(w, "Failed to load dashboard", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *CatalogHandler) inquiryError(w http.ResponseWriter, err error, backLink, missing string) {
	var formErr *catalog.FormError
	switch {
	case errors.As(err, &formErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Please correct the highlighted fields", "fields": formErr.Fields})
	case missing != "" && db.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, notFound{Error: missing, BackLink: backLink})
	default:
		writeMessage(w, http.StatusBadGateway, "Failed to send your message. Please try again.")
	}
}
