// Package catalog serves the public listing and detail views and accepts
// visitor inquiries.
package catalog

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/travel-agency/internal/db"
	"github.com/ukydev/travel-agency/internal/models"
	"github.com/ukydev/travel-agency/internal/notify"
)

// FeaturedCount is how many records of each kind the home page shows.
const FeaturedCount = 3

// HomePage holds the featured listings.
type HomePage struct {
	Packages []models.PackageView `json:"packages"`
	Cars     []models.CarView     `json:"cars"`
}

// Stats are collection counts for the staff dashboard.
type Stats struct {
	Packages          int `json:"packages"`
	PublishedPackages int `json:"published_packages"`
	Cars              int `json:"cars"`
	PublishedCars     int `json:"published_cars"`
	Inquiries         int `json:"inquiries"`
}

// Service implements the listing, detail and inquiry views.
type Service struct {
	packages       db.PackageCollection
	cars           db.CarCollection
	inquiries      db.InquiryCollection
	publisher      notify.InquiryPublisher
	whatsAppNumber string
}

// NewService creates a catalog service. A nil publisher drops inquiry events.
func NewService(packages db.PackageCollection, cars db.CarCollection, inquiries db.InquiryCollection,
	publisher notify.InquiryPublisher, whatsAppNumber string) *Service {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &Service{
		packages:       packages,
		cars:           cars,
		inquiries:      inquiries,
		publisher:      publisher,
		whatsAppNumber: whatsAppNumber,
	}
}

// ListPackages returns published packages matching search, refined in memory
// by category.
func (s *Service) ListPackages(ctx context.Context, search string, category PackageCategory) ([]models.PackageView, error) {
	query := db.PackageQuery{Status: models.StatusPublished, Search: search}
	rows, err := s.packages.ListPackages(ctx, query)
	if err != nil {
		log.WithError(err).WithField("search", search).Error("Failed to list packages")
		return nil, err
	}
	views := make([]models.PackageView, 0, len(rows))
	for _, row := range rows {
		if !query.Matches(row) {
			continue
		}
		view := models.PackageToView(row)
		if category.Includes(view) {
			views = append(views, view)
		}
	}
	return views, nil
}

// ListCars returns published cars matching search, refined in memory by
// category.
func (s *Service) ListCars(ctx context.Context, search string, category CarCategory) ([]models.CarView, error) {
	query := db.CarQuery{Status: models.StatusPublished, Search: search}
	rows, err := s.cars.ListCars(ctx, query)
	if err != nil {
		log.WithError(err).WithField("search", search).Error("Failed to list cars")
		return nil, err
	}
	views := make([]models.CarView, 0, len(rows))
	for _, row := range rows {
		if !query.Matches(row) {
			continue
		}
		view := models.CarToView(row)
		if category.Includes(view) {
			views = append(views, view)
		}
	}
	return views, nil
}

// Home returns the newest published packages and cars. On failure both lists
// are empty.
func (s *Service) Home(ctx context.Context, search string) (HomePage, error) {
	empty := HomePage{Packages: []models.PackageView{}, Cars: []models.CarView{}}

	packages, err := s.ListPackages(ctx, search, PackagesAll)
	if err != nil {
		return empty, err
	}
	cars, err := s.ListCars(ctx, search, CarsAll)
	if err != nil {
		return empty, err
	}
	if len(packages) > FeaturedCount {
		packages = packages[:FeaturedCount]
	}
	if len(cars) > FeaturedCount {
		cars = cars[:FeaturedCount]
	}
	return HomePage{Packages: packages, Cars: cars}, nil
}

// Package returns a single package for the detail view.
func (s *Service) Package(ctx context.Context, id string) (*models.PackageView, error) {
	row, err := s.packages.FindPackageByID(ctx, id)
	if err != nil {
		log.WithError(err).WithField("package_id", id).Warn("Package lookup failed")
		return nil, err
	}
	view := models.PackageToView(*row)
	return &view, nil
}

// Car returns a single car for the rental view.
func (s *Service) Car(ctx context.Context, id string) (*models.CarView, error) {
	row, err := s.cars.FindCarByID(ctx, id)
	if err != nil {
		log.WithError(err).WithField("car_id", id).Warn("Car lookup failed")
		return nil, err
	}
	view := models.CarToView(*row)
	return &view, nil
}

// ChatLink is the fallback contact channel shown on the rental page.
func (s *Service) ChatLink(car models.CarView, form RentalForm) string {
	return notify.WhatsAppLink(s.whatsAppNumber,
		notify.RentalChatMessage(car.Brand, car.Model, form.StartDate, form.EndDate, form.Message))
}

// Inquiries returns every inquiry for staff review, newest first.
func (s *Service) Inquiries(ctx context.Context) ([]models.InquiryView, error) {
	rows, err := s.inquiries.ListInquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	views := make([]models.InquiryView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.InquiryToView(row))
	}
	return views, nil
}

// Stats counts records for the staff dashboard.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	packages, err := s.packages.ListPackages(ctx, db.PackageQuery{})
	if err != nil {
		return stats, err
	}
	cars, err := s.cars.ListCars(ctx, db.CarQuery{})
	if err != nil {
		return stats, err
	}
	inquiries, err := s.inquiries.ListInquiries(ctx)
	if err != nil {
		return stats, err
	}
	stats.Packages = len(packages)
	for _, p := range packages {
		if p.Status == models.StatusPublished {
			stats.PublishedPackages++
		}
	}
	stats.Cars = len(cars)
	for _, c := range cars {
		if c.Status == models.StatusPublished {
			stats.PublishedCars++
		}
	}
	stats.Inquiries = len(inquiries)
	return stats, nil
}
