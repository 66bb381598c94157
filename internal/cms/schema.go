package cms

import (
	"context"
	"strings"

	"github.com/ukydev/travel-agency/internal/db"
	"github.com/ukydev/travel-agency/internal/models"
)

// Schema describes one editable collection: its defaults, its required-field
// rule and how drafts reach the store.
type Schema[V any] struct {
	Kind     models.Kind
	Label    string // "Package", used in notifications
	Required string // human list of required fields

	Defaults func() V
	Missing  func(V) []string
	ID       func(V) string
	SetID    func(*V, string)
	SetImage func(*V, string)

	List   func(ctx context.Context) ([]V, error)
	Create func(ctx context.Context, draft V) (V, error)
	Update func(ctx context.Context, id string, draft V) (V, error)
	Delete func(ctx context.Context, id string) error
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// PackageSchema binds the package tab to its collection.
func PackageSchema(store db.PackageCollection) Schema[models.PackageView] {
	return Schema[models.PackageView]{
		Kind:     models.KindPackages,
		Label:    "Package",
		Required: "Title and Destination",
		Defaults: func() models.PackageView {
			return models.PackageView{
				MaxTravelers: models.DefaultMaxTravelers,
				Status:       models.DefaultStatus,
			}
		},
		Missing: func(v models.PackageView) []string {
			var missing []string
			if blank(v.Title) {
				missing = append(missing, "title")
			}
			if blank(v.Destination) {
				missing = append(missing, "destination")
			}
			return missing
		},
		ID:       func(v models.PackageView) string { return v.ID },
		SetID:    func(v *models.PackageView, id string) { v.ID = id },
		SetImage: func(v *models.PackageView, url string) { v.Image = url },
		List: func(ctx context.Context) ([]models.PackageView, error) {
			rows, err := store.ListPackages(ctx, db.PackageQuery{})
			if err != nil {
				return nil, err
			}
			views := make([]models.PackageView, 0, len(rows))
			for _, row := range rows {
				views = append(views, models.PackageToView(row))
			}
			return views, nil
		},
		Create: func(ctx context.Context, draft models.PackageView) (models.PackageView, error) {
			row, err := store.CreatePackage(ctx, models.PackageToInsert(draft))
			if err != nil {
				return models.PackageView{}, err
			}
			return models.PackageToView(*row), nil
		},
		Update: func(ctx context.Context, id string, draft models.PackageView) (models.PackageView, error) {
			row, err := store.UpdatePackage(ctx, id, models.PackageToInsert(draft).Update())
			if err != nil {
				return models.PackageView{}, err
			}
			return models.PackageToView(*row), nil
		},
		Delete: func(ctx context.Context, id string) error {
			return store.DeletePackage(ctx, id)
		},
	}
}

// CarSchema binds the car tab to its collection.
func CarSchema(store db.CarCollection) Schema[models.CarView] {
	return Schema[models.CarView]{
		Kind:     models.KindCars,
		Label:    "Car",
		Required: "Brand and Model",
		Defaults: func() models.CarView {
			return models.CarView{
				FuelType:     models.DefaultFuelType,
				Seats:        models.DefaultSeats,
				Transmission: models.DefaultTransmission,
				Features:     []string{},
				Status:       models.DefaultStatus,
			}
		},
		Missing: func(v models.CarView) []string {
			var missing []string
			if blank(v.Brand) {
				missing = append(missing, "brand")
			}
			if blank(v.Model) {
				missing = append(missing, "model")
			}
			return missing
		},
		ID:       func(v models.CarView) string { return v.ID },
		SetID:    func(v *models.CarView, id string) { v.ID = id },
		SetImage: func(v *models.CarView, url string) { v.Image = url },
		List: func(ctx context.Context) ([]models.CarView, error) {
			rows, err := store.ListCars(ctx, db.CarQuery{})
			if err != nil {
				return nil, err
			}
			views := make([]models.CarView, 0, len(rows))
			for _, row := range rows {
				views = append(views, models.CarToView(row))
			}
			return views, nil
		},
		Create: func(ctx context.Context, draft models.CarView) (models.CarView, error) {
			row, err := store.CreateCar(ctx, models.CarToInsert(draft))
			if err != nil {
				return models.CarView{}, err
			}
			return models.CarToView(*row), nil
		},
		Update: func(ctx context.Context, id string, draft models.CarView) (models.CarView, error) {
			row, err := store.UpdateCar(ctx, id, models.CarToInsert(draft).Update())
			if err != nil {
				return models.CarView{}, err
			}
			return models.CarToView(*row), nil
		},
		Delete: func(ctx context.Context, id string) error {
			return store.DeleteCar(ctx, id)
		},
	}
}
