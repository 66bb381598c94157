package models

// Status is the per-record visibility flag. Only published records appear in
// public listings.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// FuelType of a rental car.
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// Transmission of a rental car.
type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

// Kind names an entity collection. It doubles as the storage namespace for
// uploaded images.
type Kind string

const (
	KindPackages Kind = "packages"
	KindCars     Kind = "cars"
)

// IsValidKind checks if a kind names an editable collection
func IsValidKind(kind Kind) bool {
	return kind == KindPackages || kind == KindCars
}
