package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPackageRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()
	view := PackageView{
		ID:           id.Hex(),
		Title:        "Riviera Escape",
		Destination:  "Saranda",
		Duration:     "7 days",
		Price:        1299.5,
		Image:        "https://cdn.example.com/riviera.jpg",
		Description:  "Sun and sea",
		MaxTravelers: 12,
		Status:       StatusPublished,
		CreatedAt:    at,
		UpdatedAt:    at,
	}

	got := PackageToView(PackageToInsert(view).Row(id, at))
	assert.Equal(t, view, got)
}

func TestPackageToInsert_Defaults(t *testing.T) {
	in := PackageToInsert(PackageView{Title: "Riviera Escape", Destination: "Saranda"})

	assert.Equal(t, StatusDraft, in.Status)
	assert.Equal(t, 0.0, in.Price)
	assert.Equal(t, 1, in.MaxTravelers)
	assert.Equal(t, "", in.ImageURL)

	fields, err := Validate(in)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestToInsert_KeepsOutOfRangeValues(t *testing.T) {
	pkg := PackageToInsert(PackageView{Title: "X", Destination: "Y", Price: -250, MaxTravelers: -3})
	assert.Equal(t, -250.0, pkg.Price)
	assert.Equal(t, -3, pkg.MaxTravelers)

	fields, err := Validate(pkg)
	require.NoError(t, err)
	require.Len(t, fields, 2)

	car := CarToInsert(CarView{Brand: "Fiat", Model: "Panda", PricePerDay: -1, Seats: -2})
	assert.Equal(t, -1.0, car.PricePerDay)
	assert.Equal(t, -2, car.Seats)

	fields, err = Validate(car)
	require.NoError(t, err)
	var names []string
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"price_per_day", "seats"}, names)
}

func TestPackageInsert_Validation(t *testing.T) {
	fields, err := Validate(PackageInsert{Title: "  ", Destination: "", Price: -1, MaxTravelers: 0, Status: "archived"})
	require.NoError(t, err)

	var names []string
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"title", "destination", "price", "max_travelers", "status"}, names)
}

func TestCarRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()
	view := CarView{
		ID:           id.Hex(),
		Name:         "City Runner",
		Brand:        "Toyota",
		Model:        "Yaris",
		PricePerDay:  45,
		Image:        "https://cdn.example.com/yaris.jpg",
		FuelType:     FuelHybrid,
		Seats:        5,
		Transmission: TransmissionManual,
		Features:     []string{"GPS", "Bluetooth"},
		Status:       StatusPublished,
		CreatedAt:    at,
		UpdatedAt:    at,
	}

	got := CarToView(CarToInsert(view).Row(id, at))
	assert.Equal(t, view, got)
}

func TestCarToInsert_Defaults(t *testing.T) {
	in := CarToInsert(CarView{Brand: "Fiat", Model: "Panda"})

	assert.Equal(t, "Fiat Panda", in.Name)
	assert.Equal(t, FuelPetrol, in.FuelType)
	assert.Equal(t, TransmissionAutomatic, in.Transmission)
	assert.Equal(t, 4, in.Seats)
	assert.Equal(t, []string{}, in.Features)
	assert.Equal(t, StatusDraft, in.Status)
}

func TestCarToView_DerivesNameAndFeatures(t *testing.T) {
	view := CarToView(CarRow{Brand: "BMW", Model: "X5"})

	assert.Equal(t, "BMW X5", view.Name)
	assert.NotNil(t, view.Features)
	assert.Empty(t, view.ID)
}

func TestCarInsert_SeatsRange(t *testing.T) {
	in := CarToInsert(CarView{Brand: "Ford", Model: "Transit", Seats: 13})

	fields, err := Validate(in)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "seats", fields[0].Field)
}

func TestPackageUpdate_Apply(t *testing.T) {
	row := PackageRow{Title: "Old", Destination: "Vlore", Price: 10}
	title := "New"
	now := time.Now()

	got := PackageUpdate{Title: &title, UpdatedAt: &now}.Apply(row)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Vlore", got.Destination)
	assert.Equal(t, 10.0, got.Price)
	assert.Equal(t, now, got.UpdatedAt)
}
