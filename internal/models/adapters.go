package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied when a view-model field was left unset.
const (
	DefaultMaxTravelers = 1
	DefaultSeats        = 4
	DefaultFuelType     = FuelPetrol
	DefaultTransmission = TransmissionAutomatic
	DefaultStatus       = StatusDraft
)

func hexID(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

// PackageToView adapts a stored package to its presentation shape.
func PackageToView(row PackageRow) PackageView {
	return PackageView{
		ID:           hexID(row.ID),
		Title:        row.Title,
		Destination:  row.Destination,
		Duration:     row.Duration,
		Price:        row.Price,
		Image:        row.ImageURL,
		Description:  row.Description,
		MaxTravelers: row.MaxTravelers,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// PackageToInsert builds a complete insert payload from a possibly partial
// view-model. Only missing values are defaulted; out-of-range values are left
// for the store to reject. ID and timestamps are ignored; the store owns them.
func PackageToInsert(v PackageView) PackageInsert {
	in := PackageInsert{
		Title:        v.Title,
		Destination:  v.Destination,
		Duration:     v.Duration,
		Price:        v.Price,
		ImageURL:     v.Image,
		Description:  v.Description,
		MaxTravelers: v.MaxTravelers,
		Status:       v.Status,
	}
	if in.MaxTravelers == 0 {
		in.MaxTravelers = DefaultMaxTravelers
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}
	return in
}

// Row materializes the payload as a stored row.
func (p PackageInsert) Row(id primitive.ObjectID, at time.Time) PackageRow {
	return PackageRow{
		ID:           id,
		Title:        p.Title,
		Destination:  p.Destination,
		Duration:     p.Duration,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Description:  p.Description,
		MaxTravelers: p.MaxTravelers,
		Status:       p.Status,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

// CarToView adapts a stored car to its presentation shape.
func CarToView(row CarRow) CarView {
	features := row.Features
	if features == nil {
		features = []string{}
	}
	return CarView{
		ID:           hexID(row.ID),
		Name:         DisplayName(row.Name, row.Brand, row.Model),
		Brand:        row.Brand,
		Model:        row.Model,
		PricePerDay:  row.PricePerDay,
		Image:        row.ImageURL,
		FuelType:     row.FuelType,
		Seats:        row.Seats,
		Transmission: row.Transmission,
		Features:     features,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// CarToInsert builds a complete insert payload from a possibly partial
// view-model.
func CarToInsert(v CarView) CarInsert {
	in := CarInsert{
		Name:         DisplayName(v.Name, v.Brand, v.Model),
		Brand:        v.Brand,
		Model:        v.Model,
		PricePerDay:  v.PricePerDay,
		ImageURL:     v.Image,
		FuelType:     v.FuelType,
		Seats:        v.Seats,
		Transmission: v.Transmission,
		Features:     append([]string{}, v.Features...),
		Status:       v.Status,
	}
	if in.FuelType == "" {
		in.FuelType = DefaultFuelType
	}
	if in.Seats == 0 {
		in.Seats = DefaultSeats
	}
	if in.Transmission == "" {
		in.Transmission = DefaultTransmission
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}
	return in
}

// Row materializes the payload as a stored row.
func (c CarInsert) Row(id primitive.ObjectID, at time.Time) CarRow {
	return CarRow{
		ID:           id,
		Name:         c.Name,
		Brand:        c.Brand,
		Model:        c.Model,
		PricePerDay:  c.PricePerDay,
		ImageURL:     c.ImageURL,
		FuelType:     c.FuelType,
		Seats:        c.Seats,
		Transmission: c.Transmission,
		Features:     append([]string{}, c.Features...),
		Status:       c.Status,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

// InquiryToView adapts a stored inquiry.
func InquiryToView(row InquiryRow) InquiryView {
	return InquiryView{
		ID:        hexID(row.ID),
		Name:      row.Name,
		Email:     row.Email,
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
	}
}

// Row materializes the payload as a stored row.
func (i InquiryInsert) Row(id primitive.ObjectID, at time.Time) InquiryRow {
	return InquiryRow{ID: id, Name: i.Name, Email: i.Email, Message: i.Message, CreatedAt: at}
}
