package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarRow is a rental car as persisted in the cars collection.
type CarRow struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Brand        string             `bson:"brand" json:"brand"`
	Model        string             `bson:"model" json:"model"`
	PricePerDay  float64            `bson:"price_per_day" json:"price_per_day"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	FuelType     FuelType           `bson:"fuel_type" json:"fuel_type"`
	Seats        int                `bson:"seats" json:"seats"`
	Transmission Transmission       `bson:"transmission" json:"transmission"`
	Features     []string           `bson:"features" json:"features"`
	Status       Status             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// CarInsert is the write payload for a new car.
type CarInsert struct {
	Name         string       `bson:"name" json:"name"`
	Brand        string       `bson:"brand" json:"brand" validate:"nonblank"`
	Model        string       `bson:"model" json:"model" validate:"nonblank"`
	PricePerDay  float64      `bson:"price_per_day" json:"price_per_day" validate:"gte=0"`
	ImageURL     string       `bson:"image_url" json:"image_url"`
	FuelType     FuelType     `bson:"fuel_type" json:"fuel_type" validate:"oneof=Petrol Diesel Electric Hybrid"`
	Seats        int          `bson:"seats" json:"seats" validate:"min=1,max=12"`
	Transmission Transmission `bson:"transmission" json:"transmission" validate:"oneof=Automatic Manual"`
	Features     []string     `bson:"features" json:"features"`
	Status       Status       `bson:"status" json:"status" validate:"oneof=draft published"`
}

// CarUpdate is a partial update. Nil fields are left untouched.
type CarUpdate struct {
	Name         *string       `bson:"name,omitempty" json:"name,omitempty"`
	Brand        *string       `bson:"brand,omitempty" json:"brand,omitempty" validate:"omitempty,nonblank"`
	Model        *string       `bson:"model,omitempty" json:"model,omitempty" validate:"omitempty,nonblank"`
	PricePerDay  *float64      `bson:"price_per_day,omitempty" json:"price_per_day,omitempty" validate:"omitempty,gte=0"`
	ImageURL     *string       `bson:"image_url,omitempty" json:"image_url,omitempty"`
	FuelType     *FuelType     `bson:"fuel_type,omitempty" json:"fuel_type,omitempty" validate:"omitempty,oneof=Petrol Diesel Electric Hybrid"`
	Seats        *int          `bson:"seats,omitempty" json:"seats,omitempty" validate:"omitempty,min=1,max=12"`
	Transmission *Transmission `bson:"transmission,omitempty" json:"transmission,omitempty" validate:"omitempty,oneof=Automatic Manual"`
	Features     *[]string     `bson:"features,omitempty" json:"features,omitempty"`
	Status       *Status       `bson:"status,omitempty" json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	UpdatedAt    *time.Time    `bson:"updated_at,omitempty" json:"-"`
}

// CarView is the presentation shape of a rental car.
type CarView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	PricePerDay  float64      `json:"pricePerDay"`
	Image        string       `json:"image"`
	FuelType     FuelType     `json:"fuelType"`
	Seats        int          `json:"seats"`
	Transmission Transmission `json:"transmission"`
	Features     []string     `json:"features"`
	Status       Status       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// DisplayName returns the car name, falling back to brand and model.
func DisplayName(name, brand, model string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return strings.TrimSpace(strings.TrimSpace(brand) + " " + strings.TrimSpace(model))
}

// Update converts a full insert payload into an update that sets every column.
func (c CarInsert) Update() CarUpdate {
	features := append([]string{}, c.Features...)
	return CarUpdate{
		Name:         &c.Name,
		Brand:        &c.Brand,
		Model:        &c.Model,
		PricePerDay:  &c.PricePerDay,
		ImageURL:     &c.ImageURL,
		FuelType:     &c.FuelType,
		Seats:        &c.Seats,
		Transmission: &c.Transmission,
		Features:     &features,
		Status:       &c.Status,
	}
}

// Apply returns a copy of row with the non-nil fields of u applied.
func (u CarUpdate) Apply(row CarRow) CarRow {
	if u.Name != nil {
		row.Name = *u.Name
	}
	if u.Brand != nil {
		row.Brand = *u.Brand
	}
	if u.Model != nil {
		row.Model = *u.Model
	}
	if u.PricePerDay != nil {
		row.PricePerDay = *u.PricePerDay
	}
	if u.ImageURL != nil {
		row.ImageURL = *u.ImageURL
	}
	if u.FuelType != nil {
		row.FuelType = *u.FuelType
	}
	if u.Seats != nil {
		row.Seats = *u.Seats
	}
	if u.Transmission != nil {
		row.Transmission = *u.Transmission
	}
	if u.Features != nil {
		row.Features = append([]string{}, (*u.Features)...)
	}
	if u.Status != nil {
		row.Status = *u.Status
	}
	if u.UpdatedAt != nil {
		row.UpdatedAt = *u.UpdatedAt
	}
	return row
}
