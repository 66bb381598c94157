package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackageRow is a tour package as persisted in the packages collection.
type PackageRow struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Destination  string             `bson:"destination" json:"destination"`
	Duration     string             `bson:"duration" json:"duration"`
	Price        float64            `bson:"price" json:"price"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	Description  string             `bson:"description" json:"description"`
	MaxTravelers int                `bson:"max_travelers" json:"max_travelers"`
	Status       Status             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// PackageInsert is the write payload for a new package. Every column is
// present so the store never receives an undefined required field.
type PackageInsert struct {
	Title        string  `bson:"title" json:"title" validate:"nonblank"`
	Destination  string  `bson:"destination" json:"destination" validate:"nonblank"`
	Duration     string  `bson:"duration" json:"duration"`
	Price        float64 `bson:"price" json:"price" validate:"gte=0"`
	ImageURL     string  `bson:"image_url" json:"image_url"`
	Description  string  `bson:"description" json:"description"`
	MaxTravelers int     `bson:"max_travelers" json:"max_travelers" validate:"gte=1"`
	Status       Status  `bson:"status" json:"status" validate:"oneof=draft published"`
}

// PackageUpdate is a partial update. Nil fields are left untouched.
// UpdatedAt is always overwritten by the store.
type PackageUpdate struct {
	Title        *string    `bson:"title,omitempty" json:"title,omitempty" validate:"omitempty,nonblank"`
	Destination  *string    `bson:"destination,omitempty" json:"destination,omitempty" validate:"omitempty,nonblank"`
	Duration     *string    `bson:"duration,omitempty" json:"duration,omitempty"`
	Price        *float64   `bson:"price,omitempty" json:"price,omitempty" validate:"omitempty,gte=0"`
	ImageURL     *string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Description  *string    `bson:"description,omitempty" json:"description,omitempty"`
	MaxTravelers *int       `bson:"max_travelers,omitempty" json:"max_travelers,omitempty" validate:"omitempty,gte=1"`
	Status       *Status    `bson:"status,omitempty" json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	UpdatedAt    *time.Time `bson:"updated_at,omitempty" json:"-"`
}

// PackageView is the presentation shape of a tour package.
type PackageView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Destination  string    `json:"destination"`
	Duration     string    `json:"duration"`
	Price        float64   `json:"price"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	MaxTravelers int       `json:"maxTravelers"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Update converts a full insert payload into an update that sets every column.
func (p PackageInsert) Update() PackageUpdate {
	return PackageUpdate{
		Title:        &p.Title,
		Destination:  &p.Destination,
		Duration:     &p.Duration,
		Price:        &p.Price,
		ImageURL:     &p.ImageURL,
		Description:  &p.Description,
		MaxTravelers: &p.MaxTravelers,
		Status:       &p.Status,
	}
}

// Apply returns a copy of row with the non-nil fields of u applied.
func (u PackageUpdate) Apply(row PackageRow) PackageRow {
	if u.Title != nil {
		row.Title = *u.Title
	}
	if u.Destination != nil {
		row.Destination = *u.Destination
	}
	if u.Duration != nil {
		row.Duration = *u.Duration
	}
	if u.Price != nil {
		row.Price = *u.Price
	}
	if u.ImageURL != nil {
		row.ImageURL = *u.ImageURL
	}
	if u.Description != nil {
		row.Description = *u.Description
	}
	if u.MaxTravelers != nil {
		row.MaxTravelers = *u.MaxTravelers
	}
	if u.Status != nil {
		row.Status = *u.Status
	}
	if u.UpdatedAt != nil {
		row.UpdatedAt = *u.UpdatedAt
	}
	return row
}
