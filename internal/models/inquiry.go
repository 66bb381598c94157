package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InquiryRow is a contact or booking message stored in contact_messages.
// Rows are append-only.
type InquiryRow struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// InquiryInsert is the write payload for a new inquiry.
type InquiryInsert struct {
	Name    string `bson:"name" json:"name" validate:"nonblank"`
	Email   string `bson:"email" json:"email" validate:"required,email"`
	Message string `bson:"message" json:"message" validate:"nonblank"`
}

// InquiryView is the staff-facing shape of an inquiry.
type InquiryView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
