package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukydev/travel-agency/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when the requested id is absent.
var ErrNotFound = errors.New("record not found")

// ValidationError is returned when a write is rejected because required or
// typed fields are invalid.
type ValidationError struct {
	Collection string
	Fields     []models.FieldError
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: validation failed: %s", e.Collection, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: validation failed: %s", e.Collection, strings.Join(parts, ", "))
}

// StoreError is a generic backend failure carrying the backend's message.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the record is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// validateWrite runs the shared validator over a write payload.
func validateWrite(collection string, payload any) error {
	fields, err := models.Validate(payload)
	if err != nil {
		return &ValidationError{Collection: collection, Message: err.Error()}
	}
	if len(fields) > 0 {
		return &ValidationError{Collection: collection, Fields: fields}
	}
	return nil
}

// storeError classifies a driver error. Server-side schema rejections become
// validation errors, everything else a StoreError.
func storeError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			// 121: DocumentValidationFailure
			if e.Code == 121 {
				return &ValidationError{Collection: collection, Message: e.Message}
			}
		}
	}
	return &StoreError{Op: op, Message: err.Error(), Err: err}
}
