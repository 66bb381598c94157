package catalog

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/travel-agency/internal/models"
	"github.com/ukydev/travel-agency/internal/notify"
)

// FormError lists the fields a visitor must fix before an inquiry is sent.
type FormError struct {
	Fields []models.FieldError `json:"fields"`
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// ContactForm is the general contact form.
type ContactForm struct {
	Name    string `json:"name" validate:"nonblank,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"nonblank,min=10"`
}

// RentalForm is the car rental inquiry form.
type RentalForm struct {
	Name      string `json:"name" validate:"nonblank,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Message   string `json:"message"`
}

// BookingForm is the tour package booking inquiry form.
type BookingForm struct {
	Name          string `json:"name" validate:"nonblank,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone"`
	Travelers     int    `json:"travelers" validate:"gte=0"`
	PreferredDate string `json:"preferred_date"`
	Message       string `json:"message"`
}

// RentalReceipt is returned after a rental inquiry is stored.
type RentalReceipt struct {
	Inquiry  models.InquiryView `json:"inquiry"`
	ChatLink string             `json:"chat_link"`
}

func checkForm(form any) error {
	fields, err := models.Validate(form)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return &FormError{Fields: fields}
	}
	return nil
}

// RentalMessage composes the stored message body for a rental inquiry.
func RentalMessage(car models.CarView, form RentalForm) string {
	return fmt.Sprintf("Car Rental Inquiry for %s %s\n\nPhone: %s\nStart Date: %s\nEnd Date: %s\n\nMessage: %s",
		car.Brand, car.Model, form.Phone, form.StartDate, form.EndDate, form.Message)
}

// BookingMessage composes the stored message body for a package booking.
func BookingMessage(pkg models.PackageView, form BookingForm) string {
	travelers := ""
	if form.Travelers > 0 {
		travelers = fmt.Sprint(form.Travelers)
	}
	return fmt.Sprintf("Package Booking Inquiry for %s (%s)\n\nPhone: %s\nTravelers: %s\nPreferred Date: %s\n\nMessage: %s",
		pkg.Title, pkg.Destination, form.Phone, travelers, form.PreferredDate, form.Message)
}

// SubmitContact stores a contact form message.
func (s *Service) SubmitContact(ctx context.Context, form ContactForm) (*models.InquiryView, error) {
	if err := checkForm(form); err != nil {
		return nil, err
	}
	return s.store(ctx, "contact", "", models.InquiryInsert{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: form.Message,
	})
}

// SubmitRental stores a rental inquiry for carID and returns the chat link
// as a fallback channel.
func (s *Service) SubmitRental(ctx context.Context, carID string, form RentalForm) (*RentalReceipt, error) {
	if err := checkForm(form); err != nil {
		return nil, err
	}
	car, err := s.Car(ctx, carID)
	if err != nil {
		return nil, err
	}
	inquiry, err := s.store(ctx, "rental", car.Name, models.InquiryInsert{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: RentalMessage(*car, form),
	})
	if err != nil {
		return nil, err
	}
	return &RentalReceipt{Inquiry: *inquiry, ChatLink: s.ChatLink(*car, form)}, nil
}

// SubmitPackageBooking stores a booking inquiry for packageID.
func (s *Service) SubmitPackageBooking(ctx context.Context, packageID string, form BookingForm) (*models.InquiryView, error) {
	if err := checkForm(form); err != nil {
		return nil, err
	}
	pkg, err := s.Package(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, "booking", pkg.Title, models.InquiryInsert{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: BookingMessage(*pkg, form),
	})
}

// store persists the inquiry and announces it. A failed announcement is
// logged and does not fail the submission.
func (s *Service) store(ctx context.Context, source, subject string, in models.InquiryInsert) (*models.InquiryView, error) {
	row, err := s.inquiries.CreateInquiry(ctx, in)
	if err != nil {
		log.WithError(err).WithField("source", source).Error("Failed to store inquiry")
		return nil, err
	}
	view := models.InquiryToView(*row)

	event := notify.InquiryEvent{
		ID:        view.ID,
		Source:    source,
		Subject:   subject,
		Name:      view.Name,
		Email:     view.Email,
		CreatedAt: view.CreatedAt,
	}
	if err := s.publisher.PublishInquiry(ctx, event); err != nil {
		log.WithError(err).WithField("inquiry_id", view.ID).Warn("Failed to publish inquiry event")
	}
	return &view, nil
}
