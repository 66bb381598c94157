package db

import (
	"context"

	"github.com/ukydev/travel-agency/internal/models"
)

// PackageCollection defines the interface for tour package operations.
type PackageCollection interface {
	ListPackages(ctx context.Context, query PackageQuery) ([]models.PackageRow, error)
	FindPackageByID(ctx context.Context, id string) (*models.PackageRow, error)
	CreatePackage(ctx context.Context, pkg models.PackageInsert) (*models.PackageRow, error)
	UpdatePackage(ctx context.Context, id string, update models.PackageUpdate) (*models.PackageRow, error)
	DeletePackage(ctx context.Context, id string) error
}

// CarCollection defines the interface for rental car operations.
type CarCollection interface {
	ListCars(ctx context.Context, query CarQuery) ([]models.CarRow, error)
	FindCarByID(ctx context.Context, id string) (*models.CarRow, error)
	CreateCar(ctx context.Context, car models.CarInsert) (*models.CarRow, error)
	UpdateCar(ctx context.Context, id string, update models.CarUpdate) (*models.CarRow, error)
	DeleteCar(ctx context.Context, id string) error
}

// InquiryCollection defines the interface for the append-only inquiry log.
type InquiryCollection interface {
	CreateInquiry(ctx context.Context, inquiry models.InquiryInsert) (*models.InquiryRow, error)
	ListInquiries(ctx context.Context) ([]models.InquiryRow, error)
}
