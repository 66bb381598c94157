// Package dbtest provides testify mocks of the store collections.
package dbtest

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/travel-agency/internal/db"
	"github.com/ukydev/travel-agency/internal/models"
)

// MockPackageCollection is a mock implementation of db.PackageCollection
type MockPackageCollection struct {
	mock.Mock
}

func (m *MockPackageCollection) ListPackages(ctx context.Context, query db.PackageQuery) ([]models.PackageRow, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PackageRow), args.Error(1)
}

func (m *MockPackageCollection) FindPackageByID(ctx context.Context, id string) (*models.PackageRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackageRow), args.Error(1)
}

func (m *MockPackageCollection) CreatePackage(ctx context.Context, pkg models.PackageInsert) (*models.PackageRow, error) {
	args := m.Called(ctx, pkg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackageRow), args.Error(1)
}

func (m *MockPackageCollection) UpdatePackage(ctx context.Context, id string, update models.PackageUpdate) (*models.PackageRow, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackageRow), args.Error(1)
}

func (m *MockPackageCollection) DeletePackage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCarCollection is a mock implementation of db.CarCollection
type MockCarCollection struct {
	mock.Mock
}

func (m *MockCarCollection) ListCars(ctx context.Context, query db.CarQuery) ([]models.CarRow, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CarRow), args.Error(1)
}

func (m *MockCarCollection) FindCarByID(ctx context.Context, id string) (*models.CarRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarRow), args.Error(1)
}

func (m *MockCarCollection) CreateCar(ctx context.Context, car models.CarInsert) (*models.CarRow, error) {
	args := m.Called(ctx, car)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarRow), args.Error(1)
}

func (m *MockCarCollection) UpdateCar(ctx context.Context, id string, update models.CarUpdate) (*models.CarRow, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarRow), args.Error(1)
}

func (m *MockCarCollection) DeleteCar(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInquiryCollection is a mock implementation of db.InquiryCollection
type MockInquiryCollection struct {
	mock.Mock
}

func (m *MockInquiryCollection) CreateInquiry(ctx context.Context, inquiry models.InquiryInsert) (*models.InquiryRow, error) {
	args := m.Called(ctx, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InquiryRow), args.Error(1)
}

func (m *MockInquiryCollection) ListInquiries(ctx context.Context) ([]models.InquiryRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InquiryRow), args.Error(1)
}

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

var (
	_ db.PackageCollection = (*MockPackageCollection)(nil)
	_ db.CarCollection     = (*MockCarCollection)(nil)
	_ db.InquiryCollection = (*MockInquiryCollection)(nil)
	_ db.UserCollection    = (*MockUserCollection)(nil)
)
