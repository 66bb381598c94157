package catalog

import "github.com/ukydev/travel-agency/internal/models"

// PackageCategory is an in-memory price band for package listings.
type PackageCategory string

const (
	PackagesAll    PackageCategory = "all"
	PackagesBudget PackageCategory = "budget"
	PackagesLuxury PackageCategory = "luxury"
)

// Price thresholds for the category buttons.
const (
	BudgetPackageBelow  = 1500.0
	LuxuryPackageFrom   = 2000.0
	EconomyCarBelow     = 80.0
	LuxuryCarFromPerDay = 150.0
)

// ParsePackageCategory maps a query value to a category. Unknown values mean all.
func ParsePackageCategory(s string) PackageCategory {
	switch PackageCategory(s) {
	case PackagesBudget, PackagesLuxury:
		return PackageCategory(s)
	default:
		return PackagesAll
	}
}

// Includes reports whether pkg falls in the category.
func (c PackageCategory) Includes(pkg models.PackageView) bool {
	switch c {
	case PackagesBudget:
		return pkg.Price < BudgetPackageBelow
	case PackagesLuxury:
		return pkg.Price >= LuxuryPackageFrom
	default:
		return true
	}
}

// CarCategory is an in-memory price band for car listings.
type CarCategory string

const (
	CarsAll     CarCategory = "all"
	CarsEconomy CarCategory = "economy"
	CarsLuxury  CarCategory = "luxury"
)

// ParseCarCategory maps a query value to a category. Unknown values mean all.
func ParseCarCategory(s string) CarCategory {
	switch CarCategory(s) {
	case CarsEconomy, CarsLuxury:
		return CarCategory(s)
	default:
		return CarsAll
	}
}

// Includes reports whether car falls in the category.
func (c CarCategory) Includes(car models.CarView) bool {
	switch c {
	case CarsEconomy:
		return car.PricePerDay < EconomyCarBelow
	case CarsLuxury:
		return car.PricePerDay >= LuxuryCarFromPerDay
	default:
		return true
	}
}
