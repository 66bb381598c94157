package db

import (
	"context"

	"github.com/ukydev/travel-agency/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPackageCollection implements PackageCollection for MongoDB.
type MongoPackageCollection struct {
	Collection *mongo.Collection
}

// ListPackages returns packages matching query, newest first.
func (c *MongoPackageCollection) ListPackages(ctx context.Context, query PackageQuery) ([]models.PackageRow, error) {
	return listRows[models.PackageRow](ctx, c.Collection, "list packages", query.Filter())
}

// FindPackageByID finds a package by its ID.
func (c *MongoPackageCollection) FindPackageByID(ctx context.Context, id string) (*models.PackageRow, error) {
	return findRowByID[models.PackageRow](ctx, c.Collection, "find package", id)
}

// CreatePackage inserts a package and returns the persisted row.
func (c *MongoPackageCollection) CreatePackage(ctx context.Context, pkg models.PackageInsert) (*models.PackageRow, error) {
	if err := validateWrite(PackagesCollection, pkg); err != nil {
		return nil, err
	}
	row := pkg.Row(primitive.NilObjectID, now())
	id, err := insertRow(ctx, c.Collection, "create package", row)
	if err != nil {
		return nil, err
	}
	row.ID = id
	return &row, nil
}

// UpdatePackage applies a partial update and stamps updated_at.
func (c *MongoPackageCollection) UpdatePackage(ctx context.Context, id string, update models.PackageUpdate) (*models.PackageRow, error) {
	if err := validateWrite(PackagesCollection, update); err != nil {
		return nil, err
	}
	stamp := now()
	update.UpdatedAt = &stamp
	return updateRowByID[models.PackageRow](ctx, c.Collection, "update package", id, update)
}

// DeletePackage removes a package. Deleting an absent id returns ErrNotFound.
func (c *MongoPackageCollection) DeletePackage(ctx context.Context, id string) error {
	return deleteRowByID(ctx, c.Collection, "delete package", id)
}
