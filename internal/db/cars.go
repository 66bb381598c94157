package db

import (
	"context"

	"github.com/ukydev/travel-agency/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCarCollection implements CarCollection for MongoDB.
type MongoCarCollection struct {
	Collection *mongo.Collection
}

// ListCars returns cars matching query, newest first.
func (c *MongoCarCollection) ListCars(ctx context.Context, query CarQuery) ([]models.CarRow, error) {
	return listRows[models.CarRow](ctx, c.Collection, "list cars", query.Filter())
}

// FindCarByID finds a car by its ID.
func (c *MongoCarCollection) FindCarByID(ctx context.Context, id string) (*models.CarRow, error) {
	return findRowByID[models.CarRow](ctx, c.Collection, "find car", id)
}

// CreateCar inserts a car and returns the persisted row.
func (c *MongoCarCollection) CreateCar(ctx context.Context, car models.CarInsert) (*models.CarRow, error) {
	if err := validateWrite(CarsCollection, car); err != nil {
		return nil, err
	}
	row := car.Row(primitive.NilObjectID, now())
	id, err := insertRow(ctx, c.Collection, "create car", row)
	if err != nil {
		return nil, err
	}
	row.ID = id
	return &row, nil
}

// UpdateCar applies a partial update and stamps updated_at.
func (c *MongoCarCollection) UpdateCar(ctx context.Context, id string, update models.CarUpdate) (*models.CarRow, error) {
	if err := validateWrite(CarsCollection, update); err != nil {
		return nil, err
	}
	stamp := now()
	update.UpdatedAt = &stamp
	return updateRowByID[models.CarRow](ctx, c.Collection, "update car", id, update)
}

// DeleteCar removes a car. Deleting an absent id returns ErrNotFound.
func (c *MongoCarCollection) DeleteCar(ctx context.Context, id string) error {
	return deleteRowByID(ctx, c.Collection, "delete car", id)
}
