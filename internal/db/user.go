package db

import (
	"context"

	"github.com/ukydev/travel-agency/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserCollection defines the interface for staff user database operations
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

// MongoUserCollection implements UserCollection for MongoDB
type MongoUserCollection struct {
	Collection *mongo.Collection
}

// InsertUser inserts a new user into the database
func (c *MongoUserCollection) InsertUser(ctx context.Context, user models.User) error {
	if c.Collection == nil {
		return errNilCollection("insert user")
	}
	stamp := now()
	user.CreatedAt = stamp
	user.UpdatedAt = stamp
	user.IsActive = true

	_, err := c.Collection.InsertOne(ctx, user)
	return storeError("insert user", UsersCollection, err)
}

// FindUserByID finds a user by their ID
func (c *MongoUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return findRowByID[models.User](ctx, c.Collection, "find user", id)
}

// FindUserByEmail finds a user by their email
func (c *MongoUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if c.Collection == nil {
		return nil, errNilCollection("find user")
	}
	var user models.User
	err := c.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, storeError("find user", UsersCollection, err)
	}

	return &user, nil
}

// UpdateLastLogin updates the last login time for a user
func (c *MongoUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	stamp := now()
	_, err := updateRowByID[models.User](ctx, c.Collection, "update last login", id,
		bson.M{"last_login": stamp, "updated_at": stamp})
	return err
}

// UpdatePassword replaces a user's password hash
func (c *MongoUserCollection) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	_, err := updateRowByID[models.User](ctx, c.Collection, "update password", id,
		bson.M{"password_hash": passwordHash, "updated_at": now()})
	return err
}
