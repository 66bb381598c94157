package db

import (
	"context"

	"github.com/ukydev/travel-agency/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoInquiryCollection implements InquiryCollection for MongoDB.
type MongoInquiryCollection struct {
	Collection *mongo.Collection
}

// CreateInquiry appends an inquiry message.
func (c *MongoInquiryCollection) CreateInquiry(ctx context.Context, inquiry models.InquiryInsert) (*models.InquiryRow, error) {
	if err := validateWrite(InquiriesCollection, inquiry); err != nil {
		return nil, err
	}
	row := inquiry.Row(primitive.NilObjectID, now())
	id, err := insertRow(ctx, c.Collection, "create inquiry", row)
	if err != nil {
		return nil, err
	}
	row.ID = id
	return &row, nil
}

// ListInquiries returns every inquiry, newest first.
func (c *MongoInquiryCollection) ListInquiries(ctx context.Context) ([]models.InquiryRow, error) {
	return listRows[models.InquiryRow](ctx, c.Collection, "list inquiries", bson.M{})
}
