package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the record store.
const (
	PackagesCollection  = "packages"
	CarsCollection      = "cars"
	InquiriesCollection = "contact_messages"
	UsersCollection     = "users"
)

// now is the store's timestamp authority. Mongo keeps millisecond precision,
// so rows returned from writes are truncated to match what is read back.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return client, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store bundles the collections of one database.
type Store struct {
	Packages  *MongoPackageCollection
	Cars      *MongoCarCollection
	Inquiries *MongoInquiryCollection
	Users     *MongoUserCollection
}

// NewStore wires every collection of database. A nil database yields a store
// whose calls fail at first use.
func NewStore(database *mongo.Database) *Store {
	if database == nil {
		log.Warn("Record store is not configured; data calls will fail until MONGO_URI is set")
		return &Store{
			Packages:  &MongoPackageCollection{},
			Cars:      &MongoCarCollection{},
			Inquiries: &MongoInquiryCollection{},
			Users:     &MongoUserCollection{},
		}
	}
	return &Store{
		Packages:  &MongoPackageCollection{Collection: database.Collection(PackagesCollection)},
		Cars:      &MongoCarCollection{Collection: database.Collection(CarsCollection)},
		Inquiries: &MongoInquiryCollection{Collection: database.Collection(InquiriesCollection)},
		Users:     &MongoUserCollection{Collection: database.Collection(UsersCollection)},
	}
}

func errNilCollection(op string) error {
	return &StoreError{Op: op, Message: "mongo collection is nil"}
}

// objectID parses a hex id. Malformed ids cannot exist in the store, so they
// are reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// newestFirst orders rows by descending creation time.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

func listRows[T any](ctx context.Context, coll *mongo.Collection, op string, filter bson.M) ([]T, error) {
	if coll == nil {
		return nil, errNilCollection(op)
	}
	cursor, err := coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, storeError(op, coll.Name(), err)
	}
	defer cursor.Close(ctx)

	rows := make([]T, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, storeError(op, coll.Name(), err)
	}
	return rows, nil
}

func findRowByID[T any](ctx context.Context, coll *mongo.Collection, op, id string) (*T, error) {
	if coll == nil {
		return nil, errNilCollection(op)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var row T
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&row); err != nil {
		return nil, storeError(op, coll.Name(), err)
	}
	return &row, nil
}

func insertRow(ctx context.Context, coll *mongo.Collection, op string, doc any) (primitive.ObjectID, error) {
	if coll == nil {
		return primitive.NilObjectID, errNilCollection(op)
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, storeError(op, coll.Name(), err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, &StoreError{Op: op, Message: fmt.Sprintf("unexpected id type %T", res.InsertedID)}
	}
	return oid, nil
}

func updateRowByID[T any](ctx context.Context, coll *mongo.Collection, op, id string, set any) (*T, error) {
	if coll == nil {
		return nil, errNilCollection(op)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var row T
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&row)
	if err != nil {
		return nil, storeError(op, coll.Name(), err)
	}
	return &row, nil
}

func deleteRowByID(ctx context.Context, coll *mongo.Collection, op, id string) error {
	if coll == nil {
		return errNilCollection(op)
	}
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError(op, coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
