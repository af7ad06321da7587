package db

import (
	"context"

	"github.com/ukydev/tripsheet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLoadCollection implements LoadCollection for MongoDB.
type MongoLoadCollection struct {
	Collection *mongo.Collection
}

// InsertLoad inserts a load into the collection.
func (c *MongoLoadCollection) InsertLoad(ctx context.Context, load models.Load) error {
	return insertOne(ctx, c.Collection, load)
}

// FindLoads returns every load.
func (c *MongoLoadCollection) FindLoads(ctx context.Context) ([]models.Load, error) {
	return findAll[models.Load](ctx, c.Collection, bson.M{})
}

// FindLoadsForTrip returns a trip's loads ordered by loading date.
func (c *MongoLoadCollection) FindLoadsForTrip(ctx context.Context, tripID string) ([]models.Load, error) {
	opts := options.Find().SetSort(bson.D{{Key: "loading_date", Value: 1}, {Key: "created_at", Value: 1}})
	return findAll[models.Load](ctx, c.Collection, bson.M{"trip_id": tripID}, opts)
}

// FindLoadByID finds a load by its ID.
func (c *MongoLoadCollection) FindLoadByID(ctx context.Context, id string) (*models.Load, error) {
	return findOne[models.Load](ctx, c.Collection, bson.M{"_id": id})
}

// FindPendingLoads returns loads whose balance is still outstanding.
func (c *MongoLoadCollection) FindPendingLoads(ctx context.Context) ([]models.Load, error) {
	opts := options.Find().SetSort(bson.D{{Key: "loading_date", Value: -1}})
	return findAll[models.Load](ctx, c.Collection, bson.M{"balance_amount": bson.M{"$gt": 0}}, opts)
}

// UpdateLoad replaces a load by its ID.
func (c *MongoLoadCollection) UpdateLoad(ctx context.Context, id string, load models.Load) error {
	load.ID = id
	return replaceByID(ctx, c.Collection, id, load)
}

// DeleteLoad deletes a load by its ID.
func (c *MongoLoadCollection) DeleteLoad(ctx context.Context, id string) error {
	return deleteByID(ctx, c.Collection, id)
}

// DeleteLoadsForTrip deletes every load of a trip.
func (c *MongoLoadCollection) DeleteLoadsForTrip(ctx context.Context, tripID string) error {
	return deleteMany(ctx, c.Collection, bson.M{"trip_id": tripID})
}
