package db

import (
	"context"
	"time"

	"github.com/ukydev/tripsheet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTripCollection implements TripCollection for MongoDB.
type MongoTripCollection struct {
	Collection *mongo.Collection
}

// InsertTrip inserts a trip record into the collection.
func (c *MongoTripCollection) InsertTrip(ctx context.Context, trip models.Trip) error {
	now := time.Now().UTC()
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now
	return insertOne(ctx, c.Collection, trip)
}

// FindTrips returns every trip, newest first.
func (c *MongoTripCollection) FindTrips(ctx context.Context) ([]models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[models.Trip](ctx, c.Collection, bson.M{}, opts)
}

// FindTripsForTruck returns the trips of one truck ordered by start date.
func (c *MongoTripCollection) FindTripsForTruck(ctx context.Context, truckID string) ([]models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	return findAll[models.Trip](ctx, c.Collection, bson.M{"truck_id": truckID}, opts)
}

// FindTripByID finds a trip by its ID.
func (c *MongoTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	return findOne[models.Trip](ctx, c.Collection, bson.M{"_id": id})
}

// FindRecentTrips returns the latest trips by start date.
func (c *MongoTripCollection) FindRecentTrips(ctx context.Context, limit int64) ([]models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}).SetLimit(limit)
	return findAll[models.Trip](ctx, c.Collection, bson.M{}, opts)
}

// UpdateTrip replaces a trip by its ID.
func (c *MongoTripCollection) UpdateTrip(ctx context.Context, id string, trip models.Trip) error {
	trip.ID = id
	trip.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, c.Collection, id, trip)
}

// DeleteTrip deletes a trip by its ID.
func (c *MongoTripCollection) DeleteTrip(ctx context.Context, id string) error {
	return deleteByID(ctx, c.Collection, id)
}
