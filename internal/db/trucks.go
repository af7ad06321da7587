package db

import (
	"context"

	"github.com/ukydev/tripsheet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTruckCollection implements TruckCollection for MongoDB.
type MongoTruckCollection struct {
	Collection *mongo.Collection
}

// InsertTruck inserts a truck into the collection.
func (c *MongoTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) error {
	return insertOne(ctx, c.Collection, truck)
}

// InsertTrucks inserts several trucks in one round trip.
func (c *MongoTruckCollection) InsertTrucks(ctx context.Context, trucks []models.Truck) error {
	return insertMany(ctx, c.Collection, trucks)
}

// FindTrucks returns every truck, newest first.
func (c *MongoTruckCollection) FindTrucks(ctx context.Context) ([]models.Truck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[models.Truck](ctx, c.Collection, bson.M{}, opts)
}

// FindTruckByID finds a truck by its ID.
func (c *MongoTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	return findOne[models.Truck](ctx, c.Collection, bson.M{"_id": id})
}

// FindTruckByNumber finds a truck by its registration number.
func (c *MongoTruckCollection) FindTruckByNumber(ctx context.Context, truckNo string) (*models.Truck, error) {
	return findOne[models.Truck](ctx, c.Collection, bson.M{"truck_no": truckNo})
}

// UpdateTruck replaces a truck by its ID.
func (c *MongoTruckCollection) UpdateTruck(ctx context.Context, id string, truck models.Truck) error {
	truck.ID = id
	return replaceByID(ctx, c.Collection, id, truck)
}

// DeleteTruck deletes a truck by its ID.
func (c *MongoTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	return deleteByID(ctx, c.Collection, id)
}
