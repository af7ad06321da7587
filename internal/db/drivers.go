package db

import (
	"context"

	"github.com/ukydev/tripsheet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDriverCollection implements DriverCollection for MongoDB.
type MongoDriverCollection struct {
	Collection *mongo.Collection
}

func (c *MongoDriverCollection) InsertDriver(ctx context.Context, driver models.Driver) error {
	return insertOne(ctx, c.Collection, driver)
}

// FindDrivers returns every driver ordered by name.
func (c *MongoDriverCollection) FindDrivers(ctx context.Context) ([]models.Driver, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.Driver](ctx, c.Collection, bson.M{}, opts)
}

func (c *MongoDriverCollection) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	return findOne[models.Driver](ctx, c.Collection, bson.M{"_id": id})
}

func (c *MongoDriverCollection) UpdateDriver(ctx context.Context, id string, driver models.Driver) error {
	driver.ID = id
	return replaceByID(ctx, c.Collection, id, driver)
}

func (c *MongoDriverCollection) DeleteDriver(ctx context.Context, id string) error {
	return deleteByID(ctx, c.Collection, id)
}
