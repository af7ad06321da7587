package db

import (
	"context"

	"github.com/ukydev/tripsheet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTyreCollection implements TyreCollection for MongoDB.
type MongoTyreCollection struct {
	Collection *mongo.Collection
}

// InsertTyre inserts a tyre into the collection.
func (c *MongoTyreCollection) InsertTyre(ctx context.Context, tyre models.Tyre) error {
	return insertOne(ctx, c.Collection, tyre)
}

// FindTyres returns the tyres matching filter, latest fitment first.
func (c *MongoTyreCollection) FindTyres(ctx context.Context, filter TyreFilter) ([]models.Tyre, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fitment_date", Value: -1}})
	return findAll[models.Tyre](ctx, c.Collection, tyreQuery(filter), opts)
}

func tyreQuery(filter TyreFilter) bson.M {
	query := bson.M{}
	if filter.TruckID != "" {
		query["truck_id"] = filter.TruckID
	}
	fitment := bson.M{}
	if filter.FitmentFrom != nil {
		fitment["$gte"] = *filter.FitmentFrom
	}
	if filter.FitmentTo != nil {
		fitment["$lte"] = *filter.FitmentTo
	}
	if len(fitment) > 0 {
		query["fitment_date"] = fitment
	}
	return query
}

// FindTyreByID finds a tyre by its ID.
func (c *MongoTyreCollection) FindTyreByID(ctx context.Context, id string) (*models.Tyre, error) {
	return findOne[models.Tyre](ctx, c.Collection, bson.M{"_id": id})
}

// UpdateTyre replaces a tyre by its ID.
func (c *MongoTyreCollection) UpdateTyre(ctx context.Context, id string, tyre models.Tyre) error {
	tyre.ID = id
	return replaceByID(ctx, c.Collection, id, tyre)
}

// DeleteTyre deletes a tyre by its ID.
func (c *MongoTyreCollection) DeleteTyre(ctx context.Context, id string) error {
	return deleteByID(ctx, c.Collection, id)
}
