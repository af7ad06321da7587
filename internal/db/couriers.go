package db

import (
	"context"

	"github.com/ukydev/tripsheet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCourierCollection implements CourierCollection for MongoDB.
// The unique load_id index keeps at most one document per load.
type MongoCourierCollection struct {
	Collection *mongo.Collection
}

func (c *MongoCourierCollection) InsertCourier(ctx context.Context, courier models.CourierDetails) error {
	return insertOne(ctx, c.Collection, courier)
}

func (c *MongoCourierCollection) FindCouriers(ctx context.Context) ([]models.CourierDetails, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[models.CourierDetails](ctx, c.Collection, bson.M{}, opts)
}

func (c *MongoCourierCollection) FindCourierByLoad(ctx context.Context, loadID string) (*models.CourierDetails, error) {
	return findOne[models.CourierDetails](ctx, c.Collection, bson.M{"load_id": loadID})
}

func (c *MongoCourierCollection) UpdateCourier(ctx context.Context, id string, courier models.CourierDetails) error {
	courier.ID = id
	return replaceByID(ctx, c.Collection, id, courier)
}

func (c *MongoCourierCollection) DeleteCourier(ctx context.Context, id string) error {
	return deleteByID(ctx, c.Collection, id)
}

func (c *MongoCourierCollection) DeleteCouriersForLoads(ctx context.Context, loadIDs []string) error {
	if len(loadIDs) == 0 {
		return nil
	}
	return deleteMany(ctx, c.Collection, bson.M{"load_id": bson.M{"$in": loadIDs}})
}
