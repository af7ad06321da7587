package db

import (
	"context"

	"github.com/ukydev/tripsheet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoExpenseCollection implements ExpenseCollection for MongoDB.
type MongoExpenseCollection struct {
	Collection *mongo.Collection
}

// InsertExpense inserts an expense into the collection.
func (c *MongoExpenseCollection) InsertExpense(ctx context.Context, expense models.Expense) error {
	return insertOne(ctx, c.Collection, expense)
}

// InsertExpenses inserts several expenses in one round trip.
func (c *MongoExpenseCollection) InsertExpenses(ctx context.Context, expenses []models.Expense) error {
	return insertMany(ctx, c.Collection, expenses)
}

// FindExpenses returns every expense.
func (c *MongoExpenseCollection) FindExpenses(ctx context.Context) ([]models.Expense, error) {
	return findAll[models.Expense](ctx, c.Collection, bson.M{})
}

// FindExpensesForTrip returns a trip's expenses in the order they were booked.
func (c *MongoExpenseCollection) FindExpensesForTrip(ctx context.Context, tripID string) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findAll[models.Expense](ctx, c.Collection, bson.M{"trip_id": tripID}, opts)
}

// FindExpenseByID finds an expense by its ID.
func (c *MongoExpenseCollection) FindExpenseByID(ctx context.Context, id string) (*models.Expense, error) {
	return findOne[models.Expense](ctx, c.Collection, bson.M{"_id": id})
}

// UpdateExpense replaces an expense by its ID.
func (c *MongoExpenseCollection) UpdateExpense(ctx context.Context, id string, expense models.Expense) error {
	expense.ID = id
	return replaceByID(ctx, c.Collection, id, expense)
}

// DeleteExpense deletes an expense by its ID.
func (c *MongoExpenseCollection) DeleteExpense(ctx context.Context, id string) error {
	return deleteByID(ctx, c.Collection, id)
}

// DeleteExpensesForTrip deletes every expense of a trip.
func (c *MongoExpenseCollection) DeleteExpensesForTrip(ctx context.Context, tripID string) error {
	return deleteMany(ctx, c.Collection, bson.M{"trip_id": tripID})
}
