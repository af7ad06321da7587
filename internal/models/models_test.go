package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func TestTyre_RunningKMAndCost(t *testing.T) {
	tyre := Tyre{FittingKM: 10000, RemovalKM: 45000, Price: 28000}
	assert.Equal(t, 35000.0, tyre.RunningKM())
	assert.InDelta(t, 1.25, tyre.CostPerKM(), 1e-9)
}

func TestTyre_NotRemovedYet(t *testing.T) {
	tyre := Tyre{FittingKM: 10000, Price: 28000}
	assert.Equal(t, 0.0, tyre.RunningKM())
	assert.Equal(t, 0.0, tyre.CostPerKM())

	free := Tyre{FittingKM: 0, RemovalKM: 500, Price: 0}
	assert.Equal(t, 500.0, free.RunningKM())
	assert.Equal(t, 0.0, free.CostPerKM())
}

func TestTrip_Mileage(t *testing.T) {
	trip := Trip{StartKM: 1000, EndKM: 1600, DieselLiters: 150}
	assert.Equal(t, 600.0, trip.Distance())
	assert.InDelta(t, 4.0, trip.Mileage(), 1e-9)

	open := Trip{StartKM: 1000, DieselLiters: 150}
	assert.Equal(t, 0.0, open.Mileage())

	noDiesel := Trip{StartKM: 1000, EndKM: 1600}
	assert.Equal(t, 0.0, noDiesel.Mileage())
}

func TestIsValidTripStatus(t *testing.T) {
	assert.True(t, IsValidTripStatus(TripOngoing))
	assert.True(t, IsValidTripStatus(TripCompleted))
	assert.False(t, IsValidTripStatus("cancelled"))
}

func TestIsValidPayTerm(t *testing.T) {
	assert.True(t, IsValidPayTerm(PayTermToPay))
	assert.True(t, IsValidPayTerm(PayTermAdvance))
	assert.False(t, IsValidPayTerm("Credit"))
}

func TestExpenseCategory(t *testing.T) {
	assert.Equal(t, CategoryDiesel, NormalizeCategory("Diesel"))
	assert.True(t, IsValidCategory("RTO"))
	assert.False(t, IsValidCategory("tolls"))
	assert.Equal(t, "RTO & PC", CategoryRTO.Label())
	assert.Equal(t, "tolls", ExpenseCategory("tolls").Label())

	e := Expense{Category: "Diesel"}
	assert.True(t, e.IsDiesel())
}

func TestTruck_ExpiringDocuments(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	truck := Truck{
		ID:              "t1",
		TruckNo:         "TN01AB1234",
		FCExpiry:        dayPtr("2024-06-20"),
		InsuranceExpiry: dayPtr("2024-05-25"),
		NPExpiry:        dayPtr("2024-12-31"),
	}

	docs := truck.ExpiringDocuments(now, 30*24*time.Hour)
	if assert.Len(t, docs, 2) {
		assert.Equal(t, DocumentFitness, docs[0].Document)
		assert.Equal(t, 19, docs[0].DaysLeft)
		assert.Equal(t, DocumentInsurance, docs[1].Document)
		assert.Equal(t, "Insurance", docs[1].Label)
		assert.Equal(t, -7, docs[1].DaysLeft)
	}

	assert.Empty(t, (&Truck{TruckNo: "X"}).ExpiringDocuments(now, time.Hour))
}
