package models

import (
	"time"
)

// TripStatus is the lifecycle flag of a trip.
type TripStatus string

const (
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
)

// IsValidTripStatus checks if a status is known
func IsValidTripStatus(s TripStatus) bool {
	return s == TripOngoing || s == TripCompleted
}

// Trip represents one movement of a truck between a start and an optional end date.
type Trip struct {
	ID           string     `json:"id" bson:"_id"`
	TruckID      string     `json:"truck_id" bson:"truck_id"`
	Driver1ID    string     `json:"driver1_id" bson:"driver1_id"`
	Driver2ID    string     `json:"driver2_id,omitempty" bson:"driver2_id,omitempty"`
	StartDate    time.Time  `json:"start_date" bson:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"` // nil while ongoing
	StartKM      float64    `json:"start_km" bson:"start_km"`
	EndKM        float64    `json:"end_km" bson:"end_km"`
	DieselLiters float64    `json:"diesel_liters" bson:"diesel_liters"`
	DieselAmount float64    `json:"diesel_amount" bson:"diesel_amount"` // canonical diesel cost of the trip
	Status       TripStatus `json:"status" bson:"status"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// Distance is the odometer difference, zero when not yet known.
func (t *Trip) Distance() float64 {
	d := t.EndKM - t.StartKM
	if d <= 0 {
		return 0
	}
	return d
}

// Mileage returns kilometres per litre of diesel, zero when it cannot be computed.
func (t *Trip) Mileage() float64 {
	d := t.Distance()
	if d <= 0 || t.DieselLiters <= 0 {
		return 0
	}
	return d / t.DieselLiters
}
