package models

import "time"

// Tyre records one tyre fitted to a truck.
type Tyre struct {
	ID          string     `json:"id" bson:"_id"`
	TruckID     string     `json:"truck_id" bson:"truck_id"`
	Make        string     `json:"make,omitempty" bson:"make,omitempty"`
	Price       float64    `json:"price" bson:"price"`
	FitmentDate *time.Time `json:"fitment_date,omitempty" bson:"fitment_date,omitempty"`
	FittingKM   float64    `json:"fitting_km" bson:"fitting_km"`
	RemovalDate *time.Time `json:"removal_date,omitempty" bson:"removal_date,omitempty"`
	RemovalKM   float64    `json:"removal_km" bson:"removal_km"`
	Remarks     string     `json:"remarks,omitempty" bson:"remarks,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// RunningKM is the distance covered between fitment and removal, never negative.
func (t *Tyre) RunningKM() float64 {
	km := t.RemovalKM - t.FittingKM
	if km < 0 {
		return 0
	}
	return km
}

// CostPerKM follows the business's running-km over price convention.
// It is zero unless both running km and price are positive.
func (t *Tyre) CostPerKM() float64 {
	km := t.RunningKM()
	if km <= 0 || t.Price <= 0 {
		return 0
	}
	return km / t.Price
}
