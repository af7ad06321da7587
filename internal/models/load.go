package models

import "time"

// PayTerm says how a load's freight is paid.
type PayTerm string

const (
	PayTermToPay   PayTerm = "To Pay"
	PayTermAdvance PayTerm = "Advance"
)

// IsValidPayTerm checks if a pay term is known
func IsValidPayTerm(p PayTerm) bool {
	return p == PayTermToPay || p == PayTermAdvance
}

// Load is one freight booking ("single") carried on a trip.
type Load struct {
	ID            string     `json:"id" bson:"_id"`
	TripID        string     `json:"trip_id" bson:"trip_id"`
	LoadingDate   *time.Time `json:"loading_date,omitempty" bson:"loading_date,omitempty"`
	FromLocation  string     `json:"from_location,omitempty" bson:"from_location,omitempty"`
	ToLocation    string     `json:"to_location,omitempty" bson:"to_location,omitempty"`
	Transporter   string     `json:"transporter,omitempty" bson:"transporter,omitempty"`
	FreightAmount float64    `json:"freight_amount" bson:"freight_amount"`
	Note          string     `json:"note,omitempty" bson:"note,omitempty"`
	PayTerm       PayTerm    `json:"pay_term" bson:"pay_term"`
	AdvanceAmount float64    `json:"advance_amount" bson:"advance_amount"`
	BalanceAmount float64    `json:"balance_amount" bson:"balance_amount"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`

	// Courier is joined at read time, never stored on the load document.
	Courier *CourierDetails `json:"courier_details,omitempty" bson:"-"`
}

// CourierDetails tracks the paperwork courier for an advance-paid load.
// At most one exists per load.
type CourierDetails struct {
	ID           string     `json:"id" bson:"_id"`
	LoadID       string     `json:"load_id" bson:"load_id"`
	ReceivedDate *time.Time `json:"received_date,omitempty" bson:"received_date,omitempty"`
	Vendor       string     `json:"vendor,omitempty" bson:"vendor,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty" bson:"delivery_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}
