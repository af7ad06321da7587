package models

import (
	"time"
)

// Compliance documents tracked per truck.
const (
	DocumentFitness   = "fc"
	DocumentInsurance = "insurance"
	DocumentPermit    = "np"
)

var documentLabels = map[string]string{
	DocumentFitness:   "Fitness Certificate",
	DocumentInsurance: "Insurance",
	DocumentPermit:    "National Permit",
}

// Truck represents a fleet truck.
type Truck struct {
	ID              string     `json:"id" bson:"_id"`
	TruckNo         string     `json:"truck_no" bson:"truck_no"` // registration number, unique
	FCExpiry        *time.Time `json:"fc_expiry,omitempty" bson:"fc_expiry,omitempty"`
	InsuranceExpiry *time.Time `json:"insurance_expiry,omitempty" bson:"insurance_expiry,omitempty"`
	NPExpiry        *time.Time `json:"np_expiry,omitempty" bson:"np_expiry,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
}

// ExpiringDocument is a compliance document that has lapsed or is about to.
type ExpiringDocument struct {
	TruckID  string    `json:"truck_id"`
	TruckNo  string    `json:"truck_no"`
	Document string    `json:"document"`
	Label    string    `json:"label"`
	Expiry   time.Time `json:"expiry"`
	DaysLeft int       `json:"days_left"` // negative once expired
}

// ExpiringDocuments lists the documents whose expiry falls on or before now+within.
func (t *Truck) ExpiringDocuments(now time.Time, within time.Duration) []ExpiringDocument {
	today := DateOnly(now)
	limit := today.Add(within)

	var out []ExpiringDocument
	for _, doc := range []struct {
		key    string
		expiry *time.Time
	}{
		{DocumentFitness, t.FCExpiry},
		{DocumentInsurance, t.InsuranceExpiry},
		{DocumentPermit, t.NPExpiry},
	} {
		if doc.expiry == nil {
			continue
		}
		exp := DateOnly(*doc.expiry)
		if exp.After(limit) {
			continue
		}
		out = append(out, ExpiringDocument{
			TruckID:  t.ID,
			TruckNo:  t.TruckNo,
			Document: doc.key,
			Label:    documentLabels[doc.key],
			Expiry:   exp,
			DaysLeft: int(exp.Sub(today).Hours() / 24),
		})
	}
	return out
}
