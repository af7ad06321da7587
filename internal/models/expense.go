package models

import (
	"strings"
	"time"
)

// ExpenseCategory groups trip expenses.
type ExpenseCategory string

const (
	CategoryDiesel    ExpenseCategory = "diesel"
	CategoryAdBlue    ExpenseCategory = "adblue"
	CategorySalary    ExpenseCategory = "salary"
	CategoryLoading   ExpenseCategory = "loading"
	CategoryUnloading ExpenseCategory = "unloading"
	CategoryRTO       ExpenseCategory = "rto"
	CategoryFastag    ExpenseCategory = "fastag"
	CategoryBilling   ExpenseCategory = "billing"
	CategoryOther     ExpenseCategory = "other"
)

var categoryLabels = map[ExpenseCategory]string{
	CategoryDiesel:    "Diesel",
	CategoryAdBlue:    "AdBlue (Oil)",
	CategorySalary:    "Salary",
	CategoryLoading:   "Loading",
	CategoryUnloading: "Unloading",
	CategoryRTO:       "RTO & PC",
	CategoryFastag:    "Fastag",
	CategoryBilling:   "Billing",
	CategoryOther:     "Other",
}

// NormalizeCategory folds legacy spellings ("Diesel", " RTO ") onto the canonical keys.
func NormalizeCategory(c ExpenseCategory) ExpenseCategory {
	return ExpenseCategory(strings.ToLower(strings.TrimSpace(string(c))))
}

// IsValidCategory checks if a category is known
func IsValidCategory(c ExpenseCategory) bool {
	_, ok := categoryLabels[NormalizeCategory(c)]
	return ok
}

// Label returns the display name of the category.
func (c ExpenseCategory) Label() string {
	if l, ok := categoryLabels[NormalizeCategory(c)]; ok {
		return l
	}
	return string(c)
}

// Expense is a cost booked against a trip.
type Expense struct {
	ID         string          `json:"id" bson:"_id"`
	TripID     string          `json:"trip_id" bson:"trip_id"`
	Category   ExpenseCategory `json:"category" bson:"category"`
	Title      string          `json:"title,omitempty" bson:"title,omitempty"`
	Amount     float64         `json:"amount" bson:"amount"`
	Liters     *float64        `json:"liters,omitempty" bson:"liters,omitempty"`         // diesel, adblue
	Percentage *float64        `json:"percentage,omitempty" bson:"percentage,omitempty"` // salary
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
}

// IsDiesel reports whether the row duplicates the trip-level diesel figure.
func (e *Expense) IsDiesel() bool {
	return NormalizeCategory(e.Category) == CategoryDiesel
}
