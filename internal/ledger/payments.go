package ledger

import (
	"errors"
	"math"

	"github.com/ukydev/tripsheet/internal/models"
)

var (
	ErrUnknownPayTerm = errors.New("unknown pay term")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// ApplyPayTerm switches a load's pay term and re-derives advance and balance.
// "To Pay" settles the load in full; "Advance" keeps the current advance.
func ApplyPayTerm(load *models.Load, term models.PayTerm) error {
	switch term {
	case models.PayTermToPay:
		load.PayTerm = term
		load.AdvanceAmount = load.FreightAmount
		load.BalanceAmount = 0
	case models.PayTermAdvance:
		load.PayTerm = term
		load.BalanceAmount = balance(load.FreightAmount, load.AdvanceAmount)
	default:
		return ErrUnknownPayTerm
	}
	return nil
}

// SetAdvance records a new advance for an advance-paid load and re-derives the balance.
// On a "To Pay" load the advance always follows the freight.
func SetAdvance(load *models.Load, advance float64) error {
	if advance < 0 {
		return ErrNegativeAmount
	}
	load.AdvanceAmount = advance
	if load.PayTerm == "" {
		load.PayTerm = models.PayTermAdvance
	}
	return ApplyPayTerm(load, load.PayTerm)
}

// RecordPayment deducts a received amount from the outstanding balance.
// Advance and freight are left untouched; the balance never goes below zero.
func RecordPayment(load *models.Load, received float64) error {
	if received < 0 {
		return ErrNegativeAmount
	}
	load.BalanceAmount = balance(load.BalanceAmount, received)
	return nil
}

// IsPending reports whether a load still has money to collect.
func IsPending(load models.Load) bool {
	return load.BalanceAmount > 0
}

// Priority buckets for pending payments.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PaymentPriority ranks an outstanding balance.
func PaymentPriority(balance float64) string {
	switch {
	case balance > 50000:
		return PriorityHigh
	case balance > 20000:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func balance(total, paid float64) float64 {
	return math.Max(0, num(total)-num(paid))
}
