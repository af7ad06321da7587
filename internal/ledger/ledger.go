// Package ledger rolls loads and expenses up into trip and fleet figures.
//
// Diesel is counted from the trip's DieselAmount field only. Expense rows
// filed under the diesel category are skipped everywhere in this package.
package ledger

import (
	"math"
	"sort"
	"time"

	"github.com/ukydev/tripsheet/internal/models"
)

// TripTotals is the financial roll-up of a single trip.
type TripTotals struct {
	TotalFreight   float64 `json:"total_freight"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetProfit      float64 `json:"net_profit"`
	PendingBalance float64 `json:"pending_balance"`
}

// Totals computes the roll-up of trip from its loads and expenses.
func Totals(trip models.Trip, loads []models.Load, expenses []models.Expense) TripTotals {
	var t TripTotals
	for _, l := range loads {
		t.TotalFreight += num(l.FreightAmount)
		t.PendingBalance += num(l.BalanceAmount)
	}
	t.TotalExpenses = num(trip.DieselAmount) + otherExpenses(expenses)
	t.NetProfit = t.TotalFreight - t.TotalExpenses
	return t
}

// Summary holds the fleet-wide dashboard figures.
type Summary struct {
	Revenue     float64 `json:"revenue"`
	Pending     float64 `json:"pending"`
	ActiveTrips int     `json:"active_trips"`
	Expenses    float64 `json:"expenses"`
	Profit      float64 `json:"profit"`
}

// FleetSummary aggregates every load, trip and expense of the fleet.
func FleetSummary(loads []models.Load, trips []models.Trip, expenses []models.Expense) Summary {
	var s Summary
	for _, l := range loads {
		s.Revenue += num(l.FreightAmount)
		s.Pending += num(l.BalanceAmount)
	}
	for _, t := range trips {
		if t.Status == models.TripOngoing {
			s.ActiveTrips++
		}
		s.Expenses += num(t.DieselAmount)
	}
	s.Expenses += otherExpenses(expenses)
	s.Profit = s.Revenue - s.Expenses
	return s
}

// DefaultTrendWindow is the number of months shown on the dashboard chart.
const DefaultTrendWindow = 6

// MonthPoint is one bucket of the monthly trend.
type MonthPoint struct {
	Key      string  `json:"key"`   // 2006-01
	Month    string  `json:"month"` // Jan 2006
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// MonthlyTrend buckets revenue and expenses by calendar month and returns the
// last window months that have activity, oldest first.
//
// Loads are bucketed by their loading date. Diesel and other expenses are bucketed
// by their trip's start date. Rows whose date cannot be resolved are dropped.
func MonthlyTrend(loads []models.Load, trips []models.Trip, expenses []models.Expense, window int) []MonthPoint {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	tripStart := make(map[string]time.Time, len(trips))
	for _, t := range trips {
		if !t.StartDate.IsZero() {
			tripStart[t.ID] = t.StartDate
		}
	}

	buckets := map[string]*MonthPoint{}
	bucket := func(at time.Time) *MonthPoint {
		key := at.UTC().Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthPoint{Key: key, Month: at.UTC().Format("Jan 2006")}
			buckets[key] = b
		}
		return b
	}

	for _, l := range loads {
		if l.LoadingDate == nil || l.LoadingDate.IsZero() {
			continue
		}
		bucket(*l.LoadingDate).Revenue += num(l.FreightAmount)
	}
	for _, t := range trips {
		if t.StartDate.IsZero() || num(t.DieselAmount) == 0 {
			continue
		}
		bucket(t.StartDate).Expenses += num(t.DieselAmount)
	}
	for _, e := range expenses {
		if e.IsDiesel() {
			continue
		}
		start, ok := tripStart[e.TripID]
		if !ok {
			continue
		}
		bucket(start).Expenses += num(e.Amount)
	}

	points := make([]MonthPoint, 0, len(buckets))
	for _, b := range buckets {
		b.Profit = b.Revenue - b.Expenses
		points = append(points, *b)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
	if len(points) > window {
		points = points[len(points)-window:]
	}
	return points
}

// CategoryTotal is one slice of the expense distribution.
type CategoryTotal struct {
	Category models.ExpenseCategory `json:"category"`
	Label    string                 `json:"label"`
	Total    float64                `json:"total"`
}

// ExpenseDistribution totals expenses per category, largest first.
// Diesel comes from the trips; every other category from expense rows.
func ExpenseDistribution(trips []models.Trip, expenses []models.Expense) []CategoryTotal {
	totals := map[models.ExpenseCategory]float64{}
	for _, t := range trips {
		totals[models.CategoryDiesel] += num(t.DieselAmount)
	}
	for _, e := range expenses {
		if e.IsDiesel() {
			continue
		}
		totals[models.NormalizeCategory(e.Category)] += num(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		if total == 0 {
			continue
		}
		out = append(out, CategoryTotal{Category: category, Label: category.Label(), Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Salary returns the driver salary for a trip. With a positive percentage p it is
// round(totalFreight / p), halves rounded up; otherwise the manual amount is used.
func Salary(totalFreight, percentage, manual float64) float64 {
	if percentage > 0 {
		return math.Floor(totalFreight/percentage + 0.5)
	}
	return manual
}

func otherExpenses(expenses []models.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		if e.IsDiesel() {
			continue
		}
		sum += num(e.Amount)
	}
	return sum
}

// num treats NaN and infinities as missing.
func num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
