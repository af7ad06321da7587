package service

import (
	"context"

	"github.com/ukydev/tripsheet/internal/ledger"
)

// Dashboard holds the fleet-wide figures shown on the home page.
type Dashboard struct {
	Summary             ledger.Summary         `json:"summary"`
	MonthlyTrend        []ledger.MonthPoint    `json:"monthly_trend"`
	ExpenseDistribution []ledger.CategoryTotal `json:"expense_distribution"`
}

// Dashboard reads every load, trip and expense and aggregates them.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	loads, err := s.store.Loads.FindLoads(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Loads")
	}
	all, err := s.store.Trips.FindTrips(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Trips")
	}
	expenses, err := s.store.Expenses.FindExpenses(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Expenses")
	}

	return &Dashboard{
		Summary:             ledger.FleetSummary(loads, all, expenses),
		MonthlyTrend:        ledger.MonthlyTrend(loads, all, expenses, ledger.DefaultTrendWindow),
		ExpenseDistribution: ledger.ExpenseDistribution(all, expenses),
	}, nil
}
