package service

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/events"
	"github.com/ukydev/tripsheet/internal/ledger"
	"github.com/ukydev/tripsheet/internal/models"
)

// ExpenseInput is the writable part of an expense row.
type ExpenseInput struct {
	Category   models.ExpenseCategory `json:"category" validate:"required,category"`
	Title      string                 `json:"title"`
	Amount     float64                `json:"amount" validate:"gte=0"`
	Liters     *float64               `json:"liters" validate:"omitempty,gte=0"`
	Percentage *float64               `json:"percentage" validate:"omitempty,gte=0"`
}

func (in ExpenseInput) apply(e *models.Expense) error {
	category := models.NormalizeCategory(in.Category)
	if category == models.CategoryDiesel {
		return invalid("Diesel is recorded on the trip, not as an expense row")
	}
	e.Category = category
	e.Title = strings.TrimSpace(in.Title)
	e.Amount = in.Amount
	e.Liters = in.Liters
	e.Percentage = in.Percentage
	return nil
}

// ListExpenses returns a trip's expenses in booking order.
func (s *Service) ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	if _, err := s.findTrip(ctx, tripID); err != nil {
		return nil, err
	}
	expenses, err := s.store.Expenses.FindExpensesForTrip(ctx, tripID)
	if err != nil {
		return nil, storeErr(err, "list", "Expenses")
	}
	return expenses, nil
}

// CreateExpense books one expense against a trip.
func (s *Service) CreateExpense(ctx context.Context, tripID string, in ExpenseInput) (*models.Expense, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if _, err := s.findTrip(ctx, tripID); err != nil {
		return nil, err
	}
	expense := models.Expense{ID: s.newID(), TripID: tripID, CreatedAt: s.now()}
	if err := in.apply(&expense); err != nil {
		return nil, err
	}
	if err := s.store.Expenses.InsertExpense(ctx, expense); err != nil {
		return nil, storeErr(err, "insert", "Expense")
	}
	return &expense, nil
}

// UpdateExpense replaces an expense's fields.
func (s *Service) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (*models.Expense, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	expense, err := s.store.Expenses.FindExpenseByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find", "Expense")
	}
	if err := in.apply(expense); err != nil {
		return nil, err
	}
	if err := s.store.Expenses.UpdateExpense(ctx, id, *expense); err != nil {
		return nil, storeErr(err, "update", "Expense")
	}
	return expense, nil
}

// DeleteExpense removes one expense.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.Expenses.DeleteExpense(ctx, id); err != nil {
		return storeErr(err, "delete", "Expense")
	}
	return nil
}

// TitledAmount is a free-form billing or other expense line.
type TitledAmount struct {
	Title  string  `json:"title"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

// ExpenseSheet is the full expense form of a trip.
type ExpenseSheet struct {
	DieselLiters     float64        `json:"diesel_liters" validate:"gte=0"`
	DieselAmount     float64        `json:"diesel_amount" validate:"gte=0"`
	AdBlueLiters     float64        `json:"adblue_liters" validate:"gte=0"`
	AdBlueAmount     float64        `json:"adblue_amount" validate:"gte=0"`
	SalaryPercentage float64        `json:"salary_percentage" validate:"gte=0"`
	SalaryAmount     float64        `json:"salary_amount" validate:"gte=0"` // used when no percentage is given
	LoadingAmount    float64        `json:"loading_amount" validate:"gte=0"`
	UnloadingAmount  float64        `json:"unloading_amount" validate:"gte=0"`
	RTOAmount        float64        `json:"rto_amount" validate:"gte=0"`
	FastagAmount     float64        `json:"fastag_amount" validate:"gte=0"`
	Billing          []TitledAmount `json:"billing" validate:"dive"`
	Other            []TitledAmount `json:"other" validate:"dive"`
}

// SaveExpenseSheet replaces every expense of a trip with the rows described by sheet.
// Diesel goes to the trip's own fields. Salary is computed from the trip's freight
// when a percentage is given.
func (s *Service) SaveExpenseSheet(ctx context.Context, tripID string, sheet ExpenseSheet) (*TripDetail, error) {
	if err := checkInput(sheet); err != nil {
		return nil, err
	}
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	loads, err := s.store.Loads.FindLoadsForTrip(ctx, tripID)
	if err != nil {
		return nil, storeErr(err, "list", "Loads")
	}
	freight := ledger.Totals(*trip, loads, nil).TotalFreight
	rows := s.sheetRows(tripID, sheet, freight)

	trip.DieselLiters = sheet.DieselLiters
	trip.DieselAmount = sheet.DieselAmount
	trip.UpdatedAt = s.now()
	if err := s.store.Trips.UpdateTrip(ctx, tripID, *trip); err != nil {
		return nil, storeErr(err, "update", "Trip")
	}
	if err := s.store.Expenses.DeleteExpensesForTrip(ctx, tripID); err != nil {
		return nil, storeErr(err, "delete", "Expenses")
	}
	if err := s.store.Expenses.InsertExpenses(ctx, rows); err != nil {
		return nil, storeErr(err, "insert", "Expenses")
	}

	log.WithFields(log.Fields{"trip_id": tripID, "rows": len(rows)}).Info("expense sheet saved")
	s.publish(ctx, events.ExpensesSaved, map[string]interface{}{"trip_id": tripID, "rows": len(rows)})
	return s.GetTrip(ctx, tripID)
}

func (s *Service) sheetRows(tripID string, sheet ExpenseSheet, freight float64) []models.Expense {
	now := s.now()
	rows := []models.Expense{}
	add := func(category models.ExpenseCategory, title string, amount float64, liters, pct *float64) {
		rows = append(rows, models.Expense{
			ID:         s.newID(),
			TripID:     tripID,
			Category:   category,
			Title:      title,
			Amount:     amount,
			Liters:     liters,
			Percentage: pct,
			CreatedAt:  now,
		})
	}

	if sheet.AdBlueAmount > 0 || sheet.AdBlueLiters > 0 {
		liters := sheet.AdBlueLiters
		add(models.CategoryAdBlue, "", sheet.AdBlueAmount, &liters, nil)
	}
	if salary := ledger.Salary(freight, sheet.SalaryPercentage, sheet.SalaryAmount); salary > 0 {
		var pct *float64
		if sheet.SalaryPercentage > 0 {
			p := sheet.SalaryPercentage
			pct = &p
		}
		add(models.CategorySalary, "", salary, nil, pct)
	}
	for _, fixed := range []struct {
		category models.ExpenseCategory
		amount   float64
	}{
		{models.CategoryLoading, sheet.LoadingAmount},
		{models.CategoryUnloading, sheet.UnloadingAmount},
		{models.CategoryRTO, sheet.RTOAmount},
		{models.CategoryFastag, sheet.FastagAmount},
	} {
		if fixed.amount > 0 {
			add(fixed.category, "", fixed.amount, nil, nil)
		}
	}
	for _, item := range sheet.Billing {
		if title := strings.TrimSpace(item.Title); title != "" && item.Amount > 0 {
			add(models.CategoryBilling, title, item.Amount, nil, nil)
		}
	}
	for _, item := range sheet.Other {
		if title := strings.TrimSpace(item.Title); title != "" && item.Amount > 0 {
			add(models.CategoryOther, title, item.Amount, nil, nil)
		}
	}
	return rows
}
