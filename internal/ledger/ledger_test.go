package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/tripsheet/internal/models"
)

func d(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dp(s string) *time.Time {
	t := d(s)
	return &t
}

func TestTotals(t *testing.T) {
	trip := models.Trip{ID: "trip-1", DieselAmount: 12000}
	loads := []models.Load{
		{FreightAmount: 40000, BalanceAmount: 15000},
		{FreightAmount: 25000},
		{FreightAmount: math.NaN()},
	}
	expenses := []models.Expense{
		{Category: models.CategorySalary, Amount: 4000},
		{Category: models.CategoryFastag, Amount: 1500},
		{Category: "Diesel", Amount: 12000}, // mirrored from the trip, not counted twice
	}

	got := Totals(trip, loads, expenses)
	assert.Equal(t, 65000.0, got.TotalFreight)
	assert.Equal(t, 17500.0, got.TotalExpenses)
	assert.Equal(t, 47500.0, got.NetProfit)
	assert.Equal(t, 15000.0, got.PendingBalance)
}

func TestTotals_Empty(t *testing.T) {
	assert.Equal(t, TripTotals{}, Totals(models.Trip{}, nil, nil))
}

func TestFleetSummary(t *testing.T) {
	loads := []models.Load{
		{FreightAmount: 50000, BalanceAmount: 20000},
		{FreightAmount: 30000, BalanceAmount: 0},
	}
	trips := []models.Trip{
		{Status: models.TripOngoing, DieselAmount: 10000},
		{Status: models.TripCompleted, DieselAmount: 8000},
		{Status: models.TripOngoing},
	}
	expenses := []models.Expense{
		{Category: models.CategoryLoading, Amount: 2000},
		{Category: models.CategoryDiesel, Amount: 9999},
	}

	s := FleetSummary(loads, trips, expenses)
	assert.Equal(t, Summary{
		Revenue:     80000,
		Pending:     20000,
		ActiveTrips: 2,
		Expenses:    20000,
		Profit:      60000,
	}, s)
}

func TestMonthlyTrend(t *testing.T) {
	trips := []models.Trip{
		{ID: "jan", StartDate: d("2024-01-20"), DieselAmount: 5000},
		{ID: "feb", StartDate: d("2024-02-03"), DieselAmount: 7000},
	}
	loads := []models.Load{
		{TripID: "jan", LoadingDate: dp("2024-01-21"), FreightAmount: 30000},
		{TripID: "jan", LoadingDate: dp("2024-02-01"), FreightAmount: 10000}, // crosses into Feb
		{TripID: "feb", LoadingDate: dp("2024-02-05"), FreightAmount: 20000},
		{TripID: "feb", FreightAmount: 99999}, // no loading date
	}
	expenses := []models.Expense{
		{TripID: "jan", Category: models.CategorySalary, Amount: 3000},
		{TripID: "feb", Category: models.CategoryDiesel, Amount: 7000},
		{TripID: "ghost", Category: models.CategoryOther, Amount: 500},
	}

	points := MonthlyTrend(loads, trips, expenses, 6)
	require.Len(t, points, 2)
	assert.Equal(t, MonthPoint{Key: "2024-01", Month: "Jan 2024", Revenue: 30000, Expenses: 8000, Profit: 22000}, points[0])
	assert.Equal(t, MonthPoint{Key: "2024-02", Month: "Feb 2024", Revenue: 30000, Expenses: 7000, Profit: 23000}, points[1])
}

func TestMonthlyTrend_KeepsLastWindow(t *testing.T) {
	var trips []models.Trip
	var loads []models.Load
	start := d("2023-05-01")
	for i := 0; i < 9; i++ {
		month := start.AddDate(0, i, 0)
		id := month.Format("2006-01")
		trips = append(trips, models.Trip{ID: id, StartDate: month})
		loads = append(loads, models.Load{TripID: id, LoadingDate: &month, FreightAmount: float64(1000 * (i + 1))})
	}

	points := MonthlyTrend(loads, trips, nil, 0)
	require.Len(t, points, DefaultTrendWindow)
	assert.Equal(t, "2023-08", points[0].Key)
	assert.Equal(t, "2024-01", points[5].Key)
	assert.Equal(t, 9000.0, points[5].Revenue)

	assert.Len(t, MonthlyTrend(loads, trips, nil, 3), 3)
	assert.Empty(t, MonthlyTrend(nil, nil, nil, 6))
}

func TestExpenseDistribution(t *testing.T) {
	trips := []models.Trip{{DieselAmount: 20000}, {DieselAmount: 5000}}
	expenses := []models.Expense{
		{Category: models.CategorySalary, Amount: 6000},
		{Category: "Salary", Amount: 1000},
		{Category: models.CategoryRTO, Amount: 9000},
		{Category: models.CategoryFastag, Amount: 0},
		{Category: models.CategoryDiesel, Amount: 4000},
	}

	got := ExpenseDistribution(trips, expenses)
	assert.Equal(t, []CategoryTotal{
		{Category: models.CategoryDiesel, Label: "Diesel", Total: 25000},
		{Category: models.CategoryRTO, Label: "RTO & PC", Total: 9000},
		{Category: models.CategorySalary, Label: "Salary", Total: 7000},
	}, got)
}

func TestExpenseDistribution_NoDiesel(t *testing.T) {
	got := ExpenseDistribution([]models.Trip{{}}, []models.Expense{{Category: models.CategoryOther, Amount: 10}})
	require.Len(t, got, 1)
	assert.Equal(t, models.CategoryOther, got[0].Category)
}

func TestSalary(t *testing.T) {
	assert.Equal(t, 6250.0, Salary(100000, 16, 0))
	assert.Equal(t, 6667.0, Salary(100000, 15, 0))
	assert.Equal(t, 3.0, Salary(5, 2, 0)) // 2.5 rounds up
	assert.Equal(t, 4500.0, Salary(100000, 0, 4500))
	assert.Equal(t, 0.0, Salary(0, 16, 4500))
}
