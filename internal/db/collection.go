package db

import (
	"context"
	"errors"
	"time"

	"github.com/ukydev/tripsheet/internal/models"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// TruckCollection defines the interface for truck data operations.
type TruckCollection interface {
	InsertTruck(ctx context.Context, truck models.Truck) error
	InsertTrucks(ctx context.Context, trucks []models.Truck) error
	FindTrucks(ctx context.Context) ([]models.Truck, error)
	FindTruckByID(ctx context.Context, id string) (*models.Truck, error)
	FindTruckByNumber(ctx context.Context, truckNo string) (*models.Truck, error)
	UpdateTruck(ctx context.Context, id string, truck models.Truck) error
	DeleteTruck(ctx context.Context, id string) error
}

// DriverCollection defines the interface for driver data operations.
type DriverCollection interface {
	InsertDriver(ctx context.Context, driver models.Driver) error
	FindDrivers(ctx context.Context) ([]models.Driver, error)
	FindDriverByID(ctx context.Context, id string) (*models.Driver, error)
	UpdateDriver(ctx context.Context, id string, driver models.Driver) error
	DeleteDriver(ctx context.Context, id string) error
}

// TripCollection defines the interface for trip data operations.
type TripCollection interface {
	InsertTrip(ctx context.Context, trip models.Trip) error
	FindTrips(ctx context.Context) ([]models.Trip, error)
	// FindTripsForTruck returns the truck's trips ordered by start date.
	FindTripsForTruck(ctx context.Context, truckID string) ([]models.Trip, error)
	FindTripByID(ctx context.Context, id string) (*models.Trip, error)
	FindRecentTrips(ctx context.Context, limit int64) ([]models.Trip, error)
	UpdateTrip(ctx context.Context, id string, trip models.Trip) error
	DeleteTrip(ctx context.Context, id string) error
}

// LoadCollection defines the interface for load data operations.
type LoadCollection interface {
	InsertLoad(ctx context.Context, load models.Load) error
	FindLoads(ctx context.Context) ([]models.Load, error)
	FindLoadsForTrip(ctx context.Context, tripID string) ([]models.Load, error)
	FindLoadByID(ctx context.Context, id string) (*models.Load, error)
	// FindPendingLoads returns loads with an outstanding balance, newest loading date first.
	FindPendingLoads(ctx context.Context) ([]models.Load, error)
	UpdateLoad(ctx context.Context, id string, load models.Load) error
	DeleteLoad(ctx context.Context, id string) error
	DeleteLoadsForTrip(ctx context.Context, tripID string) error
}

// CourierCollection defines the interface for courier detail operations.
type CourierCollection interface {
	InsertCourier(ctx context.Context, courier models.CourierDetails) error
	FindCouriers(ctx context.Context) ([]models.CourierDetails, error)
	// FindCourierByLoad returns ErrNotFound when the load has no courier details yet.
	FindCourierByLoad(ctx context.Context, loadID string) (*models.CourierDetails, error)
	UpdateCourier(ctx context.Context, id string, courier models.CourierDetails) error
	DeleteCourier(ctx context.Context, id string) error
	DeleteCouriersForLoads(ctx context.Context, loadIDs []string) error
}

// ExpenseCollection defines the interface for expense data operations.
type ExpenseCollection interface {
	InsertExpense(ctx context.Context, expense models.Expense) error
	InsertExpenses(ctx context.Context, expenses []models.Expense) error
	FindExpenses(ctx context.Context) ([]models.Expense, error)
	FindExpensesForTrip(ctx context.Context, tripID string) ([]models.Expense, error)
	FindExpenseByID(ctx context.Context, id string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id string, expense models.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	DeleteExpensesForTrip(ctx context.Context, tripID string) error
}

// TyreFilter narrows a tyre listing. Zero values match everything.
type TyreFilter struct {
	TruckID     string
	FitmentFrom *time.Time
	FitmentTo   *time.Time
}

// TyreCollection defines the interface for tyre data operations.
type TyreCollection interface {
	InsertTyre(ctx context.Context, tyre models.Tyre) error
	FindTyres(ctx context.Context, filter TyreFilter) ([]models.Tyre, error)
	FindTyreByID(ctx context.Context, id string) (*models.Tyre, error)
	UpdateTyre(ctx context.Context, id string, tyre models.Tyre) error
	DeleteTyre(ctx context.Context, id string) error
}
