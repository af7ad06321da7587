package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/models"
)

// MockTruckCollection is a mock implementation of TruckCollection
type MockTruckCollection struct {
	mock.Mock
}

func (m *MockTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) error {
	return m.Called(ctx, truck).Error(0)
}

func (m *MockTruckCollection) InsertTrucks(ctx context.Context, trucks []models.Truck) error {
	return m.Called(ctx, trucks).Error(0)
}

func (m *MockTruckCollection) FindTrucks(ctx context.Context) ([]models.Truck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTruckByNumber(ctx context.Context, truckNo string) (*models.Truck, error) {
	args := m.Called(ctx, truckNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) UpdateTruck(ctx context.Context, id string, truck models.Truck) error {
	return m.Called(ctx, id, truck).Error(0)
}

func (m *MockTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockDriverCollection is a mock implementation of DriverCollection
type MockDriverCollection struct {
	mock.Mock
}

func (m *MockDriverCollection) InsertDriver(ctx context.Context, driver models.Driver) error {
	return m.Called(ctx, driver).Error(0)
}

func (m *MockDriverCollection) FindDrivers(ctx context.Context) ([]models.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Driver), args.Error(1)
}

func (m *MockDriverCollection) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverCollection) UpdateDriver(ctx context.Context, id string, driver models.Driver) error {
	return m.Called(ctx, id, driver).Error(0)
}

func (m *MockDriverCollection) DeleteDriver(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockTripCollection is a mock implementation of TripCollection
type MockTripCollection struct {
	mock.Mock
}

func (m *MockTripCollection) InsertTrip(ctx context.Context, trip models.Trip) error {
	return m.Called(ctx, trip).Error(0)
}

func (m *MockTripCollection) FindTrips(ctx context.Context) ([]models.Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripCollection) FindTripsForTruck(ctx context.Context, truckID string) ([]models.Trip, error) {
	args := m.Called(ctx, truckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) FindRecentTrips(ctx context.Context, limit int64) ([]models.Trip, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripCollection) UpdateTrip(ctx context.Context, id string, trip models.Trip) error {
	return m.Called(ctx, id, trip).Error(0)
}

func (m *MockTripCollection) DeleteTrip(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockLoadCollection is a mock implementation of LoadCollection
type MockLoadCollection struct {
	mock.Mock
}

func (m *MockLoadCollection) InsertLoad(ctx context.Context, load models.Load) error {
	return m.Called(ctx, load).Error(0)
}

func (m *MockLoadCollection) FindLoads(ctx context.Context) ([]models.Load, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Load), args.Error(1)
}

func (m *MockLoadCollection) FindLoadsForTrip(ctx context.Context, tripID string) ([]models.Load, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Load), args.Error(1)
}

func (m *MockLoadCollection) FindLoadByID(ctx context.Context, id string) (*models.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Load), args.Error(1)
}

func (m *MockLoadCollection) FindPendingLoads(ctx context.Context) ([]models.Load, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Load), args.Error(1)
}

func (m *MockLoadCollection) UpdateLoad(ctx context.Context, id string, load models.Load) error {
	return m.Called(ctx, id, load).Error(0)
}

func (m *MockLoadCollection) DeleteLoad(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLoadCollection) DeleteLoadsForTrip(ctx context.Context, tripID string) error {
	return m.Called(ctx, tripID).Error(0)
}

// MockTyreCollection is a mock implementation of TyreCollection
type MockTyreCollection struct {
	mock.Mock
}

func (m *MockTyreCollection) InsertTyre(ctx context.Context, tyre models.Tyre) error {
	return m.Called(ctx, tyre).Error(0)
}

func (m *MockTyreCollection) FindTyres(ctx context.Context, filter db.TyreFilter) ([]models.Tyre, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tyre), args.Error(1)
}

func (m *MockTyreCollection) FindTyreByID(ctx context.Context, id string) (*models.Tyre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tyre), args.Error(1)
}

func (m *MockTyreCollection) UpdateTyre(ctx context.Context, id string, tyre models.Tyre) error {
	return m.Called(ctx, id, tyre).Error(0)
}

func (m *MockTyreCollection) DeleteTyre(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
