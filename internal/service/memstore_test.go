package service

import (
	"context"
	"sort"
	"sync"

	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/models"
)

// memStore is an in-memory record store for service tests.
type memStore struct {
	mu       sync.Mutex
	trucks   map[string]models.Truck
	drivers  map[string]models.Driver
	trips    map[string]models.Trip
	loads    map[string]models.Load
	couriers map[string]models.CourierDetails
	expenses map[string]models.Expense
	tyres    map[string]models.Tyre

	failWith error // returned by every read when set
}

func newMemStore() *memStore {
	return &memStore{
		trucks:   map[string]models.Truck{},
		drivers:  map[string]models.Driver{},
		trips:    map[string]models.Trip{},
		loads:    map[string]models.Load{},
		couriers: map[string]models.CourierDetails{},
		expenses: map[string]models.Expense{},
		tyres:    map[string]models.Tyre{},
	}
}

func (m *memStore) stores() Stores {
	return Stores{
		Trucks:   memTrucks{m},
		Drivers:  memDrivers{m},
		Trips:    memTrips{m},
		Loads:    memLoads{m},
		Couriers: memCouriers{m},
		Expenses: memExpenses{m},
		Tyres:    memTyres{m},
	}
}

func values[T any](in map[string]T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, v)
	}
	return out
}

type memTrucks struct{ m *memStore }

func (c memTrucks) InsertTruck(_ context.Context, t models.Truck) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for _, other := range c.m.trucks {
		if other.TruckNo == t.TruckNo {
			return db.ErrDuplicate
		}
	}
	c.m.trucks[t.ID] = t
	return nil
}

func (c memTrucks) InsertTrucks(ctx context.Context, trucks []models.Truck) error {
	for _, t := range trucks {
		if err := c.InsertTruck(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (c memTrucks) FindTrucks(context.Context) ([]models.Truck, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.m.failWith != nil {
		return nil, c.m.failWith
	}
	out := values(c.m.trucks)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (c memTrucks) FindTruckByID(_ context.Context, id string) (*models.Truck, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.m.failWith != nil {
		return nil, c.m.failWith
	}
	t, ok := c.m.trucks[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &t, nil
}

func (c memTrucks) FindTruckByNumber(_ context.Context, no string) (*models.Truck, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for _, t := range c.m.trucks {
		if t.TruckNo == no {
			return &t, nil
		}
	}
	return nil, db.ErrNotFound
}

func (c memTrucks) UpdateTruck(_ context.Context, id string, t models.Truck) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.trucks[id]; !ok {
		return db.ErrNotFound
	}
	t.ID = id
	c.m.trucks[id] = t
	return nil
}

func (c memTrucks) DeleteTruck(_ context.Context, id string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.trucks[id]; !ok {
		return db.ErrNotFound
	}
	delete(c.m.trucks, id)
	return nil
}

type memDrivers struct{ m *memStore }

func (c memDrivers) InsertDriver(_ context.Context, d models.Driver) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.drivers[d.ID] = d
	return nil
}

func (c memDrivers) FindDrivers(context.Context) ([]models.Driver, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	out := values(c.m.drivers)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c memDrivers) FindDriverByID(_ context.Context, id string) (*models.Driver, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	d, ok := c.m.drivers[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &d, nil
}

func (c memDrivers) UpdateDriver(_ context.Context, id string, d models.Driver) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.drivers[id]; !ok {
		return db.ErrNotFound
	}
	c.m.drivers[id] = d
	return nil
}

func (c memDrivers) DeleteDriver(_ context.Context, id string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.drivers[id]; !ok {
		return db.ErrNotFound
	}
	delete(c.m.drivers, id)
	return nil
}

type memTrips struct{ m *memStore }

func (c memTrips) InsertTrip(_ context.Context, t models.Trip) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.trips[t.ID] = t
	return nil
}

func (c memTrips) FindTrips(context.Context) ([]models.Trip, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	out := values(c.m.trips)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (c memTrips) FindTripsForTruck(_ context.Context, truckID string) ([]models.Trip, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.m.failWith != nil {
		return nil, c.m.failWith
	}
	var out []models.Trip
	for _, t := range c.m.trips {
		if t.TruckID == truckID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (c memTrips) FindTripByID(_ context.Context, id string) (*models.Trip, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	t, ok := c.m.trips[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &t, nil
}

func (c memTrips) FindRecentTrips(_ context.Context, limit int64) ([]models.Trip, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	out := values(c.m.trips)
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c memTrips) UpdateTrip(_ context.Context, id string, t models.Trip) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.trips[id]; !ok {
		return db.ErrNotFound
	}
	c.m.trips[id] = t
	return nil
}

func (c memTrips) DeleteTrip(_ context.Context, id string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.trips[id]; !ok {
		return db.ErrNotFound
	}
	delete(c.m.trips, id)
	return nil
}

type memLoads struct{ m *memStore }

func (c memLoads) InsertLoad(_ context.Context, l models.Load) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	l.Courier = nil
	c.m.loads[l.ID] = l
	return nil
}

func (c memLoads) FindLoads(context.Context) ([]models.Load, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return values(c.m.loads), nil
}

func (c memLoads) FindLoadsForTrip(_ context.Context, tripID string) ([]models.Load, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var out []models.Load
	for _, l := range c.m.loads {
		if l.TripID == tripID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memLoads) FindLoadByID(_ context.Context, id string) (*models.Load, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	l, ok := c.m.loads[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &l, nil
}

func (c memLoads) FindPendingLoads(context.Context) ([]models.Load, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var out []models.Load
	for _, l := range c.m.loads {
		if l.BalanceAmount > 0 {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memLoads) UpdateLoad(_ context.Context, id string, l models.Load) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.loads[id]; !ok {
		return db.ErrNotFound
	}
	l.Courier = nil
	c.m.loads[id] = l
	return nil
}

func (c memLoads) DeleteLoad(_ context.Context, id string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.loads[id]; !ok {
		return db.ErrNotFound
	}
	delete(c.m.loads, id)
	return nil
}

func (c memLoads) DeleteLoadsForTrip(_ context.Context, tripID string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for id, l := range c.m.loads {
		if l.TripID == tripID {
			delete(c.m.loads, id)
		}
	}
	return nil
}

type memCouriers struct{ m *memStore }

func (c memCouriers) InsertCourier(_ context.Context, cd models.CourierDetails) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for _, other := range c.m.couriers {
		if other.LoadID == cd.LoadID {
			return db.ErrDuplicate
		}
	}
	c.m.couriers[cd.ID] = cd
	return nil
}

func (c memCouriers) FindCouriers(context.Context) ([]models.CourierDetails, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	out := values(c.m.couriers)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memCouriers) FindCourierByLoad(_ context.Context, loadID string) (*models.CourierDetails, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for _, cd := range c.m.couriers {
		if cd.LoadID == loadID {
			return &cd, nil
		}
	}
	return nil, db.ErrNotFound
}

func (c memCouriers) UpdateCourier(_ context.Context, id string, cd models.CourierDetails) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.couriers[id]; !ok {
		return db.ErrNotFound
	}
	c.m.couriers[id] = cd
	return nil
}

func (c memCouriers) DeleteCourier(_ context.Context, id string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.couriers[id]; !ok {
		return db.ErrNotFound
	}
	delete(c.m.couriers, id)
	return nil
}

func (c memCouriers) DeleteCouriersForLoads(_ context.Context, loadIDs []string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range loadIDs {
		drop[id] = true
	}
	for id, cd := range c.m.couriers {
		if drop[cd.LoadID] {
			delete(c.m.couriers, id)
		}
	}
	return nil
}

type memExpenses struct{ m *memStore }

func (c memExpenses) InsertExpense(_ context.Context, e models.Expense) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.expenses[e.ID] = e
	return nil
}

func (c memExpenses) InsertExpenses(ctx context.Context, expenses []models.Expense) error {
	for _, e := range expenses {
		_ = c.InsertExpense(ctx, e)
	}
	return nil
}

func (c memExpenses) FindExpenses(context.Context) ([]models.Expense, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return values(c.m.expenses), nil
}

func (c memExpenses) FindExpensesForTrip(_ context.Context, tripID string) ([]models.Expense, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var out []models.Expense
	for _, e := range c.m.expenses {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memExpenses) FindExpenseByID(_ context.Context, id string) (*models.Expense, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	e, ok := c.m.expenses[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &e, nil
}

func (c memExpenses) UpdateExpense(_ context.Context, id string, e models.Expense) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.expenses[id]; !ok {
		return db.ErrNotFound
	}
	c.m.expenses[id] = e
	return nil
}

func (c memExpenses) DeleteExpense(_ context.Context, id string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.expenses[id]; !ok {
		return db.ErrNotFound
	}
	delete(c.m.expenses, id)
	return nil
}

func (c memExpenses) DeleteExpensesForTrip(_ context.Context, tripID string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for id, e := range c.m.expenses {
		if e.TripID == tripID {
			delete(c.m.expenses, id)
		}
	}
	return nil
}

type memTyres struct{ m *memStore }

func (c memTyres) InsertTyre(_ context.Context, t models.Tyre) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.tyres[t.ID] = t
	return nil
}

func (c memTyres) FindTyres(_ context.Context, f db.TyreFilter) ([]models.Tyre, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var out []models.Tyre
	for _, t := range c.m.tyres {
		if f.TruckID != "" && t.TruckID != f.TruckID {
			continue
		}
		if f.FitmentFrom != nil && (t.FitmentDate == nil || t.FitmentDate.Before(*f.FitmentFrom)) {
			continue
		}
		if f.FitmentTo != nil && (t.FitmentDate == nil || t.FitmentDate.After(*f.FitmentTo)) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memTyres) FindTyreByID(_ context.Context, id string) (*models.Tyre, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	t, ok := c.m.tyres[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &t, nil
}

func (c memTyres) UpdateTyre(_ context.Context, id string, t models.Tyre) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.tyres[id]; !ok {
		return db.ErrNotFound
	}
	c.m.tyres[id] = t
	return nil
}

func (c memTyres) DeleteTyre(_ context.Context, id string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.tyres[id]; !ok {
		return db.ErrNotFound
	}
	delete(c.m.tyres, id)
	return nil
}

// recordingPublisher keeps every published event name.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}
