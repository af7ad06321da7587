// Package service implements the trip sheet operations on top of the record store.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/events"
	"github.com/ukydev/tripsheet/internal/trips"
)

// Stores is the set of collections the service reads and writes.
type Stores struct {
	Trucks   db.TruckCollection
	Drivers  db.DriverCollection
	Trips    db.TripCollection
	Loads    db.LoadCollection
	Couriers db.CourierCollection
	Expenses db.ExpenseCollection
	Tyres    db.TyreCollection
}

// StoresFrom exposes a Mongo store through the collection interfaces.
func StoresFrom(store *db.Store) Stores {
	return Stores{
		Trucks:   store.Trucks,
		Drivers:  store.Drivers,
		Trips:    store.Trips,
		Loads:    store.Loads,
		Couriers: store.Couriers,
		Expenses: store.Expenses,
		Tyres:    store.Tyres,
	}
}

// Service runs every operation exposed over HTTP.
type Service struct {
	store     Stores
	validator *trips.Validator
	events    events.Publisher
	now       func() time.Time
	newID     func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the identifier generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New creates a Service. A nil publisher drops events.
func New(store Stores, publisher events.Publisher, opts ...Option) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	s := &Service{
		store:     store,
		validator: trips.NewValidator(store.Trips),
		events:    publisher,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish is best effort: a broker outage never fails the write that triggered it.
func (s *Service) publish(ctx context.Context, event string, data interface{}) {
	if err := s.events.Publish(ctx, event, data); err != nil {
		log.WithError(err).WithField("event", event).Warn("failed to publish event")
	}
}
