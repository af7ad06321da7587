package service

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/events"
	"github.com/ukydev/tripsheet/internal/ledger"
	"github.com/ukydev/tripsheet/internal/models"
)

// PendingPayment is a load with money still to collect, joined with its trip.
type PendingPayment struct {
	models.Load
	TruckNo       string     `json:"truck_no,omitempty"`
	DriverName    string     `json:"driver_name,omitempty"`
	TripStartDate *time.Time `json:"trip_start_date,omitempty"`
	TripEndDate   *time.Time `json:"trip_end_date,omitempty"`
	Priority      string     `json:"priority"`
}

// PendingSummary counts every pending load regardless of the priority filter.
type PendingSummary struct {
	Count        int     `json:"count"`
	TotalBalance float64 `json:"total_balance"`
	High         int     `json:"high"`
	Medium       int     `json:"medium"`
	Low          int     `json:"low"`
}

// PendingPayments is the payment status view.
type PendingPayments struct {
	Items   []PendingPayment `json:"items"`
	Summary PendingSummary   `json:"summary"`
}

// PendingPayments lists loads with an outstanding balance, newest loading date first.
// priority narrows the items to high, medium or low; empty or "all" keeps everything.
func (s *Service) PendingPayments(ctx context.Context, priority string) (*PendingPayments, error) {
	switch priority {
	case "", "all", ledger.PriorityHigh, ledger.PriorityMedium, ledger.PriorityLow:
	default:
		return nil, invalid("Unknown priority %q", priority)
	}

	loads, err := s.store.Loads.FindPendingLoads(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Pending loads")
	}
	ptrs := make([]*models.Load, len(loads))
	for i := range loads {
		ptrs[i] = &loads[i]
	}
	if err := s.attachCouriers(ctx, ptrs); err != nil {
		return nil, err
	}

	tripCache := map[string]*models.Trip{}
	truckCache := map[string]*models.Truck{}
	driverCache := map[string]*models.Driver{}

	out := &PendingPayments{Items: []PendingPayment{}}
	for _, load := range loads {
		if !ledger.IsPending(load) {
			continue
		}
		p := PendingPayment{Load: load, Priority: ledger.PaymentPriority(load.BalanceAmount)}

		trip, err := cached(ctx, tripCache, load.TripID, s.store.Trips.FindTripByID)
		if err != nil {
			return nil, storeErr(err, "find", "Trip")
		}
		if trip != nil {
			start := trip.StartDate
			p.TripStartDate = &start
			p.TripEndDate = trip.EndDate
			if truck, err := cached(ctx, truckCache, trip.TruckID, s.store.Trucks.FindTruckByID); err != nil {
				return nil, storeErr(err, "find", "Truck")
			} else if truck != nil {
				p.TruckNo = truck.TruckNo
			}
			if driver, err := cached(ctx, driverCache, trip.Driver1ID, s.store.Drivers.FindDriverByID); err != nil {
				return nil, storeErr(err, "find", "Driver")
			} else if driver != nil {
				p.DriverName = driver.Name
			}
		}

		out.Summary.Count++
		out.Summary.TotalBalance += load.BalanceAmount
		switch p.Priority {
		case ledger.PriorityHigh:
			out.Summary.High++
		case ledger.PriorityMedium:
			out.Summary.Medium++
		default:
			out.Summary.Low++
		}
		if priority == "" || priority == "all" || priority == p.Priority {
			out.Items = append(out.Items, p)
		}
	}
	return out, nil
}

// cached looks a record up once per id. Missing records are cached as nil.
func cached[T any](ctx context.Context, cache map[string]*T, id string, find func(context.Context, string) (*T, error)) (*T, error) {
	if id == "" {
		return nil, nil
	}
	if v, ok := cache[id]; ok {
		return v, nil
	}
	v, err := find(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		v, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	cache[id] = v
	return v, nil
}

// PaymentUpdate sets a load's pay term and advance.
type PaymentUpdate struct {
	PayTerm       models.PayTerm `json:"pay_term" validate:"required,payterm"`
	AdvanceAmount float64        `json:"advance_amount" validate:"gte=0"`
}

// UpdateLoadPayment applies a new pay term and advance, re-deriving the balance.
func (s *Service) UpdateLoadPayment(ctx context.Context, loadID string, in PaymentUpdate) (*models.Load, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	load, err := s.findLoad(ctx, loadID)
	if err != nil {
		return nil, err
	}
	load.PayTerm = in.PayTerm
	if err := ledger.SetAdvance(load, in.AdvanceAmount); err != nil {
		return nil, invalid("%s", err.Error())
	}
	if err := s.store.Loads.UpdateLoad(ctx, loadID, *load); err != nil {
		return nil, storeErr(err, "update", "Load")
	}
	s.publish(ctx, events.PaymentUpdated, load)
	return load, nil
}

// PaymentReceipt records money received against a load.
type PaymentReceipt struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

// RecordPayment deducts a received amount from a load's balance.
func (s *Service) RecordPayment(ctx context.Context, loadID string, in PaymentReceipt) (*models.Load, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	load, err := s.findLoad(ctx, loadID)
	if err != nil {
		return nil, err
	}
	before := load.BalanceAmount
	if err := ledger.RecordPayment(load, in.Amount); err != nil {
		return nil, invalid("%s", err.Error())
	}
	if err := s.store.Loads.UpdateLoad(ctx, loadID, *load); err != nil {
		return nil, storeErr(err, "update", "Load")
	}

	log.WithFields(log.Fields{
		"load_id":  loadID,
		"received": in.Amount,
		"balance":  load.BalanceAmount,
	}).Info("payment recorded")
	s.publish(ctx, events.PaymentRecorded, map[string]interface{}{
		"load_id":        loadID,
		"received":       in.Amount,
		"balance_before": before,
		"balance":        load.BalanceAmount,
	})
	return load, nil
}
