package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/events"
	"github.com/ukydev/tripsheet/internal/models"
)

// CourierInput is the writable part of courier details.
type CourierInput struct {
	ReceivedDate *string `json:"received_date" validate:"omitempty,date"`
	Vendor       string  `json:"vendor"`
	DeliveryDate *string `json:"delivery_date" validate:"omitempty,date"`
}

// CourierEntry is courier details joined with the load and trip they belong to.
type CourierEntry struct {
	models.CourierDetails
	Load          *models.Load `json:"load,omitempty"`
	TruckNo       string       `json:"truck_no,omitempty"`
	TripStartDate *time.Time   `json:"trip_start_date,omitempty"`
}

// UpsertCourier creates the load's courier details on first use and updates them afterwards.
func (s *Service) UpsertCourier(ctx context.Context, loadID string, in CourierInput) (*models.CourierDetails, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if _, err := s.findLoad(ctx, loadID); err != nil {
		return nil, err
	}
	received, err := parseOptionalDate("received_date", in.ReceivedDate)
	if err != nil {
		return nil, err
	}
	delivered, err := parseOptionalDate("delivery_date", in.DeliveryDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.Couriers.FindCourierByLoad(ctx, loadID)
	switch {
	case errors.Is(err, db.ErrNotFound):
		courier := models.CourierDetails{
			ID:           s.newID(),
			LoadID:       loadID,
			ReceivedDate: received,
			Vendor:       strings.TrimSpace(in.Vendor),
			DeliveryDate: delivered,
			CreatedAt:    s.now(),
		}
		if err := s.store.Couriers.InsertCourier(ctx, courier); err != nil {
			return nil, storeErr(err, "insert", "Courier details")
		}
		s.publish(ctx, events.CourierSaved, courier)
		return &courier, nil
	case err != nil:
		return nil, storeErr(err, "find", "Courier details")
	}

	existing.ReceivedDate = received
	existing.Vendor = strings.TrimSpace(in.Vendor)
	existing.DeliveryDate = delivered
	if err := s.store.Couriers.UpdateCourier(ctx, existing.ID, *existing); err != nil {
		return nil, storeErr(err, "update", "Courier details")
	}
	s.publish(ctx, events.CourierSaved, existing)
	return existing, nil
}

// GetCourier returns the courier details of a load, or NotFound when none were recorded.
func (s *Service) GetCourier(ctx context.Context, loadID string) (*models.CourierDetails, error) {
	courier, err := s.store.Couriers.FindCourierByLoad(ctx, loadID)
	if err != nil {
		return nil, storeErr(err, "find", "Courier details")
	}
	return courier, nil
}

// ListCouriers returns every courier entry, newest first, with its load and trip.
func (s *Service) ListCouriers(ctx context.Context) ([]CourierEntry, error) {
	couriers, err := s.store.Couriers.FindCouriers(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Courier details")
	}
	loadCache := map[string]*models.Load{}
	tripCache := map[string]*models.Trip{}
	truckCache := map[string]*models.Truck{}

	out := make([]CourierEntry, 0, len(couriers))
	for _, c := range couriers {
		entry := CourierEntry{CourierDetails: c}
		load, err := cached(ctx, loadCache, c.LoadID, s.store.Loads.FindLoadByID)
		if err != nil {
			return nil, storeErr(err, "find", "Load")
		}
		entry.Load = load
		if load != nil {
			trip, err := cached(ctx, tripCache, load.TripID, s.store.Trips.FindTripByID)
			if err != nil {
				return nil, storeErr(err, "find", "Trip")
			}
			if trip != nil {
				start := trip.StartDate
				entry.TripStartDate = &start
				truck, err := cached(ctx, truckCache, trip.TruckID, s.store.Trucks.FindTruckByID)
				if err != nil {
					return nil, storeErr(err, "find", "Truck")
				}
				if truck != nil {
					entry.TruckNo = truck.TruckNo
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// DeleteCourier removes courier details by id.
func (s *Service) DeleteCourier(ctx context.Context, id string) error {
	if err := s.store.Couriers.DeleteCourier(ctx, id); err != nil {
		return storeErr(err, "delete", "Courier details")
	}
	return nil
}
