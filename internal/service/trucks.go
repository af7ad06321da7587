package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/models"
)

// TruckInput is the writable part of a truck.
type TruckInput struct {
	TruckNo         string  `json:"truck_no" validate:"required"`
	FCExpiry        *string `json:"fc_expiry" validate:"omitempty,date"`
	InsuranceExpiry *string `json:"insurance_expiry" validate:"omitempty,date"`
	NPExpiry        *string `json:"np_expiry" validate:"omitempty,date"`
}

func (in TruckInput) apply(t *models.Truck) error {
	var err error
	t.TruckNo = strings.TrimSpace(in.TruckNo)
	if t.FCExpiry, err = parseOptionalDate("fc_expiry", in.FCExpiry); err != nil {
		return err
	}
	if t.InsuranceExpiry, err = parseOptionalDate("insurance_expiry", in.InsuranceExpiry); err != nil {
		return err
	}
	if t.NPExpiry, err = parseOptionalDate("np_expiry", in.NPExpiry); err != nil {
		return err
	}
	return nil
}

// ListTrucks returns every truck, newest first.
func (s *Service) ListTrucks(ctx context.Context) ([]models.Truck, error) {
	trucks, err := s.store.Trucks.FindTrucks(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Trucks")
	}
	return trucks, nil
}

// GetTruck returns one truck.
func (s *Service) GetTruck(ctx context.Context, id string) (*models.Truck, error) {
	truck, err := s.store.Trucks.FindTruckByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find", "Truck")
	}
	return truck, nil
}

// CreateTruck registers a truck. Truck numbers are unique.
func (s *Service) CreateTruck(ctx context.Context, in TruckInput) (*models.Truck, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	truck := models.Truck{ID: s.newID(), CreatedAt: s.now()}
	if err := in.apply(&truck); err != nil {
		return nil, err
	}
	if err := s.ensureTruckNoFree(ctx, truck.TruckNo, ""); err != nil {
		return nil, err
	}
	if err := s.store.Trucks.InsertTruck(ctx, truck); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, conflict("Truck %s already exists", truck.TruckNo)
		}
		return nil, storeErr(err, "insert", "Truck")
	}
	return &truck, nil
}

// CreateTrucks registers several trucks at once. Either all are stored or none.
func (s *Service) CreateTrucks(ctx context.Context, inputs []TruckInput) ([]models.Truck, error) {
	if len(inputs) == 0 {
		return nil, invalid("At least one truck is required")
	}
	seen := make(map[string]bool, len(inputs))
	trucks := make([]models.Truck, 0, len(inputs))
	for _, in := range inputs {
		if err := checkInput(in); err != nil {
			return nil, err
		}
		truck := models.Truck{ID: s.newID(), CreatedAt: s.now()}
		if err := in.apply(&truck); err != nil {
			return nil, err
		}
		if seen[truck.TruckNo] {
			return nil, invalid("Truck %s appears more than once", truck.TruckNo)
		}
		seen[truck.TruckNo] = true
		if err := s.ensureTruckNoFree(ctx, truck.TruckNo, ""); err != nil {
			return nil, err
		}
		trucks = append(trucks, truck)
	}
	if err := s.store.Trucks.InsertTrucks(ctx, trucks); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, conflict("One of the trucks already exists")
		}
		return nil, storeErr(err, "insert", "Trucks")
	}
	return trucks, nil
}

// UpdateTruck replaces the writable fields of a truck.
func (s *Service) UpdateTruck(ctx context.Context, id string, in TruckInput) (*models.Truck, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	truck, err := s.GetTruck(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(truck); err != nil {
		return nil, err
	}
	if err := s.ensureTruckNoFree(ctx, truck.TruckNo, id); err != nil {
		return nil, err
	}
	if err := s.store.Trucks.UpdateTruck(ctx, id, *truck); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, conflict("Truck %s already exists", truck.TruckNo)
		}
		return nil, storeErr(err, "update", "Truck")
	}
	return truck, nil
}

// DeleteTruck removes a truck that no trip references.
func (s *Service) DeleteTruck(ctx context.Context, id string) error {
	if _, err := s.GetTruck(ctx, id); err != nil {
		return err
	}
	existing, err := s.store.Trips.FindTripsForTruck(ctx, id)
	if err != nil {
		return storeErr(err, "find", "Trips")
	}
	if len(existing) > 0 {
		return conflict("Cannot delete a truck that has %d trip(s)", len(existing))
	}
	if err := s.store.Trucks.DeleteTruck(ctx, id); err != nil {
		return storeErr(err, "delete", "Truck")
	}
	return nil
}

// ExpiringDocuments lists compliance documents across the fleet that expire within the window,
// soonest first. Lapsed documents are included.
func (s *Service) ExpiringDocuments(ctx context.Context, within time.Duration) ([]models.ExpiringDocument, error) {
	trucks, err := s.ListTrucks(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	docs := []models.ExpiringDocument{}
	for i := range trucks {
		docs = append(docs, trucks[i].ExpiringDocuments(now, within)...)
	}
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Expiry.Before(docs[j].Expiry) })
	return docs, nil
}

func (s *Service) ensureTruckNoFree(ctx context.Context, truckNo, selfID string) error {
	other, err := s.store.Trucks.FindTruckByNumber(ctx, truckNo)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return nil
	case err != nil:
		return storeErr(err, "find", "Truck")
	case other.ID != selfID:
		log.WithField("truck_no", truckNo).Info("rejected duplicate truck number")
		return conflict("Truck %s already exists", truckNo)
	}
	return nil
}

// truckIndex maps truck ids to trucks.
func truckIndex(trucks []models.Truck) map[string]*models.Truck {
	idx := make(map[string]*models.Truck, len(trucks))
	for i := range trucks {
		idx[trucks[i].ID] = &trucks[i]
	}
	return idx
}
