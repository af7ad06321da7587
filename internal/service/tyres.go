package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/models"
)

// TyreInput is the writable part of a tyre record.
type TyreInput struct {
	TruckID     string  `json:"truck_id" validate:"required"`
	Make        string  `json:"make"`
	Price       float64 `json:"price" validate:"gte=0"`
	FitmentDate *string `json:"fitment_date" validate:"omitempty,date"`
	FittingKM   float64 `json:"fitting_km" validate:"gte=0"`
	RemovalDate *string `json:"removal_date" validate:"omitempty,date"`
	RemovalKM   float64 `json:"removal_km" validate:"gte=0"`
	Remarks     string  `json:"remarks"`
}

func (in TyreInput) apply(t *models.Tyre) error {
	var err error
	t.TruckID = in.TruckID
	t.Make = strings.TrimSpace(in.Make)
	t.Price = in.Price
	if t.FitmentDate, err = parseOptionalDate("fitment_date", in.FitmentDate); err != nil {
		return err
	}
	t.FittingKM = in.FittingKM
	if t.RemovalDate, err = parseOptionalDate("removal_date", in.RemovalDate); err != nil {
		return err
	}
	t.RemovalKM = in.RemovalKM
	t.Remarks = in.Remarks
	if t.FitmentDate != nil && t.RemovalDate != nil && t.RemovalDate.Before(*t.FitmentDate) {
		return invalid("Removal date cannot be before fitment date")
	}
	return nil
}

// TyreQuery filters the tyre register. TruckID "all" or empty matches every truck.
type TyreQuery struct {
	TruckID string
	From    string
	To      string
}

// TyreView is a tyre with its truck number and wear figures.
type TyreView struct {
	models.Tyre
	TruckNo   string  `json:"truck_no,omitempty"`
	RunningKM float64 `json:"running_km"`
	CostPerKM float64 `json:"cost_per_km"`
}

func newTyreView(t models.Tyre, truck *models.Truck) TyreView {
	v := TyreView{Tyre: t, RunningKM: t.RunningKM(), CostPerKM: t.CostPerKM()}
	if truck != nil {
		v.TruckNo = truck.TruckNo
	}
	return v
}

// ListTyres returns the tyre register, latest fitment first.
func (s *Service) ListTyres(ctx context.Context, q TyreQuery) ([]TyreView, error) {
	filter := db.TyreFilter{}
	if q.TruckID != "all" {
		filter.TruckID = q.TruckID
	}
	var err error
	if q.From != "" {
		if filter.FitmentFrom, err = parseOptionalDate("from", &q.From); err != nil {
			return nil, err
		}
	}
	if q.To != "" {
		if filter.FitmentTo, err = parseOptionalDate("to", &q.To); err != nil {
			return nil, err
		}
	}

	tyres, err := s.store.Tyres.FindTyres(ctx, filter)
	if err != nil {
		return nil, storeErr(err, "list", "Tyres")
	}
	trucks, err := s.store.Trucks.FindTrucks(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Trucks")
	}
	truckByID := truckIndex(trucks)

	out := make([]TyreView, 0, len(tyres))
	for _, t := range tyres {
		out = append(out, newTyreView(t, truckByID[t.TruckID]))
	}
	return out, nil
}

// CreateTyre records a tyre fitted to a truck.
func (s *Service) CreateTyre(ctx context.Context, in TyreInput) (*TyreView, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	truck, err := s.store.Trucks.FindTruckByID(ctx, in.TruckID)
	if err != nil {
		return nil, tyreTruckErr(err)
	}
	tyre := models.Tyre{ID: s.newID(), CreatedAt: s.now()}
	if err := in.apply(&tyre); err != nil {
		return nil, err
	}
	if err := s.store.Tyres.InsertTyre(ctx, tyre); err != nil {
		return nil, storeErr(err, "insert", "Tyre")
	}
	v := newTyreView(tyre, truck)
	return &v, nil
}

// UpdateTyre replaces a tyre's fields.
func (s *Service) UpdateTyre(ctx context.Context, id string, in TyreInput) (*TyreView, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	tyre, err := s.store.Tyres.FindTyreByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find", "Tyre")
	}
	truck, err := s.store.Trucks.FindTruckByID(ctx, in.TruckID)
	if err != nil {
		return nil, tyreTruckErr(err)
	}
	if err := in.apply(tyre); err != nil {
		return nil, err
	}
	if err := s.store.Tyres.UpdateTyre(ctx, id, *tyre); err != nil {
		return nil, storeErr(err, "update", "Tyre")
	}
	v := newTyreView(*tyre, truck)
	return &v, nil
}

// DeleteTyre removes a tyre record.
func (s *Service) DeleteTyre(ctx context.Context, id string) error {
	if err := s.store.Tyres.DeleteTyre(ctx, id); err != nil {
		return storeErr(err, "delete", "Tyre")
	}
	return nil
}

func tyreTruckErr(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return invalid("Truck not found")
	}
	return storeErr(err, "find", "Truck")
}
