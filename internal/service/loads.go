package service

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/events"
	"github.com/ukydev/tripsheet/internal/ledger"
	"github.com/ukydev/tripsheet/internal/models"
	"github.com/ukydev/tripsheet/internal/trips"
)

// LoadInput is the writable part of a new load. Balance is always derived.
type LoadInput struct {
	LoadingDate   *string        `json:"loading_date" validate:"omitempty,date"`
	FromLocation  string         `json:"from_location"`
	ToLocation    string         `json:"to_location"`
	Transporter   string         `json:"transporter"`
	FreightAmount float64        `json:"freight_amount" validate:"gte=0"`
	Note          string         `json:"note"`
	PayTerm       models.PayTerm `json:"pay_term" validate:"omitempty,payterm"`
	AdvanceAmount float64        `json:"advance_amount" validate:"gte=0"`
}

func (in LoadInput) apply(l *models.Load) error {
	date, err := parseOptionalDate("loading_date", in.LoadingDate)
	if err != nil {
		return err
	}
	l.LoadingDate = date
	l.FromLocation = strings.TrimSpace(in.FromLocation)
	l.ToLocation = strings.TrimSpace(in.ToLocation)
	l.Transporter = strings.TrimSpace(in.Transporter)
	l.FreightAmount = in.FreightAmount
	l.Note = in.Note

	l.PayTerm = in.PayTerm
	if l.PayTerm == "" {
		l.PayTerm = models.PayTermToPay
	}
	if err := ledger.SetAdvance(l, in.AdvanceAmount); err != nil {
		return invalid("%s", err.Error())
	}
	return nil
}

// LoadUpdate changes the fields that are present. The balance is re-derived only
// when the pay term, advance or freight changes; otherwise recorded payments stand.
type LoadUpdate struct {
	LoadingDate   NullableDate    `json:"loading_date"`
	FromLocation  *string         `json:"from_location"`
	ToLocation    *string         `json:"to_location"`
	Transporter   *string         `json:"transporter"`
	FreightAmount *float64        `json:"freight_amount" validate:"omitempty,gte=0"`
	Note          *string         `json:"note"`
	PayTerm       *models.PayTerm `json:"pay_term" validate:"omitempty,payterm"`
	AdvanceAmount *float64        `json:"advance_amount" validate:"omitempty,gte=0"`
}

func (u LoadUpdate) apply(l *models.Load) error {
	if u.LoadingDate.Set {
		date, err := parseOptionalDate("loading_date", u.LoadingDate.Value)
		if err != nil {
			return err
		}
		l.LoadingDate = date
	}
	if u.FromLocation != nil {
		l.FromLocation = strings.TrimSpace(*u.FromLocation)
	}
	if u.ToLocation != nil {
		l.ToLocation = strings.TrimSpace(*u.ToLocation)
	}
	if u.Transporter != nil {
		l.Transporter = strings.TrimSpace(*u.Transporter)
	}
	if u.Note != nil {
		l.Note = *u.Note
	}

	freight, term, advance := l.FreightAmount, l.PayTerm, l.AdvanceAmount
	if u.FreightAmount != nil {
		freight = *u.FreightAmount
	}
	if u.PayTerm != nil {
		term = *u.PayTerm
	}
	if u.AdvanceAmount != nil {
		advance = *u.AdvanceAmount
	}
	if freight == l.FreightAmount && term == l.PayTerm && advance == l.AdvanceAmount {
		return nil
	}
	l.FreightAmount = freight
	l.PayTerm = term
	if err := ledger.SetAdvance(l, advance); err != nil {
		return invalid("%s", err.Error())
	}
	return nil
}

// ListLoads returns a trip's loads with their courier details.
func (s *Service) ListLoads(ctx context.Context, tripID string) ([]models.Load, error) {
	if _, err := s.findTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return s.loadsForTrip(ctx, tripID)
}

// GetLoad returns one load with its courier details.
func (s *Service) GetLoad(ctx context.Context, id string) (*models.Load, error) {
	load, err := s.findLoad(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachCouriers(ctx, []*models.Load{load}); err != nil {
		return nil, err
	}
	return load, nil
}

// CreateLoad adds a load to a trip. A loading date must fall inside the trip's dates.
func (s *Service) CreateLoad(ctx context.Context, tripID string, in LoadInput) (*models.Load, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	load := models.Load{ID: s.newID(), TripID: tripID, CreatedAt: s.now()}
	if err := in.apply(&load); err != nil {
		return nil, err
	}
	if err := checkLoadingDate(trip, load); err != nil {
		return nil, err
	}

	if err := s.store.Loads.InsertLoad(ctx, load); err != nil {
		return nil, storeErr(err, "insert", "Load")
	}
	s.publish(ctx, events.LoadCreated, load)
	return &load, nil
}

// UpdateLoad merges the present fields into a load. A loading date is re-checked
// against the trip.
func (s *Service) UpdateLoad(ctx context.Context, id string, in LoadUpdate) (*models.Load, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	load, err := s.findLoad(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(load); err != nil {
		return nil, err
	}
	if load.LoadingDate != nil {
		trip, err := s.findTrip(ctx, load.TripID)
		if err != nil {
			return nil, err
		}
		if err := checkLoadingDate(trip, *load); err != nil {
			return nil, err
		}
	}

	if err := s.store.Loads.UpdateLoad(ctx, id, *load); err != nil {
		return nil, storeErr(err, "update", "Load")
	}
	s.publish(ctx, events.LoadUpdated, load)
	return load, nil
}

// DeleteLoad removes a load and its courier details.
func (s *Service) DeleteLoad(ctx context.Context, id string) error {
	if _, err := s.findLoad(ctx, id); err != nil {
		return err
	}
	if err := s.store.Couriers.DeleteCouriersForLoads(ctx, []string{id}); err != nil {
		return storeErr(err, "delete", "Courier details")
	}
	if err := s.store.Loads.DeleteLoad(ctx, id); err != nil {
		return storeErr(err, "delete", "Load")
	}
	s.publish(ctx, events.LoadDeleted, map[string]string{"id": id})
	return nil
}

func checkLoadingDate(trip *models.Trip, load models.Load) error {
	if load.LoadingDate == nil {
		return nil
	}
	res := trips.CheckLoadingDate(trip, *load.LoadingDate)
	if !res.Valid {
		log.WithFields(log.Fields{"trip_id": trip.ID, "reason": res.Error}).Info("loading date rejected")
		return &ValidationError{Message: res.Error}
	}
	return nil
}

func (s *Service) findLoad(ctx context.Context, id string) (*models.Load, error) {
	load, err := s.store.Loads.FindLoadByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find", "Load")
	}
	return load, nil
}

func (s *Service) loadsForTrip(ctx context.Context, tripID string) ([]models.Load, error) {
	loads, err := s.store.Loads.FindLoadsForTrip(ctx, tripID)
	if err != nil {
		return nil, storeErr(err, "list", "Loads")
	}
	ptrs := make([]*models.Load, len(loads))
	for i := range loads {
		ptrs[i] = &loads[i]
	}
	if err := s.attachCouriers(ctx, ptrs); err != nil {
		return nil, err
	}
	return loads, nil
}

// attachCouriers fills Load.Courier with the load's courier details, if any.
func (s *Service) attachCouriers(ctx context.Context, loads []*models.Load) error {
	if len(loads) == 0 {
		return nil
	}
	couriers, err := s.store.Couriers.FindCouriers(ctx)
	if err != nil {
		return storeErr(err, "list", "Courier details")
	}
	byLoad := make(map[string]*models.CourierDetails, len(couriers))
	for i := range couriers {
		byLoad[couriers[i].LoadID] = &couriers[i]
	}
	for _, l := range loads {
		l.Courier = byLoad[l.ID]
	}
	return nil
}
