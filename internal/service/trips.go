package service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/events"
	"github.com/ukydev/tripsheet/internal/ledger"
	"github.com/ukydev/tripsheet/internal/models"
	"github.com/ukydev/tripsheet/internal/trips"
)

// TripInput creates a trip.
type TripInput struct {
	TruckID      string            `json:"truck_id" validate:"required"`
	Driver1ID    string            `json:"driver1_id" validate:"required"`
	Driver2ID    string            `json:"driver2_id"`
	StartDate    string            `json:"start_date" validate:"required,date"`
	EndDate      *string           `json:"end_date" validate:"omitempty,date"`
	StartKM      float64           `json:"start_km" validate:"gte=0"`
	EndKM        float64           `json:"end_km" validate:"gte=0"`
	DieselLiters float64           `json:"diesel_liters" validate:"gte=0"`
	DieselAmount float64           `json:"diesel_amount" validate:"gte=0"`
	Status       models.TripStatus `json:"status" validate:"omitempty,tripstatus"`
}

// TripUpdate changes the fields that are present. EndDate may be set to null to reopen a trip.
type TripUpdate struct {
	TruckID      *string            `json:"truck_id" validate:"omitempty,min=1"`
	Driver1ID    *string            `json:"driver1_id" validate:"omitempty,min=1"`
	Driver2ID    *string            `json:"driver2_id"`
	StartDate    *string            `json:"start_date" validate:"omitempty,date"`
	EndDate      NullableDate       `json:"end_date"`
	StartKM      *float64           `json:"start_km" validate:"omitempty,gte=0"`
	EndKM        *float64           `json:"end_km" validate:"omitempty,gte=0"`
	DieselLiters *float64           `json:"diesel_liters" validate:"omitempty,gte=0"`
	DieselAmount *float64           `json:"diesel_amount" validate:"omitempty,gte=0"`
	Status       *models.TripStatus `json:"status" validate:"omitempty,tripstatus"`
}

func (u TripUpdate) touchesDates() bool {
	return u.TruckID != nil || u.StartDate != nil || u.EndDate.Set
}

// TripDetail is a trip joined with its truck, drivers, loads and expenses.
type TripDetail struct {
	models.Trip
	Truck    *models.Truck     `json:"truck,omitempty"`
	Driver1  *models.Driver    `json:"driver1,omitempty"`
	Driver2  *models.Driver    `json:"driver2,omitempty"`
	Loads    []models.Load     `json:"loads"`
	Expenses []models.Expense  `json:"expenses"`
	Mileage  float64           `json:"mileage"`
	Totals   ledger.TripTotals `json:"totals"`
}

func newTripDetail(trip models.Trip, loads []models.Load, expenses []models.Expense) TripDetail {
	if loads == nil {
		loads = []models.Load{}
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return TripDetail{
		Trip:     trip,
		Loads:    loads,
		Expenses: expenses,
		Mileage:  trip.Mileage(),
		Totals:   ledger.Totals(trip, loads, expenses),
	}
}

// ListTrips returns every trip with its joins and totals, newest first.
func (s *Service) ListTrips(ctx context.Context) ([]TripDetail, error) {
	all, err := s.store.Trips.FindTrips(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Trips")
	}
	trucks, err := s.store.Trucks.FindTrucks(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Trucks")
	}
	drivers, err := s.store.Drivers.FindDrivers(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Drivers")
	}
	loads, err := s.store.Loads.FindLoads(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Loads")
	}
	expenses, err := s.store.Expenses.FindExpenses(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Expenses")
	}

	loadsByTrip := map[string][]models.Load{}
	for _, l := range loads {
		loadsByTrip[l.TripID] = append(loadsByTrip[l.TripID], l)
	}
	expensesByTrip := map[string][]models.Expense{}
	for _, e := range expenses {
		expensesByTrip[e.TripID] = append(expensesByTrip[e.TripID], e)
	}
	truckByID := truckIndex(trucks)
	driverByID := driverIndex(drivers)

	out := make([]TripDetail, 0, len(all))
	for _, trip := range all {
		detail := newTripDetail(trip, loadsByTrip[trip.ID], expensesByTrip[trip.ID])
		detail.Truck = truckByID[trip.TruckID]
		detail.Driver1 = driverByID[trip.Driver1ID]
		detail.Driver2 = driverByID[trip.Driver2ID]
		out = append(out, detail)
	}
	return out, nil
}

// GetTrip returns one trip with its joins and totals. Loads carry their courier details.
func (s *Service) GetTrip(ctx context.Context, id string) (*TripDetail, error) {
	trip, err := s.findTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	loads, err := s.loadsForTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.Expenses.FindExpensesForTrip(ctx, id)
	if err != nil {
		return nil, storeErr(err, "list", "Expenses")
	}

	detail := newTripDetail(*trip, loads, expenses)
	if detail.Truck, err = s.optionalTruck(ctx, trip.TruckID); err != nil {
		return nil, err
	}
	if detail.Driver1, err = s.optionalDriver(ctx, trip.Driver1ID); err != nil {
		return nil, err
	}
	if detail.Driver2, err = s.optionalDriver(ctx, trip.Driver2ID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateTrip stores a trip once its dates pass the overlap check for the truck.
func (s *Service) CreateTrip(ctx context.Context, in TripInput) (*models.Trip, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	trip := models.Trip{
		ID:           s.newID(),
		TruckID:      in.TruckID,
		Driver1ID:    in.Driver1ID,
		Driver2ID:    in.Driver2ID,
		StartDate:    start,
		EndDate:      end,
		StartKM:      in.StartKM,
		EndKM:        in.EndKM,
		DieselLiters: in.DieselLiters,
		DieselAmount: in.DieselAmount,
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if trip.Status == "" {
		trip.Status = models.TripOngoing
	}
	if err := s.checkTripRefs(ctx, trip); err != nil {
		return nil, err
	}
	if err := s.checkTripDates(ctx, trip, ""); err != nil {
		return nil, err
	}

	if err := s.store.Trips.InsertTrip(ctx, trip); err != nil {
		return nil, storeErr(err, "insert", "Trip")
	}
	log.WithFields(log.Fields{"trip_id": trip.ID, "truck_id": trip.TruckID}).Info("trip created")
	s.publish(ctx, events.TripCreated, trip)
	return &trip, nil
}

// UpdateTrip merges upd into the stored trip. Date or truck changes are re-checked
// against the truck's other trips.
func (s *Service) UpdateTrip(ctx context.Context, id string, upd TripUpdate) (*models.Trip, error) {
	if err := checkInput(upd); err != nil {
		return nil, err
	}
	trip, err := s.findTrip(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.TruckID != nil {
		trip.TruckID = *upd.TruckID
	}
	if upd.Driver1ID != nil {
		trip.Driver1ID = *upd.Driver1ID
	}
	if upd.Driver2ID != nil {
		trip.Driver2ID = *upd.Driver2ID
	}
	if upd.StartDate != nil {
		if trip.StartDate, err = parseDate("start_date", *upd.StartDate); err != nil {
			return nil, err
		}
	}
	if upd.EndDate.Set {
		if trip.EndDate, err = parseOptionalDate("end_date", upd.EndDate.Value); err != nil {
			return nil, err
		}
	}
	if upd.StartKM != nil {
		trip.StartKM = *upd.StartKM
	}
	if upd.EndKM != nil {
		trip.EndKM = *upd.EndKM
	}
	if upd.DieselLiters != nil {
		trip.DieselLiters = *upd.DieselLiters
	}
	if upd.DieselAmount != nil {
		trip.DieselAmount = *upd.DieselAmount
	}
	if upd.Status != nil {
		trip.Status = *upd.Status
	}

	if err := s.checkTripRefs(ctx, *trip); err != nil {
		return nil, err
	}
	if upd.touchesDates() {
		if err := s.checkTripDates(ctx, *trip, id); err != nil {
			return nil, err
		}
	}

	trip.UpdatedAt = s.now()
	if err := s.store.Trips.UpdateTrip(ctx, id, *trip); err != nil {
		return nil, storeErr(err, "update", "Trip")
	}
	s.publish(ctx, events.TripUpdated, trip)
	return trip, nil
}

// DeleteTrip removes a trip with its loads, their courier details and its expenses.
func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	if _, err := s.findTrip(ctx, id); err != nil {
		return err
	}
	loads, err := s.store.Loads.FindLoadsForTrip(ctx, id)
	if err != nil {
		return storeErr(err, "list", "Loads")
	}
	loadIDs := make([]string, 0, len(loads))
	for _, l := range loads {
		loadIDs = append(loadIDs, l.ID)
	}

	if err := s.store.Couriers.DeleteCouriersForLoads(ctx, loadIDs); err != nil {
		return storeErr(err, "delete", "Courier details")
	}
	if err := s.store.Loads.DeleteLoadsForTrip(ctx, id); err != nil {
		return storeErr(err, "delete", "Loads")
	}
	if err := s.store.Expenses.DeleteExpensesForTrip(ctx, id); err != nil {
		return storeErr(err, "delete", "Expenses")
	}
	if err := s.store.Trips.DeleteTrip(ctx, id); err != nil {
		return storeErr(err, "delete", "Trip")
	}

	log.WithFields(log.Fields{"trip_id": id, "loads": len(loadIDs)}).Info("trip deleted")
	s.publish(ctx, events.TripDeleted, map[string]string{"id": id})
	return nil
}

// RecentTrips returns the latest trips by start date with their truck attached.
func (s *Service) RecentTrips(ctx context.Context, limit int) ([]TripDetail, error) {
	if limit <= 0 {
		limit = 5
	}
	recent, err := s.store.Trips.FindRecentTrips(ctx, int64(limit))
	if err != nil {
		return nil, storeErr(err, "list", "Trips")
	}
	trucks, err := s.store.Trucks.FindTrucks(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Trucks")
	}
	truckByID := truckIndex(trucks)

	out := make([]TripDetail, 0, len(recent))
	for _, trip := range recent {
		detail := TripDetail{Trip: trip, Truck: truckByID[trip.TruckID], Mileage: trip.Mileage()}
		out = append(out, detail)
	}
	return out, nil
}

// ValidateTripDates runs the overlap check without writing anything.
func (s *Service) ValidateTripDates(ctx context.Context, truckID, startDate string, endDate *string, excludeID string) (trips.Result, error) {
	if truckID == "" {
		return trips.Result{}, invalid("Invalid input: truck_id is required")
	}
	start, err := parseDate("start_date", startDate)
	if err != nil {
		return trips.Result{}, err
	}
	end, err := parseOptionalDate("end_date", endDate)
	if err != nil {
		return trips.Result{}, err
	}
	return s.validator.ValidateTripDates(ctx, truckID, start, end, excludeID)
}

// ValidateLoadingDate runs the loading date check without writing anything.
func (s *Service) ValidateLoadingDate(ctx context.Context, tripID, loadingDate string) (trips.Result, error) {
	date, err := parseDate("loading_date", loadingDate)
	if err != nil {
		return trips.Result{}, err
	}
	return s.validator.ValidateLoadingDate(ctx, tripID, date)
}

func (s *Service) findTrip(ctx context.Context, id string) (*models.Trip, error) {
	trip, err := s.store.Trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find", "Trip")
	}
	return trip, nil
}

func (s *Service) checkTripDates(ctx context.Context, trip models.Trip, excludeID string) error {
	res, err := s.validator.ValidateTripDates(ctx, trip.TruckID, trip.StartDate, trip.EndDate, excludeID)
	if err != nil {
		return err
	}
	if !res.Valid {
		log.WithFields(log.Fields{"truck_id": trip.TruckID, "reason": res.Error}).Info("trip dates rejected")
		return &ValidationError{Message: res.Error}
	}
	return nil
}

// checkTripRefs makes sure the truck and drivers a trip points at exist.
func (s *Service) checkTripRefs(ctx context.Context, trip models.Trip) error {
	if _, err := s.store.Trucks.FindTruckByID(ctx, trip.TruckID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return invalid("Truck not found")
		}
		return storeErr(err, "find", "Truck")
	}
	for _, driverID := range []string{trip.Driver1ID, trip.Driver2ID} {
		if driverID == "" {
			continue
		}
		if _, err := s.store.Drivers.FindDriverByID(ctx, driverID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return invalid("Driver not found")
			}
			return storeErr(err, "find", "Driver")
		}
	}
	if trip.Driver2ID != "" && trip.Driver2ID == trip.Driver1ID {
		return invalid("Second driver must differ from the primary driver")
	}
	return nil
}

func (s *Service) optionalTruck(ctx context.Context, id string) (*models.Truck, error) {
	truck, err := s.store.Trucks.FindTruckByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err, "find", "Truck")
	}
	return truck, nil
}

func (s *Service) optionalDriver(ctx context.Context, id string) (*models.Driver, error) {
	if id == "" {
		return nil, nil
	}
	driver, err := s.store.Drivers.FindDriverByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err, "find", "Driver")
	}
	return driver, nil
}
