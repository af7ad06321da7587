// Package trips decides whether trip and loading dates may be written.
package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/models"
)

// Result is the outcome of a date check. Error is the message shown to the user.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

var ok = Result{Valid: true}

func invalid(format string, args ...interface{}) Result {
	return Result{Valid: false, Error: fmt.Sprintf(format, args...)}
}

// CheckTripDates tests a candidate [start, end] range against the existing trips of one truck.
// A nil end means the candidate is still ongoing. The trip with excludeID is ignored so an
// edit is never compared with itself. The first conflicting trip decides the message.
//
// An existing ongoing trip only conflicts with candidates that start on or before its own
// start date; later starts pass. Callers rely on that behaviour.
func CheckTripDates(existing []models.Trip, start time.Time, end *time.Time, excludeID string) Result {
	newStart := models.DateOnly(start)
	var newEnd *time.Time
	if end != nil {
		e := models.DateOnly(*end)
		newEnd = &e
	}

	for _, trip := range existing {
		if excludeID != "" && trip.ID == excludeID {
			continue
		}
		tripStart := models.DateOnly(trip.StartDate)

		if trip.EndDate != nil {
			tripEnd := models.DateOnly(*trip.EndDate)
			if !newStart.After(tripEnd) && (newEnd == nil || !newEnd.Before(tripStart)) {
				return invalid("This truck has an existing trip from %s to %s. New trip dates cannot overlap.",
					models.FormatDate(tripStart), models.FormatDate(tripEnd))
			}
			continue
		}

		if (newEnd == nil || !newEnd.Before(tripStart)) && !newStart.After(tripStart) {
			return invalid("This truck has an ongoing trip starting %s. Please complete that trip first or choose dates after it.",
				models.FormatDate(tripStart))
		}
	}

	if newEnd != nil && newStart.After(*newEnd) {
		return invalid("Start date cannot be after end date")
	}
	return ok
}

// CheckLoadingDate tests that a loading date lies inside the trip's window, both ends inclusive.
// An ongoing trip has no upper bound. A nil trip is reported as not found.
func CheckLoadingDate(trip *models.Trip, loadingDate time.Time) Result {
	if trip == nil {
		return invalid("Trip not found")
	}
	date := models.DateOnly(loadingDate)
	start := models.DateOnly(trip.StartDate)
	if date.Before(start) {
		return invalid("Loading date cannot be before trip start date (%s)", models.FormatDate(start))
	}
	if trip.EndDate != nil {
		end := models.DateOnly(*trip.EndDate)
		if date.After(end) {
			return invalid("Loading date cannot be after trip end date (%s)", models.FormatDate(end))
		}
	}
	return ok
}

// TripFinder is the read side of the trip store the validator needs.
type TripFinder interface {
	FindTripsForTruck(ctx context.Context, truckID string) ([]models.Trip, error)
	FindTripByID(ctx context.Context, id string) (*models.Trip, error)
}

// Validator runs the date checks against stored trips.
type Validator struct {
	trips TripFinder
}

// NewValidator creates a Validator reading from trips.
func NewValidator(trips TripFinder) *Validator {
	return &Validator{trips: trips}
}

// ValidateTripDates loads the truck's trips and runs CheckTripDates.
// The returned error is non-nil only when the store could not be read.
func (v *Validator) ValidateTripDates(ctx context.Context, truckID string, start time.Time, end *time.Time, excludeID string) (Result, error) {
	existing, err := v.trips.FindTripsForTruck(ctx, truckID)
	if err != nil {
		return Result{}, fmt.Errorf("find trips for truck %s: %w", truckID, err)
	}
	return CheckTripDates(existing, start, end, excludeID), nil
}

// ValidateLoadingDate loads the owning trip and runs CheckLoadingDate.
func (v *Validator) ValidateLoadingDate(ctx context.Context, tripID string, loadingDate time.Time) (Result, error) {
	trip, err := v.trips.FindTripByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return CheckLoadingDate(nil, loadingDate), nil
		}
		return Result{}, fmt.Errorf("find trip %s: %w", tripID, err)
	}
	return CheckLoadingDate(trip, loadingDate), nil
}
