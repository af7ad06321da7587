package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/reports"
	"github.com/ukydev/tripsheet/internal/service"
	"github.com/xuri/excelize/v2"
)

func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.ListTrips(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, all)
}

func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.svc.GetTrip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, trip)
}

func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var in service.TripInput
	if !decode(w, r, &in) {
		return
	}
	trip, err := h.svc.CreateTrip(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, trip)
}

// UpdateTrip applies the fields present in the body. "end_date": null reopens the trip.
func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var upd service.TripUpdate
	if !decode(w, r, &upd) {
		return
	}
	trip, err := h.svc.UpdateTrip(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, trip)
}

func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTrip(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, nil)
}

type validateDatesRequest struct {
	TruckID       string  `json:"truck_id"`
	StartDate     string  `json:"start_date"`
	EndDate       *string `json:"end_date"`
	ExcludeTripID string  `json:"exclude_trip_id"`
}

// ValidateTripDates answers whether a date range is free for a truck without saving anything.
func (h *Handler) ValidateTripDates(w http.ResponseWriter, r *http.Request) {
	var req validateDatesRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.ValidateTripDates(r.Context(), req.TruckID, req.StartDate, req.EndDate, req.ExcludeTripID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, res)
}

func (h *Handler) ListLoads(w http.ResponseWriter, r *http.Request) {
	loads, err := h.svc.ListLoads(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, loads)
}

func (h *Handler) CreateLoad(w http.ResponseWriter, r *http.Request) {
	var in service.LoadInput
	if !decode(w, r, &in) {
		return
	}
	load, err := h.svc.CreateLoad(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, load)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, expenses)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var in service.ExpenseInput
	if !decode(w, r, &in) {
		return
	}
	expense, err := h.svc.CreateExpense(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, expense)
}

// SaveExpenseSheet replaces all expenses of the trip and returns the refreshed trip.
func (h *Handler) SaveExpenseSheet(w http.ResponseWriter, r *http.Request) {
	var sheet service.ExpenseSheet
	if !decode(w, r, &sheet) {
		return
	}
	trip, err := h.svc.SaveExpenseSheet(r.Context(), chi.URLParam(r, "id"), sheet)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, trip)
}

func (h *Handler) ExportTrips(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.ListTrips(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	f, err := reports.TripSheet(all)
	if err != nil {
		fail(w, r, err)
		return
	}
	sendWorkbook(w, f, "trip-sheet")
}

// sendWorkbook streams an .xlsx attachment named after the report.
func sendWorkbook(w http.ResponseWriter, f *excelize.File, name string) {
	w.Header().Set("Content-Type", reports.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	if err := reports.Write(w, f); err != nil {
		log.WithError(err).WithField("report", name).Error("failed to stream workbook")
	}
}
