package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/tripsheet/internal/service"
)

func (h *Handler) ListTrucks(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.svc.ListTrucks(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, trucks)
}

func (h *Handler) GetTruck(w http.ResponseWriter, r *http.Request) {
	truck, err := h.svc.GetTruck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, truck)
}

func (h *Handler) CreateTruck(w http.ResponseWriter, r *http.Request) {
	var in service.TruckInput
	if !decode(w, r, &in) {
		return
	}
	truck, err := h.svc.CreateTruck(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, truck)
}

// CreateTrucks accepts a JSON array of trucks.
func (h *Handler) CreateTrucks(w http.ResponseWriter, r *http.Request) {
	var in []service.TruckInput
	if !decode(w, r, &in) {
		return
	}
	trucks, err := h.svc.CreateTrucks(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, trucks)
}

func (h *Handler) UpdateTruck(w http.ResponseWriter, r *http.Request) {
	var in service.TruckInput
	if !decode(w, r, &in) {
		return
	}
	truck, err := h.svc.UpdateTruck(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, truck)
}

func (h *Handler) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTruck(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, nil)
}

// ExpiringDocuments lists documents expiring within ?days= (default from config).
func (h *Handler) ExpiringDocuments(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", h.expiryDays)
	docs, err := h.svc.ExpiringDocuments(r.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, docs)
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.svc.ListDrivers(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, drivers)
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	driver, err := h.svc.GetDriver(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, driver)
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var in service.DriverInput
	if !decode(w, r, &in) {
		return
	}
	driver, err := h.svc.CreateDriver(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, driver)
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	var in service.DriverInput
	if !decode(w, r, &in) {
		return
	}
	driver, err := h.svc.UpdateDriver(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, driver)
}

func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDriver(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, nil)
}
