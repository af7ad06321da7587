package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/tripsheet/internal/service"
)

func (h *Handler) GetLoad(w http.ResponseWriter, r *http.Request) {
	load, err := h.svc.GetLoad(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, load)
}

// UpdateLoad changes only the fields present in the body.
func (h *Handler) UpdateLoad(w http.ResponseWriter, r *http.Request) {
	var in service.LoadUpdate
	if !decode(w, r, &in) {
		return
	}
	load, err := h.svc.UpdateLoad(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, load)
}

func (h *Handler) DeleteLoad(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteLoad(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, nil)
}

type validateLoadingDateRequest struct {
	TripID      string `json:"trip_id"`
	LoadingDate string `json:"loading_date"`
}

func (h *Handler) ValidateLoadingDate(w http.ResponseWriter, r *http.Request) {
	var req validateLoadingDateRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.ValidateLoadingDate(r.Context(), req.TripID, req.LoadingDate)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, res)
}

func (h *Handler) UpdateLoadPayment(w http.ResponseWriter, r *http.Request) {
	var in service.PaymentUpdate
	if !decode(w, r, &in) {
		return
	}
	load, err := h.svc.UpdateLoadPayment(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, load)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var in service.PaymentReceipt
	if !decode(w, r, &in) {
		return
	}
	load, err := h.svc.RecordPayment(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, load)
}

func (h *Handler) GetCourier(w http.ResponseWriter, r *http.Request) {
	courier, err := h.svc.GetCourier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, courier)
}

func (h *Handler) UpsertCourier(w http.ResponseWriter, r *http.Request) {
	var in service.CourierInput
	if !decode(w, r, &in) {
		return
	}
	courier, err := h.svc.UpsertCourier(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, courier)
}
