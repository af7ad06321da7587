package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/tripsheet/internal/reports"
	"github.com/ukydev/tripsheet/internal/service"
)

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var in service.ExpenseInput
	if !decode(w, r, &in) {
		return
	}
	expense, err := h.svc.UpdateExpense(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, expense)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, nil)
}

func tyreQuery(r *http.Request) service.TyreQuery {
	q := r.URL.Query()
	return service.TyreQuery{TruckID: q.Get("truck_id"), From: q.Get("from"), To: q.Get("to")}
}

// ListTyres accepts ?truck_id= (or "all"), ?from= and ?to= fitment dates.
func (h *Handler) ListTyres(w http.ResponseWriter, r *http.Request) {
	tyres, err := h.svc.ListTyres(r.Context(), tyreQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, tyres)
}

func (h *Handler) CreateTyre(w http.ResponseWriter, r *http.Request) {
	var in service.TyreInput
	if !decode(w, r, &in) {
		return
	}
	tyre, err := h.svc.CreateTyre(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, tyre)
}

func (h *Handler) UpdateTyre(w http.ResponseWriter, r *http.Request) {
	var in service.TyreInput
	if !decode(w, r, &in) {
		return
	}
	tyre, err := h.svc.UpdateTyre(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, tyre)
}

func (h *Handler) DeleteTyre(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTyre(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, nil)
}

func (h *Handler) ExportTyres(w http.ResponseWriter, r *http.Request) {
	tyres, err := h.svc.ListTyres(r.Context(), tyreQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	f, err := reports.TyreRegister(tyres)
	if err != nil {
		fail(w, r, err)
		return
	}
	sendWorkbook(w, f, "tyre-register")
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Dashboard(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, dash)
}

// RecentTrips returns the latest trips; ?limit= defaults to 5.
func (h *Handler) RecentTrips(w http.ResponseWriter, r *http.Request) {
	recent, err := h.svc.RecentTrips(r.Context(), intQuery(r, "limit", 5))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, recent)
}
