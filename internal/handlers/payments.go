package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/tripsheet/internal/reports"
)

// PendingPayments lists loads with a balance; ?priority=high|medium|low narrows the items.
func (h *Handler) PendingPayments(w http.ResponseWriter, r *http.Request) {
	pending, err := h.svc.PendingPayments(r.Context(), r.URL.Query().Get("priority"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, pending)
}

func (h *Handler) ExportPendingPayments(w http.ResponseWriter, r *http.Request) {
	pending, err := h.svc.PendingPayments(r.Context(), r.URL.Query().Get("priority"))
	if err != nil {
		fail(w, r, err)
		return
	}
	f, err := reports.PendingPayments(pending)
	if err != nil {
		fail(w, r, err)
		return
	}
	sendWorkbook(w, f, "pending-payments")
}

func (h *Handler) ListCouriers(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListCouriers(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, entries)
}

func (h *Handler) DeleteCourier(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCourier(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, nil)
}
