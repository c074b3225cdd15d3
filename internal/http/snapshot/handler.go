package snapshot

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mycloudcondo/kuyan/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/latest", h.latest)
}

type datesResponse struct {
	Dates []string `json:"dates"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	dates, err := h.svc.SnapshotDates(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := datesResponse{Dates: make([]string, len(dates))}
	for i, d := range dates {
		resp.Dates[i] = d.Format(time.DateOnly)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	dates, err := h.svc.SnapshotDates(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if len(dates) == 0 {
		http.Error(w, "no snapshots recorded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := struct {
		Date string `json:"date"`
	}{Date: dates[len(dates)-1].Format(time.DateOnly)}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
