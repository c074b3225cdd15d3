package networth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mycloudcondo/kuyan/internal/currency"
	"github.com/mycloudcondo/kuyan/internal/valuation"
)

type Handler struct {
	svc *valuation.Service
	// defaultCurrency is used when the request does not name a reporting
	// currency.
	defaultCurrency currency.Code
}

func NewHandler(svc *valuation.Service, defaultCurrency currency.Code) *Handler {
	return &Handler{svc: svc, defaultCurrency: defaultCurrency}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.compute)
	r.Get("/series", h.series)
}

func (h *Handler) reportingCurrency(r *http.Request) (currency.Code, error) {
	s := r.URL.Query().Get("currency")
	if s == "" {
		return h.defaultCurrency, nil
	}

	return currency.Parse(s)
}

func (h *Handler) compute(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		http.Error(w, "date query parameter is required", http.StatusBadRequest)
		return
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	reporting, err := h.reportingCurrency(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.ComputeNetWorth(r.Context(), date, reporting)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	start, err := time.ParseInLocation(time.DateOnly, r.URL.Query().Get("start"), time.UTC)
	if err != nil {
		http.Error(w, "invalid start, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	end, err := time.ParseInLocation(time.DateOnly, r.URL.Query().Get("end"), time.UTC)
	if err != nil {
		http.Error(w, "invalid end, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	reporting, err := h.reportingCurrency(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.svc.ComputeSeries(r.Context(), start, end, reporting)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(results)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
