// Package transfer exposes bulk entry import and export over HTTP.
package transfer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mycloudcondo/kuyan/internal/export"
	"github.com/mycloudcondo/kuyan/internal/importer"
	"github.com/mycloudcondo/kuyan/internal/matching"
)

type Handler struct {
	importer *importer.Service
	exporter *export.Service
	labels   *matching.Service
}

func NewHandler(imp *importer.Service, exp *export.Service, labels *matching.Service) *Handler {
	return &Handler{importer: imp, exporter: exp, labels: labels}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importFile)
	r.Get("/export", h.exportCSV)
	r.Post("/labels", h.learnLabel)
}

// importFile ingests a statement file posted as the request body. Rows that
// parse but fail validation are skipped and counted, not fatal.
func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	format := importer.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	summary, err := h.importer.Import(r.Context(), format, r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// exportCSV streams entries as CSV, one snapshot when ?date= is given, the
// whole ledger otherwise.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")

	filename := "kuyan-entries.csv"

	var exportFn func() error

	if dateStr == "" {
		exportFn = func() error { return h.exporter.ExportAll(r.Context(), w) }
	} else {
		date, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
		if err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		filename = fmt.Sprintf("kuyan-entries-%s.csv", dateStr)
		exportFn = func() error { return h.exporter.ExportSnapshot(r.Context(), w, date) }
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := exportFn(); err != nil {
		// Headers are already written; all that is left is logging.
		slog.Error("export failed", "error", err)
	}
}

type learnLabelRequest struct {
	RawPattern     string `json:"raw_pattern"`
	PreferredLabel string `json:"preferred_label"`
}

// learnLabel records a raw-pattern to preferred-label mapping applied on
// future imports.
func (h *Handler) learnLabel(w http.ResponseWriter, r *http.Request) {
	var req learnLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.RawPattern == "" || req.PreferredLabel == "" {
		http.Error(w, "raw_pattern and preferred_label are required", http.StatusBadRequest)
		return
	}

	if err := h.labels.Learn(r.Context(), req.RawPattern, req.PreferredLabel); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
