package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/stock-atlas/pkg/adapters"
	"github.com/de-tools/stock-atlas/pkg/models/api"
	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/de-tools/stock-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	controller report.Controller
}

func NewHandler(controller report.Controller) *Handler {
	return &Handler{controller: controller}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	defs := report.Definitions()
	response := make([]api.ReportEntry, 0, len(defs))
	for _, def := range defs {
		response = append(response, api.ReportEntry{
			ID:    string(def.ID),
			Menu:  def.Menu,
			Title: def.Title,
		})
	}

	writeJSON(w, r, http.StatusOK, response)
}

// GetReport answers 200 for every known report, carrying report-local
// failures as banners.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "report")

	id, err := domain.ParseReportID(name)
	if err != nil {
		writeJSON(w, r, http.StatusNotFound, api.Error{Error: err.Error()})
		return
	}

	result, err := h.controller.Run(ctx, domain.ReportRequest{
		ID:    id,
		Month: r.URL.Query().Get("month"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnknownReport) {
			status = http.StatusNotFound
		}
		logger.Error().
			Err(err).
			Str("report", name).
			Msg("failed to run report")
		writeJSON(w, r, status, api.Error{Error: err.Error()})
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(*result))
}

func (h *Handler) ListMonths(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	months, err := h.controller.Months(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Msg("failed to list months")
		months = []string{}
	}

	writeJSON(w, r, http.StatusOK, api.Months{Months: months})
}

// writeJSON encodes before writing the header so an encoding failure is
// reported as a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(api.Error{Error: "failed to encode response"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Warn().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to write response")
	}
}
