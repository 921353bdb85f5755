package reports

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/adapters"
	"github.com/jaaniles/fcore-ocr/pkg/models/api"
	"github.com/jaaniles/fcore-ocr/pkg/services/report"
)

// Handler serves the read-only report status API over the durable cache.
type Handler struct {
	reports *report.Manager
}

func NewHandler(reports *report.Manager) *Handler {
	return &Handler{reports: reports}
}

// ListReports returns every in-progress report with its captured and
// missing screens.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	reports, err := h.reports.Resume(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list reports")
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	response := make([]api.Report, 0, len(reports))
	for _, rep := range reports {
		missing, _ := h.reports.MissingScreens(rep)
		response = append(response, adapters.MapDomainReportToAPI(rep, missing))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode reports")
	}
}

// GetReport returns one report with its full extracted payload.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	handle := chi.URLParam(r, "handle")

	reports, err := h.reports.Resume(ctx)
	if err != nil {
		logger.Error().Err(err).Str("handle", handle).Msg("failed to load report")
		http.Error(w, "failed to load report", http.StatusInternalServerError)
		return
	}

	for _, rep := range reports {
		if rep.Handle != handle {
			continue
		}
		missing, _ := h.reports.MissingScreens(rep)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(adapters.MapDomainReportToAPIDetail(rep, missing)); err != nil {
			logger.Error().Err(err).Str("handle", handle).Msg("failed to encode report")
		}
		return
	}

	http.Error(w, "report not found", http.StatusNotFound)
}
