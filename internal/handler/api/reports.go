package api

import (
	"net/http"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/handler"
	"github.com/dukerupert/tabletab/internal/service"
)

// ReportHandler handles sales reports
type ReportHandler struct {
	reports  service.ReportService
	location *time.Location
}

// NewReportHandler creates a new report handler. Dates in requests are read
// in loc, the restaurant's business time zone.
func NewReportHandler(reports service.ReportService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{reports: reports, location: loc}
}

// DailySales handles GET /api/reports/daily-sales?date=YYYY-MM-DD.
// Without a date it reports today.
func (h *ReportHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	var day time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, raw, h.location)
		if err != nil {
			handler.ErrorResponse(w, r, domain.NewValidationError("api.report.daily_sales", "date", "must be a date in the form YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	sales, err := h.reports.DailySales(r.Context(), day)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, sales)
}
