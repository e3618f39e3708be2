package handlers

import (
	"fmt"
	"net/http"
	"time"

	"kds-backend/internal/services"
	"kds-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// DailyEventsPDF streams the daily activity report. ?date=YYYY-MM-DD,
// defaulting to today.
func (h *ReportHandler) DailyEventsPDF(w http.ResponseWriter, r *http.Request) {
	day := timeutil.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.ParseInLocation(timeutil.DateLayout, dateStr, day.Location())
		if err != nil {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day = parsed
	}

	summary, err := h.Service.GetDailySummary(r.Context(), day)
	if err != nil {
		writeError(w, err)
		return
	}

	pdf, err := h.Service.GenerateDailyPDF(summary)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("kds_events_%s.pdf", summary.Date.Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(pdf)
}
