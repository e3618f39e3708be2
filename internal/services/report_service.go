package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"kds-backend/internal/models"
	"kds-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// DailyEventSummary holds the aggregated event data for one service day.
type DailyEventSummary struct {
	Date        time.Time
	Events      []*models.Event
	CountByType map[models.EventType]int
	Tickets     int
}

// ReportService renders the daily audit report managers pull at close.
type ReportService struct {
	Events EventStore
}

func NewReportService(events EventStore) *ReportService {
	return &ReportService{Events: events}
}

// GetDailySummary loads and aggregates one day's events.
func (s *ReportService) GetDailySummary(ctx context.Context, day time.Time) (*DailyEventSummary, error) {
	from := timeutil.StartOfDay(day)
	to := from.AddDate(0, 0, 1)

	events, err := s.Events.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	summary := &DailyEventSummary{
		Date:        from,
		Events:      events,
		CountByType: make(map[models.EventType]int),
	}
	ticketSet := make(map[string]bool)
	for _, e := range events {
		summary.CountByType[e.Type]++
		ticketSet[e.TicketID.String()] = true
	}
	summary.Tickets = len(ticketSet)
	return summary, nil
}

// GenerateDailyPDF renders the day's event log as a PDF.
func (s *ReportService) GenerateDailyPDF(summary *DailyEventSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Kitchen Display - Daily Activity Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Service day: %s", summary.Date.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Summary box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Tickets touched: %d", summary.Tickets), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Total events: %d", len(summary.Events)), "RB", 1, "L", false, 0, "")

	order := []models.EventType{
		models.EventSent, models.EventStart, models.EventFinish, models.EventServe,
		models.EventMarch, models.EventUnmarch, models.EventAddItems,
		models.EventPrint, models.EventRecall,
	}
	for i := 0; i < len(order); i += 2 {
		left := fmt.Sprintf("%s: %d", order[i], summary.CountByType[order[i]])
		right := ""
		if i+1 < len(order) {
			right = fmt.Sprintf("%s: %d", order[i+1], summary.CountByType[order[i+1]])
		}
		pdf.CellFormat(95, 7, left, "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, right, "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Event table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Event Log", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(25, 7, "Time", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Ticket", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Actor", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Monitor", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Detail", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, e := range summary.Events {
		monitor := "-"
		if e.MonitorID != nil {
			monitor = fmt.Sprintf("%d", *e.MonitorID)
		}
		payload := e.Payload
		if len(payload) > 24 {
			payload = payload[:21] + "..."
		}
		pdf.CellFormat(25, 6, timeutil.ToLocal(e.CreatedAt).Format(timeutil.TimeLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, string(e.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, e.TicketID.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", e.ActorID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, monitor, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, payload, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
