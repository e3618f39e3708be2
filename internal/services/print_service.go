package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kds-backend/internal/models"

	"github.com/google/uuid"
)

// PrintService dispatches chits to the local printer bridge over HTTP. The
// bridge owns the ESC/POS details; this side only ships the chit payload.
type PrintService struct {
	baseURL string
	client  *http.Client
}

func NewPrintService(baseURL string) *PrintService {
	return &PrintService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type chitLine struct {
	ItemName  string   `json:"item_name"`
	Quantity  int      `json:"quantity"`
	Notes     string   `json:"notes,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Course    int      `json:"course"`
	IsRush    bool     `json:"is_rush"`
}

type chitPayload struct {
	TicketID uuid.UUID  `json:"ticket_id"`
	Kind     string     `json:"kind"` // "line" or "ticket"
	Station  string     `json:"station,omitempty"`
	Lines    []chitLine `json:"lines"`
}

// PrintLineChit prints one item's chit at its station.
func (s *PrintService) PrintLineChit(ctx context.Context, line *models.TicketLine) error {
	payload := chitPayload{
		TicketID: line.TicketID,
		Kind:     "line",
		Station:  string(line.Destination),
		Lines:    []chitLine{toChitLine(line)},
	}
	return s.dispatch(ctx, payload)
}

// PrintTicketChit prints the consolidated ticket chit, every line included.
func (s *PrintService) PrintTicketChit(ctx context.Context, ticketID uuid.UUID, lines []*models.TicketLine) error {
	payload := chitPayload{
		TicketID: ticketID,
		Kind:     "ticket",
		Lines:    make([]chitLine, 0, len(lines)),
	}
	for _, line := range lines {
		payload.Lines = append(payload.Lines, toChitLine(line))
	}
	return s.dispatch(ctx, payload)
}

func (s *PrintService) dispatch(ctx context.Context, payload chitPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal chit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/print", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach printer bridge: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("printer bridge error: %s", string(body))
	}
	return nil
}

func toChitLine(line *models.TicketLine) chitLine {
	cl := chitLine{
		ItemName: line.ItemName,
		Quantity: line.Quantity,
		Notes:    line.Notes,
		Course:   line.Course,
		IsRush:   line.IsRush,
	}
	for _, m := range line.Modifiers {
		cl.Modifiers = append(cl.Modifiers, m.Name)
	}
	return cl
}
