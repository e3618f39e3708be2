package handlers

import (
	"encoding/json"
	"net/http"

	"kds-backend/internal/models"
	"kds-backend/internal/services"
	"kds-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// IntakeHandler is the seam order entry posts to when food is fired.
type IntakeHandler struct {
	Service *services.IntakeService
}

func NewIntakeHandler(s *services.IntakeService) *IntakeHandler {
	return &IntakeHandler{Service: s}
}

type intakeResponse struct {
	Ticket *models.Ticket       `json:"ticket"`
	Lines  []*models.TicketLine `json:"lines"`
}

func (h *IntakeHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.IntakeTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ticket, lines, err := h.Service.Ingest(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, intakeResponse{Ticket: ticket, Lines: lines})
}

func (h *IntakeHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	ticketID, err := uuid.Parse(mux.Vars(r)["ticketId"])
	if err != nil {
		http.Error(w, "Invalid ticket id", http.StatusBadRequest)
		return
	}

	var reqs []models.IntakeLineRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lines, err := h.Service.AddItems(r.Context(), ticketID, reqs)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, lines)
}
