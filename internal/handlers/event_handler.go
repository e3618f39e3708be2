package handlers

import (
	"net/http"

	"kds-backend/internal/services"
	"kds-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type EventHandler struct {
	Events services.EventStore
}

func NewEventHandler(events services.EventStore) *EventHandler {
	return &EventHandler{Events: events}
}

// ListTicketEvents returns a ticket's audit trail, newest first.
func (h *EventHandler) ListTicketEvents(w http.ResponseWriter, r *http.Request) {
	ticketID, err := uuid.Parse(mux.Vars(r)["ticketId"])
	if err != nil {
		http.Error(w, "Invalid ticket id", http.StatusBadRequest)
		return
	}

	events, err := h.Events.ListByTicket(r.Context(), ticketID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, events)
}
