package handlers

import (
	"net/http"
	"strconv"

	"kds-backend/internal/middleware"
	"kds-backend/internal/services"
	"kds-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type HistoryHandler struct {
	Service *services.HistoryService
}

func NewHistoryHandler(s *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: s}
}

// GetClosedLines returns the recently served lines inside the monitor's
// trailing window, most recent first.
func (h *HistoryHandler) GetClosedLines(w http.ResponseWriter, r *http.Request) {
	monitorID, err := strconv.Atoi(mux.Vars(r)["monitorId"])
	if err != nil {
		http.Error(w, "Invalid monitor id", http.StatusBadRequest)
		return
	}

	lines, err := h.Service.ClosedLines(r.Context(), monitorID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, lines)
}

// RecallLine re-prints a served line's chit and records the recall.
func (h *HistoryHandler) RecallLine(w http.ResponseWriter, r *http.Request) {
	lineID, err := uuid.Parse(mux.Vars(r)["lineId"])
	if err != nil {
		http.Error(w, "Invalid line id", http.StatusBadRequest)
		return
	}

	monitorID, _ := strconv.Atoi(r.URL.Query().Get("monitor_id"))
	actorID, _ := middleware.GetUserIDFromContext(r.Context())

	line, err := h.Service.Recall(r.Context(), lineID, actorID, monitorID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, line)
}
