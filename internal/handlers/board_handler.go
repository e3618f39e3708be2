package handlers

import (
	"net/http"
	"strconv"

	"kds-backend/internal/realtime"
	"kds-backend/internal/services"
	"kds-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type BoardHandler struct {
	Boards   *services.BoardService
	Monitors *services.MonitorService
	Hub      *realtime.Hub
}

func NewBoardHandler(boards *services.BoardService, monitors *services.MonitorService, hub *realtime.Hub) *BoardHandler {
	return &BoardHandler{Boards: boards, Monitors: monitors, Hub: hub}
}

// GetBoard returns the full display payload for one monitor: grouped,
// styled orders (or product aggregates) plus the served-history strip.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	monitorID, err := strconv.Atoi(mux.Vars(r)["monitorId"])
	if err != nil {
		http.Error(w, "Invalid monitor id", http.StatusBadRequest)
		return
	}

	snapshot, err := h.Boards.Snapshot(r.Context(), monitorID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, snapshot)
}

// Subscribe upgrades to a websocket that receives board-change hints for
// the monitor's stations. The display re-fetches its snapshot on each hint.
func (h *BoardHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	monitorID, err := strconv.Atoi(mux.Vars(r)["monitorId"])
	if err != nil {
		http.Error(w, "Invalid monitor id", http.StatusBadRequest)
		return
	}

	monitor, err := h.Monitors.Get(r.Context(), monitorID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.Hub.Subscribe(w, r, monitor)
}
