package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"kds-backend/internal/models"
	"kds-backend/internal/services"
	"kds-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type MonitorHandler struct {
	Service *services.MonitorService
}

func NewMonitorHandler(s *services.MonitorService) *MonitorHandler {
	return &MonitorHandler{Service: s}
}

func (h *MonitorHandler) CreateMonitor(w http.ResponseWriter, r *http.Request) {
	var req models.MonitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	monitor, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, monitor)
}

func (h *MonitorHandler) GetMonitor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid monitor id", http.StatusBadRequest)
		return
	}

	monitor, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, monitor)
}

func (h *MonitorHandler) ListMonitors(w http.ResponseWriter, r *http.Request) {
	locationID, _ := strconv.Atoi(r.URL.Query().Get("location_id"))

	monitors, err := h.Service.ListActive(r.Context(), locationID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, monitors)
}

func (h *MonitorHandler) UpdateMonitor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid monitor id", http.StatusBadRequest)
		return
	}

	var req models.MonitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	monitor, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, monitor)
}

func (h *MonitorHandler) DeleteMonitor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid monitor id", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
