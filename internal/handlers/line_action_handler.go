package handlers

import (
	"encoding/json"
	"net/http"

	"kds-backend/internal/middleware"
	"kds-backend/internal/models"
	"kds-backend/internal/services"
	"kds-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// LineActionHandler exposes the lifecycle actions a display fires:
// start/finish/serve on one or many lines, plus course marching.
type LineActionHandler struct {
	Service *services.LifecycleService
}

func NewLineActionHandler(s *services.LifecycleService) *LineActionHandler {
	return &LineActionHandler{Service: s}
}

func (h *LineActionHandler) StartLine(w http.ResponseWriter, r *http.Request) {
	h.applySingle(w, r, services.ActionStart)
}

func (h *LineActionHandler) FinishLine(w http.ResponseWriter, r *http.Request) {
	h.applySingle(w, r, services.ActionFinish)
}

func (h *LineActionHandler) ServeLine(w http.ResponseWriter, r *http.Request) {
	h.applySingle(w, r, services.ActionServe)
}

func (h *LineActionHandler) StartBatch(w http.ResponseWriter, r *http.Request) {
	h.applyBatch(w, r, services.ActionStart)
}

func (h *LineActionHandler) FinishBatch(w http.ResponseWriter, r *http.Request) {
	h.applyBatch(w, r, services.ActionFinish)
}

func (h *LineActionHandler) ServeBatch(w http.ResponseWriter, r *http.Request) {
	h.applyBatch(w, r, services.ActionServe)
}

func (h *LineActionHandler) applySingle(w http.ResponseWriter, r *http.Request, action services.LineAction) {
	lineID, err := uuid.Parse(mux.Vars(r)["lineId"])
	if err != nil {
		http.Error(w, "Invalid line id", http.StatusBadRequest)
		return
	}

	var req models.LineActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	line, err := h.Service.Apply(r.Context(), lineID, action, actorID, req.MonitorID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, line)
}

func (h *LineActionHandler) applyBatch(w http.ResponseWriter, r *http.Request, action services.LineAction) {
	var req models.BatchActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	lines, err := h.Service.ApplyBatch(r.Context(), req.LineIDs, action, actorID, req.MonitorID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, lines)
}

// MarchCourse releases a (ticket, course) pair to be served together.
func (h *LineActionHandler) MarchCourse(w http.ResponseWriter, r *http.Request) {
	h.march(w, r, true)
}

// UnmarchCourse takes the release back.
func (h *LineActionHandler) UnmarchCourse(w http.ResponseWriter, r *http.Request) {
	h.march(w, r, false)
}

func (h *LineActionHandler) march(w http.ResponseWriter, r *http.Request, marched bool) {
	var req models.MarchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	flag, err := h.Service.March(r.Context(), req.TicketID, req.Course, marched, actorID, req.MonitorID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, flag)
}
