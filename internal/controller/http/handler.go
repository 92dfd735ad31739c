package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staffbridge/availability/internal/repository/base"
	"github.com/staffbridge/availability/internal/schedule"
	"github.com/staffbridge/availability/internal/service"
)

// Handler exposes the availability service as a JSON API. It stays thin:
// parsing and status mapping only, no scheduling logic.
type Handler struct {
	svc    *service.AvailabilityService
	logger *zap.Logger
}

func NewHandler(svc *service.AvailabilityService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// maxCalendarRangeDays bounds one calendar request. Resolution walks the
// range day by day, so an unbounded range would burn CPU per request; a
// year plus slack covers every calendar and statistics view.
const maxCalendarRangeDays = 370

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /owners/{ownerID}/slots", h.createSlot)
	mux.HandleFunc("PUT /owners/{ownerID}/slots/{slotID}", h.updateSlot)
	mux.HandleFunc("DELETE /owners/{ownerID}/slots/{slotID}", h.deleteSlot)
	mux.HandleFunc("GET /owners/{ownerID}/calendar", h.getCalendar)
	mux.HandleFunc("POST /owners/{ownerID}/slots/conflicts", h.checkConflicts)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return withAccessLog(h.logger, mux)
}

func (h *Handler) createSlot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	var in schedule.SlotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "body", "invalid JSON")
		return
	}

	result, err := h.svc.CreateSlot(r.Context(), ownerID, in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) updateSlot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	slotID, err := uuid.Parse(r.PathValue("slotID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "slot_id", "invalid slot id")
		return
	}

	var in schedule.SlotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "body", "invalid JSON")
		return
	}

	result, err := h.svc.UpdateSlot(r.Context(), ownerID, slotID, in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) deleteSlot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	slotID, err := uuid.Parse(r.PathValue("slotID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "slot_id", "invalid slot id")
		return
	}

	if err := h.svc.DeleteSlot(r.Context(), ownerID, slotID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCalendar(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "from", "invalid RFC 3339 timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "to", "invalid RFC 3339 timestamp")
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "to", "range end before range start")
		return
	}
	if to.Sub(from) > maxCalendarRangeDays*24*time.Hour {
		writeError(w, http.StatusBadRequest, "to", "range exceeds 370 days")
		return
	}

	cal, err := h.svc.GetCalendar(r.Context(), ownerID, from, to)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (h *Handler) checkConflicts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	var in schedule.SlotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "body", "invalid JSON")
		return
	}

	conflicts, err := h.svc.CheckConflicts(r.Context(), ownerID, in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conflicts": conflicts})
}

func (h *Handler) ownerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("ownerID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "owner_id", "invalid owner id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := schedule.AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": ve})
		return
	}
	if errors.Is(err, schedule.ErrNotFound) {
		writeError(w, http.StatusNotFound, "", "slot not found")
		return
	}
	if base.IsRetryable(err) {
		// Transient persistence failure; the client may retry.
		h.logger.Warn("Request failed on transient error", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "", "temporarily unavailable, retry")
		return
	}
	h.logger.Error("Request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, field, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"field": field, "message": message},
	})
}
