package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/staff-calendar/internal/application"
	"github.com/example/staff-calendar/internal/calendar"
)

// OverrideHandler manages per-slot status overrides.
type OverrideHandler struct {
	calendars *application.CalendarService
	responder responder
}

// NewOverrideHandler constructs the handler.
func NewOverrideHandler(calendars *application.CalendarService, logger *slog.Logger) *OverrideHandler {
	return &OverrideHandler{
		calendars: calendars,
		responder: newResponder(logger),
	}
}

type overrideRequest struct {
	ID           string `json:"id,omitempty"`
	EmployeeID   string `json:"employeeId"`
	Date         string `json:"date"`
	Start        string `json:"start"`
	End          string `json:"end"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
}

type overridePayload struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	Date         string `json:"date"`
	Start        string `json:"start"`
	End          string `json:"end"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
}

// Upsert serves POST /status-overrides.
func (h *OverrideHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidDate)
		return
	}
	start, err := calendar.ParseTimeOfDay(req.Start)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidTime)
		return
	}
	end, err := calendar.ParseTimeOfDay(req.End)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidTime)
		return
	}

	override := calendar.StatusOverride{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		Date:         date,
		Start:        start,
		End:          end,
		CustomerName: req.CustomerName,
		Status:       parseStatus(req.Status),
	}

	saved, err := h.calendars.UpsertStatusOverride(ctx, override)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, overridePayload{
		ID:           saved.ID,
		EmployeeID:   saved.EmployeeID,
		Date:         saved.Date.String(),
		Start:        saved.Start.String(),
		End:          saved.End.String(),
		CustomerName: saved.CustomerName,
		Status:       saved.Status.String(),
	})
}

// Delete serves DELETE /status-overrides/{id}.
func (h *OverrideHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	if err := h.calendars.DeleteStatusOverride(ctx, id); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

func parseStatus(value string) calendar.Status {
	switch value {
	case "fixed":
		return calendar.StatusFixed
	case "tentative":
		return calendar.StatusTentative
	case "cancelled":
		return calendar.StatusCancelled
	default:
		return calendar.StatusNormal
	}
}
