package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/staff-calendar/internal/application"
	"github.com/example/staff-calendar/internal/calendar"
)

// AbsenceHandler manages whole-day absences.
type AbsenceHandler struct {
	calendars *application.CalendarService
	responder responder
}

// NewAbsenceHandler constructs the handler.
func NewAbsenceHandler(calendars *application.CalendarService, logger *slog.Logger) *AbsenceHandler {
	return &AbsenceHandler{
		calendars: calendars,
		responder: newResponder(logger),
	}
}

type absenceRequest struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Note       string `json:"note,omitempty"`
}

// Upsert serves POST /absences.
func (h *AbsenceHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req absenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidDate)
		return
	}

	absence := calendar.Absence{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		Type:       parseAbsenceType(req.Type),
		Note:       req.Note,
	}

	saved, err := h.calendars.UpsertAbsence(ctx, absence)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, absencePayload{
		ID:         saved.ID,
		EmployeeID: saved.EmployeeID,
		Date:       saved.Date.String(),
		Type:       saved.Type.String(),
		Note:       saved.Note,
	})
}

// Delete serves DELETE /absences/{id}.
func (h *AbsenceHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	if err := h.calendars.DeleteAbsence(ctx, id); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

func parseAbsenceType(value string) calendar.AbsenceType {
	switch value {
	case "vacation":
		return calendar.AbsenceVacation
	case "sick":
		return calendar.AbsenceSick
	case "training":
		return calendar.AbsenceTraining
	default:
		return calendar.AbsenceOther
	}
}
