package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/staff-calendar/internal/application"
	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/editor"
)

// EditorHandler exposes the click protocol over HTTP. Interactive answers
// (duration, series scope, confirmation) travel as request fields and are
// replayed to the service through a per-request prompter.
type EditorHandler struct {
	editors   *application.EditorService
	responder responder
}

// NewEditorHandler constructs the handler.
func NewEditorHandler(editors *application.EditorService, logger *slog.Logger) *EditorHandler {
	return &EditorHandler{
		editors:   editors,
		responder: newResponder(logger),
	}
}

type selectCellRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	SlotStart  string `json:"slotStart"`

	// Answers for the questions a click may raise.
	Slots     *int    `json:"slots,omitempty"`
	Scope     *string `json:"scope,omitempty"`
	Confirmed *bool   `json:"confirmed,omitempty"`
}

type distributeRequest struct {
	CustomerName string `json:"customerName"`
}

type durationRequest struct {
	Slots *int    `json:"slots"`
	Scope *string `json:"scope,omitempty"`
}

type deleteRequest struct {
	Confirmed *bool   `json:"confirmed"`
	Scope     *string `json:"scope,omitempty"`
}

type seriesRequest struct {
	IntervalWeeks int `json:"intervalWeeks"`
}

// SelectCell serves POST /editor/select.
func (h *EditorHandler) SelectCell(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req selectCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	ref, err := parseCellRef(req.EmployeeID, req.Date, req.SlotStart)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	prompter := requestPrompter{slots: req.Slots, scope: req.Scope, confirmed: req.Confirmed}
	view, err := h.editors.SelectCell(ctx, prompter, ref)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toMonthViewResponse(view))
}

// StartDistribute serves POST /editor/distribute.
func (h *EditorHandler) StartDistribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req distributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := h.editors.StartDistribute(ctx, req.CustomerName); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

// StartMove serves POST /editor/move.
func (h *EditorHandler) StartMove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.editors.StartMove(ctx); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

// EditDuration serves POST /editor/duration.
func (h *EditorHandler) EditDuration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req durationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	prompter := requestPrompter{slots: req.Slots, scope: req.Scope}
	view, err := h.editors.EditDuration(ctx, prompter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toMonthViewResponse(view))
}

// Delete serves POST /editor/delete.
func (h *EditorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	prompter := requestPrompter{scope: req.Scope, confirmed: req.Confirmed}
	view, err := h.editors.Delete(ctx, prompter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toMonthViewResponse(view))
}

// CreateSeries serves POST /editor/series.
func (h *EditorHandler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req seriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	view, err := h.editors.CreateSeries(ctx, req.IntervalWeeks)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toMonthViewResponse(view))
}

// Cancel serves POST /editor/cancel.
func (h *EditorHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.editors.Cancel(ctx); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

func parseCellRef(employeeID, dateValue, slotValue string) (calendar.CellRef, error) {
	if employeeID == "" {
		return calendar.CellRef{}, errMissingID
	}
	date, err := calendar.ParseDate(dateValue)
	if err != nil {
		return calendar.CellRef{}, errInvalidDate
	}
	slot, err := calendar.ParseTimeOfDay(slotValue)
	if err != nil {
		return calendar.CellRef{}, errInvalidTime
	}
	return calendar.CellRef{EmployeeID: employeeID, Date: date, SlotStart: slot}, nil
}

// requestPrompter answers machine questions from request fields. A missing
// field aborts the operation, mirroring a dismissed dialog.
type requestPrompter struct {
	slots     *int
	scope     *string
	confirmed *bool
}

func (p requestPrompter) PickDuration(context.Context) (int, bool, error) {
	if p.slots == nil {
		return 0, false, nil
	}
	return *p.slots, true, nil
}

func (p requestPrompter) PickSeriesScope(context.Context) (editor.SeriesScope, bool, error) {
	if p.scope == nil {
		return 0, false, nil
	}
	switch *p.scope {
	case "series":
		return editor.ScopeSeries, true, nil
	case "occurrence":
		return editor.ScopeOccurrence, true, nil
	default:
		return 0, false, nil
	}
}

func (p requestPrompter) Confirm(context.Context, string) (bool, error) {
	return p.confirmed != nil && *p.confirmed, nil
}
