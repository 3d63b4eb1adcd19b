package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/staff-calendar/internal/application"
	"github.com/example/staff-calendar/internal/ics"
)

// MonthHandler serves composed month views as JSON and as iCalendar feeds.
type MonthHandler struct {
	calendars *application.CalendarService
	responder responder
}

// NewMonthHandler constructs the handler.
func NewMonthHandler(calendars *application.CalendarService, logger *slog.Logger) *MonthHandler {
	return &MonthHandler{
		calendars: calendars,
		responder: newResponder(logger),
	}
}

// Get serves GET /month/{year}/{month}. The optional employees query
// parameter narrows the view to a comma separated id list.
func (h *MonthHandler) Get(w http.ResponseWriter, r *http.Request, yearValue, monthValue string) {
	ctx := r.Context()

	year, month, err := parseYearMonth(yearValue, monthValue)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	var filter []string
	if raw := strings.TrimSpace(r.URL.Query().Get("employees")); raw != "" {
		filter = strings.Split(raw, ",")
	}

	view, err := h.calendars.MonthView(ctx, year, month, filter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toMonthViewResponse(view))
}

// GetICS serves GET /month/{year}/{month}/ics with the same optional
// employees filter as the JSON view.
func (h *MonthHandler) GetICS(w http.ResponseWriter, r *http.Request, yearValue, monthValue string) {
	ctx := r.Context()

	year, month, err := parseYearMonth(yearValue, monthValue)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	var filter []string
	if raw := strings.TrimSpace(r.URL.Query().Get("employees")); raw != "" {
		filter = strings.Split(raw, ",")
	}

	view, err := h.calendars.MonthView(ctx, year, month, filter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(ics.ExportMonth(view))); err != nil {
		h.responder.loggerFor(ctx).ErrorContext(ctx, "failed to write ics response", "error", err)
	}
}

func parseYearMonth(yearValue, monthValue string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearValue)
	if err != nil || year < 1 {
		return 0, 0, errInvalidYear
	}
	monthNumber, err := strconv.Atoi(monthValue)
	if err != nil || monthNumber < 1 || monthNumber > 12 {
		return 0, 0, errInvalidMonth
	}
	return year, time.Month(monthNumber), nil
}
