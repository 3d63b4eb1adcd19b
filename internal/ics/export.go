// Package ics renders a composed month as an iCalendar feed so the schedule
// can be subscribed to from external calendar clients.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/example/staff-calendar/internal/calendar"
)

// ExportMonth serializes every appointment of the view into a single
// iCalendar document. Cancelled appointments are carried with the matching
// iCalendar status so clients render them struck through rather than
// dropping them.
func ExportMonth(view *calendar.MonthView) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//staff-calendar//DE")

	names := make(map[string]string, len(view.Employees))
	for _, emp := range view.Employees {
		names[emp.ID] = emp.DisplayName
	}

	for i := range view.Cells {
		cell := &view.Cells[i]
		if !cell.InCurrentMonth {
			continue
		}
		for _, appt := range cell.Appointments {
			event := cal.AddEvent(appt.ID)
			event.SetSummary(summaryFor(appt, names[appt.EmployeeID]))
			event.SetStartAt(appt.Date.Time().Add(minutesDuration(appt.Start.Minutes())))
			event.SetEndAt(appt.Date.Time().Add(minutesDuration(appt.End.Minutes())))
			switch appt.Status {
			case calendar.StatusCancelled:
				event.SetStatus(ical.ObjectStatusCancelled)
			case calendar.StatusTentative:
				event.SetStatus(ical.ObjectStatusTentative)
			default:
				event.SetStatus(ical.ObjectStatusConfirmed)
			}
		}
	}

	return cal.Serialize()
}

func minutesDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}

func summaryFor(appt calendar.Appointment, employeeName string) string {
	if employeeName == "" {
		return appt.CustomerName
	}
	return fmt.Sprintf("%s (%s)", appt.CustomerName, employeeName)
}
