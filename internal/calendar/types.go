package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Status describes the display state of an appointment.
type Status int

const (
	// StatusNormal is the default state for generated and plain appointments.
	StatusNormal Status = iota
	// StatusFixed marks an appointment confirmed with the customer.
	StatusFixed
	// StatusTentative marks an appointment awaiting confirmation.
	StatusTentative
	// StatusCancelled marks an appointment kept for display but called off.
	StatusCancelled
)

// String returns the status name used in logs and JSON payloads.
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusFixed:
		return "fixed"
	case StatusTentative:
		return "tentative"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// AbsenceType classifies a whole-day absence.
type AbsenceType int

const (
	AbsenceVacation AbsenceType = iota
	AbsenceSick
	AbsenceTraining
	AbsenceOther
)

// String returns the absence type name used in logs and JSON payloads.
func (t AbsenceType) String() string {
	switch t {
	case AbsenceVacation:
		return "vacation"
	case AbsenceSick:
		return "sick"
	case AbsenceTraining:
		return "training"
	case AbsenceOther:
		return "other"
	default:
		return fmt.Sprintf("absence(%d)", int(t))
	}
}

// Employee is a staff member shown as a row/filter in the calendar.
type Employee struct {
	ID          string
	DisplayName string
	IsActive    bool
}

// Appointment is one concrete calendar entry: either stored explicitly or
// materialized from a recurrence rule. End is exclusive and must be after
// Start.
type Appointment struct {
	ID               string
	EmployeeID       string
	Date             Date
	Start            TimeOfDay
	End              TimeOfDay
	CustomerName     string
	Status           Status
	FromRecurrence   bool
	RecurrenceRuleID string
}

// DurationMinutes returns the appointment length in minutes.
func (a Appointment) DurationMinutes() int {
	return a.End.Minutes() - a.Start.Minutes()
}

// RecurrenceRule defines an infinite weekly series: occurrences fall on
// Weekday, spaced IntervalWeeks apart measured from the Monday-aligned week
// containing AnchorDate.
type RecurrenceRule struct {
	ID            string
	EmployeeID    string
	Weekday       time.Weekday
	Start         TimeOfDay
	End           TimeOfDay
	CustomerName  string
	IsActive      bool
	IntervalWeeks int
	AnchorDate    Date
}

// RecurrenceException is a per-date record attached to a rule. One whose
// (date, start, end, employee) exactly matches a generated occurrence cancels
// it; any other exception is rendered as a moved/retimed occurrence.
type RecurrenceException struct {
	ID               string
	RecurrenceRuleID string
	EmployeeID       string
	Date             Date
	Start            TimeOfDay
	End              TimeOfDay
	CustomerName     string
}

// Absence is a whole-day absence entry; it never participates in overlap
// checks.
type Absence struct {
	ID         string
	EmployeeID string
	Date       Date
	Type       AbsenceType
	Note       string
}

// StatusOverride retroactively changes the status of the appointment matching
// its (employee, date, start, end, customer) key without creating one.
type StatusOverride struct {
	ID           string
	EmployeeID   string
	Date         Date
	Start        TimeOfDay
	End          TimeOfDay
	CustomerName string
	Status       Status
}

// DayCell is one slot of the rendered 6x7 month grid.
type DayCell struct {
	Date           Date
	InCurrentMonth bool
	IsWeekend      bool
	IsHoliday      bool
	Appointments   []Appointment
	Absences       []Absence
}

// MonthView is the fully composed month: filtered employees plus 42 day
// cells, Monday-first, padded with adjacent-month days.
type MonthView struct {
	Year        int
	Month       time.Month
	SlotMinutes int
	Employees   []Employee
	Cells       []DayCell
}

// Cell returns the grid cell for the given date, or nil when the date is
// outside the rendered grid.
func (v *MonthView) Cell(d Date) *DayCell {
	if v == nil {
		return nil
	}
	for i := range v.Cells {
		if v.Cells[i].Date == d {
			return &v.Cells[i]
		}
	}
	return nil
}

// AppointmentAt resolves the appointment covering the given slot for an
// employee, using half-open interval semantics.
func (v *MonthView) AppointmentAt(employeeID string, d Date, slot TimeOfDay) (Appointment, bool) {
	cell := v.Cell(d)
	if cell == nil {
		return Appointment{}, false
	}
	m := slot.Minutes()
	for _, appt := range cell.Appointments {
		if appt.EmployeeID != employeeID {
			continue
		}
		if appt.Start.Minutes() <= m && m < appt.End.Minutes() {
			return appt, true
		}
	}
	return Appointment{}, false
}

// CellRef addresses one clickable slot of the grid.
type CellRef struct {
	EmployeeID string
	Date       Date
	SlotStart  TimeOfDay
}

// OccurrenceID derives the deterministic id of a generated occurrence so
// re-expansion is idempotent.
func OccurrenceID(ruleID string, d Date, start TimeOfDay) string {
	return fmt.Sprintf("rec:%s:%04d%02d%02d:%02d%02d", ruleID, d.Year, int(d.Month), d.Day, start.Hour, start.Minute)
}

// ExceptionOccurrenceID derives the deterministic id of an occurrence
// materialized from an exception record.
func ExceptionOccurrenceID(exceptionID string) string {
	return "ex:" + exceptionID
}

// SourceExceptionID extracts the exception record id from a materialized
// occurrence id, reporting whether the appointment came from an exception.
func SourceExceptionID(appointmentID string) (string, bool) {
	id, ok := strings.CutPrefix(appointmentID, "ex:")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
