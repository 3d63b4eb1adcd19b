// Package testfixtures provides deterministic domain records for tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
)

var (
	employeeCounter    uint64
	appointmentCounter uint64
	ruleCounter        uint64
	exceptionCounter   uint64
	absenceCounter     uint64
	overrideCounter    uint64
)

// ReferenceDate is the canonical baseline date used by fixtures: a Monday.
var ReferenceDate = calendar.NewDate(2026, time.February, 2)

// EmployeeOption configures a generated employee fixture.
type EmployeeOption func(*calendar.Employee)

// NewEmployee returns a deterministic active employee with optional overrides.
func NewEmployee(opts ...EmployeeOption) calendar.Employee {
	idx := atomic.AddUint64(&employeeCounter, 1)
	employee := calendar.Employee{
		ID:          fmt.Sprintf("emp-%03d", idx),
		DisplayName: fmt.Sprintf("Mitarbeiter %03d", idx),
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(&employee)
	}
	return employee
}

// WithEmployeeID overrides the employee id.
func WithEmployeeID(id string) EmployeeOption {
	return func(e *calendar.Employee) { e.ID = id }
}

// WithDisplayName overrides the display name.
func WithDisplayName(name string) EmployeeOption {
	return func(e *calendar.Employee) { e.DisplayName = name }
}

// Inactive marks the employee inactive.
func Inactive() EmployeeOption {
	return func(e *calendar.Employee) { e.IsActive = false }
}

// AppointmentOption configures a generated appointment fixture.
type AppointmentOption func(*calendar.Appointment)

// NewAppointment returns a deterministic one-hour appointment on the
// reference date with optional overrides.
func NewAppointment(opts ...AppointmentOption) calendar.Appointment {
	idx := atomic.AddUint64(&appointmentCounter, 1)
	appointment := calendar.Appointment{
		ID:           fmt.Sprintf("appt-%03d", idx),
		EmployeeID:   "emp-001",
		Date:         ReferenceDate,
		Start:        calendar.NewTimeOfDay(9, 0),
		End:          calendar.NewTimeOfDay(10, 0),
		CustomerName: fmt.Sprintf("Kunde %03d", idx),
		Status:       calendar.StatusNormal,
	}
	for _, opt := range opts {
		opt(&appointment)
	}
	return appointment
}

// AppointmentFor sets the employee id.
func AppointmentFor(employeeID string) AppointmentOption {
	return func(a *calendar.Appointment) { a.EmployeeID = employeeID }
}

// AppointmentOn sets the date.
func AppointmentOn(d calendar.Date) AppointmentOption {
	return func(a *calendar.Appointment) { a.Date = d }
}

// AppointmentAt sets start and end.
func AppointmentAt(start, end calendar.TimeOfDay) AppointmentOption {
	return func(a *calendar.Appointment) { a.Start, a.End = start, end }
}

// AppointmentCustomer sets the customer name.
func AppointmentCustomer(name string) AppointmentOption {
	return func(a *calendar.Appointment) { a.CustomerName = name }
}

// AppointmentStatus sets the status.
func AppointmentStatus(status calendar.Status) AppointmentOption {
	return func(a *calendar.Appointment) { a.Status = status }
}

// RuleOption configures a generated recurrence rule fixture.
type RuleOption func(*calendar.RecurrenceRule)

// NewRule returns a deterministic weekly Monday rule anchored at the
// reference date with optional overrides.
func NewRule(opts ...RuleOption) calendar.RecurrenceRule {
	idx := atomic.AddUint64(&ruleCounter, 1)
	rule := calendar.RecurrenceRule{
		ID:            fmt.Sprintf("rule-%03d", idx),
		EmployeeID:    "emp-001",
		Weekday:       time.Monday,
		Start:         calendar.NewTimeOfDay(8, 0),
		End:           calendar.NewTimeOfDay(9, 0),
		CustomerName:  fmt.Sprintf("Serienkunde %03d", idx),
		IsActive:      true,
		IntervalWeeks: 1,
		AnchorDate:    ReferenceDate,
	}
	for _, opt := range opts {
		opt(&rule)
	}
	return rule
}

// RuleFor sets the employee id.
func RuleFor(employeeID string) RuleOption {
	return func(r *calendar.RecurrenceRule) { r.EmployeeID = employeeID }
}

// RuleWeekday sets the weekday.
func RuleWeekday(weekday time.Weekday) RuleOption {
	return func(r *calendar.RecurrenceRule) { r.Weekday = weekday }
}

// RuleAt sets start and end.
func RuleAt(start, end calendar.TimeOfDay) RuleOption {
	return func(r *calendar.RecurrenceRule) { r.Start, r.End = start, end }
}

// RuleInterval sets interval and anchor.
func RuleInterval(weeks int, anchor calendar.Date) RuleOption {
	return func(r *calendar.RecurrenceRule) {
		r.IntervalWeeks = weeks
		r.AnchorDate = anchor
	}
}

// RuleInactive deactivates the rule.
func RuleInactive() RuleOption {
	return func(r *calendar.RecurrenceRule) { r.IsActive = false }
}

// ExceptionOption configures a generated recurrence exception fixture.
type ExceptionOption func(*calendar.RecurrenceException)

// NewException returns an exception matching NewRule's slot on the reference
// date, which expanders treat as a cancellation unless overridden.
func NewException(ruleID string, opts ...ExceptionOption) calendar.RecurrenceException {
	idx := atomic.AddUint64(&exceptionCounter, 1)
	exception := calendar.RecurrenceException{
		ID:               fmt.Sprintf("ex-%03d", idx),
		RecurrenceRuleID: ruleID,
		EmployeeID:       "emp-001",
		Date:             ReferenceDate,
		Start:            calendar.NewTimeOfDay(8, 0),
		End:              calendar.NewTimeOfDay(9, 0),
		CustomerName:     "",
	}
	for _, opt := range opts {
		opt(&exception)
	}
	return exception
}

// ExceptionOn sets the date.
func ExceptionOn(d calendar.Date) ExceptionOption {
	return func(e *calendar.RecurrenceException) { e.Date = d }
}

// ExceptionAt sets start and end.
func ExceptionAt(start, end calendar.TimeOfDay) ExceptionOption {
	return func(e *calendar.RecurrenceException) { e.Start, e.End = start, end }
}

// ExceptionFor sets the employee id.
func ExceptionFor(employeeID string) ExceptionOption {
	return func(e *calendar.RecurrenceException) { e.EmployeeID = employeeID }
}

// NewAbsence returns a deterministic vacation absence on the reference date.
func NewAbsence(employeeID string, d calendar.Date) calendar.Absence {
	idx := atomic.AddUint64(&absenceCounter, 1)
	return calendar.Absence{
		ID:         fmt.Sprintf("abs-%03d", idx),
		EmployeeID: employeeID,
		Date:       d,
		Type:       calendar.AbsenceVacation,
	}
}

// NewOverride returns a status override matching the given appointment's key.
func NewOverride(appointment calendar.Appointment, status calendar.Status) calendar.StatusOverride {
	idx := atomic.AddUint64(&overrideCounter, 1)
	return calendar.StatusOverride{
		ID:           fmt.Sprintf("ovr-%03d", idx),
		EmployeeID:   appointment.EmployeeID,
		Date:         appointment.Date,
		Start:        appointment.Start,
		End:          appointment.End,
		CustomerName: appointment.CustomerName,
		Status:       status,
	}
}
