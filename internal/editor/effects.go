package editor

import (
	"time"

	"github.com/example/staff-calendar/internal/calendar"
)

// Effect is a store mutation requested by a transition. The machine never
// touches the store itself; the caller executes the effects in order and
// rebuilds the view afterwards.
type Effect interface {
	isEffect()
}

// CreateAppointment inserts a new explicit appointment.
type CreateAppointment struct {
	Appointment calendar.Appointment
}

// UpdateAppointment rewrites an existing explicit appointment.
type UpdateAppointment struct {
	Appointment calendar.Appointment
}

// DeleteAppointment removes an explicit appointment.
type DeleteAppointment struct {
	ID string
}

// CreateException inserts a recurrence exception. A cancellation carries the
// rule's own slot values; an override carries the replacement slot.
type CreateException struct {
	Exception calendar.RecurrenceException
}

// UpdateException rewrites an existing recurrence exception in place.
type UpdateException struct {
	Exception calendar.RecurrenceException
}

// DeleteException removes a recurrence exception.
type DeleteException struct {
	ID string
}

// CreateRule inserts a new recurrence rule.
type CreateRule struct {
	Rule calendar.RecurrenceRule
}

// RescheduleRule rewrites the slot of an existing rule, moving every future
// occurrence at once. Fields not listed here are preserved by the executor.
type RescheduleRule struct {
	RuleID     string
	EmployeeID string
	Weekday    time.Weekday
	Start      calendar.TimeOfDay
	End        calendar.TimeOfDay
}

// DeleteRule removes a rule together with its exceptions.
type DeleteRule struct {
	ID string
}

func (CreateAppointment) isEffect() {}
func (UpdateAppointment) isEffect() {}
func (DeleteAppointment) isEffect() {}
func (CreateException) isEffect()   {}
func (UpdateException) isEffect()   {}
func (DeleteException) isEffect()   {}
func (CreateRule) isEffect()        {}
func (RescheduleRule) isEffect()    {}
func (DeleteRule) isEffect()        {}
