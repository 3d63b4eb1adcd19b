package editor

import "github.com/example/staff-calendar/internal/calendar"

// SeriesScope selects whether a mutation applies to a single occurrence of a
// recurring appointment or to the whole series.
type SeriesScope int

const (
	// ScopeOccurrence applies the mutation to one occurrence only.
	ScopeOccurrence SeriesScope = iota
	// ScopeSeries applies the mutation to the owning rule.
	ScopeSeries
)

// Event is a fully resolved input to the state machine. Interactive answers
// (duration, series scope, confirmation) are collected by the caller before
// the event is applied, so applying an event never blocks.
type Event interface {
	isEvent()
}

// SelectCell records a cell click. In Idle it only updates the selection.
type SelectCell struct {
	Ref calendar.CellRef
}

// StartDistribute arms appointment creation for the given customer. The next
// empty-cell placement creates a fixed appointment.
type StartDistribute struct {
	CustomerName string
}

// PlaceAppointment supplies the target cell and duration for a pending
// distribute. Clicking an occupied cell is a no-op.
type PlaceAppointment struct {
	Ref   calendar.CellRef
	Slots int
}

// StartMove arms a move of the currently selected appointment. The next
// MoveTo event supplies the target cell.
type StartMove struct{}

// MoveTo supplies the move target. Scope is only consulted for recurring
// appointments.
type MoveTo struct {
	Ref   calendar.CellRef
	Scope SeriesScope
}

// EditDuration resizes the selected appointment to the given slot count.
type EditDuration struct {
	Slots int
	Scope SeriesScope
}

// DeleteSelected removes the selected appointment. The caller confirms the
// deletion before applying the event.
type DeleteSelected struct {
	Scope SeriesScope
}

// MakeSeries turns the selected non-recurring appointment into a weekly
// recurrence rule anchored at its date.
type MakeSeries struct {
	IntervalWeeks int
}

// Abort drops any pending distribute or move and returns to Idle.
type Abort struct{}

func (SelectCell) isEvent()       {}
func (StartDistribute) isEvent()  {}
func (PlaceAppointment) isEvent() {}
func (StartMove) isEvent()        {}
func (MoveTo) isEvent()           {}
func (EditDuration) isEvent()     {}
func (DeleteSelected) isEvent()   {}
func (MakeSeries) isEvent()       {}
func (Abort) isEvent()            {}
