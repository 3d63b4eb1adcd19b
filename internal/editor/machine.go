// Package editor implements the click-driven selection and mutation protocol
// of the calendar as a pure state machine. Applying an event yields the next
// state plus the store mutations it requires; nothing is written until the
// caller executes the effects, so a failed transition leaves no partial
// writes behind.
package editor

import (
	"github.com/example/staff-calendar/internal/calendar"
)

// Mode identifies the pending interaction of the machine.
type Mode int

const (
	// ModeIdle accepts selection clicks and mutation commands.
	ModeIdle Mode = iota
	// ModeDistribute waits for an empty cell to place a new appointment in.
	ModeDistribute
	// ModeMoveWaitTarget waits for the target cell of a pending move.
	ModeMoveWaitTarget
)

// State is the immutable machine state threaded through Apply.
type State struct {
	Mode         Mode
	CustomerName string

	// Selection is the last clicked cell. Selected holds the appointment
	// resolved at that cell, valid only when HasSelected is true.
	Selection   calendar.CellRef
	Selected    calendar.Appointment
	HasSelected bool
}

// Machine applies events against a composed month view. It owns no mutable
// state of its own; slot size and id generation are fixed at construction.
type Machine struct {
	slotMinutes int
	newID       func() string
}

// New creates a machine for the given slot duration in minutes.
func New(slotMinutes int, newID func() string) *Machine {
	return &Machine{slotMinutes: slotMinutes, newID: newID}
}

// Apply processes one event. On error the returned state equals the input
// state and no effects are produced, so a pending distribute or move stays
// armed until it succeeds or is aborted.
func (m *Machine) Apply(st State, view *calendar.MonthView, ev Event) (State, []Effect, error) {
	switch e := ev.(type) {
	case SelectCell:
		return m.selectCell(st, view, e), nil, nil
	case StartDistribute:
		return m.startDistribute(st, e)
	case PlaceAppointment:
		return m.placeAppointment(st, view, e)
	case StartMove:
		return m.startMove(st)
	case MoveTo:
		return m.moveTo(st, view, e)
	case EditDuration:
		return m.editDuration(st, view, e)
	case DeleteSelected:
		return m.deleteSelected(st, e)
	case MakeSeries:
		return m.makeSeries(st, e)
	case Abort:
		st.Mode = ModeIdle
		st.CustomerName = ""
		return st, nil, nil
	default:
		return st, nil, nil
	}
}

func (m *Machine) selectCell(st State, view *calendar.MonthView, e SelectCell) State {
	st.Selection = e.Ref
	st.Selected, st.HasSelected = view.AppointmentAt(e.Ref.EmployeeID, e.Ref.Date, e.Ref.SlotStart)
	return st
}

func (m *Machine) startDistribute(st State, e StartDistribute) (State, []Effect, error) {
	if e.CustomerName == "" {
		return st, nil, ErrCustomerRequired
	}
	st.Mode = ModeDistribute
	st.CustomerName = e.CustomerName
	return st, nil, nil
}

func (m *Machine) placeAppointment(st State, view *calendar.MonthView, e PlaceAppointment) (State, []Effect, error) {
	if st.Mode != ModeDistribute {
		return st, nil, ErrNotDistributing
	}
	if _, occupied := view.AppointmentAt(e.Ref.EmployeeID, e.Ref.Date, e.Ref.SlotStart); occupied {
		// Occupied cells are never overwritten; the distribute stays armed.
		return st, nil, nil
	}

	end, err := m.slotEnd(e.Ref.SlotStart, e.Slots)
	if err != nil {
		return st, nil, err
	}

	candidate := calendar.Appointment{
		ID:           m.newID(),
		EmployeeID:   e.Ref.EmployeeID,
		Date:         e.Ref.Date,
		Start:        e.Ref.SlotStart,
		End:          end,
		CustomerName: st.CustomerName,
		Status:       calendar.StatusFixed,
	}
	if existing, found := calendar.FindOverlap(candidate, view, ""); found {
		return st, nil, &OverlapError{Existing: existing}
	}

	st.Mode = ModeIdle
	st.CustomerName = ""
	st.Selection = e.Ref
	st.Selected = candidate
	st.HasSelected = true
	return st, []Effect{CreateAppointment{Appointment: candidate}}, nil
}

func (m *Machine) startMove(st State) (State, []Effect, error) {
	if !st.HasSelected {
		return st, nil, ErrNoSelection
	}
	st.Mode = ModeMoveWaitTarget
	return st, nil, nil
}

func (m *Machine) moveTo(st State, view *calendar.MonthView, e MoveTo) (State, []Effect, error) {
	if st.Mode != ModeMoveWaitTarget {
		return st, nil, ErrNoMovePending
	}
	if !st.HasSelected {
		return st, nil, ErrNoSelection
	}

	source := st.Selected
	end := e.Ref.SlotStart.AddMinutes(source.DurationMinutes())
	if end.Minutes() > 24*60 {
		return st, nil, ErrInvalidDuration
	}

	candidate := calendar.Appointment{
		EmployeeID:   e.Ref.EmployeeID,
		Date:         e.Ref.Date,
		Start:        e.Ref.SlotStart,
		End:          end,
		CustomerName: source.CustomerName,
	}
	if existing, found := calendar.FindOverlap(candidate, view, source.ID); found {
		return st, nil, &OverlapError{Existing: existing}
	}

	var effects []Effect
	switch {
	case !source.FromRecurrence:
		moved := source
		moved.EmployeeID = e.Ref.EmployeeID
		moved.Date = e.Ref.Date
		moved.Start = e.Ref.SlotStart
		moved.End = end
		effects = append(effects, UpdateAppointment{Appointment: moved})
		st.Selected = moved

	case e.Scope == ScopeSeries:
		effects = append(effects, RescheduleRule{
			RuleID:     source.RecurrenceRuleID,
			EmployeeID: e.Ref.EmployeeID,
			Weekday:    e.Ref.Date.Weekday(),
			Start:      e.Ref.SlotStart,
			End:        end,
		})
		st.HasSelected = false

	default:
		effects = m.moveOccurrence(source, e.Ref, end)
		st.HasSelected = false
	}

	st.Mode = ModeIdle
	st.Selection = e.Ref
	return st, effects, nil
}

// moveOccurrence relocates one occurrence of a series. An occurrence that is
// itself an exception is rewritten in place; a generated occurrence gets a
// cancellation exception at the old slot and an override exception at the
// new one, both carrying the rule id so series membership survives the move.
func (m *Machine) moveOccurrence(source calendar.Appointment, target calendar.CellRef, end calendar.TimeOfDay) []Effect {
	if exID, ok := calendar.SourceExceptionID(source.ID); ok {
		return []Effect{UpdateException{Exception: calendar.RecurrenceException{
			ID:               exID,
			RecurrenceRuleID: source.RecurrenceRuleID,
			EmployeeID:       target.EmployeeID,
			Date:             target.Date,
			Start:            target.SlotStart,
			End:              end,
			CustomerName:     source.CustomerName,
		}}}
	}

	cancel := calendar.RecurrenceException{
		ID:               m.newID(),
		RecurrenceRuleID: source.RecurrenceRuleID,
		EmployeeID:       source.EmployeeID,
		Date:             source.Date,
		Start:            source.Start,
		End:              source.End,
		CustomerName:     source.CustomerName,
	}
	override := calendar.RecurrenceException{
		ID:               m.newID(),
		RecurrenceRuleID: source.RecurrenceRuleID,
		EmployeeID:       target.EmployeeID,
		Date:             target.Date,
		Start:            target.SlotStart,
		End:              end,
		CustomerName:     source.CustomerName,
	}
	return []Effect{
		CreateException{Exception: cancel},
		CreateException{Exception: override},
	}
}

func (m *Machine) editDuration(st State, view *calendar.MonthView, e EditDuration) (State, []Effect, error) {
	if !st.HasSelected {
		return st, nil, ErrNoSelection
	}

	source := st.Selected
	newEnd, err := m.slotEnd(source.Start, e.Slots)
	if err != nil {
		return st, nil, err
	}

	candidate := source
	candidate.End = newEnd
	if existing, found := calendar.FindOverlap(candidate, view, source.ID); found {
		return st, nil, &OverlapError{Existing: existing}
	}

	var effects []Effect
	switch {
	case !source.FromRecurrence:
		effects = append(effects, UpdateAppointment{Appointment: candidate})
		st.Selected = candidate

	case e.Scope == ScopeSeries:
		effects = append(effects, RescheduleRule{
			RuleID:     source.RecurrenceRuleID,
			EmployeeID: source.EmployeeID,
			Weekday:    source.Date.Weekday(),
			Start:      source.Start,
			End:        newEnd,
		})
		st.HasSelected = false

	default:
		if exID, ok := calendar.SourceExceptionID(source.ID); ok {
			resized := calendar.RecurrenceException{
				ID:               exID,
				RecurrenceRuleID: source.RecurrenceRuleID,
				EmployeeID:       source.EmployeeID,
				Date:             source.Date,
				Start:            source.Start,
				End:              newEnd,
				CustomerName:     source.CustomerName,
			}
			effects = append(effects, UpdateException{Exception: resized})
		} else {
			cancel := calendar.RecurrenceException{
				ID:               m.newID(),
				RecurrenceRuleID: source.RecurrenceRuleID,
				EmployeeID:       source.EmployeeID,
				Date:             source.Date,
				Start:            source.Start,
				End:              source.End,
				CustomerName:     source.CustomerName,
			}
			override := cancel
			override.ID = m.newID()
			override.End = newEnd
			effects = append(effects, CreateException{Exception: cancel}, CreateException{Exception: override})
		}
		st.HasSelected = false
	}

	st.Mode = ModeIdle
	return st, effects, nil
}

func (m *Machine) deleteSelected(st State, e DeleteSelected) (State, []Effect, error) {
	if !st.HasSelected {
		return st, nil, ErrNoSelection
	}

	source := st.Selected
	var effects []Effect
	switch {
	case !source.FromRecurrence:
		effects = append(effects, DeleteAppointment{ID: source.ID})

	case e.Scope == ScopeSeries:
		effects = append(effects, DeleteRule{ID: source.RecurrenceRuleID})

	default:
		if exID, ok := calendar.SourceExceptionID(source.ID); ok {
			effects = append(effects, DeleteException{ID: exID})
		} else {
			effects = append(effects, CreateException{Exception: calendar.RecurrenceException{
				ID:               m.newID(),
				RecurrenceRuleID: source.RecurrenceRuleID,
				EmployeeID:       source.EmployeeID,
				Date:             source.Date,
				Start:            source.Start,
				End:              source.End,
				CustomerName:     source.CustomerName,
			}})
		}
	}

	st.Mode = ModeIdle
	st.Selected = calendar.Appointment{}
	st.HasSelected = false
	return st, effects, nil
}

func (m *Machine) makeSeries(st State, e MakeSeries) (State, []Effect, error) {
	if !st.HasSelected {
		return st, nil, ErrNoSelection
	}
	source := st.Selected
	if source.FromRecurrence {
		return st, nil, ErrAlreadySeries
	}
	if e.IntervalWeeks < 1 {
		return st, nil, ErrInvalidInterval
	}

	rule := calendar.RecurrenceRule{
		ID:            m.newID(),
		EmployeeID:    source.EmployeeID,
		Weekday:       source.Date.Weekday(),
		Start:         source.Start,
		End:           source.End,
		CustomerName:  source.CustomerName,
		IsActive:      true,
		IntervalWeeks: e.IntervalWeeks,
		AnchorDate:    source.Date,
	}

	st.Mode = ModeIdle
	st.Selected = calendar.Appointment{}
	st.HasSelected = false
	return st, []Effect{
		CreateRule{Rule: rule},
		DeleteAppointment{ID: source.ID},
	}, nil
}

// slotEnd converts a slot count into an end time, rejecting non-positive
// counts and intervals running past midnight.
func (m *Machine) slotEnd(start calendar.TimeOfDay, slots int) (calendar.TimeOfDay, error) {
	if slots < 1 {
		return calendar.TimeOfDay{}, ErrInvalidDuration
	}
	end := start.AddMinutes(slots * m.slotMinutes)
	if end.Minutes() > 24*60 {
		return calendar.TimeOfDay{}, ErrInvalidDuration
	}
	return end, nil
}
