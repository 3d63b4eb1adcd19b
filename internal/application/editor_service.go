package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/editor"
	"github.com/example/staff-calendar/internal/persistence"
)

// Prompter answers the interactive questions a transition may raise. The
// HTTP layer backs it with request parameters; tests use fixed answers. A
// false ok aborts the operation without touching the stores.
type Prompter interface {
	PickDuration(ctx context.Context) (slots int, ok bool, err error)
	PickSeriesScope(ctx context.Context) (scope editor.SeriesScope, ok bool, err error)
	Confirm(ctx context.Context, question string) (bool, error)
}

// EditorService drives the selection and mutation state machine. Events are
// serialized: one click is fully processed, stores mutated and the view
// rebuilt, before the next event is accepted.
type EditorService struct {
	store     persistence.Store
	calendars *CalendarService
	machine   *editor.Machine

	// mu serializes events: no two mutations interleave.
	mu    sync.Mutex
	state editor.State
	year  int
	month time.Month
}

// NewEditorService wires the machine against the store and view composer.
func NewEditorService(store persistence.Store, calendars *CalendarService, machine *editor.Machine) *EditorService {
	return &EditorService{
		store:     store,
		calendars: calendars,
		machine:   machine,
	}
}

// State returns a copy of the current machine state.
func (s *EditorService) State() editor.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SelectCell processes a cell click. Depending on the pending mode this
// records a selection, places a new appointment, or completes a move.
func (s *EditorService) SelectCell(ctx context.Context, p Prompter, ref calendar.CellRef) (*calendar.MonthView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := s.viewFor(ctx, ref.Date.Year, ref.Date.Month)
	if err != nil {
		return nil, err
	}

	var event editor.Event
	switch s.state.Mode {
	case editor.ModeDistribute:
		if _, occupied := view.AppointmentAt(ref.EmployeeID, ref.Date, ref.SlotStart); occupied {
			// Occupied cells are never overwritten in distribute mode.
			return view, nil
		}
		slots, ok, err := p.PickDuration(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return view, nil
		}
		event = editor.PlaceAppointment{Ref: ref, Slots: slots}

	case editor.ModeMoveWaitTarget:
		scope := editor.ScopeOccurrence
		if s.state.Selected.FromRecurrence {
			picked, ok, err := p.PickSeriesScope(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return view, nil
			}
			scope = picked
		}
		event = editor.MoveTo{Ref: ref, Scope: scope}

	default:
		event = editor.SelectCell{Ref: ref}
	}

	return s.dispatch(ctx, view, event)
}

// StartDistribute arms appointment creation for the customer.
func (s *EditorService) StartDistribute(ctx context.Context, customerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, _, err := s.machine.Apply(s.state, nil, editor.StartDistribute{CustomerName: customerName})
	if err != nil {
		return mapEditorError(err)
	}
	s.state = next
	return nil
}

// StartMove arms a move of the selected appointment; the next SelectCell
// supplies the target.
func (s *EditorService) StartMove(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, _, err := s.machine.Apply(s.state, nil, editor.StartMove{})
	if err != nil {
		return mapEditorError(err)
	}
	s.state = next
	return nil
}

// EditDuration resizes the selected appointment using a prompted slot count.
func (s *EditorService) EditDuration(ctx context.Context, p Prompter) (*calendar.MonthView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.HasSelected {
		return nil, mapEditorError(editor.ErrNoSelection)
	}
	view, err := s.viewForSelection(ctx)
	if err != nil {
		return nil, err
	}

	slots, ok, err := p.PickDuration(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return view, nil
	}

	scope, ok, err := s.scopeForSelection(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return view, nil
	}

	return s.dispatch(ctx, view, editor.EditDuration{Slots: slots, Scope: scope})
}

// Delete removes the selected appointment after confirmation.
func (s *EditorService) Delete(ctx context.Context, p Prompter) (*calendar.MonthView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.HasSelected {
		return nil, mapEditorError(editor.ErrNoSelection)
	}
	view, err := s.viewForSelection(ctx)
	if err != nil {
		return nil, err
	}

	confirmed, err := p.Confirm(ctx, fmt.Sprintf("Termin %s wirklich löschen?", s.state.Selected.CustomerName))
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return view, nil
	}

	scope, ok, err := s.scopeForSelection(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return view, nil
	}

	return s.dispatch(ctx, view, editor.DeleteSelected{Scope: scope})
}

// CreateSeries turns the selected appointment into a recurring series.
func (s *EditorService) CreateSeries(ctx context.Context, intervalWeeks int) (*calendar.MonthView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.HasSelected {
		return nil, mapEditorError(editor.ErrNoSelection)
	}
	view, err := s.viewForSelection(ctx)
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, view, editor.MakeSeries{IntervalWeeks: intervalWeeks})
}

// Cancel drops any pending distribute or move.
func (s *EditorService) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, _, err := s.machine.Apply(s.state, nil, editor.Abort{})
	if err != nil {
		return mapEditorError(err)
	}
	s.state = next
	return nil
}

func (s *EditorService) scopeForSelection(ctx context.Context, p Prompter) (editor.SeriesScope, bool, error) {
	if !s.state.Selected.FromRecurrence {
		return editor.ScopeOccurrence, true, nil
	}
	return p.PickSeriesScope(ctx)
}

func (s *EditorService) viewForSelection(ctx context.Context) (*calendar.MonthView, error) {
	d := s.state.Selected.Date
	return s.viewFor(ctx, d.Year, d.Month)
}

func (s *EditorService) viewFor(ctx context.Context, year int, month time.Month) (*calendar.MonthView, error) {
	s.year, s.month = year, month
	return s.calendars.MonthView(ctx, year, month, nil)
}

// dispatch applies the event, executes its effects and rebuilds the view.
// Effect execution failures reset the machine to Idle; validation and
// overlap failures leave the pending state armed.
func (s *EditorService) dispatch(ctx context.Context, view *calendar.MonthView, event editor.Event) (*calendar.MonthView, error) {
	prev := s.state
	next, effects, err := s.machine.Apply(s.state, view, event)
	if err != nil {
		return nil, mapEditorError(err)
	}

	if err := s.execute(ctx, effects); err != nil {
		s.state = editor.State{}
		return nil, err
	}
	s.state = next

	if len(effects) == 0 {
		return view, nil
	}
	s.invalidateFor(prev, effects)
	return s.calendars.MonthView(ctx, s.year, s.month, nil)
}

// invalidateFor drops every cached month the effects may have changed: the
// month of the click, the month of the previous selection, and the months
// the mutated entities are dated in. Rule mutations reshape occurrences in
// all months at once and clear the whole cache.
func (s *EditorService) invalidateFor(prev editor.State, effects []editor.Effect) {
	s.calendars.Invalidate(s.year, s.month)
	if prev.HasSelected {
		d := prev.Selected.Date
		s.calendars.Invalidate(d.Year, d.Month)
	}
	for _, effect := range effects {
		switch e := effect.(type) {
		case editor.CreateRule, editor.RescheduleRule, editor.DeleteRule:
			s.calendars.InvalidateAll()
			return
		case editor.CreateAppointment:
			s.calendars.Invalidate(e.Appointment.Date.Year, e.Appointment.Date.Month)
		case editor.UpdateAppointment:
			s.calendars.Invalidate(e.Appointment.Date.Year, e.Appointment.Date.Month)
		case editor.CreateException:
			s.calendars.Invalidate(e.Exception.Date.Year, e.Exception.Date.Month)
		case editor.UpdateException:
			s.calendars.Invalidate(e.Exception.Date.Year, e.Exception.Date.Month)
		}
	}
}

func (s *EditorService) execute(ctx context.Context, effects []editor.Effect) error {
	for _, effect := range effects {
		var err error
		switch e := effect.(type) {
		case editor.CreateAppointment:
			err = s.store.UpsertAppointment(ctx, e.Appointment)
		case editor.UpdateAppointment:
			err = s.store.UpsertAppointment(ctx, e.Appointment)
		case editor.DeleteAppointment:
			err = s.store.DeleteAppointment(ctx, e.ID)
		case editor.CreateException:
			err = s.store.UpsertException(ctx, e.Exception)
		case editor.UpdateException:
			err = s.store.UpsertException(ctx, e.Exception)
		case editor.DeleteException:
			err = s.store.DeleteException(ctx, e.ID)
		case editor.CreateRule:
			err = s.store.UpsertRule(ctx, e.Rule)
		case editor.RescheduleRule:
			err = s.rescheduleRule(ctx, e)
		case editor.DeleteRule:
			err = s.store.DeleteRule(ctx, e.ID)
		default:
			err = fmt.Errorf("unknown effect %T", effect)
		}
		if err != nil {
			return mapStoreError(err)
		}
	}
	return nil
}

// rescheduleRule loads the rule, rewrites its slot and saves it back,
// preserving customer, interval and anchor.
func (s *EditorService) rescheduleRule(ctx context.Context, e editor.RescheduleRule) error {
	rules, err := s.store.ListRules(ctx)
	if err != nil {
		return err
	}
	for _, rule := range rules {
		if rule.ID != e.RuleID {
			continue
		}
		rule.EmployeeID = e.EmployeeID
		rule.Weekday = e.Weekday
		rule.Start = e.Start
		rule.End = e.End
		return s.store.UpsertRule(ctx, rule)
	}
	return persistence.ErrNotFound
}

func mapEditorError(err error) error {
	var overlap *editor.OverlapError
	if errors.As(err, &overlap) {
		ex := overlap.Existing
		return &ConflictError{Reason: fmt.Sprintf(
			"Überschneidung mit Termin %s %s-%s (%s)",
			ex.Date, ex.Start, ex.End, ex.CustomerName)}
	}

	switch {
	case errors.Is(err, editor.ErrNoSelection):
		return &ValidationError{FieldErrors: map[string]string{"selection": "Kein Termin ausgewählt"}}
	case errors.Is(err, editor.ErrCustomerRequired):
		return &ValidationError{FieldErrors: map[string]string{"customerName": "Kundenname ist erforderlich"}}
	case errors.Is(err, editor.ErrInvalidDuration):
		return &ValidationError{FieldErrors: map[string]string{"slots": "Ungültige Dauer"}}
	case errors.Is(err, editor.ErrInvalidInterval):
		return &ValidationError{FieldErrors: map[string]string{"intervalWeeks": "Intervall muss mindestens eine Woche betragen"}}
	case errors.Is(err, editor.ErrAlreadySeries):
		return &ValidationError{FieldErrors: map[string]string{"selection": "Termin ist bereits eine Serie"}}
	case errors.Is(err, editor.ErrNotDistributing), errors.Is(err, editor.ErrNoMovePending):
		return &ValidationError{FieldErrors: map[string]string{"state": "Keine passende Aktion aktiv"}}
	}
	return err
}
