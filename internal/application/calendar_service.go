package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/persistence"
	"github.com/example/staff-calendar/internal/recurrence"
)

// CalendarService composes month views and owns the plain CRUD operations
// that do not go through the click protocol.
type CalendarService struct {
	store       persistence.Store
	expander    *recurrence.Expander
	cache       *viewCache
	slotMinutes int
	idGenerator func() string
}

// NewCalendarService wires dependencies for view composition.
func NewCalendarService(store persistence.Store, slotMinutes int, cacheTTL time.Duration, idGenerator func() string) *CalendarService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &CalendarService{
		store:       store,
		expander:    recurrence.New(),
		cache:       newViewCache(cacheTTL, maxCachedViews),
		slotMinutes: slotMinutes,
		idGenerator: idGenerator,
	}
}

// MonthView returns the composed view for the month, serving a cached copy
// when one is fresh. employeeFilter narrows the employee columns; empty
// means all employees, inactive ones included. Only recurrence rules are
// gated on the active flag.
func (s *CalendarService) MonthView(ctx context.Context, year int, month time.Month, employeeFilter []string) (*calendar.MonthView, error) {
	if len(employeeFilter) == 0 {
		if view, ok := s.cache.get(year, month); ok {
			return view, nil
		}
	}

	view, err := s.buildMonthView(ctx, year, month, employeeFilter)
	if err != nil {
		return nil, err
	}

	if len(employeeFilter) == 0 {
		s.cache.put(year, month, view)
	}
	return view, nil
}

// Invalidate drops any cached view for the month. Mutating services call
// this before rebuilding.
func (s *CalendarService) Invalidate(year int, month time.Month) {
	s.cache.invalidate(year, month)
}

// InvalidateAll drops every cached view. Rule mutations change occurrences
// in every month, so per-month invalidation is not enough for them.
func (s *CalendarService) InvalidateAll() {
	s.cache.invalidateAll()
}

func (s *CalendarService) buildMonthView(ctx context.Context, year int, month time.Month, employeeFilter []string) (*calendar.MonthView, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	employees = filterEmployees(employees, employeeFilter)

	explicit, err := s.store.ListAppointmentsForMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	rules, err := s.store.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurrence rules: %w", err)
	}

	recurring := make([]calendar.Appointment, 0)
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		exceptions, err := s.store.ListExceptions(ctx, rule.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list exceptions for rule %s: %w", rule.ID, err)
		}
		recurring = append(recurring, s.expander.Expand(rule, exceptions, year, month)...)
	}

	merged := calendar.MergeAppointments(explicit, recurring)

	overrides, err := s.store.ListStatusOverridesForMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list status overrides: %w", err)
	}
	merged = calendar.ApplyStatusOverrides(merged, overrides)

	absences, err := s.store.ListAbsencesForMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}

	// The grid only carries rows for displayed employees.
	shown := make(map[string]bool, len(employees))
	for _, emp := range employees {
		shown[emp.ID] = true
	}
	kept := merged[:0]
	for _, appt := range merged {
		if shown[appt.EmployeeID] {
			kept = append(kept, appt)
		}
	}
	keptAbsences := absences[:0]
	for _, absence := range absences {
		if shown[absence.EmployeeID] {
			keptAbsences = append(keptAbsences, absence)
		}
	}

	view := calendar.BuildMonthView(year, month, s.slotMinutes, employees, kept, keptAbsences)
	return &view, nil
}

func filterEmployees(employees []calendar.Employee, filter []string) []calendar.Employee {
	if len(filter) == 0 {
		return employees
	}

	wanted := make(map[string]bool, len(filter))
	for _, id := range filter {
		wanted[id] = true
	}
	result := make([]calendar.Employee, 0, len(employees))
	for _, emp := range employees {
		if wanted[emp.ID] {
			result = append(result, emp)
		}
	}
	return result
}

// UpsertAbsence validates and stores a whole-day absence.
func (s *CalendarService) UpsertAbsence(ctx context.Context, absence calendar.Absence) (calendar.Absence, error) {
	v := &ValidationError{}
	if absence.EmployeeID == "" {
		v.add("employeeId", "Mitarbeiter ist erforderlich")
	}
	if absence.Date.IsZero() {
		v.add("date", "Datum ist erforderlich")
	}
	if v.HasErrors() {
		return calendar.Absence{}, v
	}

	if absence.ID == "" {
		absence.ID = s.idGenerator()
	}
	if err := s.store.UpsertAbsence(ctx, absence); err != nil {
		return calendar.Absence{}, mapStoreError(err)
	}

	s.cache.invalidate(absence.Date.Year, absence.Date.Month)
	return absence, nil
}

// DeleteAbsence removes an absence by id.
func (s *CalendarService) DeleteAbsence(ctx context.Context, id string) error {
	if err := s.store.DeleteAbsence(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.cache.invalidateAll()
	return nil
}

// UpsertStatusOverride validates and stores a per-slot status override.
func (s *CalendarService) UpsertStatusOverride(ctx context.Context, override calendar.StatusOverride) (calendar.StatusOverride, error) {
	v := &ValidationError{}
	if override.EmployeeID == "" {
		v.add("employeeId", "Mitarbeiter ist erforderlich")
	}
	if override.Date.IsZero() {
		v.add("date", "Datum ist erforderlich")
	}
	if !override.Start.Before(override.End) {
		v.add("end", "Ende muss nach dem Beginn liegen")
	}
	if v.HasErrors() {
		return calendar.StatusOverride{}, v
	}

	if override.ID == "" {
		override.ID = s.idGenerator()
	}
	if err := s.store.UpsertStatusOverride(ctx, override); err != nil {
		return calendar.StatusOverride{}, mapStoreError(err)
	}

	s.cache.invalidate(override.Date.Year, override.Date.Month)
	return override, nil
}

// DeleteStatusOverride removes an override by id.
func (s *CalendarService) DeleteStatusOverride(ctx context.Context, id string) error {
	if err := s.store.DeleteStatusOverride(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.cache.invalidateAll()
	return nil
}

func mapStoreError(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
