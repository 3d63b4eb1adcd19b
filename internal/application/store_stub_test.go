package application

import (
	"context"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/persistence"
)

// stubStore is an in-memory persistence.Store for service tests. Upserts
// replace by id, deletes of unknown ids return persistence.ErrNotFound, and
// failWith forces every call to fail.
type stubStore struct {
	employees    []calendar.Employee
	appointments []calendar.Appointment
	rules        []calendar.RecurrenceRule
	exceptions   []calendar.RecurrenceException
	absences     []calendar.Absence
	overrides    []calendar.StatusOverride

	failWith         error
	appointmentLists int
}

func (s *stubStore) ListEmployees(ctx context.Context) ([]calendar.Employee, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]calendar.Employee(nil), s.employees...), nil
}

func (s *stubStore) SaveEmployees(ctx context.Context, employees []calendar.Employee) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.employees = append([]calendar.Employee(nil), employees...)
	return nil
}

func (s *stubStore) ListAppointmentsForMonth(ctx context.Context, year int, month time.Month) ([]calendar.Appointment, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.appointmentLists++
	var result []calendar.Appointment
	for _, appt := range s.appointments {
		if appt.Date.Year == year && appt.Date.Month == month {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (s *stubStore) UpsertAppointment(ctx context.Context, appointment calendar.Appointment) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.appointments {
		if existing.ID == appointment.ID {
			s.appointments[i] = appointment
			return nil
		}
	}
	s.appointments = append(s.appointments, appointment)
	return nil
}

func (s *stubStore) DeleteAppointment(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.appointments {
		if existing.ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (s *stubStore) ListRules(ctx context.Context) ([]calendar.RecurrenceRule, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]calendar.RecurrenceRule(nil), s.rules...), nil
}

func (s *stubStore) UpsertRule(ctx context.Context, rule calendar.RecurrenceRule) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.rules {
		if existing.ID == rule.ID {
			s.rules[i] = rule
			return nil
		}
	}
	s.rules = append(s.rules, rule)
	return nil
}

func (s *stubStore) DeleteRule(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.rules {
		if existing.ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			kept := s.exceptions[:0]
			for _, ex := range s.exceptions {
				if ex.RecurrenceRuleID != id {
					kept = append(kept, ex)
				}
			}
			s.exceptions = kept
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (s *stubStore) ListExceptions(ctx context.Context, ruleID string) ([]calendar.RecurrenceException, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var result []calendar.RecurrenceException
	for _, ex := range s.exceptions {
		if ex.RecurrenceRuleID == ruleID {
			result = append(result, ex)
		}
	}
	return result, nil
}

func (s *stubStore) UpsertException(ctx context.Context, exception calendar.RecurrenceException) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.exceptions {
		if existing.ID == exception.ID {
			s.exceptions[i] = exception
			return nil
		}
	}
	s.exceptions = append(s.exceptions, exception)
	return nil
}

func (s *stubStore) DeleteException(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.exceptions {
		if existing.ID == id {
			s.exceptions = append(s.exceptions[:i], s.exceptions[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (s *stubStore) ListAbsencesForMonth(ctx context.Context, year int, month time.Month) ([]calendar.Absence, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var result []calendar.Absence
	for _, absence := range s.absences {
		if absence.Date.Year == year && absence.Date.Month == month {
			result = append(result, absence)
		}
	}
	return result, nil
}

func (s *stubStore) UpsertAbsence(ctx context.Context, absence calendar.Absence) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.absences {
		if existing.ID == absence.ID {
			s.absences[i] = absence
			return nil
		}
	}
	s.absences = append(s.absences, absence)
	return nil
}

func (s *stubStore) DeleteAbsence(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.absences {
		if existing.ID == id {
			s.absences = append(s.absences[:i], s.absences[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (s *stubStore) ListStatusOverridesForMonth(ctx context.Context, year int, month time.Month) ([]calendar.StatusOverride, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var result []calendar.StatusOverride
	for _, override := range s.overrides {
		if override.Date.Year == year && override.Date.Month == month {
			result = append(result, override)
		}
	}
	return result, nil
}

func (s *stubStore) UpsertStatusOverride(ctx context.Context, override calendar.StatusOverride) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.overrides {
		if existing.ID == override.ID {
			s.overrides[i] = override
			return nil
		}
	}
	s.overrides = append(s.overrides, override)
	return nil
}

func (s *stubStore) DeleteStatusOverride(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, existing := range s.overrides {
		if existing.ID == id {
			s.overrides = append(s.overrides[:i], s.overrides[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}
