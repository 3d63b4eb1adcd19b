package persistence

import (
	"context"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
)

// EmployeeRepository exposes the employee list. Saving replaces the full
// list, preserving caller-supplied ordering.
type EmployeeRepository interface {
	ListEmployees(ctx context.Context) ([]calendar.Employee, error)
	SaveEmployees(ctx context.Context, employees []calendar.Employee) error
}

// AppointmentRepository exposes CRUD for explicit appointments, scoped by
// month for reads.
type AppointmentRepository interface {
	ListAppointmentsForMonth(ctx context.Context, year int, month time.Month) ([]calendar.Appointment, error)
	UpsertAppointment(ctx context.Context, appointment calendar.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
}

// RecurrenceRepository stores weekly rules and their per-date exceptions.
// Deleting a rule cascades to its exceptions.
type RecurrenceRepository interface {
	ListRules(ctx context.Context) ([]calendar.RecurrenceRule, error)
	UpsertRule(ctx context.Context, rule calendar.RecurrenceRule) error
	DeleteRule(ctx context.Context, id string) error
	ListExceptions(ctx context.Context, ruleID string) ([]calendar.RecurrenceException, error)
	UpsertException(ctx context.Context, exception calendar.RecurrenceException) error
	DeleteException(ctx context.Context, id string) error
}

// AbsenceRepository exposes CRUD for whole-day absences, scoped by month for
// reads.
type AbsenceRepository interface {
	ListAbsencesForMonth(ctx context.Context, year int, month time.Month) ([]calendar.Absence, error)
	UpsertAbsence(ctx context.Context, absence calendar.Absence) error
	DeleteAbsence(ctx context.Context, id string) error
}

// StatusOverrideRepository exposes CRUD for per-slot status overrides,
// scoped by month for reads.
type StatusOverrideRepository interface {
	ListStatusOverridesForMonth(ctx context.Context, year int, month time.Month) ([]calendar.StatusOverride, error)
	UpsertStatusOverride(ctx context.Context, override calendar.StatusOverride) error
	DeleteStatusOverride(ctx context.Context, id string) error
}

// Store aggregates every repository the calendar core consumes.
type Store interface {
	EmployeeRepository
	AppointmentRepository
	RecurrenceRepository
	AbsenceRepository
	StatusOverrideRepository
}
