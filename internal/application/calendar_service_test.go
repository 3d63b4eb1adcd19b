package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/testfixtures"
)

func newCalendarService(store *stubStore) *CalendarService {
	gen := testfixtures.NewIDGenerator("id")
	return NewCalendarService(store, 30, time.Minute, gen.NextFunc())
}

func TestMonthViewComposesAllSources(t *testing.T) {
	t.Parallel()

	active := testfixtures.NewEmployee(testfixtures.WithEmployeeID("emp-001"))
	inactive := testfixtures.NewEmployee(testfixtures.WithEmployeeID("emp-inactive"), testfixtures.Inactive())

	explicit := testfixtures.NewAppointment(
		testfixtures.AppointmentOn(calendar.NewDate(2026, time.February, 4)),
		testfixtures.AppointmentAt(calendar.NewTimeOfDay(13, 0), calendar.NewTimeOfDay(14, 0)),
	)
	rule := testfixtures.NewRule()
	cancel := testfixtures.NewException(rule.ID,
		testfixtures.ExceptionOn(calendar.NewDate(2026, time.February, 9)))
	override := testfixtures.NewOverride(explicit, calendar.StatusTentative)
	absence := testfixtures.NewAbsence("emp-001", calendar.NewDate(2026, time.February, 6))

	store := &stubStore{
		employees:    []calendar.Employee{active, inactive},
		appointments: []calendar.Appointment{explicit},
		rules:        []calendar.RecurrenceRule{rule},
		exceptions:   []calendar.RecurrenceException{cancel},
		overrides:    []calendar.StatusOverride{override},
		absences:     []calendar.Absence{absence},
	}
	svc := newCalendarService(store)

	view, err := svc.MonthView(context.Background(), 2026, time.February, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(view.Employees) != 2 {
		t.Fatalf("expected every employee rendered, got %+v", view.Employees)
	}

	got, found := view.AppointmentAt("emp-001", explicit.Date, explicit.Start)
	if !found {
		t.Fatalf("expected explicit appointment in view")
	}
	if got.Status != calendar.StatusTentative {
		t.Fatalf("expected override applied, got %v", got.Status)
	}

	if _, found := view.AppointmentAt("emp-001", calendar.NewDate(2026, time.February, 16), rule.Start); !found {
		t.Fatalf("expected recurring occurrence on Feb 16")
	}
	if _, found := view.AppointmentAt("emp-001", calendar.NewDate(2026, time.February, 9), rule.Start); found {
		t.Fatalf("expected cancelled occurrence suppressed on Feb 9")
	}

	cell := view.Cell(absence.Date)
	if cell == nil || len(cell.Absences) != 1 || cell.Absences[0].ID != absence.ID {
		t.Fatalf("expected absence in its day cell")
	}
}

func TestMonthViewInactiveRulesAreSkipped(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		employees: []calendar.Employee{testfixtures.NewEmployee(testfixtures.WithEmployeeID("emp-001"))},
		rules:     []calendar.RecurrenceRule{testfixtures.NewRule(testfixtures.RuleInactive())},
	}
	svc := newCalendarService(store)

	view, err := svc.MonthView(context.Background(), 2026, time.February, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, found := view.AppointmentAt("emp-001", testfixtures.ReferenceDate, calendar.NewTimeOfDay(8, 0)); found {
		t.Fatalf("expected no occurrences from inactive rule")
	}
}

func TestMonthViewCaching(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		employees: []calendar.Employee{testfixtures.NewEmployee()},
	}
	svc := newCalendarService(store)
	ctx := context.Background()

	t.Run("unfiltered views are served from cache", func(t *testing.T) {
		if _, err := svc.MonthView(ctx, 2026, time.March, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.MonthView(ctx, 2026, time.March, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.appointmentLists != 1 {
			t.Fatalf("expected one store read, got %d", store.appointmentLists)
		}
	})

	t.Run("invalidate forces a rebuild", func(t *testing.T) {
		svc.Invalidate(2026, time.March)
		if _, err := svc.MonthView(ctx, 2026, time.March, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.appointmentLists != 2 {
			t.Fatalf("expected rebuild after invalidation, got %d reads", store.appointmentLists)
		}
	})

	t.Run("filtered views bypass the cache", func(t *testing.T) {
		before := store.appointmentLists
		if _, err := svc.MonthView(ctx, 2026, time.March, []string{"emp-001"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.appointmentLists != before+1 {
			t.Fatalf("expected filtered view to hit the store")
		}
	})
}

func TestMonthViewKeepsInactiveEmployees(t *testing.T) {
	t.Parallel()

	inactive := testfixtures.NewEmployee(testfixtures.WithEmployeeID("emp-old"), testfixtures.Inactive())
	appt := testfixtures.NewAppointment(testfixtures.AppointmentFor("emp-old"))
	store := &stubStore{
		employees:    []calendar.Employee{inactive},
		appointments: []calendar.Appointment{appt},
	}
	svc := newCalendarService(store)

	view, err := svc.MonthView(context.Background(), 2026, time.February, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Employees) != 1 || view.Employees[0].ID != "emp-old" {
		t.Fatalf("expected inactive employee rendered, got %+v", view.Employees)
	}
	if _, found := view.AppointmentAt("emp-old", appt.Date, appt.Start); !found {
		t.Fatalf("expected inactive employee's appointment in the view")
	}
}

func TestMonthViewEmployeeFilterIncludesInactive(t *testing.T) {
	t.Parallel()

	inactive := testfixtures.NewEmployee(testfixtures.WithEmployeeID("emp-old"), testfixtures.Inactive())
	store := &stubStore{employees: []calendar.Employee{inactive}}
	svc := newCalendarService(store)

	view, err := svc.MonthView(context.Background(), 2026, time.February, []string{"emp-old"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Employees) != 1 || view.Employees[0].ID != "emp-old" {
		t.Fatalf("expected explicit filter to include inactive employee, got %+v", view.Employees)
	}
}

func TestMonthViewFilterHidesOtherEmployeesEntries(t *testing.T) {
	t.Parallel()

	shown := testfixtures.NewEmployee(testfixtures.WithEmployeeID("emp-a"))
	hidden := testfixtures.NewEmployee(testfixtures.WithEmployeeID("emp-b"))
	theirs := testfixtures.NewAppointment(testfixtures.AppointmentFor("emp-b"))
	theirAbsence := testfixtures.NewAbsence("emp-b", calendar.NewDate(2026, time.February, 6))

	store := &stubStore{
		employees:    []calendar.Employee{shown, hidden},
		appointments: []calendar.Appointment{theirs},
		absences:     []calendar.Absence{theirAbsence},
	}
	svc := newCalendarService(store)

	view, err := svc.MonthView(context.Background(), 2026, time.February, []string{"emp-a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, found := view.AppointmentAt("emp-b", theirs.Date, theirs.Start); found {
		t.Fatalf("expected hidden employee's appointment excluded")
	}
	cell := view.Cell(theirAbsence.Date)
	if cell == nil || len(cell.Absences) != 0 {
		t.Fatalf("expected hidden employee's absence excluded")
	}
}

func TestUpsertAbsence(t *testing.T) {
	t.Parallel()

	t.Run("missing fields are rejected", func(t *testing.T) {
		t.Parallel()
		svc := newCalendarService(&stubStore{})

		_, err := svc.UpsertAbsence(context.Background(), calendar.Absence{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.FieldErrors["employeeId"] != "Mitarbeiter ist erforderlich" {
			t.Fatalf("unexpected employee message: %q", vErr.FieldErrors["employeeId"])
		}
		if vErr.FieldErrors["date"] != "Datum ist erforderlich" {
			t.Fatalf("unexpected date message: %q", vErr.FieldErrors["date"])
		}
	})

	t.Run("missing id is generated", func(t *testing.T) {
		t.Parallel()
		store := &stubStore{}
		svc := newCalendarService(store)

		saved, err := svc.UpsertAbsence(context.Background(), calendar.Absence{
			EmployeeID: "emp-001",
			Date:       calendar.NewDate(2026, time.February, 6),
			Type:       calendar.AbsenceSick,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.ID == "" {
			t.Fatalf("expected generated id")
		}
		if len(store.absences) != 1 {
			t.Fatalf("expected absence persisted")
		}
	})
}

func TestUpsertStatusOverrideValidation(t *testing.T) {
	t.Parallel()

	svc := newCalendarService(&stubStore{})
	_, err := svc.UpsertStatusOverride(context.Background(), calendar.StatusOverride{
		EmployeeID: "emp-001",
		Date:       calendar.NewDate(2026, time.February, 6),
		Start:      calendar.NewTimeOfDay(10, 0),
		End:        calendar.NewTimeOfDay(9, 0),
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.FieldErrors["end"] != "Ende muss nach dem Beginn liegen" {
		t.Fatalf("unexpected message: %q", vErr.FieldErrors["end"])
	}
}

func TestDeleteAbsenceNotFound(t *testing.T) {
	t.Parallel()

	svc := newCalendarService(&stubStore{})
	err := svc.DeleteAbsence(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
