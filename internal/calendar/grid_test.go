package calendar

import (
	"testing"
	"time"
)

func TestBuildMonthViewGrid(t *testing.T) {
	t.Parallel()

	view := BuildMonthView(2026, time.February, 30, nil, nil, nil)

	if len(view.Cells) != 42 {
		t.Fatalf("expected 42 cells, got %d", len(view.Cells))
	}

	first := NewDate(2026, time.February, 1)
	if view.Cells[0].Date.After(first) {
		t.Fatalf("expected first cell on or before %v, got %v", first, view.Cells[0].Date)
	}
	if view.Cells[0].Date.Weekday() != time.Monday {
		t.Fatalf("expected grid to start on Monday, got %v", view.Cells[0].Date.Weekday())
	}

	inMonth := 0
	for _, cell := range view.Cells {
		if cell.InCurrentMonth {
			inMonth++
			if cell.Date.Month != time.February || cell.Date.Year != 2026 {
				t.Fatalf("cell %v wrongly marked as current month", cell.Date)
			}
		} else if cell.Date.Month == time.February && cell.Date.Year == 2026 {
			t.Fatalf("cell %v wrongly marked as outside current month", cell.Date)
		}
	}
	if inMonth != 28 {
		t.Fatalf("expected 28 current-month cells, got %d", inMonth)
	}
}

func TestBuildMonthViewPlacesAppointments(t *testing.T) {
	t.Parallel()

	date := NewDate(2026, time.February, 10)
	appt := Appointment{
		ID: "appt-1", EmployeeID: "emp-1", Date: date,
		Start: NewTimeOfDay(9, 0), End: NewTimeOfDay(10, 0), CustomerName: "Schmidt",
	}
	absence := Absence{ID: "abs-1", EmployeeID: "emp-1", Date: date, Type: AbsenceSick}

	view := BuildMonthView(2026, time.February, 30, nil, []Appointment{appt}, []Absence{absence})

	cell := view.Cell(date)
	if cell == nil {
		t.Fatalf("expected cell for %v", date)
	}
	if len(cell.Appointments) != 1 || cell.Appointments[0].ID != "appt-1" {
		t.Fatalf("expected appointment in cell, got %v", cell.Appointments)
	}
	if len(cell.Absences) != 1 || cell.Absences[0].ID != "abs-1" {
		t.Fatalf("expected absence in cell, got %v", cell.Absences)
	}
}

func TestBuildMonthViewMarksWeekendsAndHolidays(t *testing.T) {
	t.Parallel()

	view := BuildMonthView(2026, time.May, 30, nil, nil, nil)

	saturday := view.Cell(NewDate(2026, time.May, 2))
	if saturday == nil || !saturday.IsWeekend {
		t.Fatalf("expected 2026-05-02 to be a weekend")
	}

	// Tag der Arbeit.
	mayDay := view.Cell(NewDate(2026, time.May, 1))
	if mayDay == nil || !mayDay.IsHoliday {
		t.Fatalf("expected 2026-05-01 to be a holiday")
	}

	ordinary := view.Cell(NewDate(2026, time.May, 6))
	if ordinary == nil || ordinary.IsHoliday || ordinary.IsWeekend {
		t.Fatalf("expected 2026-05-06 to be an ordinary workday")
	}
}

func TestAppointmentAtUsesHalfOpenIntervals(t *testing.T) {
	t.Parallel()

	date := NewDate(2026, time.February, 10)
	appt := Appointment{
		ID: "appt-1", EmployeeID: "emp-1", Date: date,
		Start: NewTimeOfDay(9, 0), End: NewTimeOfDay(10, 0), CustomerName: "Schmidt",
	}
	view := BuildMonthView(2026, time.February, 30, nil, []Appointment{appt}, nil)

	if _, ok := view.AppointmentAt("emp-1", date, NewTimeOfDay(9, 0)); !ok {
		t.Fatalf("expected hit at interval start")
	}
	if _, ok := view.AppointmentAt("emp-1", date, NewTimeOfDay(9, 30)); !ok {
		t.Fatalf("expected hit inside interval")
	}
	if _, ok := view.AppointmentAt("emp-1", date, NewTimeOfDay(10, 0)); ok {
		t.Fatalf("expected miss at exclusive interval end")
	}
	if _, ok := view.AppointmentAt("emp-2", date, NewTimeOfDay(9, 30)); ok {
		t.Fatalf("expected miss for other employee")
	}
}
