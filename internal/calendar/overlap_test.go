package calendar

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	t.Parallel()

	nine := NewTimeOfDay(9, 0)
	ten := NewTimeOfDay(10, 0)
	halfNine := NewTimeOfDay(9, 30)
	halfTen := NewTimeOfDay(10, 30)
	eleven := NewTimeOfDay(11, 0)

	if !Overlaps(halfNine, halfTen, nine, ten) {
		t.Fatalf("expected 09:30-10:30 to overlap 09:00-10:00")
	}
	if Overlaps(ten, eleven, nine, ten) {
		t.Fatalf("expected touching intervals not to overlap")
	}
	if !Overlaps(nine, eleven, halfNine, ten) {
		t.Fatalf("expected containing interval to overlap")
	}
}

func TestFindOverlap(t *testing.T) {
	t.Parallel()

	date := NewDate(2026, time.February, 10)
	existing := Appointment{
		ID: "appt-1", EmployeeID: "emp-1", Date: date,
		Start: NewTimeOfDay(9, 0), End: NewTimeOfDay(10, 0), CustomerName: "Schmidt",
	}
	view := BuildMonthView(2026, time.February, 30, nil, []Appointment{existing}, nil)

	candidate := Appointment{
		ID: "appt-2", EmployeeID: "emp-1", Date: date,
		Start: NewTimeOfDay(9, 30), End: NewTimeOfDay(10, 30),
	}

	t.Run("overlapping candidate is rejected", func(t *testing.T) {
		t.Parallel()
		blocking, found := FindOverlap(candidate, &view, "")
		if !found {
			t.Fatalf("expected overlap")
		}
		if blocking.ID != "appt-1" {
			t.Fatalf("expected conflict with appt-1, got %s", blocking.ID)
		}
	})

	t.Run("touching candidate is accepted", func(t *testing.T) {
		t.Parallel()
		touching := candidate
		touching.Start = NewTimeOfDay(10, 0)
		touching.End = NewTimeOfDay(11, 0)
		if HasOverlap(touching, &view, "") {
			t.Fatalf("expected 10:00-11:00 to be accepted next to 09:00-10:00")
		}
	})

	t.Run("other employee does not conflict", func(t *testing.T) {
		t.Parallel()
		other := candidate
		other.EmployeeID = "emp-2"
		if HasOverlap(other, &view, "") {
			t.Fatalf("expected no conflict across employees")
		}
	})

	t.Run("own id is ignored when editing", func(t *testing.T) {
		t.Parallel()
		edited := existing
		edited.End = NewTimeOfDay(10, 30)
		if HasOverlap(edited, &view, existing.ID) {
			t.Fatalf("expected edit to be validated against everything but itself")
		}
	})
}
