package recurrence

import (
	"reflect"
	"testing"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/testfixtures"
)

func weeklyMondayRule() calendar.RecurrenceRule {
	return testfixtures.NewRule(
		testfixtures.RuleWeekday(time.Monday),
		testfixtures.RuleAt(calendar.NewTimeOfDay(8, 0), calendar.NewTimeOfDay(9, 0)),
		testfixtures.RuleInterval(1, calendar.NewDate(2026, time.February, 2)),
	)
}

func occurrenceDates(appointments []calendar.Appointment) []calendar.Date {
	dates := make([]calendar.Date, 0, len(appointments))
	for _, a := range appointments {
		dates = append(dates, a.Date)
	}
	return dates
}

func TestExpandWeeklyRule(t *testing.T) {
	t.Parallel()

	rule := weeklyMondayRule()
	got := New().Expand(rule, nil, 2026, time.February)

	want := []calendar.Date{
		calendar.NewDate(2026, time.February, 2),
		calendar.NewDate(2026, time.February, 9),
		calendar.NewDate(2026, time.February, 16),
		calendar.NewDate(2026, time.February, 23),
	}
	if !reflect.DeepEqual(occurrenceDates(got), want) {
		t.Fatalf("unexpected occurrence dates: %v", occurrenceDates(got))
	}

	for _, appt := range got {
		if !appt.FromRecurrence || appt.RecurrenceRuleID != rule.ID {
			t.Fatalf("expected occurrence to carry rule id, got %+v", appt)
		}
		if appt.Start != rule.Start || appt.End != rule.End {
			t.Fatalf("expected occurrence to carry rule times, got %+v", appt)
		}
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	t.Parallel()

	rule := weeklyMondayRule()
	exceptions := []calendar.RecurrenceException{
		testfixtures.NewException(rule.ID,
			testfixtures.ExceptionFor(rule.EmployeeID),
			testfixtures.ExceptionOn(calendar.NewDate(2026, time.February, 9)),
		),
	}

	first := New().Expand(rule, exceptions, 2026, time.February)
	second := New().Expand(rule, exceptions, 2026, time.February)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical expansions, got\n%+v\nand\n%+v", first, second)
	}
}

func TestExpandCancellationSuppressesOneOccurrence(t *testing.T) {
	t.Parallel()

	rule := weeklyMondayRule()
	cancellation := testfixtures.NewException(rule.ID,
		testfixtures.ExceptionFor(rule.EmployeeID),
		testfixtures.ExceptionOn(calendar.NewDate(2026, time.February, 9)),
		testfixtures.ExceptionAt(calendar.NewTimeOfDay(8, 0), calendar.NewTimeOfDay(9, 0)),
	)

	got := New().Expand(rule, []calendar.RecurrenceException{cancellation}, 2026, time.February)

	want := []calendar.Date{
		calendar.NewDate(2026, time.February, 2),
		calendar.NewDate(2026, time.February, 16),
		calendar.NewDate(2026, time.February, 23),
	}
	if !reflect.DeepEqual(occurrenceDates(got), want) {
		t.Fatalf("unexpected occurrence dates: %v", occurrenceDates(got))
	}
}

func TestExpandBiWeeklyInterval(t *testing.T) {
	t.Parallel()

	rule := weeklyMondayRule()
	rule.IntervalWeeks = 2

	got := New().Expand(rule, nil, 2026, time.February)

	want := []calendar.Date{
		calendar.NewDate(2026, time.February, 2),
		calendar.NewDate(2026, time.February, 16),
	}
	if !reflect.DeepEqual(occurrenceDates(got), want) {
		t.Fatalf("unexpected occurrence dates: %v", occurrenceDates(got))
	}
}

func TestExpandIntervalMatchesBeforeAnchor(t *testing.T) {
	t.Parallel()

	// Anchored mid-February: matching weeks extend symmetrically backwards.
	rule := weeklyMondayRule()
	rule.IntervalWeeks = 2
	rule.AnchorDate = calendar.NewDate(2026, time.February, 16)

	got := New().Expand(rule, nil, 2026, time.February)

	want := []calendar.Date{
		calendar.NewDate(2026, time.February, 2),
		calendar.NewDate(2026, time.February, 16),
	}
	if !reflect.DeepEqual(occurrenceDates(got), want) {
		t.Fatalf("unexpected occurrence dates: %v", occurrenceDates(got))
	}
}

func TestExpandOverrideExceptionIsMaterialized(t *testing.T) {
	t.Parallel()

	rule := weeklyMondayRule()
	// Moved occurrence: cancellation at the rule slot plus an override at a
	// different slot, both carrying the rule id.
	cancellation := testfixtures.NewException(rule.ID,
		testfixtures.ExceptionFor(rule.EmployeeID),
		testfixtures.ExceptionOn(calendar.NewDate(2026, time.February, 9)),
		testfixtures.ExceptionAt(calendar.NewTimeOfDay(8, 0), calendar.NewTimeOfDay(9, 0)),
	)
	moved := testfixtures.NewException(rule.ID,
		testfixtures.ExceptionFor(rule.EmployeeID),
		testfixtures.ExceptionOn(calendar.NewDate(2026, time.February, 11)),
		testfixtures.ExceptionAt(calendar.NewTimeOfDay(14, 0), calendar.NewTimeOfDay(15, 0)),
	)

	got := New().Expand(rule, []calendar.RecurrenceException{cancellation, moved}, 2026, time.February)

	want := []calendar.Date{
		calendar.NewDate(2026, time.February, 2),
		calendar.NewDate(2026, time.February, 11),
		calendar.NewDate(2026, time.February, 16),
		calendar.NewDate(2026, time.February, 23),
	}
	if !reflect.DeepEqual(occurrenceDates(got), want) {
		t.Fatalf("unexpected occurrence dates: %v", occurrenceDates(got))
	}

	movedOccurrence := got[1]
	if movedOccurrence.ID != calendar.ExceptionOccurrenceID(moved.ID) {
		t.Fatalf("expected exception-backed id, got %s", movedOccurrence.ID)
	}
	if movedOccurrence.RecurrenceRuleID != rule.ID {
		t.Fatalf("expected moved occurrence to keep series membership")
	}
	if movedOccurrence.Start != calendar.NewTimeOfDay(14, 0) {
		t.Fatalf("expected moved occurrence at new slot, got %v", movedOccurrence.Start)
	}
}

func TestExpandOutOfMonthOverrideIsSkipped(t *testing.T) {
	t.Parallel()

	rule := weeklyMondayRule()
	outside := testfixtures.NewException(rule.ID,
		testfixtures.ExceptionFor(rule.EmployeeID),
		testfixtures.ExceptionOn(calendar.NewDate(2026, time.March, 4)),
		testfixtures.ExceptionAt(calendar.NewTimeOfDay(14, 0), calendar.NewTimeOfDay(15, 0)),
	)

	got := New().Expand(rule, []calendar.RecurrenceException{outside}, 2026, time.February)
	for _, appt := range got {
		if appt.Date.Month != time.February {
			t.Fatalf("expected only February occurrences, got %v", appt.Date)
		}
	}
}

func TestExpandStaleCancellationStopsMatching(t *testing.T) {
	t.Parallel()

	// An exception recorded against the rule's earlier times no longer
	// cancels once the rule's slot changed; it resurfaces as an override.
	rule := weeklyMondayRule()
	stale := testfixtures.NewException(rule.ID,
		testfixtures.ExceptionFor(rule.EmployeeID),
		testfixtures.ExceptionOn(calendar.NewDate(2026, time.February, 9)),
		testfixtures.ExceptionAt(calendar.NewTimeOfDay(7, 0), calendar.NewTimeOfDay(8, 0)),
	)

	got := New().Expand(rule, []calendar.RecurrenceException{stale}, 2026, time.February)

	// Four generated Mondays plus the override record.
	if len(got) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(got))
	}
}

func TestExpandSundayRuleUsesMondayAlignedWeeks(t *testing.T) {
	t.Parallel()

	// A Sunday belongs to the week of the preceding Monday, so a Sunday
	// anchor must match Sunday candidates in the same aligned week.
	rule := weeklyMondayRule()
	rule.Weekday = time.Sunday
	rule.AnchorDate = calendar.NewDate(2026, time.February, 1)

	got := New().Expand(rule, nil, 2026, time.February)
	want := []calendar.Date{
		calendar.NewDate(2026, time.February, 1),
		calendar.NewDate(2026, time.February, 8),
		calendar.NewDate(2026, time.February, 15),
		calendar.NewDate(2026, time.February, 22),
	}
	if !reflect.DeepEqual(occurrenceDates(got), want) {
		t.Fatalf("unexpected occurrence dates: %v", occurrenceDates(got))
	}
}
