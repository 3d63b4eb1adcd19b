package recurrence

import (
	"time"

	"github.com/example/staff-calendar/internal/calendar"
)

// Expander materializes recurrence rules into concrete month occurrences.
// Expansion is deterministic: the same rule and exceptions always produce the
// same appointments, ids included.
type Expander struct{}

// New constructs an Expander.
func New() *Expander {
	return &Expander{}
}

// Expand generates the rule's occurrences inside the given month, applying
// the rule's exceptions. Inactive rules are filtered by the caller.
//
// An exception whose (date, start, end, employee) exactly matches a generated
// candidate acts as a cancellation and suppresses that occurrence. Every
// other exception dated inside the month is emitted as a materialized
// occurrence of its own, carrying the owning rule id.
func (e *Expander) Expand(rule calendar.RecurrenceRule, exceptions []calendar.RecurrenceException, year int, month time.Month) []calendar.Appointment {
	monthStart := calendar.Date{Year: year, Month: month, Day: 1}
	monthEnd := calendar.Date{Year: year, Month: month, Day: calendar.DaysInMonth(year, month)}

	candidates := candidateDates(rule, monthStart, monthEnd)
	cancelled, overrides := classifyExceptions(rule, exceptions, candidates)

	result := make([]calendar.Appointment, 0, len(candidates)+len(overrides))
	for _, d := range candidates {
		if cancelled[d] {
			continue
		}
		result = append(result, calendar.Appointment{
			ID:               calendar.OccurrenceID(rule.ID, d, rule.Start),
			EmployeeID:       rule.EmployeeID,
			Date:             d,
			Start:            rule.Start,
			End:              rule.End,
			CustomerName:     rule.CustomerName,
			Status:           calendar.StatusNormal,
			FromRecurrence:   true,
			RecurrenceRuleID: rule.ID,
		})
	}

	for _, ex := range overrides {
		if ex.Date.Year != year || ex.Date.Month != month {
			continue
		}
		result = append(result, calendar.Appointment{
			ID:               calendar.ExceptionOccurrenceID(ex.ID),
			EmployeeID:       ex.EmployeeID,
			Date:             ex.Date,
			Start:            ex.Start,
			End:              ex.End,
			CustomerName:     ex.CustomerName,
			Status:           calendar.StatusNormal,
			FromRecurrence:   true,
			RecurrenceRuleID: ex.RecurrenceRuleID,
		})
	}

	calendar.SortChronological(result)
	return result
}

// candidateDates steps through the month a week at a time and keeps the dates
// whose Monday-aligned week distance from the anchor is a multiple of the
// rule interval.
func candidateDates(rule calendar.RecurrenceRule, monthStart, monthEnd calendar.Date) []calendar.Date {
	interval := rule.IntervalWeeks
	if interval < 1 {
		interval = 1
	}

	first := monthStart
	for first.Weekday() != rule.Weekday {
		first = first.AddDays(1)
	}

	anchorWeek := weekIndex(rule.AnchorDate)

	var dates []calendar.Date
	for d := first; !d.After(monthEnd); d = d.AddDays(7) {
		delta := weekIndex(d) - anchorWeek
		if delta < 0 {
			delta = -delta
		}
		if delta%interval != 0 {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// classifyExceptions splits a rule's exceptions into cancellations (keyed by
// the candidate date they suppress) and override occurrences. The
// disambiguation is by value: an exception only cancels when its times and
// employee still match the rule's. A stale exception recorded against
// earlier rule times stops cancelling and falls through to the overrides.
func classifyExceptions(rule calendar.RecurrenceRule, exceptions []calendar.RecurrenceException, candidates []calendar.Date) (map[calendar.Date]bool, []calendar.RecurrenceException) {
	candidateSet := make(map[calendar.Date]bool, len(candidates))
	for _, d := range candidates {
		candidateSet[d] = true
	}

	cancelled := make(map[calendar.Date]bool)
	overrides := make([]calendar.RecurrenceException, 0, len(exceptions))
	for _, ex := range exceptions {
		isCancellation := candidateSet[ex.Date] &&
			ex.Start == rule.Start &&
			ex.End == rule.End &&
			ex.EmployeeID == rule.EmployeeID
		if isCancellation {
			cancelled[ex.Date] = true
			continue
		}
		overrides = append(overrides, ex)
	}
	return cancelled, overrides
}

// weekIndex assigns a stable integer to the Monday-aligned week containing d.
func weekIndex(d calendar.Date) int {
	day := d.MondayOnOrBefore().DayNumber()
	if day < 0 && day%7 != 0 {
		return day/7 - 1
	}
	return day / 7
}
