package calendar

import (
	"fmt"
	"time"
)

// Date is a civil calendar day without a time or timezone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date, normalizing out-of-range components the way
// time.Date does (e.g. day 0 rolls back into the previous month).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf extracts the civil date from an instant.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses the persisted "2006-01-02" format.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: invalid date %q: %w", value, err)
	}
	return DateOf(t), nil
}

// String renders the persisted "2006-01-02" format.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns the date shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths returns the date shifted by n months.
func (d Date) AddMonths(n int) Date {
	return DateOf(d.Time().AddDate(0, n, 0))
}

// Weekday returns the day of week (Sunday == 0, as in the time package).
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DayNumber returns the number of days since the Unix epoch. Dates before
// 1970 yield negative numbers with floor semantics so week arithmetic stays
// stable across the epoch.
func (d Date) DayNumber() int {
	return floorDiv(d.Time().Unix(), 86400)
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	return d.compare(other) < 0
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.compare(other) > 0
}

func (d Date) compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return d.Year - other.Year
	case d.Month != other.Month:
		return int(d.Month) - int(other.Month)
	default:
		return d.Day - other.Day
	}
}

// MondayOnOrBefore returns the latest Monday that is not after d.
func (d Date) MondayOnOrBefore() Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// FirstOfMonth returns the first day of the month containing d.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return NewDate(year, month+1, 0).Day
}

// TimeOfDay is a clock time with minute precision. The zero value is
// midnight. An End value of 24:00 is legal and represents end of day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay constructs a TimeOfDay from hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay parses the persisted "15:04" format. Only the exact
// two-digit form is accepted.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	if len(value) != 5 || value[2] != ':' || !allDigits(value[:2]) || !allDigits(value[3:]) {
		return TimeOfDay{}, fmt.Errorf("calendar: invalid time %q", value)
	}
	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')
	if hour > 24 || minute > 59 || (hour == 24 && minute != 0) {
		return TimeOfDay{}, fmt.Errorf("calendar: invalid time %q", value)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the persisted "15:04" format.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the time as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// MinutesOfDay converts minutes since midnight back into a TimeOfDay.
func MinutesOfDay(total int) TimeOfDay {
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// AddMinutes returns the time shifted forward by n minutes.
func (t TimeOfDay) AddMinutes(n int) TimeOfDay {
	return MinutesOfDay(t.Minutes() + n)
}

// Before reports whether t is earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// After reports whether t is later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

func floorDiv(a int64, b int64) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return int(q)
}
