package calendar

import "time"

// Holidays returns the nationwide German public holidays of a year, keyed by
// date. State-specific holidays are intentionally not included.
func Holidays(year int) map[Date]string {
	h := map[Date]string{
		{Year: year, Month: time.January, Day: 1}:   "Neujahr",
		{Year: year, Month: time.May, Day: 1}:       "Tag der Arbeit",
		{Year: year, Month: time.October, Day: 3}:   "Tag der Deutschen Einheit",
		{Year: year, Month: time.December, Day: 25}: "1. Weihnachtstag",
		{Year: year, Month: time.December, Day: 26}: "2. Weihnachtstag",
	}

	easter := easterSunday(year)
	h[easter.AddDays(-2)] = "Karfreitag"
	h[easter.AddDays(1)] = "Ostermontag"
	h[easter.AddDays(39)] = "Christi Himmelfahrt"
	h[easter.AddDays(50)] = "Pfingstmontag"

	return h
}

// easterSunday computes Gregorian Easter Sunday using the Gaussian formula.
func easterSunday(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return Date{Year: year, Month: time.Month(month), Day: day}
}
