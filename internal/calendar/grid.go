package calendar

import "time"

// gridCells is the fixed month grid size: 6 weeks of 7 days, Monday-first.
const gridCells = 42

// BuildMonthView lays out the 6x7 day grid for the given month and populates
// each cell with the appointments and absences falling on its date. The
// appointment slice must already be merged and sorted chronologically.
func BuildMonthView(year int, month time.Month, slotMinutes int, employees []Employee, appointments []Appointment, absences []Absence) MonthView {
	first := Date{Year: year, Month: month, Day: 1}
	offset := (int(first.Weekday()) + 6) % 7
	gridStart := first.AddDays(-offset)

	holidays := holidaysSpanning(gridStart, gridStart.AddDays(gridCells-1))

	apptsByDate := make(map[Date][]Appointment, len(appointments))
	for _, a := range appointments {
		apptsByDate[a.Date] = append(apptsByDate[a.Date], a)
	}
	absencesByDate := make(map[Date][]Absence, len(absences))
	for _, ab := range absences {
		absencesByDate[ab.Date] = append(absencesByDate[ab.Date], ab)
	}

	cells := make([]DayCell, 0, gridCells)
	for i := 0; i < gridCells; i++ {
		d := gridStart.AddDays(i)
		weekday := d.Weekday()
		_, holiday := holidays[d]
		cells = append(cells, DayCell{
			Date:           d,
			InCurrentMonth: d.Month == month && d.Year == year,
			IsWeekend:      weekday == time.Saturday || weekday == time.Sunday,
			IsHoliday:      holiday,
			Appointments:   apptsByDate[d],
			Absences:       absencesByDate[d],
		})
	}

	return MonthView{
		Year:        year,
		Month:       month,
		SlotMinutes: slotMinutes,
		Employees:   employees,
		Cells:       cells,
	}
}

func holidaysSpanning(from, to Date) map[Date]string {
	merged := Holidays(from.Year)
	if to.Year != from.Year {
		for d, name := range Holidays(to.Year) {
			merged[d] = name
		}
	}
	return merged
}
