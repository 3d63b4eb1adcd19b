package calendar

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart.Minutes() < bEnd.Minutes() && bStart.Minutes() < aEnd.Minutes()
}

// FindOverlap returns the first existing appointment of the same employee on
// the same date in the composed view whose interval intersects the
// candidate's. An existing appointment with id ignoreID is skipped, which
// lets an edit be validated against everything but itself.
func FindOverlap(candidate Appointment, view *MonthView, ignoreID string) (Appointment, bool) {
	cell := view.Cell(candidate.Date)
	if cell == nil {
		return Appointment{}, false
	}
	for _, existing := range cell.Appointments {
		if existing.EmployeeID != candidate.EmployeeID {
			continue
		}
		if ignoreID != "" && existing.ID == ignoreID {
			continue
		}
		if Overlaps(candidate.Start, candidate.End, existing.Start, existing.End) {
			return existing, true
		}
	}
	return Appointment{}, false
}

// HasOverlap reports whether the candidate appointment intersects any
// existing appointment of the same employee on the same date.
func HasOverlap(candidate Appointment, view *MonthView, ignoreID string) bool {
	_, found := FindOverlap(candidate, view, ignoreID)
	return found
}
