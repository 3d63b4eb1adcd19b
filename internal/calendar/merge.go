package calendar

import (
	"sort"
	"strings"
)

// mergeKey is the identity used to reconcile explicit appointments with
// generated occurrences and to target status overrides. CustomerName is
// compared case-insensitively.
type mergeKey struct {
	employeeID string
	date       Date
	start      TimeOfDay
	end        TimeOfDay
	customer   string
}

func keyOfAppointment(a Appointment) mergeKey {
	return mergeKey{
		employeeID: a.EmployeeID,
		date:       a.Date,
		start:      a.Start,
		end:        a.End,
		customer:   strings.ToLower(a.CustomerName),
	}
}

func keyOfOverride(o StatusOverride) mergeKey {
	return mergeKey{
		employeeID: o.EmployeeID,
		date:       o.Date,
		start:      o.Start,
		end:        o.End,
		customer:   strings.ToLower(o.CustomerName),
	}
}

// MergeAppointments combines explicit appointments with expanded recurring
// occurrences. On a key collision the explicit appointment wins, suppressing
// the generated occurrence without needing an exception record. The result is
// ordered by (date, start).
func MergeAppointments(explicit, recurring []Appointment) []Appointment {
	merged := make(map[mergeKey]Appointment, len(explicit)+len(recurring))
	for _, a := range recurring {
		merged[keyOfAppointment(a)] = a
	}
	for _, a := range explicit {
		merged[keyOfAppointment(a)] = a
	}

	result := make([]Appointment, 0, len(merged))
	for _, a := range merged {
		result = append(result, a)
	}
	SortChronological(result)
	return result
}

// ApplyStatusOverrides replaces the status of every appointment matching an
// override's key, leaving identity and timing untouched. Overrides that match
// nothing have no effect.
func ApplyStatusOverrides(appointments []Appointment, overrides []StatusOverride) []Appointment {
	if len(overrides) == 0 {
		return appointments
	}

	byKey := make(map[mergeKey]Status, len(overrides))
	for _, o := range overrides {
		byKey[keyOfOverride(o)] = o.Status
	}

	result := make([]Appointment, len(appointments))
	copy(result, appointments)
	for i, a := range result {
		if status, ok := byKey[keyOfAppointment(a)]; ok {
			result[i].Status = status
		}
	}
	return result
}

// SortChronological orders appointments by (date, start), falling back to
// (end, id) so equal slots sort deterministically.
func SortChronological(appointments []Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		a, b := appointments[i], appointments[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		if a.Start != b.Start {
			return a.Start.Before(b.Start)
		}
		if a.End != b.End {
			return a.End.Before(b.End)
		}
		return a.ID < b.ID
	})
}
