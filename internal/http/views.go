package http

import (
	"github.com/example/staff-calendar/internal/calendar"
)

// Wire representations keep dates and times as the same ISO-like text the
// store uses, so clients never parse Go formats.

type monthViewResponse struct {
	Year        int               `json:"year"`
	Month       int               `json:"month"`
	SlotMinutes int               `json:"slotMinutes"`
	Employees   []employeePayload `json:"employees"`
	Cells       []dayCellPayload  `json:"cells"`
}

type employeePayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsActive    bool   `json:"isActive"`
}

type dayCellPayload struct {
	Date           string               `json:"date"`
	InCurrentMonth bool                 `json:"inCurrentMonth"`
	IsWeekend      bool                 `json:"isWeekend"`
	IsHoliday      bool                 `json:"isHoliday"`
	Appointments   []appointmentPayload `json:"appointments"`
	Absences       []absencePayload     `json:"absences"`
}

type appointmentPayload struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employeeId"`
	Date             string `json:"date"`
	Start            string `json:"start"`
	End              string `json:"end"`
	CustomerName     string `json:"customerName"`
	Status           string `json:"status"`
	FromRecurrence   bool   `json:"fromRecurrence"`
	RecurrenceRuleID string `json:"recurrenceRuleId,omitempty"`
}

type absencePayload struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Note       string `json:"note,omitempty"`
}

func toMonthViewResponse(view *calendar.MonthView) monthViewResponse {
	resp := monthViewResponse{
		Year:        view.Year,
		Month:       int(view.Month),
		SlotMinutes: view.SlotMinutes,
		Employees:   make([]employeePayload, 0, len(view.Employees)),
		Cells:       make([]dayCellPayload, 0, len(view.Cells)),
	}

	for _, emp := range view.Employees {
		resp.Employees = append(resp.Employees, toEmployeePayload(emp))
	}

	for _, cell := range view.Cells {
		payload := dayCellPayload{
			Date:           cell.Date.String(),
			InCurrentMonth: cell.InCurrentMonth,
			IsWeekend:      cell.IsWeekend,
			IsHoliday:      cell.IsHoliday,
			Appointments:   make([]appointmentPayload, 0, len(cell.Appointments)),
			Absences:       make([]absencePayload, 0, len(cell.Absences)),
		}
		for _, appt := range cell.Appointments {
			payload.Appointments = append(payload.Appointments, toAppointmentPayload(appt))
		}
		for _, absence := range cell.Absences {
			payload.Absences = append(payload.Absences, absencePayload{
				ID:         absence.ID,
				EmployeeID: absence.EmployeeID,
				Date:       absence.Date.String(),
				Type:       absence.Type.String(),
				Note:       absence.Note,
			})
		}
		resp.Cells = append(resp.Cells, payload)
	}

	return resp
}

func toEmployeePayload(emp calendar.Employee) employeePayload {
	return employeePayload{
		ID:          emp.ID,
		DisplayName: emp.DisplayName,
		IsActive:    emp.IsActive,
	}
}

func toAppointmentPayload(appt calendar.Appointment) appointmentPayload {
	return appointmentPayload{
		ID:               appt.ID,
		EmployeeID:       appt.EmployeeID,
		Date:             appt.Date.String(),
		Start:            appt.Start.String(),
		End:              appt.End.String(),
		CustomerName:     appt.CustomerName,
		Status:           appt.Status.String(),
		FromRecurrence:   appt.FromRecurrence,
		RecurrenceRuleID: appt.RecurrenceRuleID,
	}
}
