package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/persistence"
)

// AppointmentRepository provides appointment persistence on SQLite.
type AppointmentRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewAppointmentRepository creates a new appointment repository.
func NewAppointmentRepository(pool *ConnectionPool, helper *QueryHelper, mapper *ErrorMapper) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, helper: helper, mapper: mapper}
}

// ListAppointmentsForMonth returns all appointments dated within the month,
// ordered by date and start time.
func (r *AppointmentRepository) ListAppointmentsForMonth(ctx context.Context, year int, month time.Month) ([]calendar.Appointment, error) {
	first := calendar.NewDate(year, month, 1)
	last := calendar.NewDate(year, month, calendar.DaysInMonth(year, month))

	rows, err := r.helper.Query(ctx, `
		SELECT id, employee_id, date, start_time, end_time, customer_name, status
		FROM appointments
		WHERE date BETWEEN ? AND ?
		ORDER BY date, start_time, id`,
		first.String(), last.String())
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	appointments := make([]calendar.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return appointments, nil
}

// UpsertAppointment inserts or replaces an appointment by ID.
func (r *AppointmentRepository) UpsertAppointment(ctx context.Context, appt calendar.Appointment) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO appointments (id, employee_id, date, start_time, end_time, customer_name, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			customer_name = excluded.customer_name,
			status = excluded.status`,
		appt.ID, appt.EmployeeID, appt.Date.String(),
		appt.Start.String(), appt.End.String(),
		appt.CustomerName, int(appt.Status))
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// DeleteAppointment removes an appointment by ID.
func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to fetch affected rows: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (calendar.Appointment, error) {
	var (
		appt       calendar.Appointment
		date       string
		start, end string
		status     int
	)
	if err := row.Scan(&appt.ID, &appt.EmployeeID, &date, &start, &end, &appt.CustomerName, &status); err != nil {
		return calendar.Appointment{}, err
	}

	var err error
	if appt.Date, err = calendar.ParseDate(date); err != nil {
		return calendar.Appointment{}, fmt.Errorf("invalid appointment date %q: %w", date, err)
	}
	if appt.Start, err = calendar.ParseTimeOfDay(start); err != nil {
		return calendar.Appointment{}, fmt.Errorf("invalid appointment start %q: %w", start, err)
	}
	if appt.End, err = calendar.ParseTimeOfDay(end); err != nil {
		return calendar.Appointment{}, fmt.Errorf("invalid appointment end %q: %w", end, err)
	}
	appt.Status = calendar.Status(status)

	return appt, nil
}
