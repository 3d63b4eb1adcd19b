package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/persistence"
)

// AbsenceRepository provides absence persistence on SQLite.
type AbsenceRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewAbsenceRepository creates a new absence repository.
func NewAbsenceRepository(pool *ConnectionPool, helper *QueryHelper, mapper *ErrorMapper) *AbsenceRepository {
	return &AbsenceRepository{pool: pool, helper: helper, mapper: mapper}
}

// ListAbsencesForMonth returns all absences dated within the month.
func (r *AbsenceRepository) ListAbsencesForMonth(ctx context.Context, year int, month time.Month) ([]calendar.Absence, error) {
	first := calendar.NewDate(year, month, 1)
	last := calendar.NewDate(year, month, calendar.DaysInMonth(year, month))

	rows, err := r.helper.Query(ctx, `
		SELECT id, employee_id, date, absence_type, note
		FROM absences
		WHERE date BETWEEN ? AND ?
		ORDER BY date, employee_id, id`,
		first.String(), last.String())
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	absences := make([]calendar.Absence, 0)
	for rows.Next() {
		var (
			absence calendar.Absence
			date    string
			kind    int
		)
		if err := rows.Scan(&absence.ID, &absence.EmployeeID, &date, &kind, &absence.Note); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		if absence.Date, err = calendar.ParseDate(date); err != nil {
			return nil, fmt.Errorf("invalid absence date %q: %w", date, err)
		}
		absence.Type = calendar.AbsenceType(kind)
		absences = append(absences, absence)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return absences, nil
}

// UpsertAbsence inserts or replaces an absence by ID.
func (r *AbsenceRepository) UpsertAbsence(ctx context.Context, absence calendar.Absence) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO absences (id, employee_id, date, absence_type, note)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			date = excluded.date,
			absence_type = excluded.absence_type,
			note = excluded.note`,
		absence.ID, absence.EmployeeID, absence.Date.String(),
		int(absence.Type), absence.Note)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// DeleteAbsence removes an absence by ID.
func (r *AbsenceRepository) DeleteAbsence(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM absences WHERE id = ?`, id)
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
