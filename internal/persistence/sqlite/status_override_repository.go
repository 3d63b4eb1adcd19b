package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/persistence"
)

// StatusOverrideRepository provides status override persistence on SQLite.
type StatusOverrideRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewStatusOverrideRepository creates a new status override repository.
func NewStatusOverrideRepository(pool *ConnectionPool, helper *QueryHelper, mapper *ErrorMapper) *StatusOverrideRepository {
	return &StatusOverrideRepository{pool: pool, helper: helper, mapper: mapper}
}

// ListStatusOverridesForMonth returns all overrides dated within the month.
func (r *StatusOverrideRepository) ListStatusOverridesForMonth(ctx context.Context, year int, month time.Month) ([]calendar.StatusOverride, error) {
	first := calendar.NewDate(year, month, 1)
	last := calendar.NewDate(year, month, calendar.DaysInMonth(year, month))

	rows, err := r.helper.Query(ctx, `
		SELECT id, employee_id, date, start_time, end_time, customer_name, status
		FROM status_overrides
		WHERE date BETWEEN ? AND ?
		ORDER BY date, start_time, id`,
		first.String(), last.String())
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	overrides := make([]calendar.StatusOverride, 0)
	for rows.Next() {
		var (
			ov         calendar.StatusOverride
			date       string
			start, end string
			status     int
		)
		if err := rows.Scan(&ov.ID, &ov.EmployeeID, &date, &start, &end, &ov.CustomerName, &status); err != nil {
			return nil, fmt.Errorf("failed to scan status override: %w", err)
		}
		if ov.Date, err = calendar.ParseDate(date); err != nil {
			return nil, fmt.Errorf("invalid override date %q: %w", date, err)
		}
		if ov.Start, err = calendar.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("invalid override start %q: %w", start, err)
		}
		if ov.End, err = calendar.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("invalid override end %q: %w", end, err)
		}
		ov.Status = calendar.Status(status)
		overrides = append(overrides, ov)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return overrides, nil
}

// UpsertStatusOverride inserts or replaces an override by ID.
func (r *StatusOverrideRepository) UpsertStatusOverride(ctx context.Context, ov calendar.StatusOverride) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO status_overrides (id, employee_id, date, start_time, end_time, customer_name, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			customer_name = excluded.customer_name,
			status = excluded.status`,
		ov.ID, ov.EmployeeID, ov.Date.String(),
		ov.Start.String(), ov.End.String(),
		ov.CustomerName, int(ov.Status))
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// DeleteStatusOverride removes an override by ID.
func (r *StatusOverrideRepository) DeleteStatusOverride(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM status_overrides WHERE id = ?`, id)
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
