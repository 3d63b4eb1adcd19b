package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/persistence"
)

// RecurrenceRepository provides recurrence rule and exception persistence
// on SQLite.
type RecurrenceRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewRecurrenceRepository creates a new recurrence repository.
func NewRecurrenceRepository(pool *ConnectionPool, helper *QueryHelper, mapper *ErrorMapper) *RecurrenceRepository {
	return &RecurrenceRepository{pool: pool, helper: helper, mapper: mapper}
}

// ListRules returns all recurrence rules ordered by employee, weekday and
// start time.
func (r *RecurrenceRepository) ListRules(ctx context.Context) ([]calendar.RecurrenceRule, error) {
	rows, err := r.helper.Query(ctx, `
		SELECT id, employee_id, weekday, start_time, end_time, customer_name, is_active, interval_weeks, anchor_date
		FROM recurrence_rules
		ORDER BY employee_id, weekday, start_time, id`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	rules := make([]calendar.RecurrenceRule, 0)
	for rows.Next() {
		var (
			rule       calendar.RecurrenceRule
			weekday    int
			start, end string
			active     int
			anchor     string
		)
		if err := rows.Scan(&rule.ID, &rule.EmployeeID, &weekday, &start, &end,
			&rule.CustomerName, &active, &rule.IntervalWeeks, &anchor); err != nil {
			return nil, fmt.Errorf("failed to scan recurrence rule: %w", err)
		}
		rule.Weekday = time.Weekday(weekday)
		rule.IsActive = active != 0
		if rule.Start, err = calendar.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("invalid rule start %q: %w", start, err)
		}
		if rule.End, err = calendar.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("invalid rule end %q: %w", end, err)
		}
		if rule.AnchorDate, err = calendar.ParseDate(anchor); err != nil {
			return nil, fmt.Errorf("invalid rule anchor %q: %w", anchor, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return rules, nil
}

// UpsertRule inserts or replaces a recurrence rule by ID.
func (r *RecurrenceRepository) UpsertRule(ctx context.Context, rule calendar.RecurrenceRule) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO recurrence_rules (id, employee_id, weekday, start_time, end_time, customer_name, is_active, interval_weeks, anchor_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			weekday = excluded.weekday,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			customer_name = excluded.customer_name,
			is_active = excluded.is_active,
			interval_weeks = excluded.interval_weeks,
			anchor_date = excluded.anchor_date`,
		rule.ID, rule.EmployeeID, int(rule.Weekday),
		rule.Start.String(), rule.End.String(),
		rule.CustomerName, boolToInt(rule.IsActive),
		rule.IntervalWeeks, rule.AnchorDate.String())
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// DeleteRule removes a rule and all of its exceptions.
func (r *RecurrenceRepository) DeleteRule(ctx context.Context, id string) error {
	var deleted bool
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM recurrence_exceptions WHERE rule_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete exceptions for rule %s: %w", id, err)
		}
		result, err := tx.Exec(`DELETE FROM recurrence_rules WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete rule %s: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to fetch affected rows: %w", err)
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return r.mapper.MapError(err)
	}
	if !deleted {
		return persistence.ErrNotFound
	}
	return nil
}

// ListExceptions returns all exceptions of a rule ordered by date.
func (r *RecurrenceRepository) ListExceptions(ctx context.Context, ruleID string) ([]calendar.RecurrenceException, error) {
	rows, err := r.helper.Query(ctx, `
		SELECT id, rule_id, employee_id, date, start_time, end_time, customer_name
		FROM recurrence_exceptions
		WHERE rule_id = ?
		ORDER BY date, start_time, id`, ruleID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	exceptions := make([]calendar.RecurrenceException, 0)
	for rows.Next() {
		var (
			ex         calendar.RecurrenceException
			date       string
			start, end string
		)
		if err := rows.Scan(&ex.ID, &ex.RecurrenceRuleID, &ex.EmployeeID, &date, &start, &end, &ex.CustomerName); err != nil {
			return nil, fmt.Errorf("failed to scan recurrence exception: %w", err)
		}
		if ex.Date, err = calendar.ParseDate(date); err != nil {
			return nil, fmt.Errorf("invalid exception date %q: %w", date, err)
		}
		if ex.Start, err = calendar.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("invalid exception start %q: %w", start, err)
		}
		if ex.End, err = calendar.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("invalid exception end %q: %w", end, err)
		}
		exceptions = append(exceptions, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return exceptions, nil
}

// UpsertException inserts or replaces an exception by ID.
func (r *RecurrenceRepository) UpsertException(ctx context.Context, ex calendar.RecurrenceException) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO recurrence_exceptions (id, rule_id, employee_id, date, start_time, end_time, customer_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			rule_id = excluded.rule_id,
			employee_id = excluded.employee_id,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			customer_name = excluded.customer_name`,
		ex.ID, ex.RecurrenceRuleID, ex.EmployeeID, ex.Date.String(),
		ex.Start.String(), ex.End.String(), ex.CustomerName)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// DeleteException removes an exception by ID.
func (r *RecurrenceRepository) DeleteException(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM recurrence_exceptions WHERE id = ?`, id)
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
