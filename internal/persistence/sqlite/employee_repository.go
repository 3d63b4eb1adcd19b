package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/staff-calendar/internal/calendar"
)

// EmployeeRepository provides employee persistence on SQLite.
type EmployeeRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(pool *ConnectionPool, helper *QueryHelper, mapper *ErrorMapper) *EmployeeRepository {
	return &EmployeeRepository{pool: pool, helper: helper, mapper: mapper}
}

// ListEmployees returns all employees ordered by display name.
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]calendar.Employee, error) {
	rows, err := r.helper.Query(ctx, `
		SELECT id, display_name, is_active
		FROM employees
		ORDER BY display_name, id`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	employees := make([]calendar.Employee, 0)
	for rows.Next() {
		var (
			emp    calendar.Employee
			active int
		)
		if err := rows.Scan(&emp.ID, &emp.DisplayName, &active); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		emp.IsActive = active != 0
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return employees, nil
}

// SaveEmployees replaces the stored employee list in a single transaction.
func (r *EmployeeRepository) SaveEmployees(ctx context.Context, employees []calendar.Employee) error {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM employees`); err != nil {
			return fmt.Errorf("failed to clear employees: %w", err)
		}
		for _, emp := range employees {
			if _, err := tx.Exec(`
				INSERT INTO employees (id, display_name, is_active)
				VALUES (?, ?, ?)`,
				emp.ID, emp.DisplayName, boolToInt(emp.IsActive)); err != nil {
				return fmt.Errorf("failed to insert employee %s: %w", emp.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
