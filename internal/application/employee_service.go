package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/persistence"
)

// EmployeeService manages the employee list shown as calendar columns.
type EmployeeService struct {
	employees   persistence.EmployeeRepository
	calendars   *CalendarService
	idGenerator func() string
}

// NewEmployeeService wires dependencies for employee management.
func NewEmployeeService(employees persistence.EmployeeRepository, calendars *CalendarService, idGenerator func() string) *EmployeeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &EmployeeService{
		employees:   employees,
		calendars:   calendars,
		idGenerator: idGenerator,
	}
}

// ListEmployees returns all employees in display order.
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]calendar.Employee, error) {
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// AddEmployee appends a new active employee, rejecting duplicate names
// case-insensitively.
func (s *EmployeeService) AddEmployee(ctx context.Context, displayName string) (calendar.Employee, error) {
	displayName = strings.TrimSpace(displayName)

	v := &ValidationError{}
	if displayName == "" {
		v.add("displayName", "Name ist erforderlich")
		return calendar.Employee{}, v
	}

	existing, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return calendar.Employee{}, fmt.Errorf("failed to list employees: %w", err)
	}
	lower := strings.ToLower(displayName)
	for _, emp := range existing {
		if strings.ToLower(emp.DisplayName) == lower {
			v.add("displayName", "Name ist bereits vergeben")
			return calendar.Employee{}, v
		}
	}

	employee := calendar.Employee{
		ID:          s.idGenerator(),
		DisplayName: displayName,
		IsActive:    true,
	}
	if err := s.employees.SaveEmployees(ctx, append(existing, employee)); err != nil {
		return calendar.Employee{}, mapStoreError(err)
	}

	s.calendars.cache.invalidateAll()
	return employee, nil
}

// SaveEmployees replaces the full employee list, preserving order.
func (s *EmployeeService) SaveEmployees(ctx context.Context, employees []calendar.Employee) error {
	v := &ValidationError{}
	seen := make(map[string]bool, len(employees))
	for i, emp := range employees {
		name := strings.ToLower(strings.TrimSpace(emp.DisplayName))
		if name == "" {
			v.add(fmt.Sprintf("employees[%d].displayName", i), "Name ist erforderlich")
			continue
		}
		if seen[name] {
			v.add(fmt.Sprintf("employees[%d].displayName", i), "Name ist bereits vergeben")
		}
		seen[name] = true
	}
	if v.HasErrors() {
		return v
	}

	for i := range employees {
		if employees[i].ID == "" {
			employees[i].ID = s.idGenerator()
		}
	}

	if err := s.employees.SaveEmployees(ctx, employees); err != nil {
		return mapStoreError(err)
	}

	s.calendars.cache.invalidateAll()
	return nil
}
