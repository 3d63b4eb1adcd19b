package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/staff-calendar/internal/application"
	"github.com/example/staff-calendar/internal/calendar"
)

// EmployeeHandler manages the employee columns of the calendar.
type EmployeeHandler struct {
	employees *application.EmployeeService
	responder responder
}

// NewEmployeeHandler constructs the handler.
func NewEmployeeHandler(employees *application.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		responder: newResponder(logger),
	}
}

type createEmployeeRequest struct {
	DisplayName string `json:"displayName"`
}

type saveEmployeesRequest struct {
	Employees []employeePayload `json:"employees"`
}

// List serves GET /employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employees, err := h.employees.ListEmployees(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	payload := make([]employeePayload, 0, len(employees))
	for _, emp := range employees {
		payload = append(payload, toEmployeePayload(emp))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, payload)
}

// Create serves POST /employees.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	employee, err := h.employees.AddEmployee(ctx, req.DisplayName)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, toEmployeePayload(employee))
}

// Save serves PUT /employees, replacing the full list.
func (h *EmployeeHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req saveEmployeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	employees := make([]calendar.Employee, 0, len(req.Employees))
	for _, emp := range req.Employees {
		employees = append(employees, calendar.Employee{
			ID:          emp.ID,
			DisplayName: emp.DisplayName,
			IsActive:    emp.IsActive,
		})
	}

	if err := h.employees.SaveEmployees(ctx, employees); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}
