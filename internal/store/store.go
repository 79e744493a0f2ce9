package store

import (
	"errors"

	"Premiacao/internal/model"
)

var (
	ErrNotFound        = errors.New("employee not found")
	ErrInvalidEmployee = errors.New("invalid employee")
	ErrInvalidMonth    = errors.New("invalid month key")
	ErrInvalidKPI      = errors.New("invalid kpi type")
)

// Store is the roster and monthly performance repository.
type Store interface {
	Employees() []model.Employee
	Employee(id string) (model.Employee, error)
	FindByName(name string) (model.Employee, bool)
	AddEmployee(name string, baseSalary float64, role model.EmployeeRole) (model.Employee, error)
	UpsertEmployee(emp model.Employee) error
	DeleteEmployee(id string) error

	Performance(month string) map[string]model.EmployeePerformance
	SetAchievement(month, employeeID string, kpi model.KPIType, value float64) error
	SetMonth(month string, perf map[string]model.EmployeePerformance) error
	ApplyImport(month string, employees []model.Employee, perf map[string]model.EmployeePerformance) error
}
