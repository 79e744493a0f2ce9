package payroll

import (
	"Premiacao/internal/calculator"
	"Premiacao/internal/model"
)

// Row is one employee's line in the monthly payroll.
type Row struct {
	Employee   model.Employee
	Results    []model.CalculationResult
	TotalBonus float64
	Gross      float64
}

// Payroll is the bonus sheet of a month.
type Payroll struct {
	Month      string
	Rows       []Row
	TotalBonus float64
	TotalGross float64
}

// Build evaluates every employee against every KPI for a month.
func Build(month string, employees []model.Employee, perf map[string]model.EmployeePerformance) *Payroll {
	p := &Payroll{Month: month, Rows: make([]Row, 0, len(employees))}
	for _, emp := range employees {
		row := BuildRow(emp, perf[emp.ID])
		p.TotalBonus += row.TotalBonus
		p.TotalGross += row.Gross
		p.Rows = append(p.Rows, row)
	}
	return p
}

// BuildRow evaluates one employee.
func BuildRow(emp model.Employee, perf model.EmployeePerformance) Row {
	results := calculator.EvaluateAll(emp, perf)
	total := calculator.TotalBonus(results)
	return Row{
		Employee:   emp,
		Results:    results,
		TotalBonus: total,
		Gross:      emp.BaseSalary + total,
	}
}

// Find returns the row for an employee id.
func (p *Payroll) Find(id string) (Row, bool) {
	for _, r := range p.Rows {
		if r.Employee.ID == id {
			return r, true
		}
	}
	return Row{}, false
}
