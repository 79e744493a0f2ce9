package model

import (
	"strings"
	"time"
)

// Employee is a roster entry. Only BaseSalary and Role matter to the bonus engine.
type Employee struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	BaseSalary float64      `json:"base_salary"`
	Role       EmployeeRole `json:"role"`
}

// EmployeePerformance holds one month of achievement percentages, keyed by KPI.
type EmployeePerformance map[KPIType]float64

// MonthlyHistory maps a month key ("2006-01") to employee id to performance.
type MonthlyHistory map[string]map[string]EmployeePerformance

const monthLayout = "2006-01"

// ParseRole maps free-text roles from spreadsheets to a role; anything not mentioning GERENTE is team.
func ParseRole(s string) EmployeeRole {
	if strings.Contains(strings.ToUpper(s), string(RoleGerente)) {
		return RoleGerente
	}
	return RoleEquipe
}

// MonthKey formats t as a month key.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// PreviousMonthKey returns the key of the month before t.
func PreviousMonthKey(t time.Time) string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return MonthKey(first.AddDate(0, -1, 0))
}

// ValidMonthKey reports whether s is a well-formed month key.
func ValidMonthKey(s string) bool {
	_, err := time.Parse(monthLayout, s)
	return err == nil
}
