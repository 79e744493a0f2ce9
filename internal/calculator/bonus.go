package calculator

import (
	"math"

	"Premiacao/internal/model"
	"Premiacao/internal/scale"
)

// BonusPercentage resolves the bonus percentage for an achievement.
// Achievement is floored, anything under 90 pays nothing, and anything over 120 pays the 120 bracket.
// Team members receive half the manager percentage on monthly and quarterly KPIs; the annual KPI
// pays the same for both roles. Unknown KPIs and non-finite achievements return 0.
func BonusPercentage(kpi model.KPIType, achievement float64, role model.EmployeeRole) float64 {
	if math.IsNaN(achievement) {
		return 0
	}
	floored := math.Floor(achievement)
	if floored < scale.MinAttaining {
		return 0
	}
	if floored > scale.MaxAttaining {
		floored = scale.MaxAttaining
	}

	s, ok := scale.ForKPI(kpi)
	if !ok {
		return 0
	}
	pct, ok := s.Lookup(int(floored))
	if !ok {
		return 0
	}

	switch kpi {
	case model.KPIAnnualEBITDA:
		return pct
	default:
		if role == model.RoleGerente {
			return pct
		}
		return pct / 2
	}
}

// PeriodMultiplier is how many monthly salaries form the base of a KPI's bonus.
func PeriodMultiplier(kpi model.KPIType) float64 {
	switch kpi {
	case model.KPIQuarterlyGerencial:
		return 3
	case model.KPIAnnualEBITDA:
		return 12
	default:
		return 1
	}
}

// CalculateBonusValue converts a percentage into money on the KPI's salary base.
func CalculateBonusValue(kpi model.KPIType, baseSalary, percentage float64) float64 {
	return baseSalary * PeriodMultiplier(kpi) * percentage / 100
}

// Evaluate computes the result of one KPI for one employee.
func Evaluate(kpi model.KPIType, achievement float64, emp model.Employee) model.CalculationResult {
	pct := BonusPercentage(kpi, achievement, emp.Role)
	return model.CalculationResult{
		KPIType:         kpi,
		Achievement:     achievement,
		BonusPercentage: pct,
		BonusValue:      CalculateBonusValue(kpi, emp.BaseSalary, pct),
	}
}

// EvaluateAll evaluates every KPI in report order. Missing achievements count as 0.
func EvaluateAll(emp model.Employee, perf model.EmployeePerformance) []model.CalculationResult {
	kpis := model.AllKPITypes()
	results := make([]model.CalculationResult, 0, len(kpis))
	for _, kpi := range kpis {
		results = append(results, Evaluate(kpi, perf[kpi], emp))
	}
	return results
}

// TotalBonus sums the bonus values of a set of results.
func TotalBonus(results []model.CalculationResult) float64 {
	sum := 0.0
	for _, r := range results {
		sum += r.BonusValue
	}
	return sum
}
