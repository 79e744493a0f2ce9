package scale

// MonthlyManager: 5% at 90% up to 20% at 120%, +0.5 per point. Used by BSC and MAT.
var MonthlyManager = build("Mensal Gerente", func(a int) float64 {
	return 5 + 0.5*float64(a-MinAttaining)
})

// QuarterlyManager: 10% at 90% up to 40% at 120%, +1 per point.
var QuarterlyManager = build("Trimestral Gerencial Gerente", func(a int) float64 {
	return 10 + float64(a-MinAttaining)
})

// AnnualEBITDA is expressed as a percentage of the annual salary.
var AnnualEBITDA = build("Anual EBITDA", func(a int) float64 {
	return AnnualSalaryMultiplier(a) / 12 * 100
})

// AnnualSalaryMultiplier returns how many monthly salaries the EBITDA bonus pays at a given point.
// Three segments: 0.25-0.50 below 95, 0.50-1.00 up to 100, then 1.00-2.00 up to 120.
func AnnualSalaryMultiplier(attaining int) float64 {
	x := float64(attaining)
	switch {
	case attaining < MinAttaining:
		return 0
	case attaining < 95:
		return 0.25 + 0.05*(x-90)
	case attaining <= 100:
		return 0.50 + 0.10*(x-95)
	default:
		return 1.00 + 0.05*(x-100)
	}
}
