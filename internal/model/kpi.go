package model

import "strings"

// KPIType identifies an indicator and, through it, the scale and salary base used for its bonus.
type KPIType string

const (
	KPIMonthlyBSC         KPIType = "MONTHLY_BSC"
	KPIMonthlyMAT         KPIType = "MONTHLY_MAT"
	KPIQuarterlyGerencial KPIType = "QUARTERLY_GERENCIAL"
	KPIAnnualEBITDA       KPIType = "ANNUAL_EBITDA"
)

// AllKPITypes returns every KPI in report order.
func AllKPITypes() []KPIType {
	return []KPIType{KPIMonthlyBSC, KPIMonthlyMAT, KPIQuarterlyGerencial, KPIAnnualEBITDA}
}

// Valid reports whether k is one of the known KPI types.
func (k KPIType) Valid() bool {
	switch k {
	case KPIMonthlyBSC, KPIMonthlyMAT, KPIQuarterlyGerencial, KPIAnnualEBITDA:
		return true
	}
	return false
}

// ParseKPIType accepts a KPI constant or its short name ("BSC", "MAT", "TRIM", "EBITDA"), case-insensitively.
func ParseKPIType(s string) (KPIType, bool) {
	switch strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), ".") {
	case "BSC", "VENDAS", string(KPIMonthlyBSC):
		return KPIMonthlyBSC, true
	case "MAT", string(KPIMonthlyMAT):
		return KPIMonthlyMAT, true
	case "TRIM", "TRIMESTRAL", "GERENCIAL", string(KPIQuarterlyGerencial):
		return KPIQuarterlyGerencial, true
	case "EBITDA", "ANUAL", string(KPIAnnualEBITDA):
		return KPIAnnualEBITDA, true
	}
	return "", false
}

// Label returns the display name used in reports.
func (k KPIType) Label() string {
	switch k {
	case KPIMonthlyBSC:
		return "Prêmio Mensal - Vendas BSC"
	case KPIMonthlyMAT:
		return "Prêmio Mensal - Gerencial MAT"
	case KPIQuarterlyGerencial:
		return "Prêmio Trimestral - Orçamento Gerencial"
	case KPIAnnualEBITDA:
		return "Prêmio Anual - EBITDA"
	default:
		return string(k)
	}
}

// ShortLabel is the column prefix used in CSV exports.
func (k KPIType) ShortLabel() string {
	switch k {
	case KPIMonthlyBSC:
		return "BSC"
	case KPIMonthlyMAT:
		return "MAT"
	case KPIQuarterlyGerencial:
		return "Trim."
	case KPIAnnualEBITDA:
		return "EBITDA"
	default:
		return string(k)
	}
}

// BaseLabel describes which salary base the KPI pays on.
func (k KPIType) BaseLabel() string {
	switch k {
	case KPIQuarterlyGerencial:
		return "Base: 3x Salário"
	case KPIAnnualEBITDA:
		return "Base: Salário Anual"
	default:
		return "Base: Salário Mensal"
	}
}

// EmployeeRole selects between the manager scale and the team share of it.
type EmployeeRole string

const (
	RoleGerente EmployeeRole = "GERENTE"
	RoleEquipe  EmployeeRole = "EQUIPE"
)

// PrizeBracket maps an integer achievement point to a base bonus percentage.
type PrizeBracket struct {
	Attaining      int
	BasePercentage float64
}

// CalculationResult is the evaluation of one KPI for one employee.
type CalculationResult struct {
	KPIType         KPIType `json:"kpi_type"`
	Achievement     float64 `json:"achievement"`
	BonusPercentage float64 `json:"bonus_percentage"`
	BonusValue      float64 `json:"bonus_value"`
}
