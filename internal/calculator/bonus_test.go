package calculator

import (
	"math"
	"testing"

	"Premiacao/internal/model"
)

const eps = 1e-6

var roles = []model.EmployeeRole{model.RoleGerente, model.RoleEquipe}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < eps }

func TestBonusPercentage_BelowThreshold(t *testing.T) {
	for _, kpi := range model.AllKPITypes() {
		for _, role := range roles {
			for _, a := range []float64{-10, 0, 50, 85, 89, 89.99} {
				if got := BonusPercentage(kpi, a, role); got != 0 {
					t.Errorf("%s/%s at %.2f: expected 0, got %.4f", kpi, role, a, got)
				}
			}
		}
	}
}

func TestBonusPercentage_CeilingClamp(t *testing.T) {
	for _, kpi := range model.AllKPITypes() {
		for _, role := range roles {
			ceiling := BonusPercentage(kpi, 120, role)
			for _, a := range []float64{120, 120.5, 121, 150, 1000, math.Inf(1)} {
				if got := BonusPercentage(kpi, a, role); got != ceiling {
					t.Errorf("%s/%s at %v: expected %.4f, got %.4f", kpi, role, a, ceiling, got)
				}
			}
		}
	}
}

func TestBonusPercentage_FloorsBeforeLookup(t *testing.T) {
	for _, kpi := range model.AllKPITypes() {
		for _, role := range roles {
			for x := 90.0; x < 121; x += 0.37 {
				if got, want := BonusPercentage(kpi, x, role), BonusPercentage(kpi, math.Floor(x), role); got != want {
					t.Errorf("%s/%s at %.2f: expected %.4f, got %.4f", kpi, role, x, want, got)
				}
			}
		}
	}
	if got := BonusPercentage(model.KPIMonthlyBSC, 97.9, model.RoleGerente); got != 8.5 {
		t.Errorf("97.9 should be treated as 97: expected 8.5, got %.4f", got)
	}
}

func TestBonusPercentage_Monotonic(t *testing.T) {
	for _, kpi := range model.AllKPITypes() {
		for _, role := range roles {
			prev := 0.0
			for a := 90; a <= 120; a++ {
				got := BonusPercentage(kpi, float64(a), role)
				if got < prev {
					t.Errorf("%s/%s: decreased at %d", kpi, role, a)
				}
				prev = got
			}
		}
	}
}

func TestBonusPercentage_TeamIsHalfOfManager(t *testing.T) {
	for _, kpi := range []model.KPIType{model.KPIMonthlyBSC, model.KPIMonthlyMAT, model.KPIQuarterlyGerencial} {
		for a := 90; a <= 120; a++ {
			mgr := BonusPercentage(kpi, float64(a), model.RoleGerente)
			team := BonusPercentage(kpi, float64(a), model.RoleEquipe)
			if team != mgr/2 {
				t.Errorf("%s at %d: team %.4f is not half of manager %.4f", kpi, a, team, mgr)
			}
		}
	}
}

func TestBonusPercentage_AnnualIgnoresRole(t *testing.T) {
	for x := 80.0; x <= 130; x += 0.5 {
		mgr := BonusPercentage(model.KPIAnnualEBITDA, x, model.RoleGerente)
		team := BonusPercentage(model.KPIAnnualEBITDA, x, model.RoleEquipe)
		if mgr != team {
			t.Errorf("annual at %.1f: manager %.4f != team %.4f", x, mgr, team)
		}
	}
}

func TestBonusPercentage_UnknownInputs(t *testing.T) {
	if got := BonusPercentage("QUARTERLY_SPECIAL", 110, model.RoleGerente); got != 0 {
		t.Errorf("unknown KPI: expected 0, got %.4f", got)
	}
	if got := BonusPercentage(model.KPIMonthlyBSC, math.NaN(), model.RoleGerente); got != 0 {
		t.Errorf("NaN achievement: expected 0, got %.4f", got)
	}
	if got := BonusPercentage(model.KPIMonthlyBSC, math.Inf(-1), model.RoleGerente); got != 0 {
		t.Errorf("-Inf achievement: expected 0, got %.4f", got)
	}
}

func TestCalculateBonusValue_Linear(t *testing.T) {
	for _, kpi := range model.AllKPITypes() {
		for _, p := range [][2]float64{{1, 2}, {5.5, 4.5}, {0, 10}, {8.333, 0.25}} {
			sum := CalculateBonusValue(kpi, 7350.40, p[0]+p[1])
			parts := CalculateBonusValue(kpi, 7350.40, p[0]) + CalculateBonusValue(kpi, 7350.40, p[1])
			if !almostEqual(sum, parts) {
				t.Errorf("%s: not linear for %v: %.6f vs %.6f", kpi, p, sum, parts)
			}
		}
	}
}

func TestCalculateBonusValue_DegenerateSalaries(t *testing.T) {
	if got := CalculateBonusValue(model.KPIMonthlyBSC, 0, 10); got != 0 {
		t.Errorf("zero salary: expected 0, got %.2f", got)
	}
	if got := CalculateBonusValue(model.KPIMonthlyBSC, -1000, 10); got != -100 {
		t.Errorf("negative salary: expected -100, got %.2f", got)
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name        string
		kpi         model.KPIType
		role        model.EmployeeRole
		achievement float64
		salary      float64
		wantPct     float64
		wantValue   float64
	}{
		{"manager monthly at 100", model.KPIMonthlyBSC, model.RoleGerente, 100, 10000, 10, 1000},
		{"team monthly at 100", model.KPIMonthlyMAT, model.RoleEquipe, 100, 10000, 5, 500},
		{"manager quarterly at 90", model.KPIQuarterlyGerencial, model.RoleGerente, 90, 6000, 10, 1800},
		{"team quarterly at 110", model.KPIQuarterlyGerencial, model.RoleEquipe, 110, 6000, 15, 2700},
		{"annual at 100", model.KPIAnnualEBITDA, model.RoleEquipe, 100, 5000, 100.0 / 12, 5000},
		{"annual at 120", model.KPIAnnualEBITDA, model.RoleGerente, 120, 5000, 200.0 / 12, 10000},
		{"below threshold", model.KPIQuarterlyGerencial, model.RoleGerente, 85, 6000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := model.Employee{ID: "1", Name: "ANA", BaseSalary: tt.salary, Role: tt.role}
			res := Evaluate(tt.kpi, tt.achievement, emp)
			if !almostEqual(res.BonusPercentage, tt.wantPct) {
				t.Errorf("expected percentage %.4f, got %.4f", tt.wantPct, res.BonusPercentage)
			}
			if !almostEqual(res.BonusValue, tt.wantValue) {
				t.Errorf("expected value %.2f, got %.4f", tt.wantValue, res.BonusValue)
			}
			if res.KPIType != tt.kpi || res.Achievement != tt.achievement {
				t.Errorf("result does not echo its inputs: %+v", res)
			}
		})
	}
}

func TestScenario_ClampAt150(t *testing.T) {
	for _, kpi := range model.AllKPITypes() {
		for _, role := range roles {
			if BonusPercentage(kpi, 150, role) != BonusPercentage(kpi, 120, role) {
				t.Errorf("%s/%s: 150 should pay the 120 bracket", kpi, role)
			}
		}
	}
}

func TestEvaluateAll(t *testing.T) {
	emp := model.Employee{ID: "1", Name: "BRUNO", BaseSalary: 4000, Role: model.RoleGerente}
	perf := model.EmployeePerformance{
		model.KPIMonthlyBSC:         100,
		model.KPIQuarterlyGerencial: 95.5,
	}
	results := EvaluateAll(emp, perf)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, kpi := range model.AllKPITypes() {
		if results[i].KPIType != kpi {
			t.Errorf("result %d: expected %s, got %s", i, kpi, results[i].KPIType)
		}
	}
	// BSC: 10% of 4000 = 400; Trim.: 15% of 12000 = 1800; MAT and EBITDA missing.
	if !almostEqual(results[0].BonusValue, 400) {
		t.Errorf("BSC: expected 400, got %.2f", results[0].BonusValue)
	}
	if results[1].BonusValue != 0 || results[3].BonusValue != 0 {
		t.Error("missing achievements should pay nothing")
	}
	if !almostEqual(TotalBonus(results), 2200) {
		t.Errorf("expected total 2200, got %.2f", TotalBonus(results))
	}
}
