package payroll

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Premiacao/internal/model"
)

func fixture() ([]model.Employee, map[string]model.EmployeePerformance) {
	employees := []model.Employee{
		{ID: "g1", Name: "MARIA", BaseSalary: 10000, Role: model.RoleGerente},
		{ID: "e1", Name: "JOAO", BaseSalary: 6000, Role: model.RoleEquipe},
		{ID: "e2", Name: "SEM DADOS", BaseSalary: 2500, Role: model.RoleEquipe},
	}
	perf := map[string]model.EmployeePerformance{
		"g1": {model.KPIMonthlyBSC: 100, model.KPIMonthlyMAT: 85, model.KPIQuarterlyGerencial: 90, model.KPIAnnualEBITDA: 100},
		"e1": {model.KPIMonthlyBSC: 150, model.KPIQuarterlyGerencial: 100.9},
	}
	return employees, perf
}

func TestBuild(t *testing.T) {
	employees, perf := fixture()
	p := Build("2024-06", employees, perf)

	if len(p.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(p.Rows))
	}

	// MARIA: BSC 10% of 10000 = 1000; MAT below threshold; Trim. 10% of 30000 = 3000; EBITDA 1 salary = 10000.
	maria, ok := p.Find("g1")
	if !ok {
		t.Fatal("expected row for g1")
	}
	if math.Abs(maria.TotalBonus-14000) > 1e-6 {
		t.Errorf("MARIA: expected total 14000, got %.4f", maria.TotalBonus)
	}
	if math.Abs(maria.Gross-24000) > 1e-6 {
		t.Errorf("MARIA: expected gross 24000, got %.4f", maria.Gross)
	}

	// JOAO (team): BSC clamped to 120 -> 20/2 = 10% of 6000 = 600; Trim. 100 -> 20/2 = 10% of 18000 = 1800.
	joao, _ := p.Find("e1")
	if math.Abs(joao.TotalBonus-2400) > 1e-6 {
		t.Errorf("JOAO: expected total 2400, got %.4f", joao.TotalBonus)
	}

	empty, _ := p.Find("e2")
	if empty.TotalBonus != 0 || empty.Gross != 2500 {
		t.Errorf("employee without data: expected no bonus, got %+v", empty)
	}

	if math.Abs(p.TotalBonus-16400) > 1e-6 {
		t.Errorf("expected payroll bonus 16400, got %.4f", p.TotalBonus)
	}
	if math.Abs(p.TotalGross-(16400+18500)) > 1e-6 {
		t.Errorf("expected payroll gross 34900, got %.4f", p.TotalGross)
	}
	if _, ok := p.Find("missing"); ok {
		t.Error("expected no row for unknown id")
	}
}

func TestWriteCSV(t *testing.T) {
	employees, perf := fixture()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Build("2024-06", employees, perf)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\ufeff") {
		t.Error("expected UTF-8 BOM")
	}
	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(out, "\ufeff"), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 lines, got %d", len(lines))
	}
	wantHeader := "Nome;Perfil;Salário;Ating. BSC;Prêmio BSC;Ating. MAT;Prêmio MAT;Ating. Trim.;Prêmio Trim.;Ating. EBITDA;Prêmio EBITDA;Total Premiação;Total Bruto"
	if lines[0] != wantHeader {
		t.Errorf("unexpected header:\n%s", lines[0])
	}
	wantMaria := "MARIA;GERENTE;10000,00;100,00%;1000,00;85,00%;0,00;90,00%;3000,00;100,00%;10000,00;14000,00;24000,00"
	if lines[1] != wantMaria {
		t.Errorf("unexpected MARIA line:\n got %s\nwant %s", lines[1], wantMaria)
	}
	if !strings.HasPrefix(lines[2], "JOAO;EQUIPE;6000,00;150,00%;600,00;") {
		t.Errorf("unexpected JOAO line: %s", lines[2])
	}
}

func TestExportFile(t *testing.T) {
	employees, perf := fixture()
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := ExportFile(dir, Build("2024-06", employees, perf))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "Relatorio_RH_Completo_2024-06.csv" {
		t.Errorf("unexpected file name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte("SEM DADOS;EQUIPE;2500,00;0,00%;0,00")) {
		t.Errorf("missing employee without data in export:\n%s", data)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{1234.5, "1234,50"},
		{0.125, "0,13"},
		{-2.5, "-2,50"},
		{5000.000000001, "5000,00"},
	}
	for _, tt := range tests {
		got, err := formatAmount(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("formatAmount(%v): expected %q, got %q (err %v)", tt.in, tt.want, got, err)
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := formatAmount(v); !errors.Is(err, ErrNonFinite) {
			t.Errorf("formatAmount(%v): expected ErrNonFinite, got %v", v, err)
		}
	}
}

func TestWriteCSV_NonFiniteAmountIsAnError(t *testing.T) {
	// a salary that slipped past validation overflows the annual bonus
	employees := []model.Employee{{ID: "x", Name: "ANA", BaseSalary: 1e308, Role: model.RoleGerente}}
	perf := map[string]model.EmployeePerformance{"x": {model.KPIAnnualEBITDA: 100}}
	p := Build("2024-06", employees, perf)

	var buf bytes.Buffer
	err := WriteCSV(&buf, p)
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
	if !strings.Contains(err.Error(), "ANA") {
		t.Errorf("error should name the employee: %v", err)
	}
	dir := t.TempDir()
	if _, err := ExportFile(dir, p); !errors.Is(err, ErrNonFinite) {
		t.Errorf("ExportFile: expected ErrNonFinite, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName("2024-06"))); !os.IsNotExist(err) {
		t.Error("partial report should be removed")
	}
}
