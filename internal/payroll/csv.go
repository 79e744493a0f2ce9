package payroll

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"Premiacao/internal/model"
)

const bom = "\ufeff"

// FileName is the export name for a month.
func FileName(month string) string {
	return fmt.Sprintf("Relatorio_RH_Completo_%s.csv", month)
}

// Header returns the export columns.
func Header() []string {
	h := []string{"Nome", "Perfil", "Salário"}
	for _, kpi := range model.AllKPITypes() {
		h = append(h, "Ating. "+kpi.ShortLabel(), "Prêmio "+kpi.ShortLabel())
	}
	return append(h, "Total Premiação", "Total Bruto")
}

// WriteCSV writes the payroll as a ';' separated sheet with decimal commas, readable by Excel pt-BR.
func WriteCSV(w io.Writer, p *Payroll) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, r := range p.Rows {
		rec, err := record(r)
		if err != nil {
			return fmt.Errorf("%s: %w", r.Employee.Name, err)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the payroll CSV into dir and returns its path.
func ExportFile(dir string, p *Payroll) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName(p.Month))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := WriteCSV(f, p); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

func record(r Row) ([]string, error) {
	var firstErr error
	amount := func(v float64) string {
		s, err := formatAmount(v)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return s
	}
	rec := []string{r.Employee.Name, string(r.Employee.Role), amount(r.Employee.BaseSalary)}
	for _, res := range r.Results {
		rec = append(rec, amount(res.Achievement)+"%", amount(res.BonusValue))
	}
	rec = append(rec, amount(r.TotalBonus), amount(r.Gross))
	return rec, firstErr
}

// ErrNonFinite is returned when an amount cannot be written as a number.
var ErrNonFinite = errors.New("amount is not a finite number")

// formatAmount rounds half away from zero to cents and uses a decimal comma.
func formatAmount(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrNonFinite, v)
	}
	return strings.Replace(decimal.NewFromFloat(v).StringFixed(2), ".", ",", 1), nil
}
