package notifier

import (
	"fmt"
	"html"
	"strings"

	"Premiacao/internal/calculator"
	"Premiacao/internal/collector"
	"Premiacao/internal/model"
	"Premiacao/internal/payroll"
	"Premiacao/internal/recorder"
)

const hidden = "••••••"

func money(v float64, show bool) string {
	if !show {
		return hidden
	}
	return calculator.FormatCurrency(v)
}

// FormatPayrollSummary formats the month's payroll. Bonuses are always shown; salaries and gross
// totals only when show is true.
func FormatPayrollSummary(p *payroll.Payroll, show bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Resumo da Folha</b> | %s\n\n", p.Month))

	if len(p.Rows) == 0 {
		b.WriteString("Nenhum colaborador cadastrado.\n")
		return b.String()
	}

	for _, r := range p.Rows {
		b.WriteString(fmt.Sprintf("<b>%s</b> (%s)\n", html.EscapeString(r.Employee.Name), r.Employee.Role))
		b.WriteString(fmt.Sprintf("  Salário: %s\n", money(r.Employee.BaseSalary, show)))
		for _, res := range r.Results {
			b.WriteString(fmt.Sprintf("  %s: %s → %s\n",
				res.KPIType.ShortLabel(), calculator.FormatPercent(res.Achievement), calculator.FormatCurrency(res.BonusValue)))
		}
		b.WriteString(fmt.Sprintf("  Total Prêmio: %s | Total Bruto: %s\n\n",
			calculator.FormatCurrency(r.TotalBonus), money(r.Gross, show)))
	}

	b.WriteString("─────────────────\n")
	b.WriteString(fmt.Sprintf("💰 <b>Total Geral de Prêmios:</b> %s\n", calculator.FormatCurrency(p.TotalBonus)))
	b.WriteString(fmt.Sprintf("Total Bruto da Folha: %s\n", money(p.TotalGross, show)))
	return b.String()
}

// FormatEmployeeResults formats one employee's KPI cards.
func FormatEmployeeResults(month string, r payroll.Row, show bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👤 <b>%s</b> | %s | %s\n", html.EscapeString(r.Employee.Name), r.Employee.Role, month))
	b.WriteString(fmt.Sprintf("Salário Base: %s\n\n", money(r.Employee.BaseSalary, show)))
	for _, res := range r.Results {
		b.WriteString(fmt.Sprintf("<b>%s</b>\n", res.KPIType.Label()))
		b.WriteString(fmt.Sprintf("  %s\n", res.KPIType.BaseLabel()))
		b.WriteString(fmt.Sprintf("  Atingimento: %s", calculator.FormatPercent(res.Achievement)))
		if res.BonusPercentage > 0 {
			b.WriteString(fmt.Sprintf(" | +%s", calculator.FormatPercent(res.BonusPercentage)))
		}
		b.WriteString(fmt.Sprintf("\n  Bônus Calculado: %s\n", calculator.FormatCurrency(res.BonusValue)))
	}
	b.WriteString(fmt.Sprintf("\n💰 <b>Premiação Total Acumulada:</b> %s\n", calculator.FormatCurrency(r.TotalBonus)))
	return b.String()
}

// FormatImportResult formats a spreadsheet import summary.
func FormatImportResult(res *collector.ImportResult) string {
	return fmt.Sprintf("✅ <b>Planilha importada</b> | %s\n\nLinhas: %d\nNovos: %d\nAtualizados: %d\nIgnorados: %d\n",
		res.Month, res.Rows, res.Created, res.Updated, res.Skipped)
}

// FormatClosings formats the closing history.
func FormatClosings(closings []recorder.ClosingSummary) string {
	if len(closings) == 0 {
		return "Nenhum fechamento registrado."
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Fechamentos</b>\n\n")
	for _, c := range closings {
		b.WriteString(fmt.Sprintf("%s: %d colaboradores, prêmios %s (%s, %s)\n",
			c.Month, c.Employees, calculator.FormatCurrency(c.TotalBonus), c.Trigger, c.ClosedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatEmployeeSaved confirms a manual roster entry.
func FormatEmployeeSaved(emp model.Employee, show bool) string {
	return fmt.Sprintf("✅ <b>%s</b> cadastrado\nPerfil: %s\nSalário: %s\n",
		html.EscapeString(emp.Name), emp.Role, money(emp.BaseSalary, show))
}
