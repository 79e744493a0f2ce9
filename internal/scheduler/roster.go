package scheduler

import (
	"fmt"
	"strings"

	"Premiacao/internal/collector"
	"Premiacao/internal/model"
	"Premiacao/internal/notifier"
	"Premiacao/internal/payroll"
)

// addEmployee handles "/adicionar NOME;SALÁRIO[;PERFIL]". The role defaults to EQUIPE.
func (s *Scheduler) addEmployee(rest string) string {
	parts := strings.Split(rest, ";")
	if len(parts) < 2 || len(parts) > 3 || strings.TrimSpace(parts[0]) == "" {
		return "Uso: /adicionar NOME;SALÁRIO;PERFIL"
	}
	name := strings.TrimSpace(parts[0])
	if _, exists := s.Store.FindByName(name); exists {
		return fmt.Sprintf("Colaborador %q já cadastrado.", strings.ToUpper(name))
	}
	role := model.RoleEquipe
	if len(parts) == 3 {
		role = model.ParseRole(parts[2])
	}
	emp, err := s.Store.AddEmployee(name, collector.ParseNumber(parts[1]), role)
	if err != nil {
		return fmt.Sprintf("❌ Falha ao cadastrar: %v", err)
	}
	return notifier.FormatEmployeeSaved(emp, s.ShowSalaries)
}

// removeEmployee handles "/remover NOME".
func (s *Scheduler) removeEmployee(args []string) string {
	if len(args) == 0 {
		return "Uso: /remover NOME"
	}
	name := strings.Join(args, " ")
	emp, ok := s.Store.FindByName(name)
	if !ok {
		return fmt.Sprintf("Colaborador %q não encontrado.", name)
	}
	if err := s.Store.DeleteEmployee(emp.ID); err != nil {
		return fmt.Sprintf("❌ Falha ao remover: %v", err)
	}
	return fmt.Sprintf("🗑 %s removido.", emp.Name)
}

// setAchievement handles "/atingimento NOME KPI VALOR [AAAA-MM]". Names may contain spaces,
// so arguments are read from the end.
func (s *Scheduler) setAchievement(args []string) string {
	const usage = "Uso: /atingimento NOME KPI VALOR [AAAA-MM]\nKPI: BSC, MAT, TRIM ou EBITDA"

	month := model.MonthKey(s.now())
	if n := len(args); n > 0 && model.ValidMonthKey(args[n-1]) {
		month = args[n-1]
		args = args[:n-1]
	}
	if len(args) < 3 {
		return usage
	}
	n := len(args)
	kpi, ok := model.ParseKPIType(args[n-2])
	if !ok {
		return fmt.Sprintf("KPI inválido %q.\n%s", args[n-2], usage)
	}
	value := collector.ParseNumber(args[n-1])
	name := strings.Join(args[:n-2], " ")

	emp, found := s.Store.FindByName(name)
	if !found {
		return fmt.Sprintf("Colaborador %q não encontrado.", name)
	}
	if err := s.Store.SetAchievement(month, emp.ID, kpi, value); err != nil {
		return fmt.Sprintf("❌ Falha ao registrar: %v", err)
	}
	row := payroll.BuildRow(emp, s.Store.Performance(month)[emp.ID])
	return notifier.FormatEmployeeResults(month, row, s.ShowSalaries)
}
