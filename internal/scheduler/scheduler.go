package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"Premiacao/internal/collector"
	"Premiacao/internal/model"
	"Premiacao/internal/notifier"
	"Premiacao/internal/payroll"
	"Premiacao/internal/recorder"
	"Premiacao/internal/store"

	"github.com/robfig/cron/v3"
)

// Sender delivers a chat message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron jobs and chat commands.
type Scheduler struct {
	Cron         *cron.Cron
	Store        store.Store
	Collector    *collector.Collector
	Notifier     Sender
	Recorder     recorder.Recorder
	ReportDir    string
	ShowSalaries bool
	Ctx          context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler. col may be nil when no import source is configured.
func NewScheduler(ctx context.Context, st store.Store, col *collector.Collector, n Sender, rec recorder.Recorder, reportDir string, showSalaries bool) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		Store:        st,
		Collector:    col,
		Notifier:     n,
		Recorder:     rec,
		ReportDir:    reportDir,
		ShowSalaries: showSalaries,
		Ctx:          ctx,
		now:          time.Now,
	}
}

// RegisterAll registers the monthly close and, when importCron is set, the import job.
func (s *Scheduler) RegisterAll(monthlyCron, importCron string) error {
	if _, err := s.Cron.AddFunc(monthlyCron, s.monthlyTask); err != nil {
		return fmt.Errorf("register monthly task: %w", err)
	}
	if importCron == "" {
		return nil
	}
	if s.Collector == nil {
		return errors.New("register import task: no import source configured")
	}
	if _, err := s.Cron.AddFunc(importCron, s.importTask); err != nil {
		return fmt.Errorf("register import task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunMonthlyNow closes the previous month immediately (for RUN_ON_START).
func (s *Scheduler) RunMonthlyNow() {
	s.monthlyTask()
}

// CloseMonth builds the month's payroll, exports the CSV report and records the closing.
func (s *Scheduler) CloseMonth(month, trigger string) (*payroll.Payroll, string, error) {
	if !model.ValidMonthKey(month) {
		return nil, "", fmt.Errorf("%w: %q", store.ErrInvalidMonth, month)
	}
	p := s.build(month)
	path, err := payroll.ExportFile(s.ReportDir, p)
	if err != nil {
		return p, "", fmt.Errorf("export report: %w", err)
	}
	if err := s.Recorder.RecordClosing(&recorder.ClosingSnapshot{
		Payroll:    p,
		ReportPath: path,
		Trigger:    trigger,
	}); err != nil {
		log.Printf("[ERROR] record closing: %v", err)
	}
	log.Printf("[INFO] closed %s: %d employees, report %s", month, len(p.Rows), path)
	return p, path, nil
}

// Import pulls the configured spreadsheet into month and records the event.
func (s *Scheduler) Import(month string) (*collector.ImportResult, error) {
	if s.Collector == nil {
		return nil, errors.New("no import source configured")
	}
	res, err := s.Collector.Import(s.Ctx, month)
	if err != nil {
		return nil, err
	}
	if err := s.Recorder.RecordImport(&recorder.ImportEvent{
		Source:  res.Source,
		Month:   res.Month,
		Rows:    res.Rows,
		Created: res.Created,
		Updated: res.Updated,
		Skipped: res.Skipped,
	}); err != nil {
		log.Printf("[ERROR] record import: %v", err)
	}
	return res, nil
}

func (s *Scheduler) build(month string) *payroll.Payroll {
	return payroll.Build(month, s.Store.Employees(), s.Store.Performance(month))
}

func (s *Scheduler) monthlyTask() {
	month := model.PreviousMonthKey(s.now())
	log.Printf("[INFO] running monthly close for %s", month)
	p, path, err := s.CloseMonth(month, "CRON")
	if err != nil {
		log.Printf("[ERROR] monthly close: %v", err)
		s.trySend(fmt.Sprintf("❌ Falha no fechamento de %s: %v", month, err))
		return
	}
	s.trySend(notifier.FormatPayrollSummary(p, s.ShowSalaries) + "\n📁 Relatório: " + path)
}

func (s *Scheduler) importTask() {
	month := model.MonthKey(s.now())
	log.Printf("[INFO] running import for %s", month)
	res, err := s.Import(month)
	if err != nil {
		log.Printf("[ERROR] import: %v", err)
		s.trySend(fmt.Sprintf("❌ Falha na importação de %s: %v", month, err))
		return
	}
	s.trySend(notifier.FormatImportResult(res))
}

const helpText = "Comandos disponíveis:\n" +
	"• /folha [AAAA-MM] - resumo da folha\n" +
	"• /colaborador NOME - cards de um colaborador\n" +
	"• /fechar [AAAA-MM] - fecha o mês e gera o CSV\n" +
	"• /importar [AAAA-MM] - importa a planilha de KPIs\n" +
	"• /historico - últimos fechamentos\n" +
	"• /adicionar NOME;SALÁRIO;PERFIL - cadastra colaborador\n" +
	"• /remover NOME - remove colaborador e seu histórico\n" +
	"• /atingimento NOME KPI VALOR [AAAA-MM] - registra atingimento"

func invalidMonth(arg string) string {
	return fmt.Sprintf("Mês inválido %q, use AAAA-MM.", arg)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Telegram appends "@botname" to commands in groups.
	cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])
	args := fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(command), fields[0]))

	switch cmd {
	case "/folha":
		month, ok := s.monthArg(args, model.MonthKey(s.now()))
		if !ok {
			return invalidMonth(month)
		}
		return notifier.FormatPayrollSummary(s.build(month), s.ShowSalaries)

	case "/colaborador":
		if len(args) == 0 {
			return "Uso: /colaborador NOME"
		}
		emp, ok := s.Store.FindByName(strings.Join(args, " "))
		if !ok {
			return fmt.Sprintf("Colaborador %q não encontrado.", strings.Join(args, " "))
		}
		month := model.MonthKey(s.now())
		row := payroll.BuildRow(emp, s.Store.Performance(month)[emp.ID])
		return notifier.FormatEmployeeResults(month, row, s.ShowSalaries)

	case "/fechar":
		month, ok := s.monthArg(args, model.PreviousMonthKey(s.now()))
		if !ok {
			return invalidMonth(month)
		}
		p, path, err := s.CloseMonth(month, "MANUAL")
		if err != nil {
			return fmt.Sprintf("❌ Falha no fechamento: %v", err)
		}
		return notifier.FormatPayrollSummary(p, s.ShowSalaries) + "\n📁 Relatório: " + path

	case "/importar":
		month, ok := s.monthArg(args, model.MonthKey(s.now()))
		if !ok {
			return invalidMonth(month)
		}
		res, err := s.Import(month)
		if err != nil {
			return fmt.Sprintf("❌ Falha na importação: %v", err)
		}
		return notifier.FormatImportResult(res)

	case "/historico":
		closings, err := s.Recorder.RecentClosings(12)
		if err != nil {
			return fmt.Sprintf("❌ Falha ao ler histórico: %v", err)
		}
		return notifier.FormatClosings(closings)

	case "/adicionar":
		return s.addEmployee(rest)

	case "/remover":
		return s.removeEmployee(args)

	case "/atingimento":
		return s.setAchievement(args)

	default:
		return helpText
	}
}

func (s *Scheduler) monthArg(args []string, fallback string) (string, bool) {
	if len(args) == 0 {
		return fallback, true
	}
	return args[0], model.ValidMonthKey(args[0])
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
