package recorder

import (
	"time"

	"Premiacao/internal/payroll"
)

// ClosingSnapshot is a closed month's payroll.
type ClosingSnapshot struct {
	Payroll    *payroll.Payroll
	ReportPath string
	Trigger    string // "CRON" or "MANUAL"
}

// ImportEvent records a spreadsheet import.
type ImportEvent struct {
	Source  string
	Month   string
	Rows    int
	Created int
	Updated int
	Skipped int
}

// ClosingSummary is one row of closing history.
type ClosingSummary struct {
	ClosedAt   time.Time
	Month      string
	Employees  int
	TotalBonus float64
	TotalGross float64
	Trigger    string
}

// Recorder persists closing history for audits.
type Recorder interface {
	RecordClosing(snap *ClosingSnapshot) error
	RecordImport(evt *ImportEvent) error
	RecentClosings(limit int) ([]ClosingSummary, error)
	Close() error
}
