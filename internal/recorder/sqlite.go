package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists closing history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS payroll_closings (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			month       TEXT NOT NULL,
			employees   INTEGER,
			total_bonus REAL,
			total_gross REAL,
			report_path TEXT,
			trigger_src TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_closings_month ON payroll_closings(month)`,

		`CREATE TABLE IF NOT EXISTS payroll_lines (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			closing_id       INTEGER NOT NULL REFERENCES payroll_closings(id),
			employee_id      TEXT NOT NULL,
			employee_name    TEXT,
			role             TEXT,
			base_salary      REAL,
			kpi_type         TEXT NOT NULL,
			achievement      REAL,
			bonus_percentage REAL,
			bonus_value      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lines_closing ON payroll_lines(closing_id)`,

		`CREATE TABLE IF NOT EXISTS imports (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			source    TEXT,
			month     TEXT,
			row_count INTEGER,
			created   INTEGER,
			updated   INTEGER,
			skipped   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_imports_ts ON imports(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordClosing stores the closing header and one line per employee and KPI in a single transaction.
func (r *SQLiteRecorder) RecordClosing(snap *ClosingSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := snap.Payroll
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO payroll_closings
		(timestamp, month, employees, total_bonus, total_gross, report_path, trigger_src)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), p.Month, len(p.Rows), p.TotalBonus, p.TotalGross, snap.ReportPath, snap.Trigger,
	)
	if err != nil {
		return fmt.Errorf("insert closing: %w", err)
	}
	closingID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("closing id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO payroll_lines
		(closing_id, employee_id, employee_name, role, base_salary, kpi_type, achievement, bonus_percentage, bonus_value)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare lines: %w", err)
	}
	defer stmt.Close()

	for _, row := range p.Rows {
		emp := row.Employee
		for _, res := range row.Results {
			if _, err := stmt.Exec(closingID, emp.ID, emp.Name, string(emp.Role), emp.BaseSalary,
				string(res.KPIType), res.Achievement, res.BonusPercentage, res.BonusValue); err != nil {
				return fmt.Errorf("insert line: %w", err)
			}
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordImport(evt *ImportEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO imports
		(timestamp, source, month, row_count, created, updated, skipped)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Source, evt.Month, evt.Rows, evt.Created, evt.Updated, evt.Skipped,
	)
	return err
}

// RecentClosings returns the latest closings, newest first.
func (r *SQLiteRecorder) RecentClosings(limit int) ([]ClosingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, month, employees, total_bonus, total_gross, trigger_src
		FROM payroll_closings ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query closings: %w", err)
	}
	defer rows.Close()

	var out []ClosingSummary
	for rows.Next() {
		var (
			ts int64
			c  ClosingSummary
		)
		if err := rows.Scan(&ts, &c.Month, &c.Employees, &c.TotalBonus, &c.TotalGross, &c.Trigger); err != nil {
			return nil, fmt.Errorf("scan closing: %w", err)
		}
		c.ClosedAt = time.Unix(ts, 0)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
