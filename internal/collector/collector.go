package collector

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"Premiacao/internal/model"
	"Premiacao/internal/store"
)

// ImportResult summarizes one spreadsheet import.
type ImportResult struct {
	Source  string
	Month   string
	Rows    int
	Created int
	Updated int
	Skipped int
}

// Collector pulls a spreadsheet from a Source and applies it to the roster store.
type Collector struct {
	Source Source
	Store  store.Store
}

// NewCollector creates a new Collector.
func NewCollector(src Source, st store.Store) *Collector {
	return &Collector{Source: src, Store: st}
}

// Import reads the sheet, upserts employees by name, and replaces their achievements for month.
// Invalid rows are skipped; the remaining rows are stored in one write.
func (c *Collector) Import(ctx context.Context, month string) (*ImportResult, error) {
	if !model.ValidMonthKey(month) {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidMonth, month)
	}

	rc, err := c.Source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer rc.Close()

	sheet, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}

	res := &ImportResult{Source: c.Source.Name(), Month: month, Skipped: sheet.Skipped}
	employees := make([]model.Employee, 0, len(sheet.Rows))
	monthData := make(map[string]model.EmployeePerformance, len(sheet.Rows))
	seen := make(map[string]int, len(sheet.Rows))

	for _, row := range sheet.Rows {
		if i, dup := seen[row.Name]; dup {
			// a repeated name overwrites its earlier row
			emp := employees[i]
			emp.BaseSalary = row.BaseSalary
			emp.Role = row.Role
			if err := store.ValidateEmployee(emp); err != nil {
				log.Printf("[WARN] import: skipping repeated %s: %v", row.Name, err)
				res.Skipped++
				continue
			}
			employees[i] = emp
			monthData[emp.ID] = row.Performance
			res.Skipped++
			continue
		}

		emp, found := c.Store.FindByName(row.Name)
		if !found {
			emp = model.Employee{ID: uuid.NewString(), Name: row.Name}
		}
		emp.BaseSalary = row.BaseSalary
		emp.Role = row.Role

		if err := store.ValidateEmployee(emp); err != nil {
			log.Printf("[WARN] import: skipping %s: %v", row.Name, err)
			res.Skipped++
			continue
		}
		if found {
			res.Updated++
		} else {
			res.Created++
		}
		seen[row.Name] = len(employees)
		employees = append(employees, emp)
		monthData[emp.ID] = row.Performance
		res.Rows++
	}

	// roster and month are written together so a failed save leaves neither half behind
	if err := c.Store.ApplyImport(month, employees, monthData); err != nil {
		return nil, fmt.Errorf("store import %s: %w", month, err)
	}
	log.Printf("[INFO] imported %d rows from %s into %s (%d new, %d updated, %d skipped)",
		res.Rows, res.Source, month, res.Created, res.Updated, res.Skipped)
	return res, nil
}
