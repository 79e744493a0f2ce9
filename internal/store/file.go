package store

import (
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"Premiacao/internal/model"
)

// MaxBaseSalary bounds monthly salaries so the annual bonus (12x base, up to 200%) stays finite and exportable.
const MaxBaseSalary = 1e9

// FileStore keeps the roster and history in memory and persists every change to a JSON file.
// Changes are applied to a copy of the state and swapped in only after the file is written.
type FileStore struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewFileStore loads (or initializes) the state file.
func NewFileStore(filePath string) (*FileStore, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	s := &FileStore{state: state, filePath: filePath}
	if err := SaveState(filePath, state); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	log.Printf("[INFO] roster loaded: %d employees, %d months", len(state.Employees), len(state.History))
	return s, nil
}

// Employees returns a copy of the roster in insertion order.
func (s *FileStore) Employees() []model.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Employee, len(s.state.Employees))
	copy(out, s.state.Employees)
	return out
}

func (s *FileStore) Employee(id string) (model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state, id); i >= 0 {
		return s.state.Employees[i], nil
	}
	return model.Employee{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// FindByName matches names case-insensitively; names are stored upper-cased.
func (s *FileStore) FindByName(name string) (model.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := normalizeName(name)
	for _, e := range s.state.Employees {
		if e.Name == want {
			return e, true
		}
	}
	return model.Employee{}, false
}

// AddEmployee registers a new employee with a generated id.
func (s *FileStore) AddEmployee(name string, baseSalary float64, role model.EmployeeRole) (model.Employee, error) {
	emp := model.Employee{
		ID:         uuid.NewString(),
		Name:       normalizeName(name),
		BaseSalary: baseSalary,
		Role:       role,
	}
	if err := s.UpsertEmployee(emp); err != nil {
		return model.Employee{}, err
	}
	return emp, nil
}

// UpsertEmployee replaces the employee with the same id, or appends it.
func (s *FileStore) UpsertEmployee(emp model.Employee) error {
	emp.Name = normalizeName(emp.Name)
	if err := ValidateEmployee(emp); err != nil {
		return err
	}
	return s.commit(func(st *State) error {
		upsert(st, emp)
		return nil
	})
}

// DeleteEmployee removes the employee and their history entries.
func (s *FileStore) DeleteEmployee(id string) error {
	return s.commit(func(st *State) error {
		i := indexOf(st, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		st.Employees = append(st.Employees[:i], st.Employees[i+1:]...)
		for _, month := range st.History {
			delete(month, id)
		}
		return nil
	})
}

// Performance returns a deep copy of one month's achievements.
func (s *FileStore) Performance(month string) map[string]model.EmployeePerformance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMonth(s.state.History[month])
}

// SetAchievement records a single KPI value. Non-finite values are stored as 0.
func (s *FileStore) SetAchievement(month, employeeID string, kpi model.KPIType, value float64) error {
	if !model.ValidMonthKey(month) {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	if !kpi.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKPI, kpi)
	}
	return s.commit(func(st *State) error {
		if indexOf(st, employeeID) < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, employeeID)
		}
		m := monthOf(st, month)
		if m[employeeID] == nil {
			m[employeeID] = model.EmployeePerformance{}
		}
		m[employeeID][kpi] = finiteOrZero(value)
		return nil
	})
}

// SetMonth replaces the performance of every employee present in perf; other employees are kept.
func (s *FileStore) SetMonth(month string, perf map[string]model.EmployeePerformance) error {
	if !model.ValidMonthKey(month) {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return s.commit(func(st *State) error {
		setMonth(monthOf(st, month), perf)
		return nil
	})
}

// ApplyImport upserts employees and replaces their month performance in a single write.
// Either everything is stored or nothing is.
func (s *FileStore) ApplyImport(month string, employees []model.Employee, perf map[string]model.EmployeePerformance) error {
	if !model.ValidMonthKey(month) {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	normalized := make([]model.Employee, len(employees))
	for i, emp := range employees {
		emp.Name = normalizeName(emp.Name)
		if err := ValidateEmployee(emp); err != nil {
			return fmt.Errorf("%s: %w", emp.Name, err)
		}
		normalized[i] = emp
	}
	return s.commit(func(st *State) error {
		for _, emp := range normalized {
			upsert(st, emp)
		}
		setMonth(monthOf(st, month), perf)
		return nil
	})
}

// commit runs mutate on a copy of the state, saves it, and only then makes it current.
func (s *FileStore) commit(mutate func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneState(s.state)
	if err := mutate(next); err != nil {
		return err
	}
	if err := SaveState(s.filePath, next); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	s.state = next
	return nil
}

// ValidateEmployee checks an employee before it is stored. Names are expected normalized.
func ValidateEmployee(emp model.Employee) error {
	if emp.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidEmployee)
	}
	if strings.TrimSpace(emp.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidEmployee)
	}
	if math.IsNaN(emp.BaseSalary) || emp.BaseSalary < 0 || emp.BaseSalary > MaxBaseSalary {
		return fmt.Errorf("%w: base salary must be between 0 and %.0f", ErrInvalidEmployee, float64(MaxBaseSalary))
	}
	if emp.Role != model.RoleGerente && emp.Role != model.RoleEquipe {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidEmployee, emp.Role)
	}
	return nil
}

func cloneState(st *State) *State {
	out := &State{
		Employees: make([]model.Employee, len(st.Employees)),
		History:   make(model.MonthlyHistory, len(st.History)),
		UpdatedAt: st.UpdatedAt,
	}
	copy(out.Employees, st.Employees)
	for month, m := range st.History {
		out.History[month] = copyMonth(m)
	}
	return out
}

func copyMonth(m map[string]model.EmployeePerformance) map[string]model.EmployeePerformance {
	out := make(map[string]model.EmployeePerformance, len(m))
	for id, perf := range m {
		cp := make(model.EmployeePerformance, len(perf))
		for k, v := range perf {
			cp[k] = v
		}
		out[id] = cp
	}
	return out
}

func monthOf(st *State, month string) map[string]model.EmployeePerformance {
	m := st.History[month]
	if m == nil {
		m = map[string]model.EmployeePerformance{}
		st.History[month] = m
	}
	return m
}

func setMonth(m map[string]model.EmployeePerformance, perf map[string]model.EmployeePerformance) {
	for id, p := range perf {
		cp := make(model.EmployeePerformance, len(p))
		for k, v := range p {
			cp[k] = finiteOrZero(v)
		}
		m[id] = cp
	}
}

func upsert(st *State, emp model.Employee) {
	if i := indexOf(st, emp.ID); i >= 0 {
		st.Employees[i] = emp
		return
	}
	st.Employees = append(st.Employees, emp)
}

func indexOf(st *State, id string) int {
	for i, e := range st.Employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
