package policy

import (
	"fmt"
	"sort"
	"sync"
)

const (
	// MaxLevel is the terminal approval level. The CEO level always resolves,
	// even when no intermediate level has an eligible approver.
	MaxLevel = 9

	// OperationalCeiling is the highest role level that is scoped to a
	// department. Levels above it are organization-wide.
	OperationalCeiling = 4
)

// Hierarchy maps role names to approval levels in [1, MaxLevel]. Several role
// names may share a level.
type Hierarchy map[string]int

// LevelOf returns the level of a role name.
func (h Hierarchy) LevelOf(role string) (int, bool) {
	level, ok := h[role]
	return level, ok
}

// RolesAt returns the role names assigned to a level, sorted for stable queries.
func (h Hierarchy) RolesAt(level int) []string {
	var roles []string
	for name, l := range h {
		if l == level {
			roles = append(roles, name)
		}
	}
	sort.Strings(roles)
	return roles
}

// IsOperational reports whether a level is department-scoped.
func IsOperational(level int) bool {
	return level <= OperationalCeiling
}

// Shift is a named working window.
type Shift struct {
	Start string // "15:04"
	End   string
}

// Policy is the complete approval and leave configuration. It is passed
// explicitly into the stage resolver and validation layer; nothing reads it
// from package-level state.
type Policy struct {
	Hierarchy     Hierarchy
	LeaveQuotas   map[string]int
	Departments   []string
	Shifts        map[string]Shift
	ProbationDays int
	GraceMinutes  int
	DefaultShift  string
}

// Leave types whose quotas are fixed company policy and cannot be edited.
var fixedQuotaTypes = map[string]int{
	"Maternity": 90,
	"Paternity": 10,
}

// Default returns the stock configuration used when no overrides are stored.
func Default() Policy {
	return Policy{
		Hierarchy: Hierarchy{
			"Employee":          1,
			"Team Lead":         2,
			"Supervisor":        3,
			"Manager":           4,
			"HR Executive":      5,
			"Finance Executive": 5,
			"Senior HR":         6,
			"Finance Manager":   6,
			"Director":          7,
			"President":         8,
			"CEO":               9,
		},
		LeaveQuotas: map[string]int{
			"Casual":    10,
			"Medical":   10,
			"Emergency": 5,
			"Maternity": 90,
			"Paternity": 10,
		},
		Departments: []string{"AR", "Billing", "Verification", "Credentialing", "IT", "HR", "Finance"},
		Shifts: map[string]Shift{
			"Morning": {Start: "09:00", End: "18:00"},
			"Evening": {Start: "18:00", End: "03:00"},
		},
		ProbationDays: 90,
		GraceMinutes:  15,
		DefaultShift:  "Morning",
	}
}

// Store holds the current policy and serializes updates. Readers get an
// immutable snapshot; updates swap the whole value.
type Store struct {
	mu      sync.RWMutex
	current Policy
}

func NewStore(p Policy) *Store {
	return &Store{current: p}
}

// Snapshot returns a copy of the current policy. Map fields are cloned so a
// caller can never mutate shared state.
func (s *Store) Snapshot() Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.current
	p.Hierarchy = cloneMap(s.current.Hierarchy)
	p.LeaveQuotas = cloneMap(s.current.LeaveQuotas)
	p.Shifts = cloneMap(s.current.Shifts)
	p.Departments = append([]string(nil), s.current.Departments...)
	return p
}

// UpdateQuotas replaces editable leave quotas. Maternity and Paternity are
// fixed policy and rejected.
func (s *Store) UpdateQuotas(quotas map[string]int) error {
	for name, days := range quotas {
		if fixed, ok := fixedQuotaTypes[name]; ok && days != fixed {
			return fmt.Errorf("leave quota for %s is fixed at %d days", name, fixed)
		}
		if days < 0 {
			return fmt.Errorf("leave quota for %s must not be negative", name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	merged := cloneMap(s.current.LeaveQuotas)
	for name, days := range quotas {
		merged[name] = days
	}
	s.current.LeaveQuotas = merged
	return nil
}

// AddDepartment registers a department if not already present.
func (s *Store) AddDepartment(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.current.Departments {
		if d == name {
			return
		}
	}
	s.current.Departments = append(append([]string(nil), s.current.Departments...), name)
}

// RemoveDepartment drops a department from the configured list.
func (s *Store) RemoveDepartment(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]string, 0, len(s.current.Departments))
	for _, d := range s.current.Departments {
		if d != name {
			kept = append(kept, d)
		}
	}
	s.current.Departments = kept
}

// UpdateShifts replaces the shift table.
func (s *Store) UpdateShifts(shifts map[string]Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Shifts = cloneMap(shifts)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
