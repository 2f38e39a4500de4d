package rules

import (
	"fmt"

	"github.com/o11c/targets/internal/domain"
)

// Scope is the read-only resolution context visible to checkers.
type Scope interface {
	// Target is the bare target name (the last path element of TargetDocument).
	Target() string
	// TargetDocument is the extensionless document name of the target, e.g. "triple/x86_64-linux-gnu".
	TargetDocument() string
	// Active is a copy of the import stack, outermost first.
	Active() []string
	// Current is the innermost active document, or "" once resolution finished.
	Current() string
	// DocumentExists reports whether an extensionless document name can be loaded.
	DocumentExists(name string) bool
}

// Checker validates val against the merged value old and returns the new merged value.
type Checker func(s Scope, key string, val, old domain.Value) (domain.Value, error)

// Invariant checks a cross-field rule on a record after defaulting.
type Invariant func(s Scope, rec *domain.Record) error

// Set is an explicit registry of checkers keyed by field name. Fields keeps registration order.
type Set struct {
	order      []string
	checkers   map[string]Checker
	invariants []Invariant
}

func NewSet() *Set {
	return &Set{checkers: map[string]Checker{}}
}

// Register adds a checker. Registering the same field twice or the reserved
// "import" key panics.
func (s *Set) Register(field string, c Checker) *Set {
	if field == "" || field == ImportKey {
		panic(fmt.Sprintf("rules: cannot register field %q", field))
	}
	if c == nil {
		panic(fmt.Sprintf("rules: nil checker for %q", field))
	}
	if _, dup := s.checkers[field]; dup {
		panic(fmt.Sprintf("rules: field %q registered twice", field))
	}
	s.order = append(s.order, field)
	s.checkers[field] = c
	return s
}

func (s *Set) AddInvariant(inv Invariant) *Set {
	if inv != nil {
		s.invariants = append(s.invariants, inv)
	}
	return s
}

func (s *Set) Lookup(field string) (Checker, bool) {
	c, ok := s.checkers[field]
	return c, ok
}

func (s *Set) Fields() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Set) Invariants() []Invariant {
	out := make([]Invariant, len(s.invariants))
	copy(out, s.invariants)
	return out
}

func (s *Set) Len() int { return len(s.order) }
