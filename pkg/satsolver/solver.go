// Package satsolver adapts a CDCL SAT solver to the small capability
// surface the rest of this module needs: fresh variables,
// clause addition, assumptions, and a budgeted solve. The production path
// is backed by github.com/irifrance/gini, mirroring the litMapping pattern
// the Operator Lifecycle Manager's dependency-solver package uses to keep
// its own domain types out of the SAT library's literal encoding.
package satsolver

import (
	"time"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// Var is an opaque SAT variable handle.
type Var int32

// Lit is a signed literal: positive values assert Var(lit), negative
// values assert its negation, mirroring DIMACS convention so callers never
// have to think in gini's internal z.Lit encoding.
type Lit int32

// Pos and Neg build a Lit from a Var.
func Pos(v Var) Lit { return Lit(v) }
func Neg(v Var) Lit { return Lit(-v) }

func (l Lit) Var() Var   { return Var(abs32(int32(l))) }
func (l Lit) Not() Lit   { return -l }
func (l Lit) Sign() bool { return l > 0 }

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Outcome is the result of a Solve/SolveWithBudget call.
type Outcome int

const (
	Unknown Outcome = iota
	Sat
	Unsat
)

// Solver is a thin wrapper over *gini.Gini providing the newVar/addClause/
// assume/solveWithBudget capability requires of the adapter.
type Solver struct {
	g       *gini.Gini
	nextVar int32
}

// New creates an empty Solver.
func New() *Solver {
	return &Solver{g: gini.New(), nextVar: 0}
}

// NewVar allocates a fresh SAT variable.
func (s *Solver) NewVar() Var {
	s.nextVar++
	return Var(s.nextVar)
}

func (s *Solver) toZ(l Lit) z.Lit {
	v := z.Var(l.Var())
	if l.Sign() {
		return v.Pos()
	}
	return v.Neg()
}

// AddClause asserts the disjunction of lits as a permanent clause.
func (s *Solver) AddClause(lits ...Lit) {
	for _, l := range lits {
		s.g.Add(s.toZ(l))
	}
	s.g.Add(0)
}

// Assume restricts the next Solve/SolveWithBudget call to the given unit
// literals, exactly as "assume" primitive.
func (s *Solver) Assume(lits ...Lit) {
	zs := make([]z.Lit, len(lits))
	for i, l := range lits {
		zs[i] = s.toZ(l)
	}
	s.g.Assume(zs...)
}

// Solve runs to completion with no time budget.
func (s *Solver) Solve() Outcome {
	return fromGini(s.g.Solve())
}

// SolveWithBudget runs for at most d before returning Unknown, used by
// the sweeper to bound a single SAT query (the bounded model checker uses
// TraceSolver instead).
func (s *Solver) SolveWithBudget(d time.Duration) Outcome {
	return fromGini(s.g.Try(d))
}

func fromGini(code int) Outcome {
	switch code {
	case 1:
		return Sat
	case -1:
		return Unsat
	default:
		return Unknown
	}
}

// Value returns lit's value in the most recent satisfying model. Only
// meaningful after Solve/SolveWithBudget returned Sat.
func (s *Solver) Value(l Lit) bool {
	val := s.g.Value(s.toZ(Pos(l.Var())))
	if l.Sign() {
		return val
	}
	return !val
}

// FailedAssumptions returns the subset of the most recent Assume call that
// participated in the UNSAT core, via gini's Why. No caller in this
// module uses it; the sweeper does not shrink its care set.
func (s *Solver) FailedAssumptions(assumed []Lit) []Lit {
	zs := make([]z.Lit, len(assumed))
	for i, l := range assumed {
		zs[i] = s.toZ(l)
	}
	why := s.g.Why(zs)
	out := make([]Lit, 0, len(why))
	for _, zl := range why {
		v := Var(zl.Var())
		if zl.IsPos() {
			out = append(out, Pos(v))
		} else {
			out = append(out, Neg(v))
		}
	}
	return out
}
