package satsolver

// TraceSolver is a small DPLL solver with unit propagation that records
// enough of its own derivation to reconstruct a resolution refutation on
// an UNSAT result. gini does not expose antecedent chains
// for arbitrary learned clauses (only Why/Reasons over failed assumptions,
// see solver.go's FailedAssumptions), so the interpolation engine needs
// this separate, simpler solver instead of the production adapter above.
// Grounded on original_source/src/sat/bsat/satInterP.c's resolution-graph
// bookkeeping: every clause (input or derived-by-propagation) gets an id,
// and a conflict records the ids that resolved into it.
type TraceSolver struct {
	clauses    [][]Lit
	antecedent map[int][]int // derived clause id -> input/derived ids resolved to produce it
	globalOf   map[int]bool  // whether a clause is "global" (A-side) vs "local" (B-side)
	nvars      int32
	assigned   map[Var]bool
	value      map[Var]bool
	trail      []Var
	reason     map[Var]int // clause id that forced this assignment via unit propagation
}

// NewTrace creates an empty trace-recording solver.
func NewTrace() *TraceSolver {
	return &TraceSolver{
		antecedent: make(map[int][]int),
		globalOf:   make(map[int]bool),
		assigned:   make(map[Var]bool),
		value:      make(map[Var]bool),
		reason:     make(map[Var]int),
	}
}

// NewVar allocates a fresh variable.
func (t *TraceSolver) NewVar() Var {
	t.nvars++
	return Var(t.nvars)
}

// AddClause adds an input clause, tagged global (true) if it comes from
// the "A" partition of an interpolation problem, local (false) if "B".
// The returned id identifies the clause in Antecedents/Refutation.
func (t *TraceSolver) AddClause(global bool, lits ...Lit) int {
	id := len(t.clauses)
	cp := append([]Lit(nil), lits...)
	t.clauses = append(t.clauses, cp)
	t.globalOf[id] = global
	return id
}

// Clause returns the literals of clause id (input or derived).
func (t *TraceSolver) Clause(id int) []Lit { return t.clauses[id] }

// Value returns v's value in the solver's current (satisfying, if the
// last Solve returned true) assignment.
func (t *TraceSolver) Value(v Var) bool { return t.value[v] }

// NumClauses returns the current clause count, a checkpoint a caller can
// later pass to Rollback to discard a temporary query clause (and any
// derived clauses from resolving it) without touching earlier state.
func (t *TraceSolver) NumClauses() int { return len(t.clauses) }

// Rollback discards every clause (input or derived) added since
// checkpoint, used by BMC-style callers that add one query-only unit
// clause per depth and want it gone before the next depth's query.
func (t *TraceSolver) Rollback(checkpoint int) {
	t.clauses = t.clauses[:checkpoint]
	for id := range t.antecedent {
		if id >= checkpoint {
			delete(t.antecedent, id)
		}
	}
	for id := range t.globalOf {
		if id >= checkpoint {
			delete(t.globalOf, id)
		}
	}
}

// IsGlobal reports whether clause id is tagged as belonging to the "A"
// (global) partition, used by the interpolant builder to decide which
// resolution steps contribute a literal to the interpolant.
func (t *TraceSolver) IsGlobal(id int) bool { return t.globalOf[id] }

// Antecedents returns the input clause ids resolved to derive clause id,
// or nil if id names an original input clause.
func (t *TraceSolver) Antecedents(id int) []int { return t.antecedent[id] }

// Solve starts from an empty assignment, runs unit propagation to a
// fixpoint, then (if unresolved variables remain) a simple chronological
// DPLL search. It returns (true, 0) if satisfiable, leaving the satisfying
// assignment readable through Value, or (false, refutationID) with
// refutationID naming the empty-clause derivation on UNSAT.
func (t *TraceSolver) Solve() (sat bool, refutation int) {
	t.assigned = make(map[Var]bool)
	t.value = make(map[Var]bool)
	t.reason = make(map[Var]int)
	t.trail = t.trail[:0]
	ok, conflict := t.propagate()
	if !ok {
		return false, t.resolveConflict(conflict)
	}
	return t.search()
}

func (t *TraceSolver) search() (bool, int) {
	var v Var = -1
	for cand := Var(1); cand <= Var(t.nvars); cand++ {
		if !t.assigned[cand] {
			v = cand
			break
		}
	}
	if v == -1 {
		return true, 0
	}

	var lastRef int
	for _, guess := range [2]bool{true, false} {
		t.push(v, guess, -1)
		ok, conflict := t.propagate()
		if !ok {
			ref := t.resolveConflict(conflict)
			t.undoTo(v)
			lastRef = ref
			if !guess {
				return false, lastRef
			}
			continue
		}
		sat, ref := t.search()
		if sat {
			return true, 0
		}
		t.undoTo(v)
		lastRef = ref
		if !guess {
			return false, lastRef
		}
	}
	return false, lastRef
}

func (t *TraceSolver) push(v Var, val bool, reasonClause int) {
	t.assigned[v] = true
	t.value[v] = val
	t.reason[v] = reasonClause
	t.trail = append(t.trail, v)
}

// undoTo pops every trail entry back through and including v, the
// assignment pushed at the start of the current search() branch.
func (t *TraceSolver) undoTo(v Var) {
	for len(t.trail) > 0 {
		last := t.trail[len(t.trail)-1]
		t.trail = t.trail[:len(t.trail)-1]
		delete(t.assigned, last)
		delete(t.value, last)
		delete(t.reason, last)
		if last == v {
			return
		}
	}
}

// propagate performs unit propagation over all clauses until a fixpoint
// or a conflict, returning the conflicting clause id on failure.
func (t *TraceSolver) propagate() (ok bool, conflict int) {
	changed := true
	for changed {
		changed = false
		for id, cl := range t.clauses {
			status, unit := t.status(cl)
			switch status {
			case clauseConflict:
				return false, id
			case clauseUnit:
				t.push(unit.Var(), unit.Sign(), id)
				changed = true
			}
		}
	}
	return true, -1
}

type clauseStatus int

const (
	clauseSat clauseStatus = iota
	clauseUnit
	clauseConflict
	clauseUndetermined
)

func (t *TraceSolver) status(cl []Lit) (clauseStatus, Lit) {
	var unassigned Lit
	nUnassigned := 0
	for _, l := range cl {
		v := l.Var()
		if !t.assigned[v] {
			nUnassigned++
			unassigned = l
			continue
		}
		if t.value[v] == l.Sign() {
			return clauseSat, 0
		}
	}
	if nUnassigned == 0 {
		return clauseConflict, 0
	}
	if nUnassigned == 1 {
		return clauseUnit, unassigned
	}
	return clauseUndetermined, 0
}

// resolveConflict walks the implication chain backward from the
// conflicting clause, recording a fresh derived clause whose antecedents
// are every reason clause touched, terminating in the empty clause. This
// is a simplified resolution trace sufficient for the McMillan
// interpolation construction in pkg/interp, not a minimal-width proof.
func (t *TraceSolver) resolveConflict(conflict int) int {
	seen := map[int]bool{conflict: true}
	queue := []int{conflict}
	for i := 0; i < len(queue); i++ {
		for _, lit := range t.clauses[queue[i]] {
			if r, ok := t.reason[lit.Var()]; ok && r >= 0 && !seen[r] {
				seen[r] = true
				queue = append(queue, r)
			}
		}
	}
	id := len(t.clauses)
	t.clauses = append(t.clauses, nil) // empty clause
	t.antecedent[id] = queue
	global := false
	for _, c := range queue {
		if t.globalOf[c] {
			global = true
		}
	}
	t.globalOf[id] = global
	return id
}
