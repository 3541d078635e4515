// Package sweep implements SAT-sweeping: simulation seeds
// candidate equivalence classes, and a SAT query either proves a class
// merge (UNSAT on the miter) or produces a counterexample that splits it.
package sweep

import (
	"time"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/satsolver"
	"github.com/berkeley-abc/abc-sub020/pkg/sim"
)

// State is a candidate pair's position in the sweep state machine:
// INITIAL -> SIMULATED -> QUERIED -> {MERGED, KEPT}.
type State int

const (
	Initial State = iota
	Simulated
	Queried
	Merged
	Kept
)

// Config bounds one sweep run.
type Config struct {
	Seed          uint64
	Words         int           // simulation words (64*Words patterns)
	QueryBudget   time.Duration // per-SAT-call time budget
	SolverRecycle int           // rebuild the incremental solver every N queries

	// Care is the care-set AIG: a node is merged into its class
	// representative only when the two provably agree under every
	// satisfying assignment of Care's single output, matched onto m's
	// primary inputs by position. A nil Care means care ≡ 1 (every input
	// pattern is cared about), the ordinary full-equivalence sweep.
	Care *aig.Manager
}

// Pair is one resolved candidate-equivalence query outcome.
type Pair struct {
	Repr, Node aig.ID
	Inv        bool
	State      State
}

// Result is the outcome of a full sweep.
type Result struct {
	Pairs   []Pair
	Merged  int
	Kept    int
	Queries int
}

// Run seeds classes from random simulation, then resolves every candidate
// pair with an incremental SAT query, recycling the solver every
// cfg.SolverRecycle queries and
// resimulating with any returned counterexample to refine the remaining
// classes before moving on.
func Run(m *aig.Manager, cfg Config) Result {
	if cfg.SolverRecycle <= 0 {
		cfg.SolverRecycle = 100
	}
	v := sim.Simulate(m, sim.NewRandom(cfg.Words, cfg.Seed), cfg.Words)
	classes := sim.InitialClasses(m, v)

	var res Result
	solver := satsolver.New()
	enc := NewEncoder(m, solver)
	careLit := encodeCareIfSet(solver, enc, cfg.Care)

	for ci := 0; ci < len(classes); ci++ {
		cls := classes[ci]
		for _, mem := range cls.Members {
			if res.Queries > 0 && res.Queries%cfg.SolverRecycle == 0 {
				solver = satsolver.New()
				enc = NewEncoder(m, solver)
				careLit = encodeCareIfSet(solver, enc, cfg.Care)
			}
			res.Queries++

			reprLit := aig.NewLit(cls.Repr, false)
			memLit := aig.NewLit(mem.Node, mem.Inv)
			a := enc.Lit(reprLit)
			b := enc.Lit(memLit)
			miter := EncodeXor(solver, a, b)
			miterLit := satsolver.Pos(miter)
			if cfg.Care != nil {
				miterLit = satsolver.Pos(EncodeAnd(solver, miterLit, careLit))
			}
			solver.Assume(miterLit)

			outcome := solver.SolveWithBudget(cfg.QueryBudget)
			switch outcome {
			case satsolver.Unsat:
				m.SetEquivRepr(mem.Node, cls.Repr, true)
				res.Pairs = append(res.Pairs, Pair{Repr: cls.Repr, Node: mem.Node, Inv: mem.Inv, State: Merged})
				res.Merged++
			case satsolver.Sat:
				res.Pairs = append(res.Pairs, Pair{Repr: cls.Repr, Node: mem.Node, Inv: mem.Inv, State: Kept})
				res.Kept++
				refineWithCounterexample(m, enc, &classes, ci)
			default:
				res.Pairs = append(res.Pairs, Pair{Repr: cls.Repr, Node: mem.Node, Inv: mem.Inv, State: Queried})
				res.Kept++
			}
		}
	}
	return res
}

// encodeCareIfSet encodes care's output into solver once, via enc. When
// care is nil (care ≡ 1) it encodes nothing and returns the zero Lit, which
// names no variable; callers skip the care conjunction in that case.
func encodeCareIfSet(solver *satsolver.Solver, enc *Encoder, care *aig.Manager) satsolver.Lit {
	if care == nil {
		return satsolver.Lit(0)
	}
	return EncodeCare(solver, enc, care)
}

// refineWithCounterexample resimulates the network with the SAT model
// that distinguished a candidate pair and re-splits the remaining classes
// against it, so later pairs in the same sweep never re-derive a merge the
// counterexample already refutes.
func refineWithCounterexample(m *aig.Manager, enc *Encoder, classes *[]*sim.Class, fromIdx int) {
	bits := make([]bool, m.NumCI())
	idx := 0
	m.ForEachCI(func(lit aig.Lit) {
		bits[idx] = enc.CIValue(lit.Var())
		idx++
	})
	v := sim.Simulate(m, sim.NewCounterexample(bits), 1)
	rest := (*classes)[fromIdx+1:]
	refined := sim.RefineClasses(rest, v)
	*classes = append((*classes)[:fromIdx+1], refined...)
}
