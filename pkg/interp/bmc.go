// Package interp builds McMillan-style Craig interpolants from a
// resolution refutation (Interpolate) and runs bounded model checking
// (Check); Check does not use the interpolants. Grounded on original_source/src/sat/bsat/satInterP.c's resolution-graph
// walk and original_source/src/aig/ioa's frame-unrolling style used by the
// BMC/IMC drivers.
package interp

import (
	"time"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/satsolver"
)

// Status is the terminal outcome of a Check run, named after the
// state machine: INIT -> BUILD_FRAMES -> INTERPOLATE -> CHECK_CONTAINMENT
// -> {UNSAT_PROOF, DEEPEN, SAT_CEX, TIMEOUT}. This implementation performs
// only the BUILD_FRAMES/DEEPEN/SAT_CEX/TIMEOUT transitions, as bounded
// model checking: reaching MaxFrames with no counterexample found returns
// Timeout, and Check never returns UnsatProof (no interpolant containment
// check is performed; Interpolate is exposed separately).
type Status int

const (
	UnsatProof Status = iota
	SatCounterexample
	Timeout
)

// Config bounds one Check run: MaxFrames caps how many times the loop
// unrolls before giving up (Timeout). QueryBudget is not read by Check:
// each TraceSolver.Solve call runs to completion with no time bound.
type Config struct {
	MaxFrames   int
	QueryBudget time.Duration
}

// Result reports the outcome: on SatCounterexample, CIBits holds each
// frame's primary-input assignment (frame-major, PI order) reaching the
// bad state.
type Result struct {
	Status Status
	Frames int
	CIBits [][]bool
}

// unroller encodes one combinational copy of m per call to frame, tying
// each frame's register inputs to the previous frame's register outputs
// and frame 0's registers to all-zero
// initial state, the AIGER reset convention.
type unroller struct {
	m       *aig.Manager
	t       *satsolver.TraceSolver
	regCIs  []aig.ID
	regCOs  []aig.ID
	piCIs   []aig.ID
	prevReg []satsolver.Lit
	varOf   map[aig.ID]satsolver.Var // current frame only; reset per frame
}

func newUnroller(m *aig.Manager, t *satsolver.TraceSolver) *unroller {
	regs := m.RegisterCount()
	cis := m.CIs()
	cos := m.COs()
	u := &unroller{m: m, t: t}
	u.piCIs = cis[:len(cis)-regs]
	u.regCIs = cis[len(cis)-regs:]
	u.regCOs = cos[len(cos)-regs:]
	return u
}

// frame builds one combinational copy, returning this frame's primary
// input variables (for counterexample extraction) and the CO literal
// at coIndex (typically the bad/property output).
func (u *unroller) frame(coIndex int) (piVars []aig.ID, badLit satsolver.Lit) {
	u.varOf = make(map[aig.ID]satsolver.Var)

	for i, reg := range u.regCIs {
		v := u.t.NewVar()
		u.varOf[reg] = v
		if u.prevReg == nil {
			u.t.AddClause(true, satsolver.Neg(v))
		} else {
			p := u.prevReg[i]
			u.t.AddClause(true, satsolver.Neg(v), p)
			u.t.AddClause(true, v, p.Not())
		}
	}

	cos := u.m.COs()
	drivers := make([]aig.Lit, len(cos))
	u.m.ForEachCO(func(index int, driver aig.Lit) { drivers[index] = driver })

	var badLit satsolver.Lit
	for i, driver := range drivers {
		lit := u.lit(driver)
		if i == coIndex {
			badLit = lit
		}
	}
	next := make([]satsolver.Lit, len(u.regCOs))
	for i, regCOID := range u.regCOs {
		idx := indexOf(cos, regCOID)
		next[i] = u.lit(drivers[idx])
	}
	u.prevReg = next
	return u.piCIs, badLit
}

func indexOf(ids []aig.ID, id aig.ID) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}

func (u *unroller) lit(l aig.Lit) satsolver.Lit {
	id := l.Var()
	if id == 0 {
		v := u.t.NewVar()
		u.t.AddClause(true, satsolver.Neg(v))
		return litAt(v, l.IsCompl())
	}
	switch u.m.Kind(id) {
	case aig.KindCI:
		v, ok := u.varOf[id]
		if !ok {
			v = u.t.NewVar()
			u.varOf[id] = v
		}
		return litAt(v, l.IsCompl())
	case aig.KindAnd:
		v := u.encodeAnd(id)
		return litAt(v, l.IsCompl())
	default:
		panic("interp: unexpected fanin kind during unrolling")
	}
}

func litAt(v satsolver.Var, compl bool) satsolver.Lit {
	if compl {
		return satsolver.Neg(v)
	}
	return satsolver.Pos(v)
}

func (u *unroller) encodeAnd(id aig.ID) satsolver.Var {
	if v, ok := u.varOf[id]; ok {
		return v
	}
	f0, f1 := u.m.Fanins(id)
	a := u.lit(f0)
	b := u.lit(f1)
	z := u.t.NewVar()
	u.varOf[id] = z
	zl := satsolver.Pos(z)
	u.t.AddClause(true, zl.Not(), a)
	u.t.AddClause(true, zl.Not(), b)
	u.t.AddClause(true, zl, a.Not(), b.Not())
	return z
}

// Check runs bounded model checking up to cfg.MaxFrames, unrolling one
// combinational frame at a time and asking whether the bad output (CO
// index bad) can be asserted.
func Check(m *aig.Manager, bad int, cfg Config) Result {
	if cfg.MaxFrames <= 0 {
		cfg.MaxFrames = 32
	}

	t := satsolver.NewTrace()
	u := newUnroller(m, t)
	var allPIVars [][]aig.ID
	var allVarOf []map[aig.ID]satsolver.Var

	for depth := 1; depth <= cfg.MaxFrames; depth++ {
		piVars, badLit := u.frame(bad)
		allPIVars = append(allPIVars, piVars)
		allVarOf = append(allVarOf, u.varOf)

		// The bad unit clause is query-only: if it turns out UNSAT it must
		// not persist into the next depth's query, since that would force
		// frame `depth`'s bad output true in every later check too (an AND
		// across frames) instead of the intended "true in some frame" OR.
		// Earlier UNSAT results remain valid under the added clauses from
		// later frames since UNSAT is monotone under clause addition.
		checkpoint := t.NumClauses()
		t.AddClause(true, badLit)
		sat, _ := t.Solve()
		if sat {
			return Result{Status: SatCounterexample, Frames: depth, CIBits: extractModel(t, allPIVars, allVarOf)}
		}
		t.Rollback(checkpoint)
	}
	return Result{Status: Timeout, Frames: cfg.MaxFrames}
}

func extractModel(t *satsolver.TraceSolver, allPIVars [][]aig.ID, allVarOf []map[aig.ID]satsolver.Var) [][]bool {
	out := make([][]bool, len(allPIVars))
	for f, pis := range allPIVars {
		out[f] = make([]bool, len(pis))
		for i, pi := range pis {
			if v, ok := allVarOf[f][pi]; ok {
				out[f][i] = t.Value(v)
			}
		}
	}
	return out
}
