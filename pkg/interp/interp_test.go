package interp

import (
	"testing"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/satsolver"
	"github.com/berkeley-abc/abc-sub020/pkg/sim"
)

// TestInterpolateTrivialUnsat exercises interpolation contract on the
// smallest possible refutation: A asserts x, B asserts not-x, x is shared,
// so the interpolant must be an AIG literal that is true exactly where A's
// clause is satisfied and false exactly where B's clause is.
func TestInterpolateTrivialUnsat(t *testing.T) {
	m := aig.New()
	xLit := m.CreateCI()

	tr := satsolver.NewTrace()
	x := tr.NewVar()
	tr.AddClause(true, satsolver.Pos(x))
	tr.AddClause(false, satsolver.Neg(x))

	sat, refutation := tr.Solve()
	if sat {
		t.Fatalf("expected unsatisfiable instance")
	}

	shared := func(v satsolver.Var) bool { return v == x }
	sharedLit := func(v satsolver.Var) aig.Lit { return xLit }
	itp := Interpolate(m, tr, refutation, shared, sharedLit)

	// A => I: A's only model has x=true, and I must hold there.
	if !evalLit(m, itp, []bool{true}) {
		t.Errorf("interpolant false on A's model (x=true)")
	}
	// I /\ B unsat: B's only model has x=false, so I must be false there.
	if evalLit(m, itp, []bool{false}) {
		t.Errorf("interpolant true on B's model (x=false), should be false")
	}
}

// evalLit evaluates lit under a single CI assignment by running it through
// the real word-parallel simulator, the same way the sweeper replays a
// counterexample.
func evalLit(m *aig.Manager, lit aig.Lit, ciBits []bool) bool {
	vals := sim.Simulate(m, sim.NewCounterexample(ciBits), 1)
	bit := vals.Bit(lit.Var(), 0)
	if lit.IsCompl() {
		bit = !bit
	}
	return bit
}
