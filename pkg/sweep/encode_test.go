package sweep

import (
	"testing"
	"time"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/satsolver"
)

// TestEncodeCareRestrictsMiter exercises scenario 5's "miter n ⊕ r ∧ care"
// construction directly: AND(a,b) and OR(a,b) disagree in general, but the
// miter becomes unsatisfiable once conjoined with a care set that forces
// both inputs true, since both functions evaluate to 1 there.
func TestEncodeCareRestrictsMiter(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	x := m.And(a, b)
	y := m.Or(a, b)
	m.AppendCO(x)
	m.AppendCO(y)

	care := aig.New()
	ca := care.CreateCI()
	cb := care.CreateCI() // positions align with m's a, b
	care.AppendCO(care.And(ca, cb))

	solver := satsolver.New()
	enc := NewEncoder(m, solver)
	careLit := EncodeCare(solver, enc, care)

	ax := enc.Lit(x)
	ay := enc.Lit(y)
	xorVar := EncodeXor(solver, ax, ay)
	miter := satsolver.Pos(EncodeAnd(solver, satsolver.Pos(xorVar), careLit))
	solver.Assume(miter)

	if outcome := solver.SolveWithBudget(time.Second); outcome != satsolver.Unsat {
		t.Fatalf("expected n XOR r AND care to be unsat, got %v", outcome)
	}
}

// TestEncodeCareNilCareIsVacuouslyTrue checks that omitting a care set (as
// Run/RunParallel do when cfg.Care is nil) leaves the bare miter
// unconstrained: AND and OR still disagree on plenty of assignments.
func TestEncodeCareNilCareIsVacuouslyTrue(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	x := m.And(a, b)
	y := m.Or(a, b)
	m.AppendCO(x)
	m.AppendCO(y)

	solver := satsolver.New()
	enc := NewEncoder(m, solver)
	ax := enc.Lit(x)
	ay := enc.Lit(y)
	miter := satsolver.Pos(EncodeXor(solver, ax, ay))
	solver.Assume(miter)

	if outcome := solver.SolveWithBudget(time.Second); outcome != satsolver.Sat {
		t.Fatalf("expected n XOR r to be sat with no care set, got %v", outcome)
	}
}
