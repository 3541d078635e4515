package sweep

import (
	"time"

	"testing"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// TestSweepMergesStructurallyDistinctEquivalents verifies that two
// differently-built nodes computing the same function over the same
// inputs are proved equivalent (UNSAT on the miter) and merged.
func TestSweepMergesStructurallyDistinctEquivalents(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()

	x := m.Or(a, m.And(b, c))
	y := m.And(m.Or(a, b), m.Or(a, c)) // distributive expansion of the same function
	m.AppendCO(x)
	m.AppendCO(y)

	if x == y {
		t.Skip("unique table already folded the two derivations to one node")
	}

	res := Run(m, Config{Seed: 7, Words: 4, QueryBudget: time.Second, SolverRecycle: 10})
	if res.Merged == 0 {
		t.Fatalf("expected at least one proved merge, got %+v", res)
	}
	if got := m.EquivRepr(y.Var()); got != x.Var() && m.EquivRepr(x.Var()) != y.Var() {
		t.Errorf("x and y were not recorded as equivalent: EquivRepr(y)=%v EquivRepr(x)=%v", got, m.EquivRepr(x.Var()))
	}
}

// TestSweepKeepsDistinctFunctions checks that an AND and OR over the same
// two inputs are never merged.
func TestSweepKeepsDistinctFunctions(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	x := m.And(a, b)
	y := m.Or(a, b)
	m.AppendCO(x)
	m.AppendCO(y)

	res := Run(m, Config{Seed: 3, Words: 4, QueryBudget: time.Second, SolverRecycle: 10})
	for _, p := range res.Pairs {
		if (p.Repr == x.Var() && p.Node == y.Var()) || (p.Repr == y.Var() && p.Node == x.Var()) {
			if p.State == Merged {
				t.Fatalf("AND and OR nodes must never be merged")
			}
		}
	}
}
