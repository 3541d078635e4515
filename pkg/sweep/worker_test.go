package sweep

import (
	"testing"
	"time"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// TestWorkerPoolMergesStructurallyDistinctEquivalents mirrors
// TestSweepMergesStructurallyDistinctEquivalents but drives the batched,
// concurrent worker-pool path instead of the sequential one.
func TestWorkerPoolMergesStructurallyDistinctEquivalents(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()

	x := m.Or(a, m.And(b, c))
	y := m.And(m.Or(a, b), m.Or(a, c))
	m.AppendCO(x)
	m.AppendCO(y)

	if x == y {
		t.Skip("unique table already folded the two derivations to one node")
	}

	wp := NewWorkerPool(4)
	res := wp.RunParallel(m, Config{Seed: 7, Words: 4, QueryBudget: time.Second, SolverRecycle: 10})
	if res.Merged == 0 {
		t.Fatalf("expected at least one proved merge, got %+v", res)
	}
	if m.EquivRepr(y.Var()) != x.Var() && m.EquivRepr(x.Var()) != y.Var() {
		t.Errorf("x and y were not recorded as equivalent")
	}
	if q, merged := wp.Stats(); q == 0 || merged == 0 {
		t.Errorf("expected nonzero Stats(), got queries=%d merged=%d", q, merged)
	}
}

// TestWorkerPoolKeepsDistinctFunctions mirrors TestSweepKeepsDistinctFunctions.
func TestWorkerPoolKeepsDistinctFunctions(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	x := m.And(a, b)
	y := m.Or(a, b)
	m.AppendCO(x)
	m.AppendCO(y)

	wp := NewWorkerPool(2)
	res := wp.RunParallel(m, Config{Seed: 3, Words: 4, QueryBudget: time.Second, SolverRecycle: 10})
	for _, p := range res.Pairs {
		if (p.Repr == x.Var() && p.Node == y.Var()) || (p.Repr == y.Var() && p.Node == x.Var()) {
			if p.State == Merged {
				t.Fatalf("AND and OR nodes must never be merged")
			}
		}
	}
}
