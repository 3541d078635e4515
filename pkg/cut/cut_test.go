package cut

import (
	"testing"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// TestTrivialCutAlwaysPresent verifies every node's cut set
// contains its own trivial cut, and the trivial cut is last.
func TestTrivialCutAlwaysPresent(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	x := m.And(a, b)
	m.AppendCO(x)

	store := Enumerate(m, Config{K: 4, MaxCuts: 8})
	cuts := store.CutsOf(x.Var())
	if len(cuts) == 0 {
		t.Fatalf("no cuts computed for %v", x.Var())
	}
	last := cuts[len(cuts)-1]
	if len(last.Leaves) != 1 || last.Leaves[0] != x.Var() {
		t.Fatalf("trivial cut not last: %+v", last)
	}
}

// TestCutSizeBounded checks the k-feasibility constraint: no cut exceeds K
// leaves for a node with a wide cone.
func TestCutSizeBounded(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	d := m.CreateCI()
	x := m.And(m.And(a, b), m.And(c, d))
	m.AppendCO(x)

	const k = 3
	store := Enumerate(m, Config{K: k, MaxCuts: 16})
	store.ForEachCut(x.Var(), func(cut Cut) bool {
		if len(cut.Leaves) > k {
			t.Fatalf("cut exceeds k=%d: %+v", k, cut)
		}
		return true
	})
}

// TestDominanceFiltering checks that no cut is retained twice and that
// the minimal cut {a,b} is among x's cuts.
func TestDominanceFiltering(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	x := m.And(a, b)
	m.AppendCO(x)

	store := Enumerate(m, Config{K: 4, MaxCuts: 8})
	cuts := store.CutsOf(x.Var())
	seen := make(map[string]bool)
	for _, c := range cuts {
		key := leafKey(c.Leaves)
		if seen[key] {
			t.Fatalf("duplicate cut %v retained", c.Leaves)
		}
		seen[key] = true
	}
	// {a,b} should dominate anything larger containing {a,b}; since this
	// tiny AIG has no larger alternative, just assert {a,b} is present.
	found := false
	for _, c := range cuts {
		if len(c.Leaves) == 2 && c.Leaves[0] == a.Var() && c.Leaves[1] == b.Var() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the {a,b} cut, got %+v", cuts)
	}
}

// TestMaxCutsEnforced verifies the per-node cut limit is respected once a
// policy is supplied.
func TestMaxCutsEnforced(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	x := m.And(m.And(a, b), c)
	m.AppendCO(x)

	store := Enumerate(m, Config{K: 3, MaxCuts: 2, Policy: EdgePolicy{}})
	if got := len(store.CutsOf(x.Var())); got > 2 {
		t.Fatalf("expected at most 2 cuts, got %d", got)
	}
}

func leafKey(leaves []aig.ID) string {
	s := ""
	for _, l := range leaves {
		s += string(rune(l)) + ","
	}
	return s
}
