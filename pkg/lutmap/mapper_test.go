package lutmap

import (
	"testing"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// TestMapSmallCone exercises basic contract: a 4-input cone
// with K=4 maps to a single LUT.
func TestMapSmallCone(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	d := m.CreateCI()
	x := m.Xor(m.And(a, b), m.And(c, d))
	m.AppendCO(x)

	mapper := New(m, Config{K: 4, MaxCuts: 8})
	table := mapper.Run()

	if len(table.Entries) == 0 {
		t.Fatalf("expected at least one LUT entry")
	}
	for _, e := range table.Entries {
		if len(e.Fanins) > 4 {
			t.Fatalf("entry exceeds K=4 fanins: %+v", e)
		}
	}
	root := x.Var()
	found := false
	for _, e := range table.Entries {
		if e.Root == root {
			found = true
			if len(e.Fanins) != 4 {
				t.Errorf("expected the XOR cone to collapse to one 4-LUT, got %d fanins", len(e.Fanins))
			}
		}
	}
	if !found {
		t.Fatalf("output node %v was not mapped", root)
	}
}

// TestStatsNonEmpty checks Stats reports a positive LUT count after Run.
func TestStatsNonEmpty(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	x := m.And(a, b)
	m.AppendCO(x)

	mapper := New(m, Config{K: 4, MaxCuts: 8})
	mapper.Run()
	st := mapper.Stats()
	if st.NumLuts != 1 {
		t.Fatalf("expected 1 LUT, got %d", st.NumLuts)
	}
}
