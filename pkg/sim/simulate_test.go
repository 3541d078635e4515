package sim

import (
	"testing"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// TestSimulateXor exercises scenario 4: seeded patterns
// 0xAAAA..., 0xCCCC..., 0xF0F0... fed to A, B, C and checked against
// G = (A AND B) XOR (B AND C) computed bit-by-bit.
func TestSimulateXor(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	g := m.Xor(m.And(a, b), m.And(b, c))
	m.AppendCO(g)

	const (
		wordA uint64 = 0xAAAAAAAAAAAAAAAA
		wordB uint64 = 0xCCCCCCCCCCCCCCCC
		wordC uint64 = 0xF0F0F0F0F0F0F0F0
	)
	src := NewFixed([][]uint64{{wordA}, {wordB}, {wordC}})
	v := Simulate(m, src, 1)

	gotG := v.At(g.Var())[0]
	if g.IsCompl() {
		gotG = ^gotG
	}
	want := (wordA & wordB) ^ (wordB & wordC)
	if gotG != want {
		t.Fatalf("G = %064b, want %064b", gotG, want)
	}

	for p := 0; p < 64; p++ {
		ab := v.Bit(a.Var(), p) && v.Bit(b.Var(), p)
		bc := v.Bit(b.Var(), p) && v.Bit(c.Var(), p)
		wantBit := ab != bc
		gotBit := v.Bit(g.Var(), p) != g.IsCompl()
		if gotBit != wantBit {
			t.Fatalf("bit %d mismatch: got %v want %v", p, gotBit, wantBit)
		}
	}
}

// TestRandomSimulationDeterministic checks that two Simulate runs from the
// same seed produce identical word vectors.
func TestRandomSimulationDeterministic(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	x := m.And(a, b)
	m.AppendCO(x)

	v1 := Simulate(m, NewRandom(4, 12345), 4)
	v2 := Simulate(m, NewRandom(4, 12345), 4)

	for id := 0; id < m.NodeCount(); id++ {
		w1, w2 := v1.At(aig.ID(id)), v2.At(aig.ID(id))
		for i := range w1 {
			if w1[i] != w2[i] {
				t.Fatalf("node %d word %d differs across identical-seed runs", id, i)
			}
		}
	}
}

// TestInitialClassesSeparateDifferentFunctions exercises the consistency
// law of in its negative form: an AND node and an OR node over the
// same two inputs compute different functions and must never land in the
// same simulation class.
func TestInitialClassesSeparateDifferentFunctions(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()

	x := m.And(a, b)
	y := m.Or(a, b)
	m.AppendCO(x)
	m.AppendCO(y)

	v := Simulate(m, NewRandom(8, 999), 8)
	classes := InitialClasses(m, v)

	for _, cls := range classes {
		if cls.Repr == x.Var() {
			for _, mem := range cls.Members {
				if mem.Node == y.Var() {
					t.Fatalf("AND and OR nodes must not simulate equivalent")
				}
			}
		}
	}
}

// TestInitialClassesMergeEquivalentNodes exercises the consistency law of
// in its positive form: two structurally distinct nodes computing
// the same function (a | (b & c) and its distributive expansion) land in
// the same class.
func TestInitialClassesMergeEquivalentNodes(t *testing.T) {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()

	// x = a | (b & c), built directly via Or/And.
	x := m.Or(a, m.And(b, c))
	// y = (a | b) & (a | c), the distributive expansion of the same
	// function, a structurally distinct derivation the unique table cannot
	// fold to x.
	y := m.And(m.Or(a, b), m.Or(a, c))
	m.AppendCO(x)
	m.AppendCO(y)

	if x == y {
		t.Skip("unique table already folded the two derivations to one node")
	}

	v := Simulate(m, NewRandom(8, 999), 8)
	classes := InitialClasses(m, v)

	merged := false
	for _, cls := range classes {
		if cls.Repr != x.Var() && !containsMember(cls.Members, x.Var()) {
			continue
		}
		if cls.Repr == y.Var() || containsMember(cls.Members, y.Var()) {
			merged = true
		}
	}
	if !merged {
		t.Fatalf("equivalent nodes x=%v y=%v were not placed in the same class", x, y)
	}
}

func containsMember(members []Member, id aig.ID) bool {
	for _, m := range members {
		if m.Node == id {
			return true
		}
	}
	return false
}
