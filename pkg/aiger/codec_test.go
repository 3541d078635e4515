package aiger

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// buildScenario1 constructs the scenario 1 network: three CIs,
// X=A&B, Y=B&C, U=X&C, W=A&Y, G=U^W, one CO driven by G.
func buildScenario1() *aig.Manager {
	m := aig.New()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	x := m.And(a, b)
	y := m.And(b, c)
	u := m.And(x, c)
	w := m.And(a, y)
	g := m.Xor(u, w)
	m.AppendCO(g)
	return m
}

// TestRoundTripCompact exercises scenario 2: writing scenario 1 in
// compact mode and reading it back should reproduce the CI, CO and And
// node counts.
func TestRoundTripCompact(t *testing.T) {
	m := buildScenario1()

	var buf bytes.Buffer
	if err := Write(&buf, m, ModeCompact); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.NumCI() != m.NumCI() || got.NumCO() != m.NumCO() || got.NumAnd() != m.NumAnd() {
		t.Fatalf("counts changed: CI %d->%d CO %d->%d And %d->%d",
			m.NumCI(), got.NumCI(), m.NumCO(), got.NumCO(), m.NumAnd(), got.NumAnd())
	}
	if got.NumAnd() != 7 {
		t.Fatalf("expected 7 And nodes (4 explicit + 3 for xor), got %d", got.NumAnd())
	}
}

// TestRoundTripASCII mirrors TestRoundTripCompact for the ASCII latch/PO
// literal mode.
func TestRoundTripASCII(t *testing.T) {
	m := buildScenario1()

	var buf bytes.Buffer
	if err := Write(&buf, m, ModeASCII); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.NumCI() != m.NumCI() || got.NumCO() != m.NumCO() || got.NumAnd() != m.NumAnd() {
		t.Fatalf("counts changed across ASCII round trip")
	}
}

// TestRoundTripWithRegisters exercises the register-pairing invariant
//: the last R CIs/COs must remain paired as register
// output/input across a round trip.
func TestRoundTripWithRegisters(t *testing.T) {
	m := aig.New()
	pi := m.CreateCI()
	regOut := m.CreateCI()
	next := m.And(pi, regOut)
	m.AppendCO(pi)       // PO
	m.AppendCO(next)     // register input
	m.SetRegisterCount(1)

	var buf bytes.Buffer
	if err := Write(&buf, m, ModeCompact); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.RegisterCount() != 1 {
		t.Fatalf("register count not preserved: got %d", got.RegisterCount())
	}
	if got.NumCI() != 2 || got.NumCO() != 2 {
		t.Fatalf("CI/CO counts not preserved")
	}
}

// TestExtensionSectionsRoundTrip exercises the 'e', 'f', 'p', 's', 'c',
// 'n' extension sections: installing side-car data, writing,
// reading back, and checking every field survives.
func TestExtensionSectionsRoundTrip(t *testing.T) {
	m := aig.New()
	pi := m.CreateCI()
	regOut := m.CreateCI()
	x := m.And(pi, regOut)
	y := m.And(regOut, pi.Not())
	m.AppendCO(x)
	m.AppendCO(y)
	m.SetRegisterCount(0)

	m.SetEquivRepr(y.Var(), x.Var(), true)
	m.SetFlopClasses([]int32{})
	m.SetPlacement([]aig.Placement{
		{X: 3, Y: -4},
		{X: 0, Y: 0},
		{X: 0, Y: 0},
		{X: 0, Y: 0},
		{X: 7, Y: 9},
	})
	m.SetSwitching([]byte{0, 1, 2, 3, 4})
	m.SetConstraints(2)
	m.SetModelName("top")

	var buf bytes.Buffer
	if err := Write(&buf, m, ModeCompact); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.EquivRepr(y.Var()) != x.Var() || !got.EquivProved(y.Var()) {
		t.Errorf("equivalence class not preserved: repr=%v proved=%v", got.EquivRepr(y.Var()), got.EquivProved(y.Var()))
	}
	if got.Constraints() != 2 {
		t.Errorf("constraint count not preserved: got %d", got.Constraints())
	}
	if got.ModelName() != "top" {
		t.Errorf("model name not preserved: got %q", got.ModelName())
	}
	sw := got.Switching()
	if len(sw) != got.NodeCount() {
		t.Fatalf("switching length mismatch: got %d want %d", len(sw), got.NodeCount())
	}
	for i, b := range []byte{0, 1, 2, 3, 4} {
		if sw[i] != b {
			t.Errorf("switching[%d] = %d, want %d", i, sw[i], b)
		}
	}
	pl := got.Placement()
	if len(pl) != got.NodeCount() {
		t.Fatalf("placement length mismatch: got %d want %d", len(pl), got.NodeCount())
	}
	if pl[0] != (aig.Placement{X: 3, Y: -4}) || pl[4] != (aig.Placement{X: 7, Y: 9}) {
		t.Errorf("placement coordinates not preserved: %+v", pl)
	}
}

// TestVarintRoundTrip exercises the low-7-bits-first varint codec on a
// spread of values including ones requiring multiple continuation bytes.
func TestVarintRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 300, 1 << 20, 1 << 31, ^uint32(0)} {
		var buf bytes.Buffer
		bw := bufio.NewWriter(&buf)
		if err := WriteVarint(bw, v); err != nil {
			t.Fatalf("WriteVarint(%d): %v", v, err)
		}
		bw.Flush()

		br := bufio.NewReader(&buf)
		got, err := ReadVarint(br)
		if err != nil {
			t.Fatalf("ReadVarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("varint round trip: got %d, want %d", got, v)
		}
	}
}

// TestDeltaLiteralsRoundTrip exercises the zigzag delta encoding used for
// compact-mode latch/output literal lists.
func TestDeltaLiteralsRoundTrip(t *testing.T) {
	lits := []uint32{0, 2, 2, 100, 4, 4, 1000, 0}
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := WriteDeltaLiterals(bw, lits); err != nil {
		t.Fatalf("WriteDeltaLiterals: %v", err)
	}
	bw.Flush()

	br := bufio.NewReader(&buf)
	got, err := ReadDeltaLiterals(br, len(lits))
	if err != nil {
		t.Fatalf("ReadDeltaLiterals: %v", err)
	}
	for i := range lits {
		if got[i] != lits[i] {
			t.Errorf("delta literal[%d] = %d, want %d", i, got[i], lits[i])
		}
	}
}
