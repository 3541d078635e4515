package interp

import (
	"time"

	"testing"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// TestCheckFindsImmediateCounterexample builds a one-register circuit
// whose bad output is asserted directly by a primary input, reachable in
// frame 1.
func TestCheckFindsImmediateCounterexample(t *testing.T) {
	m := aig.New()
	pi := m.CreateCI()
	m.AppendCO(pi) // CO 0: bad output, directly driven by a free input

	res := Check(m, 0, Config{MaxFrames: 4, QueryBudget: time.Second})
	if res.Status != SatCounterexample {
		t.Fatalf("expected SatCounterexample, got %v", res.Status)
	}
	if res.Frames != 1 {
		t.Fatalf("expected the counterexample at frame 1, got %d", res.Frames)
	}
}

// TestCheckReportsUnsatUpToBoundOnConstantBad checks a circuit whose bad
// output is tied to the always-false constant: no depth ever reaches it,
// so Check exhausts MaxFrames.
func TestCheckReportsUnsatUpToBoundOnConstantBad(t *testing.T) {
	m := aig.New()
	pi := m.CreateCI()
	m.AppendCO(m.And(pi, pi.Not())) // CO 0: always Const0

	res := Check(m, 0, Config{MaxFrames: 3, QueryBudget: time.Second})
	if res.Status != Timeout {
		t.Fatalf("expected Timeout (no reachable bad state within bound), got %v", res.Status)
	}
	if res.Frames != 3 {
		t.Fatalf("expected to exhaust all 3 frames, got %d", res.Frames)
	}
}
