package sim

import "github.com/berkeley-abc/abc-sub020/pkg/aig"

// Values holds the per-node simulation word vectors produced by one
// Simulate call: Values[id] is a W-word array honoring fanin
// complementation bitwise, per "Simulation word vector".
type Values struct {
	W    int
	Word [][]uint64
}

// At returns node id's simulation word vector.
func (v *Values) At(id aig.ID) []uint64 { return v.Word[id] }

// Simulate evaluates every node of m for 64*W patterns drawn from src.
// Evaluation is sequential over nodes in array (topological) order and
// parallel over the 64 pattern lanes of each word: the only exposed
// parallelism is the independence of word lanes, not goroutines across
// nodes (each node's fanins already
// have smaller ids, so a single linear pass suffices; no concurrency is
// needed to exploit the word-parallel structure, only bitwise ops are).
func Simulate(m *aig.Manager, src Source, w int) *Values {
	n := m.NodeCount()
	vals := make([][]uint64, n)
	vals[0] = make([]uint64, w) // Const0 is all-zero

	ciIdx := 0
	for id := 1; id < n; id++ {
		kind := m.Kind(aig.ID(id))
		switch kind {
		case aig.KindCI:
			words := src.Words(ciIdx)
			ciIdx++
			buf := make([]uint64, w)
			copy(buf, words)
			vals[id] = buf
		case aig.KindAnd:
			f0, f1 := m.Fanins(aig.ID(id))
			buf := make([]uint64, w)
			w0 := faninWords(vals, f0)
			w1 := faninWords(vals, f1)
			c0 := f0.IsCompl()
			c1 := f1.IsCompl()
			for j := 0; j < w; j++ {
				a := w0[j]
				if c0 {
					a = ^a
				}
				b := w1[j]
				if c1 {
					b = ^b
				}
				buf[j] = a & b
			}
			vals[id] = buf
		case aig.KindCO:
			f0, _ := m.Fanins(aig.ID(id))
			vals[id] = faninWordsCompl(vals, f0, w)
		}
	}

	return &Values{W: w, Word: vals}
}

func faninWords(vals [][]uint64, lit aig.Lit) []uint64 {
	return vals[lit.Var()]
}

func faninWordsCompl(vals [][]uint64, lit aig.Lit, w int) []uint64 {
	src := vals[lit.Var()]
	if !lit.IsCompl() {
		return src
	}
	out := make([]uint64, w)
	for i, word := range src {
		out[i] = ^word
	}
	return out
}

// Bit returns pattern p's (0-based, 0..64*W-1) simulated value at node id,
// honoring fanin complementation already folded into vals by Simulate.
func (v *Values) Bit(id aig.ID, p int) bool {
	word := v.Word[id][p/64]
	return word&(1<<uint(p%64)) != 0
}
