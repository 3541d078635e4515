// Package cut implements k-feasible cut enumeration over an AIG: for every node, the set of leaf combinations of size <= K whose
// cone of logic produces that node, pruned by dominance and capped per node.
package cut

import (
	"sort"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// Cut is one k-feasible cut rooted at a node: Leaves is sorted ascending,
// Sig is a 64-bit signature (one bit per leaf id mod 64) used as a cheap
// necessary condition before the exact subset test in dominance checks.
// Arrival and AreaFlow are the two per-cut cost estimates spec §3/§4.4
// requires every cut to carry, computed bottom-up as cuts are merged:
// Arrival is the logic-depth spanned within the cut (0 for a leaf), and
// AreaFlow is an additive per-cut area estimate (one unit of cost per AND
// gate subsumed by the cut). Both are distinct from the mapper's own
// per-node arrival/area bookkeeping (pkg/lutmap), which refines these
// intra-cut estimates across the whole network during its three passes.
type Cut struct {
	Root     aig.ID
	Leaves   []aig.ID
	Sig      uint64
	Arrival  int32
	AreaFlow float64
}

func sig(leaves []aig.ID) uint64 {
	var s uint64
	for _, l := range leaves {
		s |= 1 << (uint(l) % 64)
	}
	return s
}

// trivialCut is the single-node cut {root} -> root, always valid and
// always added last per ordering rule, so exact-area recovery
// can prefer larger, already-enumerated cuts first. As a pure leaf it
// contributes no internal depth or area of its own.
func trivialCut(root aig.ID) Cut {
	return Cut{Root: root, Leaves: []aig.ID{root}, Sig: sig([]aig.ID{root})}
}

// dominates reports whether a's leaf set is a subset of b's leaf set (a
// dominates b, so b is redundant once a exists). The Sig check rejects
// most non-subset pairs in O(1) before the O(k) exact merge-compare.
func dominates(a, b Cut) bool {
	if len(a.Leaves) > len(b.Leaves) {
		return false
	}
	if a.Sig&^b.Sig != 0 {
		return false
	}
	i, j := 0, 0
	for i < len(a.Leaves) {
		if j >= len(b.Leaves) {
			return false
		}
		switch {
		case a.Leaves[i] == b.Leaves[j]:
			i++
			j++
		case a.Leaves[i] > b.Leaves[j]:
			j++
		default:
			return false
		}
	}
	return true
}

// mergeLeaves unions two sorted leaf slices via the standard two-pointer
// merge, returning nil (not an error) if the union would exceed k.
func mergeLeaves(a, b []aig.ID, k int) ([]aig.ID, bool) {
	out := make([]aig.ID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
		if len(out) > k {
			return nil, false
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	if len(out) > k {
		return nil, false
	}
	return out, true
}

func equalLeaves(a, b []aig.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sortLeaves is a defensive no-op when leaves are already produced sorted
// by mergeLeaves; kept for cuts assembled by callers outside this package.
func sortLeaves(leaves []aig.ID) {
	sort.Slice(leaves, func(i, j int) bool { return leaves[i] < leaves[j] })
}
