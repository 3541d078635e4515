package cut

// Policy ranks cuts at a single node when the candidate set exceeds the
// per-node cut limit: Less(a, b) reports whether a should be kept over b
// (a sorts before b). The three variants mirror the LUT mapper's three
// passes: delay-oriented, exact-area, and edge-count. Per spec §4.4, the
// comparator orders by (arrival, leaf-count, area-flow) for delay-driven
// selection, with the first two keys flipped for area-driven selection;
// ties always break by lower signature integer, then by first-differing
// leaf id.
type Policy interface {
	Less(a, b Cut) bool
}

// tiebreak applies the shared final tie-break rule once the policy's own
// keys compare equal: lower signature integer first, then the first
// leaf id at which the two sorted leaf sets differ, then fewer leaves.
func tiebreak(a, b Cut) bool {
	if a.Sig != b.Sig {
		return a.Sig < b.Sig
	}
	n := len(a.Leaves)
	if len(b.Leaves) < n {
		n = len(b.Leaves)
	}
	for i := 0; i < n; i++ {
		if a.Leaves[i] != b.Leaves[i] {
			return a.Leaves[i] < b.Leaves[i]
		}
	}
	return len(a.Leaves) < len(b.Leaves)
}

// DelayPolicy orders cuts by (arrival, leaf-count, area-flow), the
// delay-driven comparator spec §4.4 describes.
type DelayPolicy struct{}

func (DelayPolicy) Less(a, b Cut) bool {
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}
	if len(a.Leaves) != len(b.Leaves) {
		return len(a.Leaves) < len(b.Leaves)
	}
	if a.AreaFlow != b.AreaFlow {
		return a.AreaFlow < b.AreaFlow
	}
	return tiebreak(a, b)
}

// AreaPolicy orders cuts by (leaf-count, arrival, area-flow): the
// area-driven comparator with its first two keys flipped relative to
// DelayPolicy, per spec §4.4. RefCounts additionally weighs the final
// area-flow key by how many times each leaf is already referenced
// elsewhere in the network, so a leaf shared with other logic counts for
// less than one newly introduced by this cut alone.
type AreaPolicy struct {
	RefCounts []int32
}

func (p AreaPolicy) Less(a, b Cut) bool {
	if len(a.Leaves) != len(b.Leaves) {
		return len(a.Leaves) < len(b.Leaves)
	}
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}
	fa, fb := p.weightedFlow(a), p.weightedFlow(b)
	if fa != fb {
		return fa < fb
	}
	return tiebreak(a, b)
}

func (p AreaPolicy) weightedFlow(c Cut) float64 {
	flow := c.AreaFlow
	for _, l := range c.Leaves {
		refs := int32(1)
		if int(l) < len(p.RefCounts) && p.RefCounts[l] > 0 {
			refs = p.RefCounts[l]
		}
		flow += 1.0 / float64(refs)
	}
	return flow
}

// EdgePolicy orders cuts by leaf-count alone, approximating total wiring
// (edge count) in the mapped network; ties fall through to the shared
// signature/leaf tie-break.
type EdgePolicy struct{}

func (EdgePolicy) Less(a, b Cut) bool {
	if len(a.Leaves) != len(b.Leaves) {
		return len(a.Leaves) < len(b.Leaves)
	}
	return tiebreak(a, b)
}

var _ Policy = DelayPolicy{}
var _ Policy = AreaPolicy{}
var _ Policy = EdgePolicy{}
