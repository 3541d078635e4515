package sim

import "github.com/berkeley-abc/abc-sub020/pkg/aig"

// Member is one node's membership in a candidate equivalence class: Inv
// records whether the node must be complemented to match the class
// representative's simulation value.
type Member struct {
	Node aig.ID
	Inv  bool
}

// Class is a candidate equivalence class: a representative plus the
// remaining members, each tagged with the polarity needed to match the
// representative's simulation vector.
type Class struct {
	Repr    aig.ID
	Members []Member
}

// InitialClasses seeds one class per distinct simulation signature across
// all And nodes. CI nodes are
// excluded: only derived (And) nodes are merge candidates.
func InitialClasses(m *aig.Manager, v *Values) []*Class {
	var ids []aig.ID
	m.ForEachAnd(func(id aig.ID, f0, f1 aig.Lit) {
		ids = append(ids, id)
	})
	return bucketAndSplit(ids, v)
}

// RefineClasses splits every class whose members' simulation words
// actually differ once polarity is accounted for — a radix-style
// two-pass partition: pass one buckets by a cheap XOR
// signature, pass two exact-compares within a bucket to confirm or split.
func RefineClasses(classes []*Class, v *Values) []*Class {
	var refined []*Class
	for _, c := range classes {
		ids := make([]aig.ID, 0, len(c.Members)+1)
		ids = append(ids, c.Repr)
		for _, mem := range c.Members {
			ids = append(ids, mem.Node)
		}
		refined = append(refined, bucketAndSplit(ids, v)...)
	}
	return refined
}

// bucketAndSplit is the two-pass partition shared by InitialClasses and
// RefineClasses: pass one groups ids by a polarity-canonical signature,
// pass two exact-compares within each group (the signature is necessary
// but not sufficient for equality) and splits off any false match.
func bucketAndSplit(ids []aig.ID, v *Values) []*Class {
	buckets := make(map[uint64][]aig.ID)
	for _, id := range ids {
		sig := canonSignature(v.At(id))
		buckets[sig] = append(buckets[sig], id)
	}

	var out []*Class
	for _, group := range buckets {
		out = append(out, exactSplit(group, v)...)
	}
	return out
}

// exactSplit compares every member of group against a running set of
// representatives, splitting off a new Class whenever a member matches
// neither directly nor under complementation.
func exactSplit(group []aig.ID, v *Values) []*Class {
	var classes []*Class
	for _, id := range group {
		placed := false
		for _, cls := range classes {
			inv, ok := wordsEqualModPolarity(v.At(cls.Repr), v.At(id))
			if ok {
				cls.Members = append(cls.Members, Member{Node: id, Inv: inv})
				placed = true
				break
			}
		}
		if !placed {
			classes = append(classes, &Class{Repr: id})
		}
	}
	// Single-member classes carry no equivalence information; drop them.
	var out []*Class
	for _, cls := range classes {
		if len(cls.Members) > 0 {
			out = append(out, cls)
		}
	}
	return out
}

// canonSignature returns an XOR-folded signature that is identical for a
// word vector and its bitwise complement, so polarity alone never splits
// a bucket that exact comparison would go on to merge.
func canonSignature(words []uint64) uint64 {
	var sig, csig uint64
	for _, w := range words {
		sig ^= w
		sig = sig<<1 | sig>>63
		csig ^= ^w
		csig = csig<<1 | csig>>63
	}
	if csig < sig {
		return csig
	}
	return sig
}

func wordsEqualModPolarity(a, b []uint64) (inv bool, ok bool) {
	allEq, allInv := true, true
	for i := range a {
		if a[i] != b[i] {
			allEq = false
		}
		if a[i] != ^b[i] {
			allInv = false
		}
		if !allEq && !allInv {
			return false, false
		}
	}
	if allEq {
		return false, true
	}
	if allInv {
		return true, true
	}
	return false, false
}
