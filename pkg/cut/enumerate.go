package cut

import (
	"sort"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// Config bounds cut enumeration: K is the maximum cut size (leaves), and
// MaxCuts is the maximum number of cuts retained per node after dominance
// filtering and policy-based truncation.
type Config struct {
	K       int
	MaxCuts int
	Policy  Policy
}

// Store holds every node's retained cut set after a call to Enumerate.
type Store struct {
	cfg  Config
	cuts [][]Cut // indexed by aig.ID
}

// CutsOf returns the retained cuts at id, including the trivial cut.
func (s *Store) CutsOf(id aig.ID) []Cut { return s.cuts[id] }

// ForEachCut calls fn for every retained cut at id, stopping early if fn
// returns false.
func (s *Store) ForEachCut(id aig.ID, fn func(Cut) bool) {
	for _, c := range s.cuts[id] {
		if !fn(c) {
			return
		}
	}
}

// Enumerate computes k-feasible cuts for every node of m: CI nodes and
// Const0 get only the trivial cut; And nodes get the cross product of
// their fanin cut sets, merged and filtered, plus the trivial cut added
// last. The per-node limit MaxCuts is enforced by cfg.Policy once the
// dominance-filtered set exceeds it.
func Enumerate(m *aig.Manager, cfg Config) *Store {
	n := m.NodeCount()
	s := &Store{cfg: cfg, cuts: make([][]Cut, n)}

	s.cuts[0] = []Cut{trivialCut(0)}
	m.ForEachCI(func(lit aig.Lit) {
		id := lit.Var()
		s.cuts[id] = []Cut{trivialCut(id)}
	})
	m.ForEachAnd(func(id aig.ID, f0, f1 aig.Lit) {
		s.cuts[id] = s.computeCuts(id, f0.Var(), f1.Var(), cfg)
	})
	return s
}

func (s *Store) computeCuts(id, fa, fb aig.ID, cfg Config) []Cut {
	var merged []Cut
	for _, ca := range s.cuts[fa] {
		for _, cb := range s.cuts[fb] {
			leaves, ok := mergeLeaves(ca.Leaves, cb.Leaves, cfg.K)
			if !ok {
				continue
			}
			arrival := ca.Arrival
			if cb.Arrival > arrival {
				arrival = cb.Arrival
			}
			merged = append(merged, Cut{
				Root:     id,
				Leaves:   leaves,
				Sig:      sig(leaves),
				Arrival:  arrival + 1,
				AreaFlow: ca.AreaFlow + cb.AreaFlow + 1,
			})
		}
	}
	merged = dedup(merged)
	merged = filterDominated(merged)
	if cfg.Policy != nil && len(merged) > cfg.MaxCuts-1 && cfg.MaxCuts > 1 {
		sort.Slice(merged, func(i, j int) bool { return cfg.Policy.Less(merged[i], merged[j]) })
		if len(merged) > cfg.MaxCuts-1 {
			merged = merged[:cfg.MaxCuts-1]
		}
	}
	// Trivial cut is always present and always added last.
	return append(merged, trivialCut(id))
}

func dedup(cuts []Cut) []Cut {
	out := cuts[:0]
	seen := make(map[uint64]bool)
	for _, c := range cuts {
		key := c.Sig ^ uint64(len(c.Leaves))<<60
		if seen[key] {
			dup := false
			for _, o := range out {
				if o.Sig == c.Sig && equalLeaves(o.Leaves, c.Leaves) {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// filterDominated removes every cut that is a strict superset of another
// cut in the same set, keeping the enumeration k-feasible but minimal.
func filterDominated(cuts []Cut) []Cut {
	keep := make([]bool, len(cuts))
	for i := range cuts {
		keep[i] = true
	}
	for i := range cuts {
		if !keep[i] {
			continue
		}
		for j := range cuts {
			if i == j || !keep[j] {
				continue
			}
			if len(cuts[i].Leaves) == len(cuts[j].Leaves) {
				continue
			}
			if dominates(cuts[i], cuts[j]) {
				keep[j] = false
			}
		}
	}
	out := make([]Cut, 0, len(cuts))
	for i, c := range cuts {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}
