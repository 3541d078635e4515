// Package lutmap implements K-LUT technology mapping over an AIG (spec
// §4.5, C5): three passes over the cut set computed by pkg/cut — delay
// (flow), exact area (MFFC-aware), and edge count — each refining the
// per-node cut choice before the final mapping is read out into an
// aig.LutTable.
package lutmap

import (
	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/cut"
)

// Config bounds both cut enumeration and the mapper itself.
type Config struct {
	K       int
	MaxCuts int
}

// Mapper holds the per-node state threaded through the three passes.
type Mapper struct {
	cfg      Config
	m        *aig.Manager
	cuts     *cut.Store
	topo     []aig.ID // And-node ids in topological (array) order
	best     map[aig.ID]cut.Cut
	arrival  map[aig.ID]int32
	required map[aig.ID]int32
	refs     map[aig.ID]int32 // live references under the current mapping (C5 deref/ref bookkeeping)
	stats    Stats
}

// New prepares a Mapper by enumerating cuts for m; call Run to produce the
// final mapping.
func New(m *aig.Manager, cfg Config) *Mapper {
	cuts := cut.Enumerate(m, cut.Config{K: cfg.K, MaxCuts: cfg.MaxCuts, Policy: cut.DelayPolicy{}})
	var topo []aig.ID
	m.ForEachAnd(func(id aig.ID, f0, f1 aig.Lit) { topo = append(topo, id) })
	return &Mapper{
		cfg:      cfg,
		m:        m,
		cuts:     cuts,
		topo:     topo,
		best:     make(map[aig.ID]cut.Cut),
		arrival:  make(map[aig.ID]int32),
		required: make(map[aig.ID]int32),
	}
}

// Run executes the three mapping passes in order and installs the result
// on the manager as its LUT table side car, also returning it directly.
func (mp *Mapper) Run() *aig.LutTable {
	mp.passDelay()
	mp.computeRequired()
	mp.passArea()
	mp.passEdge()
	table := mp.readOut()
	mp.m.SetLutTable(table)
	mp.stats = computeStats(table, mp.arrival)
	return table
}

// Stats returns aggregate mapping statistics from the most recent Run call.
func (mp *Mapper) Stats() Stats { return mp.stats }

// passDelay picks, for every And node, the cut minimizing one-more-than
// the worst-case arrival time of its leaves.
func (mp *Mapper) passDelay() {
	mp.m.ForEachAnd(func(id aig.ID, f0, f1 aig.Lit) {
		var chosen cut.Cut
		var bestArrival int32 = -1
		mp.cuts.ForEachCut(id, func(c cut.Cut) bool {
			if len(c.Leaves) == 1 && c.Leaves[0] == id {
				return true // the trivial cut {id} cannot implement id itself
			}
			a := mp.cutArrival(c, id)
			if bestArrival < 0 || a < bestArrival {
				bestArrival = a
				chosen = c
			}
			return true
		})
		mp.best[id] = chosen
		mp.arrival[id] = bestArrival
	})
}

func (mp *Mapper) cutArrival(c cut.Cut, root aig.ID) int32 {
	var max int32 = -1
	for _, leaf := range c.Leaves {
		if leaf == root && len(c.Leaves) == 1 {
			continue // trivial cut of a CI-less root: no leaf delay below it
		}
		a := mp.leafArrival(leaf)
		if a > max {
			max = a
		}
	}
	return max + 1
}

func (mp *Mapper) leafArrival(id aig.ID) int32 {
	if mp.m.Kind(id) != aig.KindAnd {
		return 0
	}
	return mp.arrival[id]
}

// computeRequired propagates required times backward from the primary
// outputs using the delay-pass arrival times as the global delay target,
// so the later passes know how much slack a node's cut choice may spend.
func (mp *Mapper) computeRequired() {
	var globalArrival int32
	mp.m.ForEachCO(func(index int, driver aig.Lit) {
		a := mp.leafArrival(driver.Var())
		if a > globalArrival {
			globalArrival = a
		}
	})

	mp.m.ForEachCO(func(index int, driver aig.Lit) {
		mp.setRequired(driver.Var(), globalArrival)
	})

	for i := len(mp.topo) - 1; i >= 0; i-- {
		id := mp.topo[i]
		req, ok := mp.required[id]
		if !ok {
			continue
		}
		c := mp.best[id]
		for _, leaf := range c.Leaves {
			if leaf == id && len(c.Leaves) == 1 {
				continue
			}
			mp.setRequired(leaf, req-1)
		}
	}
}

func (mp *Mapper) setRequired(id aig.ID, req int32) {
	if mp.m.Kind(id) != aig.KindAnd {
		return
	}
	if cur, ok := mp.required[id]; !ok || req < cur {
		mp.required[id] = req
	}
}

// initRefs seeds the live-reference count of every And node from the
// currently chosen mapping, walking down from the primary outputs: the
// first time a node becomes referenced, its own chosen cut's leaves are
// referenced too, recursively, so refs[n] == 0 exactly for nodes outside
// every currently-active LUT's exclusive cone.
func (mp *Mapper) initRefs() {
	mp.refs = make(map[aig.ID]int32, len(mp.best))
	mp.m.ForEachCO(func(index int, driver aig.Lit) {
		id := driver.Var()
		if mp.m.Kind(id) == aig.KindAnd {
			mp.refNode(id)
		}
	})
}

func (mp *Mapper) refNode(id aig.ID) {
	if mp.refs[id] == 0 {
		mp.refCone(id)
	}
	mp.refs[id]++
}

func (mp *Mapper) derefNode(id aig.ID) {
	mp.refs[id]--
	if mp.refs[id] == 0 {
		mp.derefCone(id)
	}
}

func (mp *Mapper) refCone(id aig.ID) {
	c := mp.best[id]
	for _, leaf := range c.Leaves {
		if leaf == id && len(c.Leaves) == 1 {
			continue
		}
		if mp.m.Kind(leaf) == aig.KindAnd {
			mp.refNode(leaf)
		}
	}
}

func (mp *Mapper) derefCone(id aig.ID) {
	c := mp.best[id]
	for _, leaf := range c.Leaves {
		if leaf == id && len(c.Leaves) == 1 {
			continue
		}
		if mp.m.Kind(leaf) == aig.KindAnd {
			mp.derefNode(leaf)
		}
	}
}

// cutArea is the MFFC-aware exact-area cost of selecting cut c as id's
// mapping (spec §4.5 pass 2): one LUT for id itself, plus the recursively
// exclusive cost of every leaf not otherwise referenced by the current
// mapping (refs[leaf]==0) — shared logic already paid for elsewhere is
// not charged again.
func (mp *Mapper) cutArea(id aig.ID, c cut.Cut) float64 {
	cost := 1.0
	for _, leaf := range c.Leaves {
		if leaf == id && len(c.Leaves) == 1 {
			continue
		}
		if mp.m.Kind(leaf) != aig.KindAnd {
			continue
		}
		if mp.refs[leaf] == 0 {
			cost += mp.cutArea(leaf, mp.best[leaf])
		}
	}
	return cost
}

// cutEdges is cutArea's edge-count analogue (spec §4.5 pass 3): the
// exclusive cone's fanin-edge count instead of its LUT count.
func (mp *Mapper) cutEdges(id aig.ID, c cut.Cut) float64 {
	cost := 0.0
	leaves := 0
	for _, leaf := range c.Leaves {
		if leaf == id && len(c.Leaves) == 1 {
			continue
		}
		leaves++
		if mp.m.Kind(leaf) == aig.KindAnd && mp.refs[leaf] == 0 {
			cost += mp.cutEdges(leaf, mp.best[leaf])
		}
	}
	return cost + float64(leaves)
}

// passArea reselects each node's cut in reverse topological order using
// MFFC-aware exact area (spec §4.5 pass 2): each node's current cut is
// dereferenced before candidates are costed, so a candidate that reuses
// already-shared logic is credited for it, then the chosen cut is
// referenced back in before moving to the next (lower-id) node.
func (mp *Mapper) passArea() {
	mp.initRefs()
	mp.rerankExact(mp.cutArea)
}

// passEdge reselects each node's cut the same way, by edge count.
func (mp *Mapper) passEdge() {
	mp.rerankExact(mp.cutEdges)
}

func (mp *Mapper) rerankExact(cost func(id aig.ID, c cut.Cut) float64) {
	for i := len(mp.topo) - 1; i >= 0; i-- {
		id := mp.topo[i]
		if mp.refs[id] == 0 {
			continue // not part of the current mapping; nothing to recost
		}
		mp.derefCone(id)

		req, hasReq := mp.required[id]
		var chosen cut.Cut
		bestCost := -1.0
		mp.cuts.ForEachCut(id, func(c cut.Cut) bool {
			if len(c.Leaves) == 1 && c.Leaves[0] == id {
				return true // the trivial cut {id} cannot implement id itself
			}
			if hasReq && mp.cutArrival(c, id) > req {
				return true
			}
			cc := cost(id, c)
			if bestCost < 0 || cc < bestCost {
				bestCost = cc
				chosen = c
			}
			return true
		})
		if bestCost >= 0 {
			mp.best[id] = chosen
		}
		mp.refCone(id)
	}
}

// readOut walks from the primary outputs through the chosen cuts,
// collecting every node that ends up as a LUT root into a LutTable.
func (mp *Mapper) readOut() *aig.LutTable {
	table := &aig.LutTable{K: mp.cfg.K}
	visited := make(map[aig.ID]bool)
	var stack []aig.ID

	mp.m.ForEachCO(func(index int, driver aig.Lit) {
		id := driver.Var()
		if mp.m.Kind(id) == aig.KindAnd {
			stack = append(stack, id)
		}
	})

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true

		c, ok := mp.best[id]
		if !ok {
			continue
		}
		leaves := make([]aig.ID, 0, len(c.Leaves))
		for _, leaf := range c.Leaves {
			if leaf == id && len(c.Leaves) == 1 {
				continue
			}
			leaves = append(leaves, leaf)
			if mp.m.Kind(leaf) == aig.KindAnd && !visited[leaf] {
				stack = append(stack, leaf)
			}
		}
		table.Entries = append(table.Entries, aig.LutEntry{Fanins: leaves, Root: id})
	}
	return table
}
