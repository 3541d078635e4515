package aig

// Levels computes the logic level of every node: 0 for Const0/CI, and
// 1+max(level(f0),level(f1)) for And nodes. CO level mirrors its driver.
// This is a side table, not node-resident state.
func (m *Manager) Levels() []int32 {
	lv := make([]int32, len(m.nodes))
	for id, n := range m.nodes {
		switch n.Kind {
		case KindConst0, KindCI:
			lv[id] = 0
		case KindAnd:
			l0, l1 := lv[n.F0.Var()], lv[n.F1.Var()]
			if l1 > l0 {
				l0 = l1
			}
			lv[id] = l0 + 1
		case KindCO:
			lv[id] = lv[n.F0.Var()]
		}
	}
	return lv
}

// RefCounts computes, for every node, the number of fanin edges that
// target it from And nodes and COs. The LUT mapper keeps its own
// reference counts and does not call it.
func (m *Manager) RefCounts() []int32 {
	rc := make([]int32, len(m.nodes))
	for _, n := range m.nodes {
		switch n.Kind {
		case KindAnd:
			rc[n.F0.Var()]++
			rc[n.F1.Var()]++
		case KindCO:
			rc[n.F0.Var()]++
		}
	}
	return rc
}

// Gen is a per-consumer generation counter used in place of a shared
// traversal-id field on the node. Each consumer (simulator, cut manager, sweeper, ...) owns one
// Gen and calls Visit/Visited against its own counter array.
type Gen struct {
	cur   int32
	stamp []int32
}

// NewGen allocates a generation tracker sized for n nodes.
func NewGen(n int) *Gen { return &Gen{stamp: make([]int32, n)} }

// Reset starts a new traversal: all prior Visit marks become stale.
func (g *Gen) Reset() { g.cur++ }

// ensure grows the stamp array to cover id, used when a manager has grown
// since the Gen was created.
func (g *Gen) ensure(id int) {
	if id >= len(g.stamp) {
		grown := make([]int32, id+1)
		copy(grown, g.stamp)
		g.stamp = grown
	}
}

// Visit marks id as seen in the current traversal and reports whether it
// was already marked.
func (g *Gen) Visit(id ID) (alreadyVisited bool) {
	g.ensure(int(id))
	if g.stamp[id] == g.cur {
		return true
	}
	g.stamp[id] = g.cur
	return false
}

// Visited reports whether id was marked in the current traversal without
// marking it.
func (g *Gen) Visited(id ID) bool {
	if int(id) >= len(g.stamp) {
		return false
	}
	return g.stamp[id] == g.cur
}
