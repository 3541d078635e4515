package aig

import "fmt"

// InvariantViolation reports a programming-bug-grade invariant failure:
// a fanin that is not strictly smaller than its user, a literal from a
// foreign manager, or a malformed request to the unique table. Per spec
// §7 these are fatal, not recoverable outcomes, so the constructors below
// panic with one instead of returning an error.
type InvariantViolation struct {
	Op  string
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("aig: invariant violation in %s: %s", e.Op, e.Msg)
}

func panicInvariant(op, msg string, args ...any) {
	panic(&InvariantViolation{Op: op, Msg: fmt.Sprintf(msg, args...)})
}

// Manager owns the append-only node array, the CI/CO frontier, and the
// structural-hashing unique table for one AIG instance. All mutation goes
// through createCI/appendCO/and; nothing is ever freed individually —
// compaction happens only by cloning into a fresh Manager (see Clone).
//
// A Manager is "frozen" by convention once a caller stops calling the
// mutators; freezing is an observation, not a distinct type.
type Manager struct {
	nodes []node

	cis []ID // CI node ids, insertion order
	cos []ID // CO node ids, insertion order

	nRegs int // trailing CIs/COs that are register outputs/inputs

	uniq map[uint64]ID // (f0,f1) -> And node id

	// Optional side cars, present only after the corresponding codec
	// section or pass has populated them. nil means "absent", matching
	// the outcome-based style used elsewhere instead of sentinel flags.
	equivRepr   []ID   // e: representative id per node, or 0 if none
	equivProved []bool // e: whether the merge into equivRepr was SAT-proved
	flopClass   []int32
	lutMap      *LutTable
	placement   []Placement
	switching   []uint8
	constraints int
	modelName   string
}

// Placement is the per-object (x,y) side-car populated by the 'p' AIGER
// extension section. Int16 coordinates keep the on-disk record at 4 bytes
// per object, matching the section's declared "4*nObj bytes" payload.
type Placement struct{ X, Y int16 }

// New creates an empty manager containing only the constant-0 node.
func New() *Manager {
	m := &Manager{
		nodes: make([]node, 1, 64),
		uniq:  make(map[uint64]ID, 64),
	}
	m.nodes[0] = node{Kind: KindConst0}
	return m
}

// NodeCount returns the number of nodes, including the constant node.
func (m *Manager) NodeCount() int { return len(m.nodes) }

// NumCI returns the number of combinational inputs (PIs + register outputs).
func (m *Manager) NumCI() int { return len(m.cis) }

// NumCO returns the number of combinational outputs (POs + register inputs).
func (m *Manager) NumCO() int { return len(m.cos) }

// NumAnd returns the number of And nodes.
func (m *Manager) NumAnd() int {
	n := 0
	for _, nd := range m.nodes {
		if nd.Kind == KindAnd {
			n++
		}
	}
	return n
}

// RegisterCount returns R, the number of trailing CIs/COs paired as
// register outputs/inputs.
func (m *Manager) RegisterCount() int { return m.nRegs }

// SetRegisterCount sets R. The last R entries of the CI list become
// register outputs and the last R entries of the CO list become register
// inputs, paired in order.
func (m *Manager) SetRegisterCount(r int) {
	if r < 0 || r > len(m.cis) || r > len(m.cos) {
		panicInvariant("SetRegisterCount", "R=%d exceeds CI/CO counts (%d/%d)", r, len(m.cis), len(m.cos))
	}
	m.nRegs = r
}

// Kind returns the variant of node id.
func (m *Manager) Kind(id ID) Kind { return m.nodes[id].Kind }

// Fanins returns the (possibly meaningless for CI/Const0) fanin literals
// of a node: (F0,F1) for And, (driver,0) for CO.
func (m *Manager) Fanins(id ID) (Lit, Lit) {
	n := m.nodes[id]
	return n.F0, n.F1
}

func (m *Manager) checkLit(op string, l Lit) {
	if int(l.Var()) >= len(m.nodes) {
		panicInvariant(op, "literal %s refers to node outside manager (size %d)", l, len(m.nodes))
	}
}

// CreateCI appends a new combinational input and returns its literal
// (always even/uncomplemented).
func (m *Manager) CreateCI() Lit {
	id := ID(len(m.nodes))
	m.nodes = append(m.nodes, node{Kind: KindCI})
	m.cis = append(m.cis, id)
	return NewLit(id, false)
}

// AppendCO registers a combinational output driven by lit and returns its
// index in CO order.
func (m *Manager) AppendCO(lit Lit) int {
	m.checkLit("AppendCO", lit)
	id := ID(len(m.nodes))
	m.nodes = append(m.nodes, node{Kind: KindCO, F0: lit})
	m.cos = append(m.cos, id)
	return len(m.cos) - 1
}

// COFanin returns the driver literal of CO index i.
func (m *Manager) COFanin(i int) Lit { return m.nodes[m.cos[i]].F0 }

// SetCOFanin rewires CO index i to a new driver literal. Neither the
// sweeper nor the codec calls it: the codec reader builds every And node
// before appending the COs.
func (m *Manager) SetCOFanin(i int, lit Lit) {
	m.checkLit("SetCOFanin", lit)
	m.nodes[m.cos[i]].F0 = lit
}

// CIs returns the CI node ids in insertion order.
func (m *Manager) CIs() []ID { return m.cis }

// COs returns the CO node ids in insertion order.
func (m *Manager) COs() []ID { return m.cos }

func pairKey(f0, f1 Lit) uint64 { return uint64(f0)<<32 | uint64(f1) }

// And performs hash-consed conjunction. It applies the constant-folding
// rewrite table, canonicalizes f0<f1, and either returns the existing
// And-node literal or creates a new one.
func (m *Manager) And(f0, f1 Lit) Lit {
	m.checkLit("And", f0)
	m.checkLit("And", f1)

	// (Const0,*) -> Const0
	if f0 == Const0 || f1 == Const0 {
		return Const0
	}
	// (Const1,f) -> f
	if f0 == Const1 {
		return f1
	}
	if f1 == Const1 {
		return f0
	}
	// (f,f) -> f
	if f0 == f1 {
		return f0
	}
	// (f,!f) -> Const0
	if f0.Regular() == f1.Regular() {
		return Const0
	}

	if f0 > f1 {
		f0, f1 = f1, f0
	}

	key := pairKey(f0, f1)
	if id, ok := m.uniq[key]; ok {
		return NewLit(id, false)
	}

	if f0.Var() >= ID(len(m.nodes)) || f1.Var() >= ID(len(m.nodes)) {
		panicInvariant("And", "fanin refers to a node id beyond the current array")
	}

	id := ID(len(m.nodes))
	m.nodes = append(m.nodes, node{Kind: KindAnd, F0: f0, F1: f1})
	m.uniq[key] = id
	return NewLit(id, false)
}

// Or builds a OR b = !(!a AND !b).
func (m *Manager) Or(a, b Lit) Lit { return m.And(a.Not(), b.Not()).Not() }

// Xor builds a XOR b from two ANDs and an OR, in the canonical
// De Morgan expansion: (a AND !b) OR (!a AND b).
func (m *Manager) Xor(a, b Lit) Lit {
	return m.Or(m.And(a, b.Not()), m.And(a.Not(), b))
}

// Mux builds ITE(sel, a, b) = (sel AND a) OR (!sel AND b).
func (m *Manager) Mux(sel, a, b Lit) Lit {
	return m.Or(m.And(sel, a), m.And(sel.Not(), b))
}

// ForEachCI calls fn with each CI literal in insertion order.
func (m *Manager) ForEachCI(fn func(lit Lit)) {
	for _, id := range m.cis {
		fn(NewLit(id, false))
	}
}

// ForEachCO calls fn with each CO index and driver literal in insertion order.
func (m *Manager) ForEachCO(fn func(index int, driver Lit)) {
	for i, id := range m.cos {
		fn(i, m.nodes[id].F0)
	}
}

// ForEachAnd calls fn with each And node's id and fanins, in topological
// (array) order.
func (m *Manager) ForEachAnd(fn func(id ID, f0, f1 Lit)) {
	for id, n := range m.nodes {
		if n.Kind == KindAnd {
			fn(ID(id), n.F0, n.F1)
		}
	}
}

// IsNormalized reports whether CIs occupy ids 1..nCI, Ands occupy
// nCI+1..nCI+nAnd, and COs are the trailing nCO nodes.
func (m *Manager) IsNormalized() bool {
	nCI := len(m.cis)
	for i, id := range m.cis {
		if int(id) != i+1 {
			return false
		}
	}
	andStart := nCI + 1
	nAnd := 0
	for id := andStart; id < len(m.nodes); id++ {
		if m.nodes[id].Kind == KindAnd {
			nAnd++
		} else {
			break
		}
	}
	for i, id := range m.cos {
		if int(id) != andStart+nAnd+i {
			return false
		}
	}
	return nCI+nAnd+len(m.cos)+1 == len(m.nodes)
}
