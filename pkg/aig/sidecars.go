package aig

// LutEntry is one row of a LUT mapping table: the leaf node ids feeding a
// K-input lookup table and the root node id it implements.
type LutEntry struct {
	Fanins []ID
	Root   ID
}

// LutTable is the side-car populated by the LUT mapper (C5) or read back
// from an AIGER 'm' extension section.
type LutTable struct {
	K       int
	Entries []LutEntry
}

// SetLutTable installs the mapper's result as a side car on m.
func (m *Manager) SetLutTable(t *LutTable) { m.lutMap = t }

// LutTable returns the current LUT mapping side car, or nil if none has
// been computed.
func (m *Manager) LutTable() *LutTable { return m.lutMap }

// EnsureEquivTables grows (or allocates) the equivalence-class side
// tables to cover the current node count. Values default to "no
// representative" (id 0, which is never a valid And/CI id other than
// Const0 itself, so 0 doubles as the absent marker).
func (m *Manager) EnsureEquivTables() {
	n := len(m.nodes)
	if len(m.equivRepr) >= n {
		return
	}
	repr := make([]ID, n)
	proved := make([]bool, n)
	copy(repr, m.equivRepr)
	copy(proved, m.equivProved)
	m.equivRepr = repr
	m.equivProved = proved
}

// HasEquiv reports whether any equivalence-class representative has been
// recorded on m, i.e. whether EnsureEquivTables/SetEquivRepr has ever run.
// Used by the codec writer to decide whether an 'e' extension section is
// worth emitting.
func (m *Manager) HasEquiv() bool { return len(m.equivRepr) > 0 }

// EquivRepr returns the equivalence representative of id, or id itself if
// none has been recorded.
func (m *Manager) EquivRepr(id ID) ID {
	if int(id) >= len(m.equivRepr) || m.equivRepr[id] == 0 {
		return id
	}
	return m.equivRepr[id]
}

// SetEquivRepr records that id is equivalent to repr, with proved
// indicating the merge came from an UNSAT SAT-sweep query (as opposed to
// simulation-only, not-yet-proved classes).
func (m *Manager) SetEquivRepr(id, repr ID, proved bool) {
	m.EnsureEquivTables()
	m.equivRepr[id] = repr
	m.equivProved[id] = proved
}

// EquivProved reports whether id's equivalence-class merge was proved by
// the SAT-sweeper, as opposed to merely conjectured by simulation.
func (m *Manager) EquivProved(id ID) bool {
	if int(id) >= len(m.equivProved) {
		return false
	}
	return m.equivProved[id]
}

// SetFlopClasses installs the 'f' extension section's per-register class
// ids (one per register, i.e. length RegisterCount()).
func (m *Manager) SetFlopClasses(classes []int32) { m.flopClass = classes }

// FlopClasses returns the installed flop-class ids, or nil.
func (m *Manager) FlopClasses() []int32 { return m.flopClass }

// SetPlacement installs the 'p' extension section's per-object coordinates.
func (m *Manager) SetPlacement(p []Placement) { m.placement = p }

// Placement returns the installed placement side car, or nil.
func (m *Manager) Placement() []Placement { return m.placement }

// SetSwitching installs the 's' extension section's per-object activity.
func (m *Manager) SetSwitching(s []uint8) { m.switching = s }

// Switching returns the installed switching-activity side car, or nil.
func (m *Manager) Switching() []uint8 { return m.switching }

// SetConstraints installs the 'c' extension section's constraint count.
func (m *Manager) SetConstraints(n int) { m.constraints = n }

// Constraints returns the installed constraint count.
func (m *Manager) Constraints() int { return m.constraints }

// SetModelName installs the 'n' extension section's model name.
func (m *Manager) SetModelName(name string) { m.modelName = name }

// ModelName returns the installed model name, or "".
func (m *Manager) ModelName() string { return m.modelName }
