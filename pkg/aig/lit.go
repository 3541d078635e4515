// Package aig implements the And-Inverter-Graph store: hash-consed two-input
// AND nodes with complemented-edge literals, a CI/CO frontier, and the
// structural invariants the rest of the core (simulation, cuts, mapping,
// sweeping, interpolation, the AIGER codec) all depend on.
package aig

import "fmt"

// Lit is an AIG literal: (nodeID << 1) | complement.
type Lit uint32

// Const0 is the constant-0 literal. Const1 is its complement.
const (
	Const0 Lit = 0
	Const1 Lit = 1
)

// NewLit builds the literal for node id v with the given complement bit.
func NewLit(v ID, compl bool) Lit {
	l := Lit(v) << 1
	if compl {
		l |= 1
	}
	return l
}

// ID is a node index into a Manager's node array.
type ID uint32

// Var returns the node id encoded by l.
func (l Lit) Var() ID { return ID(l >> 1) }

// IsCompl returns whether l carries the complement bit.
func (l Lit) IsCompl() bool { return l&1 != 0 }

// Not returns the literal with the complement bit flipped.
func (l Lit) Not() Lit { return l ^ 1 }

// Regular returns l with the complement bit cleared.
func (l Lit) Regular() Lit { return l &^ 1 }

// String renders a literal in "id" / "!id" form for diagnostics.
func (l Lit) String() string {
	if l.IsCompl() {
		return fmt.Sprintf("!%d", l.Var())
	}
	return fmt.Sprintf("%d", l.Var())
}

// isConst reports whether l refers to the constant-0 node (either polarity).
func (l Lit) isConst() bool { return l.Var() == 0 }
