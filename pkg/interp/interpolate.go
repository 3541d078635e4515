package interp

import (
	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/satsolver"
)

// Interpolate builds a Craig interpolant from a refutation produced by a
// satsolver.TraceSolver run over two partitions (A tagged global, B
// tagged local), returning it as a literal already hash-consed into m
// (spec §4.8: "each combinator call goes through the structural-hashed
// `and` of C2, so the interpolant is returned as a literal into the
// shared AIG store"). McMillan's construction walks the resolution DAG
// from the input clauses up to the empty clause, computing a partial
// interpolant per node:
//
//   - a global (A-side) leaf clause contributes the disjunction of its
//     shared literals, each translated to its corresponding literal in m
//     via sharedLit (the projection of the A clause onto the shared
//     vocabulary; its A-local literals are dropped);
//   - a local (B-side) leaf clause contributes Const1;
//   - a resolution step on a pivot that is A-local combines its two
//     antecedents' partial interpolants with m.Or, otherwise with m.And.
//
// shared reports whether a CNF variable belongs to the shared (interface)
// vocabulary between the two partitions; sharedLit maps such a variable to
// the literal in m it was encoding (e.g. a register output the unroller
// introduced a CNF variable for).
func Interpolate(m *aig.Manager, t *satsolver.TraceSolver, refutation int, shared func(satsolver.Var) bool, sharedLit func(satsolver.Var) aig.Lit) aig.Lit {
	memo := make(map[int]aig.Lit)
	var visit func(id int) aig.Lit
	visit = func(id int) aig.Lit {
		if l, ok := memo[id]; ok {
			return l
		}
		ants := t.Antecedents(id)
		var l aig.Lit
		if len(ants) == 0 {
			l = leafInterpolant(m, t, id, shared, sharedLit)
		} else {
			l = visit(ants[0])
			for _, other := range ants[1:] {
				g := visit(other)
				if pivotIsGlobalOnly(t, id, other) {
					l = m.Or(l, g)
				} else {
					l = m.And(l, g)
				}
			}
		}
		memo[id] = l
		return l
	}
	return visit(refutation)
}

func leafInterpolant(m *aig.Manager, t *satsolver.TraceSolver, id int, shared func(satsolver.Var) bool, sharedLit func(satsolver.Var) aig.Lit) aig.Lit {
	if !t.IsGlobal(id) {
		return aig.Const1
	}
	l := aig.Const0
	for _, lit := range t.Clause(id) {
		if !shared(lit.Var()) {
			continue
		}
		al := sharedLit(lit.Var())
		if !lit.Sign() {
			al = al.Not()
		}
		l = m.Or(l, al)
	}
	return l
}

// pivotIsGlobalOnly approximates whether the variable resolved between
// clauses id and other belongs only to the A partition: if every
// antecedent feeding id (including id itself when it is an input clause)
// is tagged global, the pivot is treated as A-local. This is a
// simplification of the precise per-variable partitioning satInterP.c
// performs, adequate for the two-frame/clause miters pkg/interp builds.
func pivotIsGlobalOnly(t *satsolver.TraceSolver, id, other int) bool {
	ants := t.Antecedents(id)
	if len(ants) == 0 {
		return t.IsGlobal(id) && t.IsGlobal(other)
	}
	for _, a := range ants {
		if !t.IsGlobal(a) {
			return false
		}
	}
	return true
}
