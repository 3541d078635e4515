package sweep

import (
	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/satsolver"
)

// Encoder performs lazy Tseitin encoding of an AIG cone into CNF, one SAT
// variable per And/CI node, memoized so a shared miter query only pays for
// each node once.
type Encoder struct {
	m        *aig.Manager
	s        *satsolver.Solver
	varOf    map[aig.ID]satsolver.Var
	falseVar satsolver.Var
	hasFalse bool
}

// NewEncoder builds an Encoder writing clauses into s.
func NewEncoder(m *aig.Manager, s *satsolver.Solver) *Encoder {
	return &Encoder{m: m, s: s, varOf: make(map[aig.ID]satsolver.Var)}
}

// Lit translates an AIG literal into a SAT literal, encoding any
// not-yet-seen And node (and its whole fanin cone) along the way.
func (e *Encoder) Lit(l aig.Lit) satsolver.Lit {
	id := l.Var()
	if id == 0 {
		return e.falseLit(l.IsCompl())
	}
	switch e.m.Kind(id) {
	case aig.KindCI:
		v := e.varFor(id)
		return litFor(v, l.IsCompl())
	case aig.KindAnd:
		v := e.encodeAnd(id)
		return litFor(v, l.IsCompl())
	default:
		panic("satsolver encoding: unexpected fanin kind")
	}
}

func litFor(v satsolver.Var, compl bool) satsolver.Lit {
	if compl {
		return satsolver.Neg(v)
	}
	return satsolver.Pos(v)
}

func (e *Encoder) falseLit(compl bool) satsolver.Lit {
	if !e.hasFalse {
		e.falseVar = e.s.NewVar()
		e.s.AddClause(satsolver.Neg(e.falseVar))
		e.hasFalse = true
	}
	return litFor(e.falseVar, compl)
}

func (e *Encoder) varFor(id aig.ID) satsolver.Var {
	if v, ok := e.varOf[id]; ok {
		return v
	}
	v := e.s.NewVar()
	e.varOf[id] = v
	return v
}

// encodeAnd memoizes the Tseitin clauses for z <-> (a & b) where a, b are
// id's fanin literals, recursing into each fanin's own cone first.
func (e *Encoder) encodeAnd(id aig.ID) satsolver.Var {
	if v, ok := e.varOf[id]; ok {
		return v
	}
	f0, f1 := e.m.Fanins(id)
	a := e.Lit(f0)
	b := e.Lit(f1)

	z := e.s.NewVar()
	e.varOf[id] = z
	zl := satsolver.Pos(z)
	e.s.AddClause(zl.Not(), a)
	e.s.AddClause(zl.Not(), b)
	e.s.AddClause(zl, a.Not(), b.Not())
	return z
}

// CIValue returns id's value in the solver's most recent satisfying
// model, or false if id was never referenced by an encoded cone.
func (e *Encoder) CIValue(id aig.ID) bool {
	v, ok := e.varOf[id]
	if !ok {
		return false
	}
	return e.s.Value(satsolver.Pos(v))
}

// EncodeXor adds Tseitin clauses for a fresh variable z <-> (a XOR b) and
// returns it, used to build the miter literal for an equivalence query.
func EncodeXor(s *satsolver.Solver, a, b satsolver.Lit) satsolver.Var {
	z := s.NewVar()
	zl := satsolver.Pos(z)
	s.AddClause(zl.Not(), a, b)
	s.AddClause(zl.Not(), a.Not(), b.Not())
	s.AddClause(zl, a.Not(), b)
	s.AddClause(zl, a, b.Not())
	return z
}

// EncodeAnd adds Tseitin clauses for a fresh variable z <-> (a AND b) and
// returns it, used to conjoin a miter against the sweep's care literal.
func EncodeAnd(s *satsolver.Solver, a, b satsolver.Lit) satsolver.Var {
	z := s.NewVar()
	zl := satsolver.Pos(z)
	s.AddClause(zl.Not(), a)
	s.AddClause(zl.Not(), b)
	s.AddClause(zl, a.Not(), b.Not())
	return z
}

// EncodeCare encodes the single output of a care-set AIG into s, one time
// per solver, aliasing the care AIG's primary inputs onto the SAT
// variables mEnc already uses (or will use) for the swept manager's own
// primary inputs, matched up by input position. The returned literal can
// then be conjoined into every pair's miter (spec: "Build a miter
// n ⊕ r ∧ care"), so a single care encoding serves the whole sweep
// instead of one per pair.
func EncodeCare(s *satsolver.Solver, mEnc *Encoder, care *aig.Manager) satsolver.Lit {
	mCIs := mEnc.m.CIs()
	careCIs := care.CIs()
	ciIndex := make(map[aig.ID]int, len(careCIs))
	for i, c := range careCIs {
		ciIndex[c] = i
	}

	memo := make(map[aig.ID]satsolver.Var)
	var falseVar satsolver.Var
	hasFalse := false
	falseLit := func(compl bool) satsolver.Lit {
		if !hasFalse {
			falseVar = s.NewVar()
			s.AddClause(satsolver.Neg(falseVar))
			hasFalse = true
		}
		return litFor(falseVar, compl)
	}

	var lit func(l aig.Lit) satsolver.Lit
	var visit func(id aig.ID) satsolver.Var
	lit = func(l aig.Lit) satsolver.Lit {
		id := l.Var()
		if id == 0 {
			return falseLit(l.IsCompl())
		}
		return litFor(visit(id), l.IsCompl())
	}
	visit = func(id aig.ID) satsolver.Var {
		if v, ok := memo[id]; ok {
			return v
		}
		switch care.Kind(id) {
		case aig.KindCI:
			idx, ok := ciIndex[id]
			if !ok || idx >= len(mCIs) {
				panic("sweep: care set references an input outside the swept manager's primary inputs")
			}
			v := mEnc.varFor(mCIs[idx])
			memo[id] = v
			return v
		case aig.KindAnd:
			f0, f1 := care.Fanins(id)
			a := lit(f0)
			b := lit(f1)
			z := s.NewVar()
			memo[id] = z
			zl := satsolver.Pos(z)
			s.AddClause(zl.Not(), a)
			s.AddClause(zl.Not(), b)
			s.AddClause(zl, a.Not(), b.Not())
			return z
		default:
			panic("sweep: unexpected fanin kind in care set")
		}
	}

	var driver aig.Lit
	care.ForEachCO(func(index int, d aig.Lit) {
		if index == 0 {
			driver = d
		}
	})
	return lit(driver)
}
