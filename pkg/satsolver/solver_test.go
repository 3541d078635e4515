package satsolver

import "testing"

func TestSolveSatisfiable(t *testing.T) {
	s := New()
	a := s.NewVar()
	b := s.NewVar()
	s.AddClause(Pos(a), Pos(b))
	s.AddClause(Neg(a), Pos(b))

	if got := s.Solve(); got != Sat {
		t.Fatalf("expected Sat, got %v", got)
	}
	if !s.Value(Pos(b)) {
		t.Fatalf("expected b to be forced true")
	}
}

func TestSolveUnsatisfiable(t *testing.T) {
	s := New()
	a := s.NewVar()
	s.AddClause(Pos(a))
	s.AddClause(Neg(a))

	if got := s.Solve(); got != Unsat {
		t.Fatalf("expected Unsat, got %v", got)
	}
}

func TestTraceSolverFindsRefutation(t *testing.T) {
	tr := NewTrace()
	a := tr.NewVar()
	tr.AddClause(true, Pos(a))
	tr.AddClause(false, Neg(a))

	sat, _ := tr.Solve()
	if sat {
		t.Fatalf("expected unsatisfiable instance")
	}
}

func TestTraceSolverSatisfiable(t *testing.T) {
	tr := NewTrace()
	a := tr.NewVar()
	b := tr.NewVar()
	tr.AddClause(true, Pos(a), Pos(b))

	sat, _ := tr.Solve()
	if !sat {
		t.Fatalf("expected satisfiable instance")
	}
}
