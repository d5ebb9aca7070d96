package sat

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSolver_EmptyInstanceIsSatisfiable(t *testing.T) {
	s := NewSolver(DefaultOptions)
	status, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if status != Satisfiable {
		t.Fatalf("got %v, want Satisfiable", status)
	}
}

func TestSolver_EmptyClauseIsUnsatisfiable(t *testing.T) {
	s := NewSolver(DefaultOptions)
	s.AddVariable()
	if err := s.AddClause(nil); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	status, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if status != Unsatisfiable {
		t.Fatalf("got %v, want Unsatisfiable", status)
	}
}

func TestSolver_TautologyIsDiscarded(t *testing.T) {
	s := NewSolver(DefaultOptions)
	s.AddVariable()
	if err := s.AddClause([]Literal{PositiveLiteral(0), NegativeLiteral(0)}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if s.NumClauses() != 0 {
		t.Fatalf("got %d clauses, want 0 (tautology must be discarded)", s.NumClauses())
	}
}

func TestSolver_UnitPropagationConflict(t *testing.T) {
	s := NewSolver(DefaultOptions)
	s.AddVariable()
	mustAddClause(t, s, PositiveLiteral(0))
	mustAddClause(t, s, NegativeLiteral(0))

	status, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if status != Unsatisfiable {
		t.Fatalf("got %v, want Unsatisfiable", status)
	}
}

func TestSolver_SimpleSatisfiableInstance(t *testing.T) {
	s := NewSolver(DefaultOptions)
	s.AddVariable() // var 0
	s.AddVariable() // var 1

	mustAddClause(t, s, PositiveLiteral(0), PositiveLiteral(1))
	mustAddClause(t, s, NegativeLiteral(0), NegativeLiteral(1))

	status, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if status != Satisfiable {
		t.Fatalf("got %v, want Satisfiable", status)
	}

	model := s.Model()
	if len(model) != 2 {
		t.Fatalf("got model of length %d, want 2", len(model))
	}
	if model[0] == model[1] {
		t.Fatalf("model %v does not satisfy both clauses", model)
	}
}

func TestSolver_PigeonholeIsUnsatisfiable(t *testing.T) {
	// 3 pigeons, 2 holes: var (i*2+h) means pigeon i occupies hole h.
	s := NewSolver(DefaultOptions)
	for i := 0; i < 6; i++ {
		s.AddVariable()
	}

	mustAddClause(t, s, PositiveLiteral(0), PositiveLiteral(1))
	mustAddClause(t, s, PositiveLiteral(2), PositiveLiteral(3))
	mustAddClause(t, s, PositiveLiteral(4), PositiveLiteral(5))
	mustAddClause(t, s, NegativeLiteral(0), NegativeLiteral(2))
	mustAddClause(t, s, NegativeLiteral(0), NegativeLiteral(4))
	mustAddClause(t, s, NegativeLiteral(2), NegativeLiteral(4))
	mustAddClause(t, s, NegativeLiteral(1), NegativeLiteral(3))
	mustAddClause(t, s, NegativeLiteral(1), NegativeLiteral(5))
	mustAddClause(t, s, NegativeLiteral(3), NegativeLiteral(5))

	status, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if status != Unsatisfiable {
		t.Fatalf("got %v, want Unsatisfiable", status)
	}
}

func TestSolver_ContextCancellationAbortsSearch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond) // ensure the deadline has passed

	s := NewSolver(DefaultOptions)
	s.AddVariable()
	mustAddClause(t, s, PositiveLiteral(0))

	status, err := s.Solve(ctx)
	if status != Unknown {
		t.Fatalf("got %v, want Unknown", status)
	}
	if err == nil {
		t.Fatal("expected a context error")
	}
}

func TestSolver_ModelSatisfiesEveryClause(t *testing.T) {
	s := NewSolver(DefaultOptions)
	for i := 0; i < 4; i++ {
		s.AddVariable()
	}
	clauses := [][]Literal{
		{PositiveLiteral(0), PositiveLiteral(1), NegativeLiteral(2)},
		{NegativeLiteral(0), PositiveLiteral(2), PositiveLiteral(3)},
		{PositiveLiteral(1), NegativeLiteral(3)},
	}
	for _, c := range clauses {
		mustAddClause(t, s, c...)
	}

	status, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if status != Satisfiable {
		t.Fatalf("got %v, want Satisfiable", status)
	}

	model := s.Model()
	for _, c := range clauses {
		if !clauseSatisfied(c, model) {
			t.Errorf("model %v does not satisfy clause %v", model, c)
		}
	}
}

func clauseSatisfied(c []Literal, model []bool) bool {
	for _, l := range c {
		if model[l.VarID()] == l.IsPositive() {
			return true
		}
	}
	return false
}

func mustAddClause(t *testing.T, s *Solver, lits ...Literal) {
	t.Helper()
	if err := s.AddClause(lits); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
}

func TestSolver_StatusString(t *testing.T) {
	if diff := cmp.Diff("SAT", Satisfiable.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("UNSAT", Unsatisfiable.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("UNKNOWN", Unknown.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
