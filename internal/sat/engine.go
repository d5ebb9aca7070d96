package sat

import "context"

// Status is the externally visible outcome of a Solve call (§7). Unknown is
// only ever returned when the search was aborted by context cancellation —
// the engine itself is a complete decision procedure and never gives up on
// its own.
type Status int8

const (
	Unknown Status = iota
	Satisfiable
	Unsatisfiable
)

func (s Status) String() string {
	switch s {
	case Satisfiable:
		return "SAT"
	case Unsatisfiable:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Solver holds the clause database and all the mutable search state
// described in §3: the watch index, the DLIS table and its ordering heap,
// the trail, the propagation queue, and the satisfied-clause set. It
// implements the DPLL procedure of §4 end to end.
//
// A Solver is built once via AddVariable/AddClause and then driven to
// completion by a single Solve call; it is not designed for incremental
// reuse (§1, Non-goals) and is not safe for concurrent use (§5).
type Solver struct {
	clauses []*Clause

	assigns []LBool // indexed by Literal, size 2*NumVariables()

	watches *watchIndex
	dlis    *dlisOrder

	tr          trail
	propQueue   *Queue[Literal]
	queuedFlags []bool // indexed by Literal, lazily allocated

	satisfied    []bool
	numSatisfied int

	unsat bool

	// Search statistics, reported by the CLI (§6) but not part of the
	// normative SAT/UNSAT result.
	TotalDecisions  int64
	TotalBacktracks int64

	// model is populated by Solve on a Satisfiable result.
	model []bool
}

// Options configures a Solver's initial capacity. Unlike the reference
// engine's Options (clause/variable activity decay, phase saving, conflict
// budget — all specific to its CDCL search), nothing about this DPLL engine
// is tunable: the only thing worth telling the constructor up front is how
// big the instance is, so the clause/variable/watch slices can be sized once
// instead of regrown incrementally by AddVariable/AddClause.
type Options struct {
	// VariableCapacityHint and ClauseCapacityHint preallocate internal
	// storage for that many variables/clauses. Zero means "no hint" and is
	// always safe: every slice still grows on demand via append.
	VariableCapacityHint int
	ClauseCapacityHint   int
}

// DefaultOptions gives no capacity hints; every internal slice grows on
// demand.
var DefaultOptions = Options{}

// NewDefaultSolver returns a solver configured with DefaultOptions. This is
// equivalent to calling NewSolver with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NewSolver returns an empty, ready-to-populate Solver sized per opts.
func NewSolver(opts Options) *Solver {
	return &Solver{
		assigns:     make([]LBool, 0, 2*opts.VariableCapacityHint),
		queuedFlags: make([]bool, 0, 2*opts.VariableCapacityHint),
		clauses:     make([]*Clause, 0, opts.ClauseCapacityHint),
		satisfied:   make([]bool, 0, opts.ClauseCapacityHint),
		watches:     newWatchIndex(opts.VariableCapacityHint),
		dlis:        newDLISOrder(opts.VariableCapacityHint),
		propQueue:   NewQueue[Literal](128),
	}
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int {
	return len(s.assigns) / 2
}

// NumClauses returns the number of non-tautological clauses stored.
func (s *Solver) NumClauses() int {
	return len(s.clauses)
}

// AddVariable declares a new variable and returns its zero-based ID. The
// DIMACS adapter calls this once per variable named in the problem line
// (§6); callers that already work in the engine's zero-based IDs can call it
// directly.
func (s *Solver) AddVariable() int {
	v := s.NumVariables()
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.queuedFlags = append(s.queuedFlags, false, false)
	s.watches.addVar()
	s.dlis.addVar(0, 0)
	return v
}

// AddClause stores a clause built from lits (zero-based Literal values).
// Tautological clauses are silently discarded (§4.1); an explicitly empty
// clause marks the instance unsatisfiable. AddClause currently always returns
// nil — malformed input is the parser's concern (§7) — and the DIMACS
// adapter still checks the returned error.
func (s *Solver) AddClause(lits []Literal) error {
	c, ok := newClause(lits)
	if !ok {
		return nil // tautology, not a constraint
	}
	if len(c.terms) == 0 {
		s.unsat = true
		return nil
	}

	idx := len(s.clauses)
	s.clauses = append(s.clauses, c)
	s.satisfied = append(s.satisfied, false)

	v1, v2, hasV2 := c.watchedVars()
	s.watches.register(idx, v1, v2, hasV2)

	for _, l := range c.terms {
		s.dlis.bump(l, 1)
	}

	return nil
}

// LitValue returns the current truth value of l under the trail.
func (s *Solver) LitValue(l Literal) LBool {
	return s.assigns[l]
}

// VarValue returns the current truth value of variable v's positive literal.
func (s *Solver) VarValue(v int) LBool {
	return s.assigns[PositiveLiteral(v)]
}

func (s *Solver) isAssigned(v int) bool {
	return s.assigns[PositiveLiteral(v)] != Unknown
}

func (s *Solver) allSatisfied() bool {
	return s.numSatisfied == len(s.clauses)
}

// Solve runs the DPLL procedure to completion (§4.9) and returns the
// decision along with, on Satisfiable, the witnessing assignment via Model.
// ctx is checked once at the start of every decision level, i.e. on each
// entry into the recursive decision procedure (§4.9, §5); an earlier
// deadline or cancellation aborts the search and yields (Unknown, ctx.Err()).
func (s *Solver) Solve(ctx context.Context) (Status, error) {
	if s.unsat {
		return Unsatisfiable, nil
	}
	if len(s.clauses) == 0 {
		s.saveModel()
		return Satisfiable, nil
	}

	seed, ok := s.dlis.next(s.isAssigned)
	if !ok {
		// Not reached in practice: every stored clause has at least one
		// literal, so at least one variable is in the heap before the first
		// decision. Guarded defensively.
		return Satisfiable, nil
	}
	seed = seed.Opposite() // seed polarity is cosmetic, see §4.9

	result := s.decide(ctx, seed)

	switch result {
	case decisionCausesSat:
		s.saveModel()
		return Satisfiable, nil
	case decisionCausesConflict:
		return Unsatisfiable, nil
	default:
		return Unknown, ctx.Err()
	}
}

// Model returns the satisfying assignment found by the last successful
// Solve call, one bool per variable in declaration order. It panics if
// Solve has not returned Satisfiable.
func (s *Solver) Model() []bool {
	if s.model == nil {
		panic("sat: Model called without a satisfiable result")
	}
	return s.model
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for v := range model {
		model[v] = s.VarValue(v) == True
	}
	s.model = model
}
