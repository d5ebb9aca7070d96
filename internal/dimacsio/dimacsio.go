// Package dimacsio adapts the engine's zero-based Solver API to the DIMACS
// CNF file format via the rhartert/dimacs Builder interface (§6).
package dimacsio

import (
	"fmt"
	"io"

	"github.com/rhartert/dimacs"

	"github.com/satkit/dpll/internal/sat"
)

// Load reads a DIMACS CNF formula from r and builds it into a fresh Solver.
// Variables are declared 1..NumVars in file order, matching the DIMACS
// convention that variable i is encoded as the integer i; the engine's own
// zero-based variable i-1 is what AddVariable returns for declaration i.
func Load(r io.Reader) (*sat.Solver, error) {
	b := &builder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacsio: %w", err)
	}
	if b.err != nil {
		return nil, fmt.Errorf("dimacsio: %w", b.err)
	}
	if b.solver == nil {
		return nil, fmt.Errorf("dimacsio: missing problem line")
	}
	return b.solver, nil
}

// builder implements dimacs.Builder, translating 1-indexed DIMACS literals
// into the engine's zero-based Literal encoding as each line is parsed. The
// solver itself isn't built until Problem reports the instance size, so it
// can be sized up front via sat.Options instead of growing incrementally.
type builder struct {
	solver *sat.Solver
	err    error

	clauseBuf []sat.Literal
}

func (b *builder) Problem(nVars int, nClauses int) {
	b.solver = sat.NewSolver(sat.Options{
		VariableCapacityHint: nVars,
		ClauseCapacityHint:   nClauses,
	})
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
}

func (b *builder) Clause(tmpClause []int) {
	if b.err != nil {
		return
	}
	if b.solver == nil {
		b.err = fmt.Errorf("clause line before problem line")
		return
	}
	b.clauseBuf = b.clauseBuf[:0]
	for _, lit := range tmpClause {
		if lit == 0 {
			b.err = fmt.Errorf("unexpected literal 0 in clause")
			return
		}
		v := lit
		if v < 0 {
			v = -v
		}
		v-- // DIMACS variables are 1-indexed, the engine's are 0-indexed
		if v >= b.solver.NumVariables() {
			b.err = fmt.Errorf("literal %d refers to an undeclared variable", lit)
			return
		}
		if lit > 0 {
			b.clauseBuf = append(b.clauseBuf, sat.PositiveLiteral(v))
		} else {
			b.clauseBuf = append(b.clauseBuf, sat.NegativeLiteral(v))
		}
	}
	if err := b.solver.AddClause(b.clauseBuf); err != nil {
		b.err = err
	}
}

func (b *builder) Comment(line string) {}
