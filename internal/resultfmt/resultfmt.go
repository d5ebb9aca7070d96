// Package resultfmt renders a Solve outcome as the normative RESULT/ASSIGNMENT
// lines described in §6, independent of how the CLI reports diagnostics.
package resultfmt

import (
	"fmt"
	"io"

	"github.com/satkit/dpll/internal/sat"
)

// Write prints the RESULT line and, for a Satisfiable outcome, the
// ASSIGNMENT line to w. Variables in the assignment are numbered 1..N in
// DIMACS order, each printed as var=1 or var=0; an Unsatisfiable or Unknown
// outcome prints only the RESULT line.
func Write(w io.Writer, status sat.Status, model []bool) error {
	if _, err := fmt.Fprintf(w, "RESULT: %s\n", status); err != nil {
		return err
	}
	if status != sat.Satisfiable {
		return nil
	}

	if _, err := fmt.Fprint(w, "ASSIGNMENT:"); err != nil {
		return err
	}
	for i, v := range model {
		bit := 0
		if v {
			bit = 1
		}
		if _, err := fmt.Fprintf(w, " %d=%d", i+1, bit); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
