package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/satkit/dpll/internal/dimacsio"
	"github.com/satkit/dpll/internal/resultfmt"
	"github.com/satkit/dpll/internal/sat"
)

var (
	flagCPUProfile string
	flagMemProfile string
	flagTimeout    time.Duration
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dpll [instance.cnf]",
		Short: "dpll solves a DIMACS CNF instance using DPLL search with two-watched-literal BCP and DLIS branching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}

	cmd.Flags().StringVar(&flagCPUProfile, "cpuprofile", "", "write CPU profile to file")
	cmd.Flags().StringVar(&flagMemProfile, "memprofile", "", "write heap profile to file")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "abort the search after this long (0 = no timeout)")

	return cmd
}

func run(instanceFile string) error {
	if flagCPUProfile != "" {
		f, err := os.Create(flagCPUProfile)
		if err != nil {
			return fmt.Errorf("could not create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	f, err := os.Open(instanceFile)
	if err != nil {
		return fmt.Errorf("could not open instance: %w", err)
	}
	defer f.Close()

	s, err := dimacsio.Load(f)
	if err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumClauses())

	ctx := context.Background()
	var cancel context.CancelFunc
	if flagTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	t := time.Now()
	status, solveErr := s.Solve(ctx)
	elapsed := time.Since(t)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c decisions:  %d (%.2f /sec)\n", s.TotalDecisions, float64(s.TotalDecisions)/elapsed.Seconds())
	fmt.Printf("c backtracks: %d\n", s.TotalBacktracks)
	fmt.Printf("c status:     %s\n", status.String())

	if solveErr != nil {
		return fmt.Errorf("search aborted: %w", solveErr)
	}

	var model []bool
	if status == sat.Satisfiable {
		model = s.Model()
	}
	if err := resultfmt.Write(os.Stdout, status, model); err != nil {
		return fmt.Errorf("could not write result: %w", err)
	}

	if flagMemProfile != "" {
		f, err := os.Create(flagMemProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
