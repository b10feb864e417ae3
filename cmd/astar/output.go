package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/dshills/astar-go/problems"
	"github.com/dshills/astar-go/search/store"
)

// printOutcome writes the result of a run. budgetExceeded marks a run that
// stopped at the expansion budget, which is not the same as exhausting the
// state space.
func printOutcome(w io.Writer, outcome problems.Outcome, jsonMode, budgetExceeded bool) error {
	if jsonMode {
		return writeJSON(w, outcome.Report())
	}

	if budgetExceeded {
		fmt.Fprintf(w, "Search stopped after %d expansions (budget exhausted); no solution found within budget\n", outcome.Expanded)
		fmt.Fprintf(w, "Max open: %d\n", outcome.MaxOpen)
		return nil
	}

	if !outcome.Found {
		fmt.Fprintln(w, "No solution found")
		fmt.Fprintf(w, "Expanded: %d\n", outcome.Expanded)
		fmt.Fprintf(w, "Max open: %d\n", outcome.MaxOpen)
		return nil
	}

	fmt.Fprintln(w, outcome.GoalMessage)
	fmt.Fprintln(w, "Solution path:")
	for i, state := range outcome.Path {
		if i == 0 {
			fmt.Fprintf(w, "  %s\n", state)
			continue
		}
		fmt.Fprintf(w, "  %s -> %s\n", outcome.Moves[i-1], state)
	}
	fmt.Fprintf(w, "Length of solution path: %d edges\n", outcome.Edges())
	fmt.Fprintf(w, "Total cost: %g\n", outcome.TotalCost)
	fmt.Fprintf(w, "Expanded: %d\n", outcome.Expanded)
	fmt.Fprintf(w, "Max open: %d\n", outcome.MaxOpen)
	if outcome.Reopened > 0 {
		fmt.Fprintf(w, "Reopened: %d\n", outcome.Reopened)
	}
	fmt.Fprintf(w, "Time: %s\n", outcome.Duration.Round(time.Microsecond))
	return nil
}

func printProblems(w io.Writer, entries []problems.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		marker := ""
		if e.Name == problems.Default {
			marker = " (default)"
		}
		fmt.Fprintf(tw, "%s%s\t%s\n", e.Name, marker, e.Description)
	}
	return tw.Flush()
}

func printHistory(w io.Writer, reports []store.Report, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, reports)
	}
	if len(reports) == 0 {
		fmt.Fprintln(w, "No archived reports")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tPROBLEM\tFOUND\tEDGES\tCOST\tEXPANDED\tRUN ID")
	for _, r := range reports {
		edges := 0
		if len(r.Path) > 0 {
			edges = len(r.Path) - 1
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%g\t%d\t%s\n",
			r.CreatedAt.Local().Format(time.DateTime), r.Problem, r.Found, edges, r.TotalCost, r.Expanded, r.RunID)
	}
	return tw.Flush()
}

func printMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
