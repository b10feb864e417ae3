package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/astar-go/problems"
	"github.com/dshills/astar-go/search"
	"github.com/dshills/astar-go/search/store"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSolve_Default(t *testing.T) {
	out, _, err := execute(t, "solve")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	for _, want := range []string{
		"The tiles are in order. Great job!",
		"Length of solution path: 3 edges",
		"Total cost: 3",
		"Move a tile",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSolve_NamedProblems(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"cube default", []string{"solve", "rubik2"}, "Length of solution path: 1 edges"},
		{"carbon default", []string{"solve", "carbon-footprint"}, "Length of solution path: 3 edges"},
		{"tiles literal", []string{"solve", "eight-puzzle-manhattan", "[[1,0,2],[3,4,5],[6,7,8]]"}, "Length of solution path: 1 edges"},
		{"carbon stuck", []string{"solve", "carbon-footprint", "[[320,1.5,5000],[320,1.5,5000]]"}, "No solution found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("solve failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestSolve_UnknownProblem(t *testing.T) {
	_, _, err := execute(t, "solve", "towers-of-hanoi")
	if !errors.Is(err, problems.ErrUnknownProblem) {
		t.Fatalf("expected ErrUnknownProblem, got %v", err)
	}
	if !strings.Contains(err.Error(), "rubik2") {
		t.Errorf("error should list the known problems: %v", err)
	}
}

func TestSolve_MalformedLiteralFallsBack(t *testing.T) {
	out, errOut, err := execute(t, "solve", "eight-puzzle-hamming", "[[1,2,3]]")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(errOut, "using the default initial state") {
		t.Errorf("expected a warning on stderr, got:\n%s", errOut)
	}
	if !strings.Contains(out, "Length of solution path: 3 edges") {
		t.Errorf("expected the default board to be solved:\n%s", out)
	}
}

func TestSolve_BudgetExceeded(t *testing.T) {
	out, _, err := execute(t, "solve", "eight-puzzle-ucs", "--max-expansions", "1")
	if !errors.Is(err, search.ErrMaxExpansionsExceeded) {
		t.Fatalf("expected ErrMaxExpansionsExceeded, got %v", err)
	}
	if !strings.Contains(out, "Search stopped after 1 expansions (budget exhausted)") {
		t.Errorf("expected the budget to be reported:\n%s", out)
	}
	if strings.Contains(out, "No solution found\n") {
		t.Errorf("a budget stop must not read as an exhausted search:\n%s", out)
	}
}

func TestSolve_Unbounded(t *testing.T) {
	path := writeConfig(t, "max_expansions: 1\n")

	out, _, err := execute(t, "solve", "--config", path, "--unbounded")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "Length of solution path: 3 edges") {
		t.Errorf("expected the search to ignore the configured budget:\n%s", out)
	}
}

func TestSolve_InvalidFlags(t *testing.T) {
	if _, _, err := execute(t, "solve", "--log-level", "loud"); err == nil {
		t.Error("expected an invalid log level to be rejected")
	}
	if _, _, err := execute(t, "solve", "--archive", "postgres:db"); err == nil {
		t.Error("expected an unsupported archive to be rejected")
	}
	if _, _, err := execute(t, "solve", "a", "b", "c"); err == nil {
		t.Error("expected too many arguments to be rejected")
	}
}

func TestSolve_JSON(t *testing.T) {
	out, _, err := execute(t, "solve", "--json")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	var report store.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, out)
	}
	if !report.Found || len(report.Moves) != 3 || report.Problem != problems.Default {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestSolve_Verbose(t *testing.T) {
	out, _, err := execute(t, "solve", "-v", "--progress-every", "2")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for _, want := range []string{"[search_start]", "[expand]", "[goal_found]", `"open":`} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}
}

func TestSolve_MetricsAndTrace(t *testing.T) {
	out, _, err := execute(t, "solve", "--metrics", "--trace")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for _, want := range []string{
		`astar_searches_total{outcome="found",problem="eight-puzzle-hamming"} 1`,
		"astar_expansions_total",
		`"Name": "goal_found"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestArchiveAndHistory(t *testing.T) {
	archive := "sqlite:" + filepath.Join(t.TempDir(), "reports.db")

	if _, _, err := execute(t, "solve", "rubik2", "--archive", archive); err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if _, _, err := execute(t, "solve", "carbon-footprint", "--archive", archive); err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	out, _, err := execute(t, "history", "--archive", archive)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "rubik2") || !strings.Contains(out, "carbon-footprint") {
		t.Errorf("history missing runs:\n%s", out)
	}
	if strings.Index(out, "carbon-footprint") > strings.Index(out, "rubik2") {
		t.Errorf("history should list the newest run first:\n%s", out)
	}

	out, _, err = execute(t, "history", "--archive", archive, "--problem", "rubik2", "--json")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	var reports []store.Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("history output is not JSON: %v", err)
	}
	if len(reports) != 1 || reports[0].Problem != "rubik2" {
		t.Errorf("unexpected filtered history %+v", reports)
	}
}

func TestHistory_NeedsArchive(t *testing.T) {
	if _, _, err := execute(t, "history"); err == nil {
		t.Error("expected history without an archive to fail")
	}
	_, _, err := execute(t, "history", "--archive", "memory")
	if err == nil || !strings.Contains(err.Error(), "persistent archive") {
		t.Errorf("expected the memory archive to be rejected, got %v", err)
	}
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, problems.Default+" (default)") {
		t.Errorf("list should mark the default problem:\n%s", out)
	}
	for _, name := range []string{"eight-puzzle-manhattan", "eight-puzzle-ucs", "rubik2", "carbon-footprint"} {
		if !strings.Contains(out, name) {
			t.Errorf("list missing %s:\n%s", name, out)
		}
	}
}
