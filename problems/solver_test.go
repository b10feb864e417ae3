package problems_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/astar-go/problems"
	"github.com/dshills/astar-go/problems/cube"
	"github.com/dshills/astar-go/problems/tiles"
	"github.com/dshills/astar-go/search"
	"github.com/dshills/astar-go/search/store"
)

func TestSolver_Found(t *testing.T) {
	solver := problems.NewSolver[tiles.Board](tiles.New(tiles.Default(), tiles.Manhattan))

	outcome, err := solver.Solve(context.Background(), search.WithRunID("solver-found"))
	if err != nil {
		t.Fatalf("Solve() failed: %v", err)
	}

	if !outcome.Found || outcome.Edges() != 3 {
		t.Fatalf("expected a three-move solution, got found=%v edges=%d", outcome.Found, outcome.Edges())
	}
	if outcome.RunID != "solver-found" {
		t.Errorf("expected run ID to be passed through, got %q", outcome.RunID)
	}
	if outcome.Path[0] != tiles.Default().String() || outcome.Path[3] != tiles.Goal().String() {
		t.Errorf("unexpected path %v", outcome.Path)
	}
	if outcome.GoalMessage == "" {
		t.Error("expected the goal message to be set")
	}
	if len(outcome.Moves) != 3 || outcome.TotalCost != 3 {
		t.Errorf("unexpected moves %v cost %v", outcome.Moves, outcome.TotalCost)
	}
}

func TestSolver_NotFound(t *testing.T) {
	// Swapping two tiles gives an odd permutation, which is unreachable.
	board := tiles.Goal()
	board[1], board[2] = board[2], board[1]

	solver := problems.NewSolver[tiles.Board](tiles.New(board, tiles.Manhattan))
	outcome, err := solver.Solve(context.Background())
	if err != nil {
		t.Fatalf("exhaustion must not be an error, got %v", err)
	}
	if outcome.Found || outcome.Path != nil || outcome.GoalMessage != "" {
		t.Errorf("expected an empty outcome, got %+v", outcome)
	}
	// Half of the 9! permutations are reachable from any board.
	if outcome.Expanded != 181440 {
		t.Errorf("expected the whole reachable half expanded, got %d", outcome.Expanded)
	}
}

func TestSolver_Errors(t *testing.T) {
	solver := problems.NewSolver[cube.Cube](cube.New(cube.Solved().Turn(cube.F, true).Turn(cube.U, true)))

	if _, err := solver.Solve(context.Background(), search.WithMaxExpansions(-1)); err == nil {
		t.Error("expected an invalid option error")
	}

	outcome, err := solver.Solve(context.Background(), search.WithMaxExpansions(1))
	if !errors.Is(err, search.ErrMaxExpansionsExceeded) {
		t.Fatalf("expected ErrMaxExpansionsExceeded, got %v", err)
	}
	if outcome.Found || outcome.Expanded != 1 || outcome.Problem != "rubik2" {
		t.Errorf("unexpected outcome %+v", outcome)
	}
}

func TestOutcome_Report(t *testing.T) {
	solver := problems.NewSolver[tiles.Board](tiles.New(tiles.Default(), tiles.Hamming))
	outcome, err := solver.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve() failed: %v", err)
	}

	report := outcome.Report()
	if report.RunID == "" || report.RunID != outcome.RunID {
		t.Errorf("expected the generated run ID, got %q", report.RunID)
	}
	if report.Problem != "eight-puzzle-hamming" || report.Initial != tiles.Default().String() {
		t.Errorf("unexpected identity %q %q", report.Problem, report.Initial)
	}
	if !report.Found || len(report.Path) != 4 || len(report.Moves) != 3 {
		t.Errorf("unexpected path data %+v", report)
	}

	mem := store.NewMemStore()
	if err := mem.SaveReport(context.Background(), report); err != nil {
		t.Fatalf("SaveReport() failed: %v", err)
	}
	loaded, err := mem.LoadReport(context.Background(), outcome.RunID)
	if err != nil || loaded.TotalCost != 3 {
		t.Errorf("LoadReport() = %+v, %v", loaded, err)
	}
}
