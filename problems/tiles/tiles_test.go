package tiles

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/astar-go/search"
)

// bfsDistance returns the optimal number of moves from b to the goal.
func bfsDistance(t *testing.T, b Board) int {
	t.Helper()

	ops := Operators()
	dist := map[Board]int{b: 0}
	queue := []Board{b}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == Goal() {
			return dist[current]
		}
		for _, op := range ops {
			if !op.Applicable(current) {
				continue
			}
			next := op.Transition(current)
			if _, seen := dist[next]; !seen {
				dist[next] = dist[current] + 1
				queue = append(queue, next)
			}
		}
	}
	t.Fatalf("goal unreachable from %v", b)
	return -1
}

// scramble applies the named moves (N, S, W, E) to the goal board.
func scramble(t *testing.T, moves string) Board {
	t.Helper()

	b := Goal()
	for _, m := range moves {
		var d *direction
		for i := range directions {
			if directions[i].name == string(m) {
				d = &directions[i]
			}
		}
		if d == nil || !d.applicable(b) {
			t.Fatalf("move %c not applicable to %v", m, b)
		}
		b = d.apply(b)
	}
	return b
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    Board
		wantErr bool
	}{
		{"default literal", "[[1,4,2],[3,7,5],[6,0,8]]", Default(), false},
		{"whitespace padded", " [[0, 1, 2], [3, 4, 5], [6, 7, 8]] ", Goal(), false},
		{"not json", "tiles please", Board{}, true},
		{"too few rows", "[[0,1,2],[3,4,5]]", Board{}, true},
		{"short row", "[[0,1],[2,3,4],[5,6,7]]", Board{}, true},
		{"duplicate tile", "[[0,1,1],[3,4,5],[6,7,8]]", Board{}, true},
		{"out of range", "[[0,1,2],[3,4,5],[6,7,9]]", Board{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.literal)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBoard) {
					t.Errorf("expected ErrInvalidBoard, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoard_StringRoundTrip(t *testing.T) {
	b := Default()
	if b.String() != "[[1,4,2],[3,7,5],[6,0,8]]" {
		t.Errorf("unexpected String %q", b.String())
	}
	parsed, err := Parse(b.String())
	if err != nil || parsed != b {
		t.Errorf("String output must parse back, got %v, %v", parsed, err)
	}
}

func TestOperators(t *testing.T) {
	// void in the centre: every move applies
	center := Board{1, 2, 3, 4, 0, 5, 6, 7, 8}
	want := map[string]Board{
		"Move a tile N into the void": {1, 2, 3, 4, 7, 5, 6, 0, 8},
		"Move a tile S into the void": {1, 0, 3, 4, 2, 5, 6, 7, 8},
		"Move a tile W into the void": {1, 2, 3, 4, 5, 0, 6, 7, 8},
		"Move a tile E into the void": {1, 2, 3, 0, 4, 5, 6, 7, 8},
	}
	for _, op := range Operators() {
		if !op.Applicable(center) {
			t.Errorf("%s should apply with a centred void", op.Name)
			continue
		}
		if got := op.Transition(center); got != want[op.Name] {
			t.Errorf("%s: got %v, want %v", op.Name, got, want[op.Name])
		}
	}

	// void in the top-left corner: only N and W apply
	var applicable []string
	for _, op := range Operators() {
		if op.Applicable(Goal()) {
			applicable = append(applicable, op.Name)
		}
	}
	if len(applicable) != 2 || applicable[0] != "Move a tile N into the void" || applicable[1] != "Move a tile W into the void" {
		t.Errorf("unexpected applicable moves from the goal: %v", applicable)
	}

	if center != (Board{1, 2, 3, 4, 0, 5, 6, 7, 8}) {
		t.Error("transitions must not mutate their input")
	}
}

func TestHeuristics(t *testing.T) {
	tests := []struct {
		name      string
		board     Board
		hamming   float64
		manhattan float64
	}{
		{"goal", Goal(), 0, 0},
		{"default", Default(), 3, 3},
		{"reversed", Board{8, 7, 6, 5, 4, 3, 2, 1, 0}, 7, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hamming.Estimate(tt.board); got != tt.hamming {
				t.Errorf("Hamming = %v, want %v", got, tt.hamming)
			}
			if got := Manhattan.Estimate(tt.board); got != tt.manhattan {
				t.Errorf("Manhattan = %v, want %v", got, tt.manhattan)
			}
			if got := None.Estimate(tt.board); got != 0 {
				t.Errorf("None = %v, want 0", got)
			}
		})
	}
}

func TestSolvable(t *testing.T) {
	if !Default().Solvable() || !Goal().Solvable() {
		t.Error("default and goal boards must be solvable")
	}
	swapped := Goal()
	swapped[1], swapped[2] = swapped[2], swapped[1]
	if swapped.Solvable() {
		t.Error("a single transposition must be unsolvable")
	}
}

func TestSearch_MatchesBFSReference(t *testing.T) {
	scrambles := []string{
		"",
		"NWSE",
		"NNWWSE",
		"NWNWSSEENW",
		"WWNNESWNESSWNN",
		"NNWSWNEESWWNEESSWWN",
	}

	for _, moves := range scrambles {
		b := scramble(t, moves)
		want := bfsDistance(t, b)

		for _, h := range []Heuristic{Hamming, Manhattan, None} {
			t.Run(moves+"/"+h.String(), func(t *testing.T) {
				engine, err := search.New[Board](New(b, h), search.WithInvariantChecks(true))
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				result, err := engine.Search(context.Background())
				if err != nil {
					t.Fatalf("Search failed: %v", err)
				}
				if !result.Found {
					t.Fatal("expected a solution")
				}
				if result.Edges() != want || result.TotalCost != float64(want) {
					t.Errorf("found %d edges (cost %v), BFS optimum is %d",
						result.Edges(), result.TotalCost, want)
				}
				if result.Path[len(result.Path)-1] != Goal() {
					t.Error("path must end at the goal")
				}
			})
		}
	}
}

func TestSearch_DefaultBoard(t *testing.T) {
	engine, _ := search.New[Board](New(Default(), Hamming))
	result, err := engine.Search(context.Background())
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	wantMoves := []string{
		"Move a tile S into the void",
		"Move a tile S into the void",
		"Move a tile E into the void",
	}
	if len(result.Moves) != len(wantMoves) {
		t.Fatalf("expected moves %v, got %v", wantMoves, result.Moves)
	}
	for i := range wantMoves {
		if result.Moves[i] != wantMoves[i] {
			t.Errorf("move %d: got %q, want %q", i, result.Moves[i], wantMoves[i])
		}
	}
}

func TestSearch_HeuristicsExpandNoMoreThanUCS(t *testing.T) {
	b := scramble(t, "NNWSWNEESWWNEESSWWN")
	ctx := context.Background()

	counts := make(map[Heuristic]int)
	for _, h := range []Heuristic{None, Hamming, Manhattan} {
		engine, _ := search.New[Board](New(b, h))
		result, err := engine.Search(ctx)
		if err != nil {
			t.Fatalf("%s: %v", h, err)
		}
		counts[h] = result.Expanded
	}

	for _, h := range []Heuristic{Hamming, Manhattan} {
		if counts[h] > counts[None] {
			t.Errorf("%s expanded %d states, UCS only %d", h, counts[h], counts[None])
		}
	}
}

func TestPuzzle_Names(t *testing.T) {
	for h, want := range map[Heuristic]string{
		Hamming:   "eight-puzzle-hamming",
		Manhattan: "eight-puzzle-manhattan",
		None:      "eight-puzzle-ucs",
	} {
		if got := New(Default(), h).Name(); got != want {
			t.Errorf("Name() = %q, want %q", got, want)
		}
	}
}
