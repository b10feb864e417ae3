package tiles

import "github.com/dshills/astar-go/search"

// Heuristic selects the remaining-distance estimate.
type Heuristic int

const (
	// None is the zero heuristic (uniform-cost search).
	None Heuristic = iota
	// Hamming counts misplaced tiles, void excluded.
	Hamming
	// Manhattan sums each tile's row and column distance from its goal cell.
	Manhattan
)

// String returns the heuristic's short name.
func (h Heuristic) String() string {
	switch h {
	case Hamming:
		return "hamming"
	case Manhattan:
		return "manhattan"
	default:
		return "ucs"
	}
}

// Estimate returns the heuristic value of b. Both Hamming and Manhattan are
// admissible for unit-cost moves.
func (h Heuristic) Estimate(b Board) float64 {
	switch h {
	case Hamming:
		misplaced := 0
		for i, tile := range b {
			if tile != 0 && int(tile) != i {
				misplaced++
			}
		}
		return float64(misplaced)
	case Manhattan:
		distance := 0
		for i, tile := range b {
			if tile == 0 {
				continue
			}
			distance += abs(i/Size-int(tile)/Size) + abs(i%Size-int(tile)%Size)
		}
		return float64(distance)
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Puzzle is the eight puzzle problem definition.
type Puzzle struct {
	initial   Board
	heuristic Heuristic
	ops       []search.Operator[Board]
}

// New creates a puzzle starting from initial and guided by heuristic.
func New(initial Board, heuristic Heuristic) *Puzzle {
	return &Puzzle{
		initial:   initial,
		heuristic: heuristic,
		ops:       Operators(),
	}
}

// Name implements search.Problem, e.g. "eight-puzzle-manhattan".
func (p *Puzzle) Name() string { return "eight-puzzle-" + p.heuristic.String() }

// InitialState implements search.Problem.
func (p *Puzzle) InitialState() Board { return p.initial }

// Operators implements search.Problem.
func (p *Puzzle) Operators() []search.Operator[Board] { return p.ops }

// GoalTest implements search.Problem.
func (p *Puzzle) GoalTest(b Board) bool { return b == Goal() }

// GoalMessage implements search.Problem.
func (p *Puzzle) GoalMessage(Board) string {
	return "The tiles are in order. Great job!"
}

// Heuristic implements search.Problem.
func (p *Puzzle) Heuristic(b Board) float64 { return p.heuristic.Estimate(b) }
