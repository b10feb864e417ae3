package cube

import (
	"math"

	"github.com/dshills/astar-go/search"
)

// Operators returns the twelve quarter turns: for each face in F, B, U, D,
// L, R order, clockwise then counter-clockwise.
func Operators() []search.Operator[Cube] {
	ops := make([]search.Operator[Cube], 0, 12)
	for face := F; face <= R; face++ {
		face := face
		ops = append(ops,
			search.Operator[Cube]{
				Name:       "Turn " + face.String() + " clockwise",
				Transition: func(c Cube) Cube { return c.Turn(face, true) },
			},
			search.Operator[Cube]{
				Name:       "Turn " + face.String() + " counter-clockwise",
				Transition: func(c Cube) Cube { return c.Turn(face, false) },
			},
		)
	}
	return ops
}

// Problem is the 2x2x2 cube problem definition.
type Problem struct {
	initial Cube
	ops     []search.Operator[Cube]
}

// New creates a cube problem starting from initial.
func New(initial Cube) *Problem {
	return &Problem{initial: initial, ops: Operators()}
}

// Name implements search.Problem.
func (p *Problem) Name() string { return "rubik2" }

// InitialState implements search.Problem.
func (p *Problem) InitialState() Cube { return p.initial }

// Operators implements search.Problem.
func (p *Problem) Operators() []search.Operator[Cube] { return p.ops }

// GoalTest implements search.Problem.
func (p *Problem) GoalTest(c Cube) bool { return c.IsSolved() }

// GoalMessage implements search.Problem.
func (p *Problem) GoalMessage(Cube) string {
	return "Every face shows a single colour."
}

// Heuristic implements search.Problem.
//
// A quarter turn changes the stickers of exactly four faces (the turned face
// only rotates), so at most four faces can become uniform per move.
func (p *Problem) Heuristic(c Cube) float64 {
	mixed := 0
	for face := F; face <= R; face++ {
		if !c.Uniform(face) {
			mixed++
		}
	}
	return math.Ceil(float64(mixed) / 4)
}
