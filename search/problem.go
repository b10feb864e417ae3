package search

import "fmt"

// State is the capability set the engine needs from a problem's states.
//
// States must be comparable so they can key the engine's maps and queues,
// and they should be plain values (arrays, structs of scalars): a
// Transition receives its own copy and returns a new value, so a
// predecessor is never mutated once the engine has published it.
//
// EdgeDistance returns the cost of the single operator application that
// leads from the receiver to the given successor. It must be finite and
// non-negative; a constant 1 is valid for unit-cost problems.
type State[S any] interface {
	comparable
	fmt.Stringer
	EdgeDistance(to S) float64
}

// Operator is a named legal-move rule. Operators are stateless and shared
// read-only across the whole search.
type Operator[S any] struct {
	// Name describes the move (e.g. "Move a tile N into the void").
	Name string

	// Precondition reports whether the operator applies to a state.
	Precondition func(state S) bool

	// Transition returns the successor produced by applying the operator.
	// It is only called when Precondition returned true.
	Transition func(state S) S
}

// Applicable reports whether the operator can be applied to state.
func (o Operator[S]) Applicable(state S) bool {
	return o.Precondition == nil || o.Precondition(state)
}

// Problem is the contract a problem definition supplies to the engine.
//
// The engine never inspects state internals; every domain rule is reached
// through these methods. Operators are tried in the order returned, which
// together with insertion-ordered tie-breaking makes searches reproducible.
//
// The heuristic must be non-negative. Admissibility (never overestimating
// the remaining cost) is assumed, not verified: an inadmissible heuristic
// silently degrades optimality.
type Problem[S State[S]] interface {
	// Name identifies the problem in events, metrics and reports.
	Name() string

	// InitialState returns the start state of the search.
	InitialState() S

	// Operators returns the ordered operator list.
	Operators() []Operator[S]

	// GoalTest reports whether state satisfies the goal.
	GoalTest(state S) bool

	// GoalMessage returns presentation text for a reached goal.
	GoalMessage(state S) string

	// Heuristic estimates the remaining cost from state to a goal.
	Heuristic(state S) float64
}

// Definition is a function-field adapter that implements Problem, so a
// problem can be declared inline without a named type.
//
// Example:
//
//	p := search.Definition[Cell]{
//	    ProblemName: "corridor",
//	    Initial:     Cell(0),
//	    Ops:         ops,
//	    Goal:        func(c Cell) bool { return c == 9 },
//	}
//
// A nil HeuristicFunc means a zero heuristic (uniform-cost search) and a nil
// Message yields a generic goal message.
type Definition[S State[S]] struct {
	ProblemName   string
	Initial       S
	Ops           []Operator[S]
	Goal          func(state S) bool
	Message       func(state S) string
	HeuristicFunc func(state S) float64
}

// Name implements Problem.
func (d Definition[S]) Name() string { return d.ProblemName }

// InitialState implements Problem.
func (d Definition[S]) InitialState() S { return d.Initial }

// Operators implements Problem.
func (d Definition[S]) Operators() []Operator[S] { return d.Ops }

// GoalTest implements Problem.
func (d Definition[S]) GoalTest(state S) bool { return d.Goal != nil && d.Goal(state) }

// GoalMessage implements Problem.
func (d Definition[S]) GoalMessage(state S) string {
	if d.Message == nil {
		return "Goal reached: " + state.String()
	}
	return d.Message(state)
}

// Heuristic implements Problem.
func (d Definition[S]) Heuristic(state S) float64 {
	if d.HeuristicFunc == nil {
		return 0
	}
	return d.HeuristicFunc(state)
}

// ZeroHeuristic wraps a problem so that its heuristic is identically zero,
// turning A* into uniform-cost search over the same state space.
func ZeroHeuristic[S State[S]](p Problem[S]) Problem[S] {
	return zeroHeuristic[S]{Problem: p}
}

type zeroHeuristic[S State[S]] struct {
	Problem[S]
}

func (z zeroHeuristic[S]) Heuristic(S) float64 { return 0 }
