package search

import (
	"fmt"
	"math"
	"time"

	"github.com/dshills/astar-go/search/emit"
)

// costTolerance bounds the float error accepted when verifying f = g + h.
const costTolerance = 1e-9

// Snapshot describes a Stepper after one Step.
type Snapshot[S any] struct {
	// Current is the state popped by this step. Valid only when Popped.
	Current S
	Popped  bool

	// Open and Closed are the frontier sizes after the step.
	Open   int
	Closed int

	// Expanded is the number of expansions so far.
	Expanded int

	// Done reports that the search reached a terminal outcome. Result is
	// populated once Done is true, and also alongside a step error.
	Done   bool
	Found  bool
	Result Result[S]
}

// Stepper advances one A* run an expansion at a time.
//
// A Stepper owns all mutable search state for a single run and is not safe
// for concurrent use; create one Stepper per goroutine via Engine.Stepper.
type Stepper[S State[S]] struct {
	problem   Problem[S]
	operators []Operator[S]
	opts      Options
	runID     string

	open   *Queue[S]
	closed *Queue[S]
	g      map[S]float64
	f      map[S]float64
	links  map[S]backlink[S]

	expanded int
	maxOpen  int
	reopened int

	started time.Time
	seeded  bool
	done    bool
	result  Result[S]
	err     error
}

func newStepper[S State[S]](problem Problem[S], opts Options, runID string) *Stepper[S] {
	return &Stepper[S]{
		problem:   problem,
		operators: problem.Operators(),
		opts:      opts,
		runID:     runID,
		open:      NewQueue[S](),
		closed:    NewQueue[S](),
		g:         make(map[S]float64),
		f:         make(map[S]float64),
		links:     make(map[S]backlink[S]),
	}
}

// RunID returns the run identifier used in events and metrics.
func (s *Stepper[S]) RunID() string {
	return s.runID
}

// Done reports whether the run has reached a terminal outcome.
func (s *Stepper[S]) Done() bool {
	return s.done
}

// Step performs one iteration of the main loop: pop the best open state,
// test it against the goal, and otherwise expand it.
//
// The first call also seeds the open frontier with the initial state.
// After the run is done, Step keeps returning the final snapshot and error.
func (s *Stepper[S]) Step() (Snapshot[S], error) {
	if s.done {
		return s.snapshot(), s.err
	}

	if !s.seeded {
		if err := s.seed(); err != nil {
			return s.fail(err)
		}
	}

	if s.open.Len() == 0 {
		s.finish(OutcomeNotFound, nil)
		s.emit(emit.MsgSearchExhausted, map[string]interface{}{
			"closed":   s.closed.Len(),
			"expanded": s.expanded,
		})
		return s.snapshot(), nil
	}

	if n := s.open.Len(); n > s.maxOpen {
		s.maxOpen = n
	}

	item, _ := s.open.DeleteMin()
	current := item.Key
	if err := s.closed.Insert(current, item.Priority); err != nil {
		return s.fail(err)
	}

	if s.opts.InvariantChecks {
		if err := s.checkInvariants(current, item.Priority); err != nil {
			return s.fail(err)
		}
	}

	if s.problem.GoalTest(current) {
		return s.reachGoal(current)
	}

	if s.opts.MaxExpansions > 0 && s.expanded >= s.opts.MaxExpansions {
		s.finish(OutcomeBudgetExceeded, ErrMaxExpansionsExceeded)
		s.emit(emit.MsgBudgetExceeded, map[string]interface{}{
			"open":     s.open.Len(),
			"closed":   s.closed.Len(),
			"expanded": s.expanded,
		})
		snap := s.snapshot()
		snap.Current, snap.Popped = current, true
		return snap, s.err
	}

	if err := s.expand(current); err != nil {
		return s.fail(err)
	}

	snap := s.snapshot()
	snap.Current, snap.Popped = current, true
	return snap, nil
}

func (s *Stepper[S]) seed() error {
	s.seeded = true
	s.started = time.Now()

	initial := s.problem.InitialState()
	h := s.problem.Heuristic(initial)
	if !validCost(h) {
		return &EngineError{
			Message: fmt.Sprintf("heuristic of initial state %v is %v", initial, h),
			Code:    "INVALID_HEURISTIC",
			Cause:   ErrInvalidCost,
		}
	}

	s.g[initial] = 0
	s.f[initial] = h
	s.links[initial] = backlink[S]{root: true}
	if err := s.open.Insert(initial, h); err != nil {
		return err
	}

	s.emit(emit.MsgSearchStart, map[string]interface{}{
		"state": initial.String(),
		"f":     h,
	})
	return nil
}

// expand generates the successors of current in operator order and
// reconciles each with the open and closed sets.
func (s *Stepper[S]) expand(current S) error {
	s.expanded++
	gCurrent := s.g[current]

	for _, op := range s.operators {
		if !op.Applicable(current) {
			continue
		}

		next := op.Transition(current)
		edge := current.EdgeDistance(next)
		if !validCost(edge) {
			return &EngineError{
				Message: fmt.Sprintf("operator %q from %v has edge cost %v", op.Name, current, edge),
				Code:    "INVALID_EDGE_COST",
				Cause:   ErrInvalidCost,
			}
		}
		h := s.problem.Heuristic(next)
		if !validCost(h) {
			return &EngineError{
				Message: fmt.Sprintf("heuristic of %v is %v", next, h),
				Code:    "INVALID_HEURISTIC",
				Cause:   ErrInvalidCost,
			}
		}

		newG := gCurrent + edge
		newF := newG + h

		if s.closed.Contains(next) {
			if newF >= s.f[next] {
				continue
			}
			s.closed.Remove(next)
			s.reopened++
			if s.opts.Metrics != nil {
				s.opts.Metrics.IncrementReopened(s.problem.Name())
			}
			if s.opts.Emitter != nil {
				s.emit(emit.MsgReopen, map[string]interface{}{
					"state": next.String(),
					"g":     newG,
					"f":     newF,
				})
			}
		} else if oldF, ok := s.open.Priority(next); ok {
			if oldF <= newF {
				continue
			}
			s.open.Remove(next)
		}

		if err := s.open.Insert(next, newF); err != nil {
			return err
		}
		s.g[next] = newG
		s.f[next] = newF
		s.links[next] = backlink[S]{prev: current, move: op.Name}
	}

	if s.opts.Metrics != nil {
		s.opts.Metrics.RecordExpansion(s.problem.Name(), s.open.Len(), s.closed.Len())
	}
	if every := s.opts.ProgressEvery; s.opts.Emitter != nil && (every <= 1 || s.expanded%every == 0) {
		s.emit(emit.MsgExpand, map[string]interface{}{
			"state":    current.String(),
			"open":     s.open.Len(),
			"closed":   s.closed.Len(),
			"expanded": s.expanded,
			"g":        gCurrent,
			"f":        s.f[current],
		})
	}
	return nil
}

func (s *Stepper[S]) reachGoal(goal S) (Snapshot[S], error) {
	path, moves, err := reconstructPath(goal, s.links)
	if err != nil {
		return s.fail(err)
	}

	s.result.Found = true
	s.result.Path = path
	s.result.Moves = moves
	s.result.TotalCost = s.g[goal]
	s.finish(OutcomeFound, nil)

	s.emit(emit.MsgGoalFound, map[string]interface{}{
		"state":    goal.String(),
		"cost":     s.result.TotalCost,
		"edges":    s.result.Edges(),
		"expanded": s.expanded,
	})

	snap := s.snapshot()
	snap.Current, snap.Popped = goal, true
	return snap, nil
}

func (s *Stepper[S]) checkInvariants(current S, priority float64) error {
	g, ok := s.g[current]
	if !ok {
		return invariantError("FRONTIER_MISMATCH",
			fmt.Sprintf("popped state %v has no recorded g", current))
	}
	if s.open.Contains(current) {
		return invariantError("FRONTIER_MISMATCH",
			fmt.Sprintf("state %v is in both open and closed", current))
	}
	if tracked := s.open.Len() + s.closed.Len(); tracked != len(s.g) {
		return invariantError("FRONTIER_MISMATCH",
			fmt.Sprintf("open+closed holds %d states but g records %d", tracked, len(s.g)))
	}

	want := g + s.problem.Heuristic(current)
	if !costEqual(s.f[current], want) || !costEqual(priority, want) {
		return invariantError("COST_MISMATCH",
			fmt.Sprintf("state %v has f=%v priority=%v but g+h=%v", current, s.f[current], priority, want))
	}
	return nil
}

// abort stops the run from outside the loop, e.g. on context cancellation.
func (s *Stepper[S]) abort(outcome string, err error) (Result[S], error) {
	if !s.done {
		s.finish(outcome, err)
	}
	return s.result, s.err
}

func (s *Stepper[S]) fail(err error) (Snapshot[S], error) {
	s.finish(OutcomeError, err)
	return s.snapshot(), err
}

func (s *Stepper[S]) finish(outcome string, err error) {
	if s.started.IsZero() {
		s.started = time.Now()
	}

	s.done = true
	s.err = err
	s.result.RunID = s.runID
	s.result.Expanded = s.expanded
	s.result.MaxOpen = s.maxOpen
	s.result.Reopened = s.reopened
	s.result.Duration = time.Since(s.started)

	if s.opts.Metrics != nil {
		s.opts.Metrics.RecordSearch(s.problem.Name(), outcome, s.result.Duration, s.result.TotalCost)
	}
	if err == nil {
		return
	}
	var msg string
	switch outcome {
	case OutcomeCanceled:
		msg = emit.MsgSearchCanceled
	case OutcomeError:
		msg = emit.MsgSearchFailed
	default:
		return
	}
	s.emit(msg, map[string]interface{}{
		"error":    err.Error(),
		"expanded": s.expanded,
	})
}

func (s *Stepper[S]) snapshot() Snapshot[S] {
	return Snapshot[S]{
		Open:     s.open.Len(),
		Closed:   s.closed.Len(),
		Expanded: s.expanded,
		Done:     s.done,
		Found:    s.result.Found,
		Result:   s.result,
	}
}

func (s *Stepper[S]) emit(msg string, meta map[string]interface{}) {
	if s.opts.Emitter == nil {
		return
	}
	s.opts.Emitter.Emit(emit.Event{
		RunID:   s.runID,
		Step:    s.expanded,
		Problem: s.problem.Name(),
		Msg:     msg,
		Meta:    meta,
	})
}

func validCost(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func costEqual(a, b float64) bool {
	return math.Abs(a-b) <= costTolerance*math.Max(1, math.Abs(b))
}
