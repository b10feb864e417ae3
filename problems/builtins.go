package problems

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/astar-go/problems/carbon"
	"github.com/dshills/astar-go/problems/cube"
	"github.com/dshills/astar-go/problems/tiles"
	"github.com/dshills/astar-go/search"
)

var builtinsOnce sync.Once

// RegisterBuiltins registers the bundled problems. Safe to call repeatedly.
func RegisterBuiltins() {
	builtinsOnce.Do(func() {
		for _, entry := range builtins() {
			// Names are fixed; a collision means the caller registered one
			// of them first, and theirs wins.
			if err := Register(entry); err != nil && !errors.Is(err, ErrAlreadyExists) {
				panic(err)
			}
		}
	})
}

func builtins() []Entry {
	entries := make([]Entry, 0, 5)
	for _, h := range []tiles.Heuristic{tiles.Hamming, tiles.Manhattan, tiles.None} {
		h := h
		entries = append(entries, entryFor(
			"eight-puzzle-"+h.String(),
			"3x3 sliding-tile puzzle, "+tileHeuristicDescription(h),
			tiles.Parse, tiles.Default,
			func(b tiles.Board) search.Problem[tiles.Board] { return tiles.New(b, h) },
		))
	}
	entries = append(entries,
		entryFor("rubik2",
			"2x2x2 cube, quarter turns of any face",
			cube.Parse, cube.Default,
			func(c cube.Cube) search.Problem[cube.Cube] { return cube.New(c) },
		),
		entryFor("carbon-footprint",
			"USA and China emission policies to reach 280 ppm CO2 and 0.05 degrees warming",
			carbon.Parse, carbon.Default,
			func(w carbon.World) search.Problem[carbon.World] { return carbon.New(w) },
		),
	)
	return entries
}

func tileHeuristicDescription(h tiles.Heuristic) string {
	switch h {
	case tiles.Hamming:
		return "misplaced-tile heuristic"
	case tiles.Manhattan:
		return "Manhattan-distance heuristic"
	default:
		return "uniform-cost search"
	}
}

func entryFor[S search.State[S]](
	name, description string,
	parse func(string) (S, error),
	initial func() S,
	build func(S) search.Problem[S],
) Entry {
	return Entry{
		Name:        name,
		Description: description,
		Build: func(literal string) (Solver, error) {
			state := initial()
			if strings.TrimSpace(literal) != "" {
				parsed, err := parse(literal)
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
				}
				state = parsed
			}
			return NewSolver[S](build(state)), nil
		},
	}
}
