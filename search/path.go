package search

import "fmt"

// backlink records the predecessor on the best-known path to a state and
// the operator that produced it. The initial state has root == true.
type backlink[S comparable] struct {
	prev S
	move string
	root bool
}

// reconstructPath walks backlinks from goal to the initial state and returns
// the states and move names in initial-to-goal order. moves[i] is the
// operator that produced path[i+1].
//
// The walk is bounded by len(links); exceeding it means the backlink map
// contains a cycle, which is reported as an invariant violation rather than
// looping forever.
func reconstructPath[S comparable](goal S, links map[S]backlink[S]) ([]S, []string, error) {
	path := []S{goal}
	moves := make([]string, 0)

	current := goal
	for steps := 0; ; steps++ {
		if steps > len(links) {
			return nil, nil, invariantError("BACKLINK_CYCLE",
				fmt.Sprintf("backlink walk from %v exceeded %d links", goal, len(links)))
		}

		link, exists := links[current]
		if !exists {
			return nil, nil, invariantError("BACKLINK_MISSING",
				fmt.Sprintf("no backlink recorded for %v", current))
		}
		if link.root {
			break
		}

		path = append(path, link.prev)
		moves = append(moves, link.move)
		current = link.prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}

	return path, moves, nil
}
