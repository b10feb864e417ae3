package search

import (
	"fmt"
	"sort"
	"strconv"
)

// cell is a position on a one-dimensional corridor [0, corridorLen).
type cell int

const corridorLen = 10

func (c cell) String() string              { return strconv.Itoa(int(c)) }
func (c cell) EdgeDistance(to cell) float64 { return 1 }

func corridorOps() []Operator[cell] {
	return []Operator[cell]{
		{
			Name:         "right",
			Precondition: func(c cell) bool { return c < corridorLen-1 },
			Transition:   func(c cell) cell { return c + 1 },
		},
		{
			Name:         "left",
			Precondition: func(c cell) bool { return c > 0 },
			Transition:   func(c cell) cell { return c - 1 },
		},
	}
}

func corridor(start, target cell) Definition[cell] {
	return Definition[cell]{
		ProblemName: "corridor",
		Initial:     start,
		Ops:         corridorOps(),
		Goal:        func(c cell) bool { return c == target },
		HeuristicFunc: func(c cell) float64 {
			d := int(target - c)
			if d < 0 {
				d = -d
			}
			return float64(d)
		},
	}
}

// weightedGraph is a small directed graph with explicit edge weights and
// per-node heuristic values.
type weightedGraph struct {
	edges map[string][]string
	cost  map[string]map[string]float64
	h     map[string]float64
}

func newWeightedGraph() *weightedGraph {
	return &weightedGraph{
		edges: make(map[string][]string),
		cost:  make(map[string]map[string]float64),
		h:     make(map[string]float64),
	}
}

func (g *weightedGraph) edge(from, to string, cost float64) *weightedGraph {
	g.edges[from] = append(g.edges[from], to)
	if g.cost[from] == nil {
		g.cost[from] = make(map[string]float64)
	}
	g.cost[from][to] = cost
	return g
}

// node is a vertex of a weightedGraph. The graph pointer keeps node
// comparable while giving EdgeDistance access to the weights.
type node struct {
	name  string
	graph *weightedGraph
}

func (n node) String() string { return n.name }

func (n node) EdgeDistance(to node) float64 {
	return n.graph.cost[n.name][to.name]
}

// problem builds a Definition with one operator per edge, named "a->b".
// Operators are grouped by source node name, then by edge insertion order.
func (g *weightedGraph) problem(start, goal string) Definition[node] {
	var ops []Operator[node]
	seen := make(map[string]bool)
	var froms []string
	for from := range g.edges {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	for _, from := range froms {
		for _, to := range g.edges[from] {
			from, to := from, to
			name := fmt.Sprintf("%s->%s", from, to)
			if seen[name] {
				continue
			}
			seen[name] = true
			ops = append(ops, Operator[node]{
				Name:         name,
				Precondition: func(n node) bool { return n.name == from },
				Transition:   func(n node) node { return node{name: to, graph: n.graph} },
			})
		}
	}

	return Definition[node]{
		ProblemName:   "graph",
		Initial:       node{name: start, graph: g},
		Ops:           ops,
		Goal:          func(n node) bool { return n.name == goal },
		HeuristicFunc: func(n node) float64 { return g.h[n.name] },
	}
}

// reopeningGraph has an admissible but inconsistent heuristic: A is closed
// through the expensive S->A edge before the cheaper S->B->A path is found.
func reopeningGraph() *weightedGraph {
	g := newWeightedGraph().
		edge("S", "A", 4).
		edge("S", "B", 1).
		edge("B", "A", 1).
		edge("A", "G", 10)
	g.h["B"] = 3
	return g
}

// negativeCell is a state whose edges have negative cost.
type negativeCell int

func (c negativeCell) String() string                     { return strconv.Itoa(int(c)) }
func (c negativeCell) EdgeDistance(to negativeCell) float64 { return -1 }
