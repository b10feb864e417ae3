package carbon

import (
	"math"

	"github.com/dshills/astar-go/search"
)

// policy is one action a country can take.
type policy struct {
	name    string
	allowed func(carbon, deltaT, budget int) bool
	carbon  int
	deltaT  int
	budget  int
}

// Largest per-action reductions, used by the heuristic.
const (
	maxCarbonDrop = 150
	maxDeltaTDrop = 40
)

var policies = []policy{
	{
		name: "plant trees",
		allowed: func(c, dt, b int) bool {
			return c < 350 && dt <= 100 && b <= 10000
		},
		carbon: -50, deltaT: -20, budget: -3000,
	},
	{
		name: "implement CO2 direct capture techniques",
		allowed: func(c, dt, b int) bool {
			return (c >= 350 && c < 450 && b > 10000) || (c >= 450 && dt >= 100 && b > 10000)
		},
		carbon: -150, deltaT: -20, budget: -8000,
	},
	{
		name: "implement composting policy",
		allowed: func(c, dt, b int) bool {
			return (c <= 300 || c >= 450) && dt > 100 && b <= 10000
		},
		carbon: -20, deltaT: -10,
	},
	{
		name: "convert to renewable energy source",
		allowed: func(c, dt, b int) bool {
			return (c < 350 && b > 10000) || (c >= 450 && dt <= 100 && b > 10000)
		},
		carbon: -100, deltaT: -40, budget: -4500,
	},
	{
		name: "start export policy",
		allowed: func(c, dt, b int) bool {
			return c >= 350 && c < 450 && dt > 100 && b <= 10000
		},
		carbon: 80, deltaT: 10, budget: 2000,
	},
	{
		name: "end import policy",
		allowed: func(c, dt, b int) bool {
			return c >= 350 && c < 450 && dt <= 100 && b <= 10000
		},
		carbon: -50, budget: 3000,
	},
}

func (p policy) apply(w World, country Country) World {
	w.Carbon += p.carbon
	w.DeltaT += p.deltaT
	w.Budgets[country] += p.budget
	return w
}

func (p policy) applicable(w World, country Country) bool {
	return p.allowed(w.Carbon, w.DeltaT, w.Budgets[country]) && p.apply(w, country).inBounds()
}

// Operators returns the twelve actions: the six policies for the USA, then
// the same six for China. Names read "<Country> <policy>".
func Operators() []search.Operator[World] {
	ops := make([]search.Operator[World], 0, 2*len(policies))
	for _, country := range []Country{USA, China} {
		for _, p := range policies {
			country, p := country, p
			ops = append(ops, search.Operator[World]{
				Name:         country.String() + " " + p.name,
				Precondition: func(w World) bool { return p.applicable(w, country) },
				Transition:   func(w World) World { return p.apply(w, country) },
			})
		}
	}
	return ops
}

// Problem is the carbon footprint problem definition.
type Problem struct {
	initial World
	ops     []search.Operator[World]
}

// New creates a carbon footprint problem starting from initial.
func New(initial World) *Problem {
	return &Problem{initial: initial, ops: Operators()}
}

// Name implements search.Problem.
func (p *Problem) Name() string { return "carbon-footprint" }

// InitialState implements search.Problem.
func (p *Problem) InitialState() World { return p.initial }

// Operators implements search.Problem.
func (p *Problem) Operators() []search.Operator[World] { return p.ops }

// GoalTest implements search.Problem.
func (p *Problem) GoalTest(w World) bool { return w.Reached() }

// GoalMessage implements search.Problem.
func (p *Problem) GoalMessage(World) string {
	return "US and China emissions are back under the target."
}

// Heuristic implements search.Problem: the larger of the CO2 and warming
// excesses, each divided by the largest single-action reduction.
func (p *Problem) Heuristic(w World) float64 {
	carbonSteps := math.Ceil(float64(w.Carbon-GoalCarbon) / maxCarbonDrop)
	deltaTSteps := math.Ceil(float64(w.DeltaT-GoalDeltaT) / maxDeltaTDrop)
	return math.Max(0, math.Max(carbonSteps, deltaTSteps))
}
