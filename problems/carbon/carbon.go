// Package carbon defines a toy carbon-emissions policy model as a search
// problem.
//
// Two countries choose among six policy actions. Each action has a
// precondition on the world's CO2 level, the warming above the baseline and
// the acting country's budget, and a fixed effect on all three. The goal is
// to bring CO2 to 280 ppm or below while keeping warming at 0.05 degrees or
// below. Every action costs one step.
//
// Warming is kept in hundredths of a degree so states compare exactly.
// Values are bounded (CO2 in [0, 1000] ppm, warming in [-2.00, 5.00]
// degrees, budgets never negative) which keeps the state space finite.
package carbon

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Model bounds.
const (
	MinCarbon = 0
	MaxCarbon = 1000
	MinDeltaT = -200
	MaxDeltaT = 500

	// GoalCarbon and GoalDeltaT are the goal thresholds (ppm, hundredths).
	GoalCarbon = 280
	GoalDeltaT = 5
)

// ErrInvalidWorld indicates a malformed state literal.
var ErrInvalidWorld = errors.New("invalid carbon world")

// Country identifies an acting country.
type Country int

// Countries in operator order.
const (
	USA Country = iota
	China
)

// String returns the country name used in operator names.
func (c Country) String() string {
	if c == USA {
		return "USA"
	}
	return "China"
}

// World is the model state.
type World struct {
	// Carbon is the atmospheric CO2 level in ppm.
	Carbon int
	// DeltaT is warming since 1880 in hundredths of a degree.
	DeltaT int
	// Budgets holds each country's budget in billions, indexed by Country.
	Budgets [2]int
}

// Default returns the built-in initial world: 400 ppm, 0.80 degrees, and
// budgets of 21000 (USA) and 13000 (China).
func Default() World {
	return World{Carbon: 400, DeltaT: 80, Budgets: [2]int{21000, 13000}}
}

// Parse reads "[[carbon, delta_t, usa_budget], [carbon, delta_t, china_budget]]".
// CO2 and warming are taken from the first row; single quotes are accepted.
func Parse(literal string) (World, error) {
	var rows [][]float64
	normalized := strings.ReplaceAll(strings.TrimSpace(literal), "'", "\"")
	if err := json.Unmarshal([]byte(normalized), &rows); err != nil {
		return World{}, fmt.Errorf("%w: %v", ErrInvalidWorld, err)
	}
	if len(rows) != 2 || len(rows[0]) != 3 || len(rows[1]) != 3 {
		return World{}, fmt.Errorf("%w: expected two rows of [carbon, delta_t, budget]", ErrInvalidWorld)
	}

	w := World{
		Carbon:  int(math.Round(rows[0][0])),
		DeltaT:  int(math.Round(rows[0][1] * 100)),
		Budgets: [2]int{int(math.Round(rows[0][2])), int(math.Round(rows[1][2]))},
	}
	if !w.inBounds() {
		return World{}, fmt.Errorf("%w: %v is outside the model bounds", ErrInvalidWorld, w)
	}
	return w, nil
}

func (w World) inBounds() bool {
	return w.Carbon >= MinCarbon && w.Carbon <= MaxCarbon &&
		w.DeltaT >= MinDeltaT && w.DeltaT <= MaxDeltaT &&
		w.Budgets[USA] >= 0 && w.Budgets[China] >= 0
}

// String renders the world as a parseable literal.
func (w World) String() string {
	dt := formatHundredths(w.DeltaT)
	return fmt.Sprintf("[[%d,%s,%d],[%d,%s,%d]]",
		w.Carbon, dt, w.Budgets[USA], w.Carbon, dt, w.Budgets[China])
}

func formatHundredths(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// EdgeDistance implements search.State. Every action costs 1.
func (w World) EdgeDistance(World) float64 { return 1 }

// Reached reports whether both goal thresholds hold.
func (w World) Reached() bool {
	return w.Carbon <= GoalCarbon && w.DeltaT <= GoalDeltaT
}
