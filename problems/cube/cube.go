// Package cube defines the 2x2x2 twisty cube as a search problem.
//
// A cube holds 24 stickers: four per face in face order F, B, U, D, L, R.
// Within a face the stickers are upper-left, upper-right, lower-left and
// lower-right as seen from outside that face, with U viewed so that F is
// at its bottom edge and D so that F is at its top edge.
//
// The goal is any configuration in which every face shows a single colour.
package cube

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Face indexes the six faces.
type Face int

// Faces in sticker order.
const (
	F Face = iota
	B
	U
	D
	L
	R
)

var faceNames = [6]string{"F", "B", "U", "D", "L", "R"}

// String returns the one-letter face name.
func (f Face) String() string { return faceNames[f] }

// Color is a sticker colour.
type Color uint8

// Sticker colours. The solved cube shows them on F, B, U, D, L, R in this order.
const (
	Red Color = iota
	Orange
	Yellow
	White
	Blue
	Green
)

var colorNames = [6]string{"RED", "ORANGE", "YELLOW", "WHITE", "BLUE", "GREEN"}

// String returns the upper-case colour name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("COLOR(%d)", uint8(c))
}

// ErrInvalidCube indicates a literal that is not a 6x4 grid of colour names
// with each colour appearing exactly four times.
var ErrInvalidCube = errors.New("invalid cube")

// Cube is a sticker configuration; index face*4+slot.
type Cube [24]Color

// Solved returns the solved cube.
func Solved() Cube {
	var c Cube
	for face := 0; face < 6; face++ {
		for slot := 0; slot < 4; slot++ {
			c[face*4+slot] = Color(face)
		}
	}
	return c
}

// Default returns the built-in initial configuration: the solved cube after
// one clockwise turn of R.
func Default() Cube {
	return Solved().Turn(R, true)
}

// Parse reads a literal of six rows of four colour names, in face order
// F, B, U, D, L, R. Names are case-insensitive; single quotes are accepted.
//
// Example:
//
//	[["RED","RED","RED","RED"],["ORANGE","ORANGE","ORANGE","ORANGE"], ...]
func Parse(literal string) (Cube, error) {
	var rows [][]string
	normalized := strings.ReplaceAll(strings.TrimSpace(literal), "'", "\"")
	if err := json.Unmarshal([]byte(normalized), &rows); err != nil {
		return Cube{}, fmt.Errorf("%w: %v", ErrInvalidCube, err)
	}
	if len(rows) != 6 {
		return Cube{}, fmt.Errorf("%w: expected 6 faces, got %d", ErrInvalidCube, len(rows))
	}

	var c Cube
	var counts [6]int
	for face, row := range rows {
		if len(row) != 4 {
			return Cube{}, fmt.Errorf("%w: face %s has %d stickers", ErrInvalidCube, Face(face), len(row))
		}
		for slot, name := range row {
			color, ok := colorByName(name)
			if !ok {
				return Cube{}, fmt.Errorf("%w: unknown colour %q", ErrInvalidCube, name)
			}
			counts[color]++
			c[face*4+slot] = color
		}
	}
	for color, n := range counts {
		if n != 4 {
			return Cube{}, fmt.Errorf("%w: colour %s appears %d times", ErrInvalidCube, Color(color), n)
		}
	}
	return c, nil
}

func colorByName(name string) (Color, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == upper {
			return Color(i), true
		}
	}
	return 0, false
}

// String renders the cube as a parseable literal.
func (c Cube) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for face := 0; face < 6; face++ {
		if face > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('[')
		for slot := 0; slot < 4; slot++ {
			if slot > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%q", c[face*4+slot].String())
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}

// EdgeDistance implements search.State. Every quarter turn costs 1.
func (c Cube) EdgeDistance(Cube) float64 { return 1 }

// Uniform reports whether face shows a single colour.
func (c Cube) Uniform(face Face) bool {
	base := int(face) * 4
	return c[base] == c[base+1] && c[base] == c[base+2] && c[base] == c[base+3]
}

// IsSolved reports whether every face is uniform.
func (c Cube) IsSolved() bool {
	for face := F; face <= R; face++ {
		if !c.Uniform(face) {
			return false
		}
	}
	return true
}

// Turn returns the cube after a quarter turn of face, clockwise as seen
// from outside that face when clockwise is true.
func (c Cube) Turn(face Face, clockwise bool) Cube {
	perm := &turns[face][0]
	if !clockwise {
		perm = &turns[face][1]
	}

	var next Cube
	for i := range next {
		next[i] = c[perm[i]]
	}
	return next
}
