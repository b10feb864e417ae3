// Package tiles defines the 3x3 sliding-tile puzzle (the eight puzzle) as a
// search problem.
//
// A board holds the tiles 1..8 and a void (0). The goal board has the void
// in the top-left corner and the tiles in row-major order:
//
//	[[0,1,2],[3,4,5],[6,7,8]]
//
// Operators move a tile adjacent to the void into the void. "Move a tile N
// into the void" slides the tile below the void northwards, so the void
// itself moves south.
package tiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/astar-go/search"
)

// Size is the board edge length.
const Size = 3

// ErrInvalidBoard indicates a literal that is not a 3x3 permutation of 0..8.
var ErrInvalidBoard = errors.New("invalid eight puzzle board")

// Board is a row-major 3x3 board; 0 marks the void.
type Board [Size * Size]uint8

// Goal returns the solved board.
func Goal() Board {
	return Board{0, 1, 2, 3, 4, 5, 6, 7, 8}
}

// Default returns the built-in initial board, three moves from the goal.
func Default() Board {
	return Board{1, 4, 2, 3, 7, 5, 6, 0, 8}
}

// Parse reads a board literal such as "[[1,4,2],[3,7,5],[6,0,8]]".
// Single-quoted or whitespace-padded literals are accepted.
func Parse(literal string) (Board, error) {
	var rows [][]int
	normalized := strings.ReplaceAll(strings.TrimSpace(literal), "'", "\"")
	if err := json.Unmarshal([]byte(normalized), &rows); err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	if len(rows) != Size {
		return Board{}, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Size, len(rows))
	}

	var b Board
	var seen [Size * Size]bool
	for i, row := range rows {
		if len(row) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d tiles", ErrInvalidBoard, i, len(row))
		}
		for j, tile := range row {
			if tile < 0 || tile >= Size*Size {
				return Board{}, fmt.Errorf("%w: tile %d out of range", ErrInvalidBoard, tile)
			}
			if seen[tile] {
				return Board{}, fmt.Errorf("%w: tile %d appears twice", ErrInvalidBoard, tile)
			}
			seen[tile] = true
			b[i*Size+j] = uint8(tile)
		}
	}
	return b, nil
}

// String renders the board as a parseable literal.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < Size; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "[%d,%d,%d]", b[i*Size], b[i*Size+1], b[i*Size+2])
	}
	sb.WriteByte(']')
	return sb.String()
}

// EdgeDistance implements search.State. Every move costs 1.
func (b Board) EdgeDistance(Board) float64 { return 1 }

// Void returns the row and column of the void.
func (b Board) Void() (row, col int) {
	for i, tile := range b {
		if tile == 0 {
			return i / Size, i % Size
		}
	}
	return -1, -1
}

// Solvable reports whether the goal is reachable from b. On a 3x3 board
// that holds exactly when the tiles (void excluded) have even inversion
// parity, matching the goal.
func (b Board) Solvable() bool {
	inversions := 0
	for i := 0; i < len(b); i++ {
		for j := i + 1; j < len(b); j++ {
			if b[i] != 0 && b[j] != 0 && b[i] > b[j] {
				inversions++
			}
		}
	}
	return inversions%2 == 0
}

// direction is a move named by the way the tile travels.
type direction struct {
	name   string
	dr, dc int // offset from the void to the tile that moves
}

var directions = []direction{
	{"N", 1, 0},
	{"S", -1, 0},
	{"W", 0, 1},
	{"E", 0, -1},
}

func (d direction) applicable(b Board) bool {
	r, c := b.Void()
	r, c = r+d.dr, c+d.dc
	return r >= 0 && r < Size && c >= 0 && c < Size
}

func (d direction) apply(b Board) Board {
	r, c := b.Void()
	from := (r+d.dr)*Size + c + d.dc
	to := r*Size + c
	b[to], b[from] = b[from], 0
	return b
}

// Operators returns the four tile moves in N, S, W, E order.
func Operators() []search.Operator[Board] {
	ops := make([]search.Operator[Board], 0, len(directions))
	for _, d := range directions {
		d := d
		ops = append(ops, search.Operator[Board]{
			Name:         "Move a tile " + d.name + " into the void",
			Precondition: d.applicable,
			Transition:   d.apply,
		})
	}
	return ops
}
