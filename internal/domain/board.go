package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	Rows = 6
	Cols = 4
)

var (
	ErrOutOfBounds   = errors.New("cell out of bounds")
	ErrBadBoardShape = errors.New("board must be 6 rows of 4 cells")
)

// Coord addresses a cell on the board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Check returns ErrOutOfBounds for coordinates outside the grid.
func (c Coord) Check() error {
	if !c.Valid() {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, c.Row, c.Col)
	}
	return nil
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is the fixed 6x4 grid. A nil cell is empty.
type Board [Rows][Cols]*Token

// At returns the token at c and whether the cell is occupied.
func (b *Board) At(c Coord) (Token, bool) {
	t := b[c.Row][c.Col]
	if t == nil {
		return Token{}, false
	}
	return *t, true
}

func (b *Board) Occupied(c Coord) bool {
	return b[c.Row][c.Col] != nil
}

// Set stores a private copy of t at c.
func (b *Board) Set(c Coord, t Token) {
	b[c.Row][c.Col] = &t
}

func (b *Board) Clear(c Coord) {
	b[c.Row][c.Col] = nil
}

// Clone returns a deep copy that shares no cells with b.
func (b *Board) Clone() Board {
	var out Board
	for r := range Rows {
		for c := range Cols {
			if t := b[r][c]; t != nil {
				cp := *t
				out[r][c] = &cp
			}
		}
	}
	return out
}

// Equal compares cell contents, not pointers.
func (b *Board) Equal(other *Board) bool {
	for r := range Rows {
		for c := range Cols {
			x, y := b[r][c], other[r][c]
			if (x == nil) != (y == nil) {
				return false
			}
			if x != nil && *x != *y {
				return false
			}
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for r := range Rows {
		for c := range Cols {
			if b[r][c] != nil {
				n++
			}
		}
	}
	return n
}

// UnmarshalJSON rejects anything that is not exactly 6 rows of 4 cells.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Token
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("decode board: %w", err)
	}
	if len(rows) != Rows {
		return fmt.Errorf("%w: got %d rows", ErrBadBoardShape, len(rows))
	}
	var out Board
	for r, row := range rows {
		if len(row) != Cols {
			return fmt.Errorf("%w: row %d has %d cells", ErrBadBoardShape, r, len(row))
		}
		copy(out[r][:], row)
	}
	*b = out
	return nil
}

// MatchGroup is a set of cells holding the same (color, size) pair.
type MatchGroup struct {
	Token Token   `json:"token"`
	Cells []Coord `json:"cells"`
}

// MatchGroups groups occupied cells by token and keeps groups of two or
// more. Groups are ordered by their first cell in row-major order.
func (b *Board) MatchGroups() []MatchGroup {
	index := make(map[Token]int)
	var groups []MatchGroup
	for r := range Rows {
		for c := range Cols {
			t := b[r][c]
			if t == nil {
				continue
			}
			i, ok := index[*t]
			if !ok {
				i = len(groups)
				index[*t] = i
				groups = append(groups, MatchGroup{Token: *t})
			}
			groups[i].Cells = append(groups[i].Cells, Coord{Row: r, Col: c})
		}
	}
	out := groups[:0]
	for _, g := range groups {
		if len(g.Cells) >= 2 {
			out = append(out, g)
		}
	}
	return out
}

// MatchingCells returns every cell that belongs to a match group, in
// row-major order.
func (b *Board) MatchingCells() []Coord {
	var member [Rows][Cols]bool
	for _, g := range b.MatchGroups() {
		for _, c := range g.Cells {
			member[c.Row][c.Col] = true
		}
	}
	cells := []Coord{}
	for r := range Rows {
		for c := range Cols {
			if member[r][c] {
				cells = append(cells, Coord{Row: r, Col: c})
			}
		}
	}
	return cells
}
