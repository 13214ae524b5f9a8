package mines

import (
	"fmt"
	"strings"
)

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Cell is one grid position. Adjacent is only meaningful for non-mine cells
// and only once mines have been placed.
type Cell struct {
	X, Y     int
	Mine     bool
	Revealed bool
	Flagged  bool
	Adjacent int
}

// Board is a fixed-size grid of cells stored row-major, index = y*Cols + x.
type Board struct {
	Rows, Cols int
	Cells      []Cell
}

// NewBoard produces an all-hidden board with no mines and zero adjacency.
func NewBoard(rows, cols int) *Board {
	b := &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]Cell, rows*cols),
	}
	for i := range b.Cells {
		b.Cells[i].X = i % cols
		b.Cells[i].Y = i / cols
	}
	return b
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.Cols && 0 <= y && y < b.Rows
}

func (b *Board) At(x, y int) *Cell {
	return &b.Cells[y*b.Cols+x]
}

// EachNeighbor calls fn for every in-bounds cell of the up to 8 surrounding
// (x, y), excluding (x, y) itself.
func (b *Board) EachNeighbor(x, y int, fn func(n *Cell)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) {
				fn(b.At(x+dx, y+dy))
			}
		}
	}
}

// ToggleFlag flips the flag on a hidden cell. Revealed cells and out-of-range
// coordinates are left untouched.
func (b *Board) ToggleFlag(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	if c := b.At(x, y); !c.Revealed {
		c.Flagged = !c.Flagged
	}
}

func (b *Board) CountFlagged() (count int) {
	for i := range b.Cells {
		if b.Cells[i].Flagged {
			count++
		}
	}
	return
}

// AllSafeRevealed reports whether every non-mine cell has been revealed.
func (b *Board) AllSafeRevealed() bool {
	var safe, revealed int
	for i := range b.Cells {
		if b.Cells[i].Mine {
			continue
		}
		safe++
		if b.Cells[i].Revealed {
			revealed++
		}
	}
	return revealed == safe
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Rows {
		for x := range b.Cols {
			c := b.At(x, y)
			var ch string
			switch {
			case c.Flagged:
				ch = "* "
			case !c.Revealed:
				ch = "- "
			case c.Mine:
				ch = "! "
			default:
				ch = fmt.Sprintf("%d ", c.Adjacent)
			}
			fmt.Fprint(&sb, ch)
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
