package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mineBoard builds a board with mines at the given points and adjacency
// already computed.
func mineBoard(rows, cols int, minePoints ...Point) *Board {
	b := NewBoard(rows, cols)
	for _, p := range minePoints {
		b.At(p.X, p.Y).Mine = true
	}
	b.computeAdjacency()
	return b
}

func revealedSet(b *Board) map[Point]bool {
	set := make(map[Point]bool)
	for i := range b.Cells {
		if b.Cells[i].Revealed {
			set[Point{b.Cells[i].X, b.Cells[i].Y}] = true
		}
	}
	return set
}

// bfsReveal is an independent FIFO reference for the flood fill: the full
// zero-adjacency component reachable from start plus every cell bordering
// it, minus flagged cells.
func bfsReveal(b *Board, start Point) map[Point]bool {
	expected := make(map[Point]bool)
	if b.At(start.X, start.Y).Mine || b.At(start.X, start.Y).Flagged {
		return expected
	}
	queue := []Point{start}
	seen := map[Point]bool{start: true}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		c := b.At(p.X, p.Y)
		if c.Flagged || c.Mine {
			continue
		}
		expected[p] = true
		if c.Adjacent != 0 {
			continue
		}
		b.EachNeighbor(p.X, p.Y, func(n *Cell) {
			np := Point{n.X, n.Y}
			if !seen[np] {
				seen[np] = true
				queue = append(queue, np)
			}
		})
	}
	return expected
}

func TestRevealCascade(t *testing.T) {
	t.Parallel()

	// single mine in the far corner: everything else is one zero-region
	// plus its numbered border
	b := mineBoard(5, 5, Point{4, 4})
	b.Reveal(0, 0)

	for i := range b.Cells {
		c := b.Cells[i]
		if c.Mine {
			assert.False(t, c.Revealed, "mine must not be auto-revealed")
		} else {
			assert.True(t, c.Revealed, "cell %d:%d should be revealed", c.X, c.Y)
		}
	}
}

func TestRevealNumberedCellOnly(t *testing.T) {
	t.Parallel()

	b := mineBoard(3, 3, Point{0, 0})
	b.Reveal(1, 1) // Adjacent == 1, no cascade

	require.True(t, b.At(1, 1).Revealed)
	assert.Len(t, revealedSet(b), 1)
}

func TestRevealSkipsFlaggedAndMines(t *testing.T) {
	t.Parallel()

	b := mineBoard(5, 5, Point{4, 4})
	b.ToggleFlag(2, 2)
	b.Reveal(0, 0)

	flagged := b.At(2, 2)
	assert.False(t, flagged.Revealed, "flagged cell must block its own reveal")
	assert.True(t, flagged.Flagged)

	// the region routes around the flag; everything else still opens
	for i := range b.Cells {
		c := b.Cells[i]
		if c.Mine || (c.X == 2 && c.Y == 2) {
			continue
		}
		assert.True(t, c.Revealed, "cell %d:%d should be revealed", c.X, c.Y)
	}

	// revealing a mine directly is not this routine's job
	b2 := mineBoard(3, 3, Point{1, 1})
	b2.Reveal(1, 1)
	assert.Empty(t, revealedSet(b2))
}

func TestRevealMatchesBFSReference(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		b := NewBoard(9, 9)
		b.PlaceMines(10, Point{0, 0}, r)

		// flag a couple of random hidden cells to exercise blocking
		for range 3 {
			b.ToggleFlag(r.IntN(9), r.IntN(9))
		}

		var start *Cell
		for i := range b.Cells {
			c := &b.Cells[i]
			if !c.Mine && !c.Flagged && c.Adjacent == 0 {
				start = c
				break
			}
		}
		if start == nil {
			continue
		}

		expected := bfsReveal(b, Point{start.X, start.Y})
		b.Reveal(start.X, start.Y)
		assert.Equal(t, expected, revealedSet(b),
			"LIFO fill diverged from the FIFO reference on:\n%s", b)
	}
}

func TestRevealOutOfRange(t *testing.T) {
	t.Parallel()

	b := mineBoard(3, 3, Point{2, 2})
	b.Reveal(-1, 0)
	b.Reveal(0, 3)
	b.Reveal(17, 17)
	assert.Empty(t, revealedSet(b))
}
