package mines

import "math/rand/v2"

// PlaceMines scatters mineCount mines uniformly over the board, never on
// exclude, by rejection sampling: pick a random cell, retry if it is already
// mined or excluded. Callers must have validated mineCount <= rows*cols-1,
// otherwise this loop cannot terminate. Adjacency counts are recomputed for
// the whole board afterwards.
func (b *Board) PlaceMines(mineCount int, exclude Point, r *rand.Rand) {
	placed := 0
	for placed < mineCount {
		x, y := r.IntN(b.Cols), r.IntN(b.Rows)
		if x == exclude.X && y == exclude.Y {
			continue
		}
		c := b.At(x, y)
		if c.Mine {
			continue
		}
		c.Mine = true
		placed++
	}
	b.computeAdjacency()
}

func (b *Board) computeAdjacency() {
	for i := range b.Cells {
		c := &b.Cells[i]
		if c.Mine {
			continue
		}
		n := 0
		b.EachNeighbor(c.X, c.Y, func(nb *Cell) {
			if nb.Mine {
				n++
			}
		})
		c.Adjacent = n
	}
}
