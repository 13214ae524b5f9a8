package mines

// Reveal opens the cell at (x, y) and flood-fills outward through its
// connected zero-adjacency region. The traversal is iterative with an
// explicit frontier so stack depth stays bounded on large boards; a visited
// set keeps the unconditional neighbor pushes from reprocessing coordinates,
// keeping the whole fill O(rows*cols).
//
// Popped cells that are already revealed or flagged are skipped without
// mutation, so flags block propagation through them. Mines are never opened
// here; exposing them is loss handling, which belongs to the game.
func (b *Board) Reveal(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	visited := make([]bool, len(b.Cells))
	frontier := []Point{{x, y}}
	for len(frontier) > 0 {
		p := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		i := p.Y*b.Cols + p.X
		if visited[i] {
			continue
		}
		visited[i] = true

		c := &b.Cells[i]
		if c.Revealed || c.Flagged || c.Mine {
			continue
		}
		c.Revealed = true

		if c.Adjacent == 0 {
			b.EachNeighbor(p.X, p.Y, func(n *Cell) {
				frontier = append(frontier, Point{n.X, n.Y})
			})
		}
	}
}
