package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, params GameParams) (*GameState, *rand.Rand) {
	t.Helper()
	game, err := NewGame(params)
	require.NoError(t, err)
	return game, rand.New(rand.NewPCG(1, 2))
}

func minePoints(g *GameState) (points []Point) {
	for i := range g.Board.Cells {
		if g.Board.Cells[i].Mine {
			points = append(points, Point{g.Board.Cells[i].X, g.Board.Cells[i].Y})
		}
	}
	return
}

func TestNewGameRejectsBadParams(t *testing.T) {
	t.Parallel()

	_, err := NewGame(GameParams{Rows: 3, Cols: 3, MineCount: 9})
	assert.Error(t, err)

	game, err := NewGame(Beginner)
	require.NoError(t, err)
	assert.Equal(t, Playing, game.Status)
	assert.False(t, game.Started)
	assert.Zero(t, countMines(game.Board))
}

func TestFirstOpenIsNeverAMine(t *testing.T) {
	t.Parallel()

	for seed := range uint64(25) {
		game, err := NewGame(Beginner)
		require.NoError(t, err)
		r := rand.New(rand.NewPCG(seed, seed+1))

		game.Open(0, 0, r)

		require.True(t, game.Started)
		assert.Equal(t, 10, countMines(game.Board))

		start := game.Board.At(0, 0)
		require.False(t, start.Mine, "first open hit a mine:\n%s", game.Board)
		require.True(t, start.Revealed)
		assert.NotEqual(t, Lost, game.Status)

		if start.Adjacent == 0 {
			game.Board.EachNeighbor(0, 0, func(n *Cell) {
				assert.True(t, n.Revealed, "zero start must cascade to %d:%d", n.X, n.Y)
			})
		}
	}
}

func TestOpenMineLosesAndRevealsAllMines(t *testing.T) {
	t.Parallel()

	game, r := newTestGame(t, Beginner)
	game.Open(0, 0, r)
	require.Equal(t, Playing, game.Status)

	mines := minePoints(game)
	require.Len(t, mines, 10)

	game.Flag(mines[0].X, mines[0].Y)
	game.Open(mines[1].X, mines[1].Y, r)

	assert.Equal(t, Lost, game.Status)
	for i := range game.Board.Cells {
		c := game.Board.Cells[i]
		if c.Mine {
			assert.True(t, c.Revealed, "mine %d:%d must be exposed on loss", c.X, c.Y)
		}
	}
	assert.True(t, game.Board.At(mines[0].X, mines[0].Y).Flagged,
		"loss must not touch flags")

	// terminal state: no further mutation
	before := game.Board.CountFlagged()
	game.Flag(1, 1)
	game.Open(1, 1, r)
	assert.Equal(t, before, game.Board.CountFlagged())
	assert.Equal(t, Lost, game.Status)
}

func TestOpeningLastSafeCellWinsAndFlagsMines(t *testing.T) {
	t.Parallel()

	game, r := newTestGame(t, GameParams{Rows: 2, Cols: 2, MineCount: 1})
	game.Open(0, 0, r)
	require.True(t, game.Started)

	for i := range game.Board.Cells {
		c := game.Board.Cells[i]
		if !c.Mine {
			game.Open(c.X, c.Y, r)
		}
	}

	assert.Equal(t, Won, game.Status)
	mines := minePoints(game)
	require.Len(t, mines, 1)
	mine := game.Board.At(mines[0].X, mines[0].Y)
	assert.True(t, mine.Flagged, "win auto-flags remaining mines")
	assert.False(t, mine.Revealed)
	assert.Zero(t, game.MinesRemaining())
}

func TestOpenNoOps(t *testing.T) {
	t.Parallel()

	game, r := newTestGame(t, Beginner)

	// out of range, before and after start
	game.Open(-1, 4, r)
	game.Open(9, 9, r)
	assert.False(t, game.Started)

	game.Open(4, 4, r)
	require.True(t, game.Started)
	game.Open(40, 40, r)
	game.Flag(40, 40)

	// re-opening a revealed cell changes nothing
	snapshot := revealedSet(game.Board)
	game.Open(4, 4, r)
	assert.Equal(t, snapshot, revealedSet(game.Board))

	// a flagged cell cannot be opened
	var hidden *Cell
	for i := range game.Board.Cells {
		c := &game.Board.Cells[i]
		if !c.Revealed && !c.Mine {
			hidden = c
			break
		}
	}
	require.NotNil(t, hidden)
	game.Flag(hidden.X, hidden.Y)
	game.Open(hidden.X, hidden.Y, r)
	assert.False(t, hidden.Revealed)
}

func TestFlagging(t *testing.T) {
	t.Parallel()

	game, r := newTestGame(t, Beginner)

	// flagging is rejected until the first reveal
	game.Flag(1, 1)
	assert.Zero(t, game.Board.CountFlagged())
	assert.Equal(t, 10, game.MinesRemaining())

	game.Open(0, 0, r)

	// toggle on, toggle off
	var hidden *Cell
	for i := range game.Board.Cells {
		c := &game.Board.Cells[i]
		if !c.Revealed {
			hidden = c
			break
		}
	}
	require.NotNil(t, hidden)
	game.Flag(hidden.X, hidden.Y)
	assert.True(t, hidden.Flagged)
	assert.Equal(t, 9, game.MinesRemaining())
	game.Flag(hidden.X, hidden.Y)
	assert.False(t, hidden.Flagged)

	// flagging a revealed cell is a no-op
	game.Flag(0, 0)
	assert.False(t, game.Board.At(0, 0).Flagged)
}

func TestOverFlaggingGoesNegative(t *testing.T) {
	t.Parallel()

	game, r := newTestGame(t, GameParams{Rows: 4, Cols: 4, MineCount: 1})
	game.Open(0, 0, r)

	flagged := 0
	for i := range game.Board.Cells {
		c := game.Board.Cells[i]
		if !c.Revealed {
			game.Flag(c.X, c.Y)
			flagged++
		}
	}
	if flagged > 1 {
		assert.Negative(t, game.MinesRemaining())
	}
	assert.Equal(t, flagged, game.Board.CountFlagged())
}

func TestCountFlaggedUnaffectedByReveals(t *testing.T) {
	t.Parallel()

	game, r := newTestGame(t, Intermediate)
	game.Open(8, 8, r)

	mines := minePoints(game)
	require.NotEmpty(t, mines)
	game.Flag(mines[0].X, mines[0].Y)
	before := game.Board.CountFlagged()

	for x := range game.Cols {
		game.Open(x, 0, r)
		if game.Status.Terminal() {
			break
		}
	}
	if game.Status == Playing {
		assert.Equal(t, before, game.Board.CountFlagged())
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	t.Parallel()

	game, r := newTestGame(t, Beginner)
	game.Open(4, 4, r)
	game.Flag(0, 8)

	b, err := game.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeGameState(b)
	require.NoError(t, err)

	assert.Equal(t, game.GameParams, decoded.GameParams)
	assert.Equal(t, game.Status, decoded.Status)
	assert.Equal(t, game.Started, decoded.Started)
	assert.Equal(t, game.Board.Cells, decoded.Board.Cells)
}

func TestClone(t *testing.T) {
	t.Parallel()

	game, r := newTestGame(t, Beginner)
	game.Open(4, 4, r)

	clone := game.Clone()
	clone.Board.ToggleFlag(0, 0)
	clone.Status = Lost

	assert.False(t, game.Board.At(0, 0).Flagged, "clone must not alias the board")
	assert.Equal(t, Playing, game.Status)
}
