package mines

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
)

type Status int8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// GameState is one minesweeper game: a board plus the state machine that
// sequences mine placement, reveals, flags and win/loss detection.
//
// Mines are placed lazily on the first Open, excluding the opened cell, so
// the first click can never hit a mine. Started tracks whether that has
// happened yet.
type GameState struct {
	GameParams
	Board   *Board
	Status  Status
	Started bool
}

func NewGame(params GameParams) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &GameState{
		GameParams: params,
		Board:      NewBoard(params.Rows, params.Cols),
	}, nil
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (g GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Open handles a primary action on (x, y). Out-of-range coordinates, flagged
// or already-revealed cells, and any action outside the Playing state are
// silently ignored.
func (g *GameState) Open(x, y int, r *rand.Rand) {
	if g.Status != Playing || !g.Board.InBounds(x, y) {
		return
	}
	c := g.Board.At(x, y)
	if c.Flagged || c.Revealed {
		return
	}

	if !g.Started {
		g.Board.PlaceMines(g.MineCount, Point{x, y}, r)
		g.Started = true
	}

	if c.Mine {
		c.Revealed = true
		g.revealMines()
		g.Status = Lost
		return
	}

	g.Board.Reveal(x, y)

	if g.Board.AllSafeRevealed() {
		g.flagMines()
		g.Status = Won
	}
}

// Flag handles a secondary action on (x, y). Flagging only works once the
// first cell has been opened and while the game is still going; revealed
// cells stay unflaggable.
func (g *GameState) Flag(x, y int) {
	if g.Status != Playing || !g.Started {
		return
	}
	g.Board.ToggleFlag(x, y)
}

// MinesRemaining may go negative when the player has flagged more cells than
// there are mines; the count is reported as-is.
func (g *GameState) MinesRemaining() int {
	return g.MineCount - g.Board.CountFlagged()
}

// revealMines exposes every mine on a lost game. Flag state is left alone so
// the player can see which of their flags were right.
func (g *GameState) revealMines() {
	for i := range g.Board.Cells {
		if g.Board.Cells[i].Mine {
			g.Board.Cells[i].Revealed = true
		}
	}
}

// flagMines marks every mine on a won game, the usual auto-flag courtesy.
func (g *GameState) flagMines() {
	for i := range g.Board.Cells {
		if g.Board.Cells[i].Mine {
			g.Board.Cells[i].Flagged = true
		}
	}
}

// Clone deep-copies the game by round-tripping the encoding Bytes produces.
// Session snapshots are handed out this way. A GameState is a tree of
// exported fields, so the round trip cannot fail.
func (g *GameState) Clone() *GameState {
	buf, err := g.Bytes()
	if err != nil {
		panic(err)
	}
	clone, err := DecodeGameState(buf)
	if err != nil {
		panic(err)
	}
	return clone
}
