package handlers

import (
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/psokolov/sweeper/internal/mines"
	"github.com/psokolov/sweeper/internal/session"
)

// CellView is the wire encoding of one cell as the player may see it:
// negative values are covered states, 0-8 are open adjacency counts, 64 is
// an exposed mine. Hidden mines are indistinguishable from hidden cells;
// the engine itself discloses mines on loss (revealed) and win (flagged),
// so a terminal grid needs no special-casing here.
type CellView int8

const (
	ViewHidden CellView = -2
	ViewFlag   CellView = -1
	ViewMine   CellView = 64
)

func (v CellView) String() string {
	switch {
	case v == ViewHidden:
		return " "
	case v == ViewFlag:
		return "*"
	case v == ViewMine:
		return "!"
	case 0 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "?"
	}
}

type GridView []CellView

func (g GridView) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			b.WriteString(g[i].String() + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func NewGridView(b *mines.Board) GridView {
	grid := make(GridView, len(b.Cells))
	for i := range b.Cells {
		c := b.Cells[i]
		switch {
		case c.Revealed && c.Mine:
			grid[i] = ViewMine
		case c.Revealed:
			grid[i] = CellView(c.Adjacent)
		case c.Flagged:
			grid[i] = ViewFlag
		default:
			grid[i] = ViewHidden
		}
	}
	return grid
}

type GameSessionDTO struct {
	GameSessionId  string   `json:"game_session_id"`
	Seed           string   `json:"seed"`
	Grid           GridView `json:"grid"`
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	MineCount      int      `json:"mine_count"`
	MinesRemaining int      `json:"mines_remaining"`
	Status         string   `json:"status"`
	Started        bool     `json:"started"`
	ElapsedSeconds int      `json:"elapsed_seconds"`
}

func NewGameSessionDTO(snap session.Snapshot) *GameSessionDTO {
	return &GameSessionDTO{
		GameSessionId:  snap.Id,
		Seed:           snap.Game.Seed(),
		Grid:           NewGridView(snap.Game.Board),
		Rows:           snap.Game.Rows,
		Cols:           snap.Game.Cols,
		MineCount:      snap.Game.MineCount,
		MinesRemaining: snap.MinesRemaining,
		Status:         snap.Game.Status.String(),
		Started:        snap.Game.Started,
		ElapsedSeconds: snap.ElapsedSeconds,
	}
}

type NewGameDTO struct {
	Preset    string `schema:"preset"`
	Seed      string `schema:"seed"`
	Rows      int    `schema:"rows"`
	Cols      int    `schema:"cols"`
	MineCount int    `schema:"mine_count"`
}

// Params resolves the requested difficulty: a named preset wins, then a
// params seed as reported back in the session DTO, then explicit dimensions.
func (dto NewGameDTO) Params() (mines.GameParams, error) {
	if dto.Preset != "" {
		return mines.PresetByName(dto.Preset)
	}
	if dto.Seed != "" {
		params, err := mines.ParseSeed(dto.Seed)
		if err != nil {
			return mines.GameParams{}, err
		}
		return *params, nil
	}
	params := mines.GameParams{
		Rows:      dto.Rows,
		Cols:      dto.Cols,
		MineCount: dto.MineCount,
	}
	return params, params.Validate()
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto NewGameDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var pos Position
	err := dec.Decode(&pos, src)
	return pos, err
}
