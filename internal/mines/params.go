package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Rows, Cols, MineCount int
}

// The three fixed difficulty presets.
var (
	Beginner     = GameParams{Rows: 9, Cols: 9, MineCount: 10}
	Intermediate = GameParams{Rows: 16, Cols: 16, MineCount: 40}
	Expert       = GameParams{Rows: 16, Cols: 30, MineCount: 99}
)

var presets = map[string]GameParams{
	"beginner":     Beginner,
	"intermediate": Intermediate,
	"expert":       Expert,
}

func PresetByName(name string) (GameParams, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return GameParams{}, fmt.Errorf("unknown difficulty preset %q", name)
	}
	return p, nil
}

// Validate rejects params that cannot host a game. Mine placement excludes
// the first opened cell, so at least one cell must stay free of mines;
// anything denser would make placement spin forever.
func (p GameParams) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("invalid board dimensions %dx%d", p.Cols, p.Rows)
	}
	if p.MineCount < 0 {
		return fmt.Errorf("negative mine count %d", p.MineCount)
	}
	if p.MineCount > p.Rows*p.Cols-1 {
		return fmt.Errorf(
			"%d mines do not leave a safe starting cell on a %dx%d board",
			p.MineCount, p.Cols, p.Rows,
		)
	}
	return nil
}

func (p GameParams) Unpack() (rows int, cols int, mineCount int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Rows, &p.Cols, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
