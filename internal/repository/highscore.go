package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/psokolov/sweeper/internal/mines"
)

// Highscore is one recorded win. Only finished, won games land here; live
// game state never touches the database.
type Highscore struct {
	GameSessionId string  `json:"game_session_id"`
	Height        int     `json:"rows"`
	Width         int     `json:"cols"`
	MineCount     int     `json:"mine_count"`
	PlaytimeSec   float64 `json:"playtime_sec"`
}

type HighscoreFilter struct {
	GameParams *mines.GameParams
	Limit      int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"height = @height",
			"width = @width",
			"mine_count = @mineCount",
		)
		rows, cols, mineCount := f.GameParams.Unpack()
		args["height"] = rows
		args["width"] = cols
		args["mineCount"] = mineCount
	}
	return strings.Join(clauses, " AND "), args
}

type RecordWinParams struct {
	GameSessionId string
	GameParams    mines.GameParams
	PlaytimeSec   int
}

// RecordWin inserts a win record. Recording the same session twice is not an
// error; the duplicate is dropped.
func (q Queries) RecordWin(ctx context.Context, params RecordWinParams) error {
	rows, cols, mineCount := params.GameParams.Unpack()
	_, err := q.db.Exec(
		ctx,
		`INSERT INTO highscore (
			game_session_id, height, width, mine_count, playtime_sec
		)
		VALUES (
			@game_session_id, @height, @width, @mine_count, @playtime_sec
		);`,
		pgx.NamedArgs{
			"game_session_id": params.GameSessionId,
			"height":          rows,
			"width":           cols,
			"mine_count":      mineCount,
			"playtime_sec":    params.PlaytimeSec,
		},
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return nil
	}
	return err
}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_session_id,
		height,
		width,
		mine_count,
		playtime_sec
	FROM highscore
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY playtime_sec"

	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}
	query += ";"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
