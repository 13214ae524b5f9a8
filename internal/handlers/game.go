package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/psokolov/sweeper/internal/config"
	"github.com/psokolov/sweeper/internal/middleware"
	"github.com/psokolov/sweeper/internal/mines"
	"github.com/psokolov/sweeper/internal/repository"
	"github.com/psokolov/sweeper/internal/session"
)

// GameHandler exposes the board engine over HTTP. Each session is owned by
// whoever created it, vouched for by a signed cookie pair; scores is nil
// when no database is configured and win recording is skipped.
type GameHandler struct {
	logger   *slog.Logger
	sessions *session.Registry
	cookies  *config.Cookies
	ws       *config.WebSocket
	scores   *repository.Queries
}

func NewGameHandler(
	logger *slog.Logger,
	sessions *session.Registry,
	cookies *config.Cookies,
	ws *config.WebSocket,
	scores *repository.Queries,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		sessions: sessions,
		cookies:  cookies,
		ws:       ws,
		scores:   scores,
	}
}

func (g GameHandler) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /game", g.NewGame)
	mux.HandleFunc("GET /game/{id}", g.Fetch)
	mux.HandleFunc("DELETE /game/{id}", g.Forfeit)
	mux.HandleFunc("POST /game/{id}/open", g.Open)
	mux.HandleFunc("POST /game/{id}/flag", g.Flag)
	mux.HandleFunc("POST /game/{id}/restart", g.Restart)
	mux.HandleFunc("POST /game/{id}/difficulty", g.ChangeDifficulty)
	mux.HandleFunc("GET /game/{id}/connect", g.ConnectWS)
	mux.HandleFunc("GET /highscores", g.Highscores)
	return mux
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendErrorOrLog(w, g.logger, err)
		return
	}

	params, err := dto.Params()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendErrorOrLog(w, g.logger, err)
		return
	}

	s, err := g.sessions.Create(params)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendErrorOrLog(w, g.logger, err)
		return
	}

	if err := g.cookies.Grant(w, s.Id()); err != nil {
		g.sessions.Delete(s.Id())
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to grant session ownership", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.findSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}

// Forfeit removes a session entirely and revokes the ownership cookies that
// were granted for it.
func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.findOwnedSession(w, r)
	if !ok {
		return
	}
	g.sessions.Delete(s.Id())
	g.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (g GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	s, ok := g.findOwnedSession(w, r)
	if !ok {
		return
	}

	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendErrorOrLog(w, g.logger, err)
		return
	}

	snap := s.Open(pos.X, pos.Y)
	g.maybeRecordWin(r, snap)
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(snap))
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	s, ok := g.findOwnedSession(w, r)
	if !ok {
		return
	}

	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendErrorOrLog(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Flag(pos.X, pos.Y)))
}

func (g GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := g.findOwnedSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Restart()))
}

func (g GameHandler) ChangeDifficulty(w http.ResponseWriter, r *http.Request) {
	s, ok := g.findOwnedSession(w, r)
	if !ok {
		return
	}

	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendErrorOrLog(w, g.logger, err)
		return
	}

	params, err := dto.Params()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendErrorOrLog(w, g.logger, err)
		return
	}

	snap, err := s.ChangeDifficulty(params)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendErrorOrLog(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(snap))
}

func (g GameHandler) findSession(
	w http.ResponseWriter, r *http.Request,
) (*session.Session, bool) {
	s, err := g.sessions.Get(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// findOwnedSession additionally requires the caller to present the claims
// granted when the session was created.
func (g GameHandler) findOwnedSession(
	w http.ResponseWriter, r *http.Request,
) (*session.Session, bool) {
	s, ok := g.findSession(w, r)
	if !ok {
		return nil, false
	}
	owned, ok := middleware.OwnedSession(r.Context())
	if !ok || owned != s.Id() {
		w.WriteHeader(http.StatusUnauthorized)
		sendErrorOrLog(w, g.logger, fmt.Errorf("session belongs to someone else"))
		return nil, false
	}
	return s, true
}

// maybeRecordWin stores a finished win as a highscore. Failures are logged
// and swallowed: the game outcome does not depend on the database.
func (g GameHandler) maybeRecordWin(r *http.Request, snap session.Snapshot) {
	if g.scores == nil || snap.Game.Status != mines.Won {
		return
	}
	err := g.scores.RecordWin(r.Context(), repository.RecordWinParams{
		GameSessionId: snap.Id,
		GameParams:    snap.Game.GameParams,
		PlaytimeSec:   snap.ElapsedSeconds,
	})
	if err != nil {
		g.logger.Error("unable to record win", "error", err)
	}
}
