package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/psokolov/sweeper/internal/mines"
	"github.com/psokolov/sweeper/internal/repository"
)

func (g GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	if g.scores == nil {
		w.WriteHeader(http.StatusNotImplemented)
		sendErrorOrLog(w, g.logger, fmt.Errorf("highscores are not enabled"))
		return
	}

	filter := repository.HighscoreFilter{Limit: 25}

	if preset := r.URL.Query().Get("preset"); preset != "" {
		params, err := mines.PresetByName(preset)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendErrorOrLog(w, g.logger, err)
			return
		}
		filter.GameParams = &params
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			sendErrorOrLog(w, g.logger, fmt.Errorf("limit must be a positive int"))
			return
		}
		filter.Limit = limit
	}

	scores, err := g.scores.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, scores)
}
