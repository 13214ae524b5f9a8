package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/psokolov/sweeper/internal/mines"
	"github.com/psokolov/sweeper/internal/session"
)

// Websocket command protocol, one command per line:
//
//	g            fetch current state
//	o <x> <y>    open a cell
//	f <x> <y>    toggle a flag
//	r            restart the session
//	d <preset>   change difficulty
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"r": 0,
	"d": 1,
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func runCommand(s *session.Session, c string) (session.Snapshot, error) {
	parts := strings.Split(strings.TrimSpace(c), " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return session.Snapshot{}, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return session.Snapshot{}, fmt.Errorf("invalid number of arguments")
	}

	switch parts[0] {
	case "g":
		return s.Snapshot(), nil
	case "o":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return session.Snapshot{}, err
		}
		return s.Open(x, y), nil
	case "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return session.Snapshot{}, err
		}
		return s.Flag(x, y), nil
	case "r":
		return s.Restart(), nil
	case "d":
		params, err := mines.PresetByName(parts[1])
		if err != nil {
			return session.Snapshot{}, err
		}
		return s.ChangeDifficulty(params)
	}
	return session.Snapshot{}, fmt.Errorf("invalid command")
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.findOwnedSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		var snap session.Snapshot
		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			snap, err = runCommand(s, line)
			if err != nil {
				g.logger.Debug("rejected ws command", "command", line, "error", err)
				if err := c.WriteJSON(wrapError(err)); err != nil {
					return
				}
				break
			}
		}
		if err != nil {
			continue
		}

		g.maybeRecordWin(r, snap)

		if err := c.WriteJSON(NewGameSessionDTO(snap)); err != nil {
			g.logger.Error("unable to write json", "error", err)
			break
		}
	}
}
