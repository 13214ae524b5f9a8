package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/psokolov/sweeper/internal/mines"
)

// Session owns one game and serializes every action on it. The board is
// mutated in place behind the mutex; reset and difficulty changes swap the
// whole game out, so a stale reference to the old game never feeds back in.
type Session struct {
	mu        sync.Mutex
	id        string
	params    mines.GameParams
	game      *mines.GameState
	rnd       *rand.Rand
	elapsed   int
	clockStop chan struct{}
	createdAt time.Time
}

// Snapshot is a consistent copy of the session's queryable state.
type Snapshot struct {
	Id             string
	Game           *mines.GameState
	MinesRemaining int
	ElapsedSeconds int
}

func New(id string, params mines.GameParams, rnd *rand.Rand) (*Session, error) {
	game, err := mines.NewGame(params)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:        id,
		params:    params,
		game:      game,
		rnd:       rnd,
		createdAt: time.Now().UTC(),
	}, nil
}

func (s *Session) Id() string {
	return s.id
}

// Open handles a primary action. The first open arms the mine field and
// starts the clock; a terminal transition stops it.
func (s *Session) Open(x, y int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Open(x, y, s.rnd)

	if s.game.Started && s.game.Status == mines.Playing {
		s.startClock()
	}
	if s.game.Status.Terminal() {
		s.stopClock()
	}
	return s.snapshot()
}

// Flag handles a secondary action.
func (s *Session) Flag(x, y int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Flag(x, y)
	return s.snapshot()
}

// Restart discards the current game and deals a fresh board under the same
// params. The clock is stopped and elapsed time zeroed.
func (s *Session) Restart() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceGame(s.params)
	return s.snapshot()
}

// ChangeDifficulty is a restart under new params.
func (s *Session) ChangeDifficulty(params mines.GameParams) (Snapshot, error) {
	if err := params.Validate(); err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = params
	s.replaceGame(params)
	return s.snapshot(), nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Close stops the clock for good, e.g. on server shutdown.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopClock()
}

func (s *Session) replaceGame(params mines.GameParams) {
	s.stopClock()
	// params were validated when the session (or the new difficulty) was
	// accepted, so this cannot fail
	game, _ := mines.NewGame(params)
	s.game = game
	s.elapsed = 0
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Id:             s.id,
		Game:           s.game.Clone(),
		MinesRemaining: s.game.MinesRemaining(),
		ElapsedSeconds: s.elapsed,
	}
}

// startClock launches the one-second ticker. Idempotent: a running clock is
// left alone, so a session never holds more than one ticker.
func (s *Session) startClock() {
	if s.clockStop != nil {
		return
	}
	stop := make(chan struct{})
	s.clockStop = stop
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.tick(stop)
			case <-stop:
				return
			}
		}
	}()
}

// stopClock cancels the ticker if one is running. Idempotent.
func (s *Session) stopClock() {
	if s.clockStop != nil {
		close(s.clockStop)
		s.clockStop = nil
	}
}

// tick increments elapsed time once per second. The owner check makes a tick
// from an already-cancelled ticker a no-op, so a clock raced by restart can
// never touch the replacement game's time.
func (s *Session) tick(owner chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clockStop != owner {
		return
	}
	if s.game.Status == mines.Playing && s.game.Started {
		s.elapsed++
	}
}
