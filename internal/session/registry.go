package session

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"sync"

	"github.com/psokolov/sweeper/internal/mines"
)

var ErrNotFound = fmt.Errorf("session not found")

// Registry is the in-memory set of live sessions. Nothing here survives a
// process restart: live game state is deliberately not persisted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	rnd      *rand.Rand
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		rnd: rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		)),
	}
}

func (reg *Registry) Create(params mines.GameParams) (*Session, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var id string
	for {
		id = fmt.Sprintf("%016x", reg.rnd.Uint64())
		if _, taken := reg.sessions[id]; !taken {
			break
		}
	}

	seed1, seed2 := reg.rnd.Uint64(), reg.rnd.Uint64()
	s, err := New(id, params, rand.New(rand.NewPCG(seed1, seed2)))
	if err != nil {
		return nil, err
	}
	reg.sessions[id] = s
	return s, nil
}

func (reg *Registry) Get(id string) (*Session, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	s, ok := reg.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (reg *Registry) Delete(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if s, ok := reg.sessions[id]; ok {
		s.Close()
		delete(reg.sessions, id)
	}
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.sessions)
}

// CloseAll stops every session clock, for graceful shutdown.
func (reg *Registry) CloseAll() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, s := range reg.sessions {
		s.Close()
	}
}
