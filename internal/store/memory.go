package store

import (
	"context"
	"sync"
	"time"

	"wordrush/internal/domain"
)

// Memory is a map-backed store. Rounds are copied on the way in and out so
// callers never share state with the store. State is lost on restart.
type Memory struct {
	mu     sync.RWMutex
	rounds map[string]*domain.Round
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{rounds: make(map[string]*domain.Round)}
}

func (m *Memory) Get(ctx context.Context, code string) (*domain.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rounds[code]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return r.Clone(), nil
}

func (m *Memory) Put(ctx context.Context, round *domain.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rounds[round.Code] = round.Clone()
	return nil
}

func (m *Memory) Delete(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.rounds, code)
	return nil
}

func (m *Memory) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rounds), nil
}

func (m *Memory) CreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	codes := make([]string, 0)
	for code, r := range m.rounds {
		if r.CreatedAt.Before(cutoff) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func (m *Memory) Close() error {
	return nil
}
