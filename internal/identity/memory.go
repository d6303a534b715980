package identity

import (
	"context"
	"errors"
	"sync"
)

// InMemory is the canonical Store: a process-local map. Durable
// identity storage is deliberately out of scope; swapping in a durable
// backend only requires another Store implementation.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewInMemory() *InMemory {
	return &InMemory{
		records: make(map[string]Record),
	}
}

func (s *InMemory) Put(ctx context.Context, discordUserID string, r Record) error {
	if discordUserID == "" {
		return errors.New("identity: missing discord user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[discordUserID] = r
	return nil
}

// Get returns the record for a user, or nil when none exists.
func (s *InMemory) Get(ctx context.Context, discordUserID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[discordUserID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}
