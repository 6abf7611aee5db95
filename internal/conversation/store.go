package conversation

import (
	"sync"
	"time"

	"todobot/internal/domain"
)

// Store keeps pending conversation state per chat
type Store interface {
	// Get returns a copy of the chat's state; ok is false when the chat is idle
	Get(chatID int64) (*domain.ConversationState, bool)
	// Set stores a copy of state. An idle state deletes the entry.
	Set(chatID int64, state *domain.ConversationState)
	Delete(chatID int64)
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]*domain.ConversationState
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[int64]*domain.ConversationState),
		now:    time.Now,
	}
}

func (s *MemoryStore) Get(chatID int64) (*domain.ConversationState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[chatID]
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

func (s *MemoryStore) Set(chatID int64, state *domain.ConversationState) {
	if state == nil || state.Step == domain.StepIdle || state.Step == "" {
		s.Delete(chatID)
		return
	}

	stored := state.Clone()
	stored.UpdatedAt = s.now()

	s.mu.Lock()
	s.states[chatID] = stored
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(chatID int64) {
	s.mu.Lock()
	delete(s.states, chatID)
	s.mu.Unlock()
}

// Len returns the number of pending flows
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// Sweep removes states last updated before the given time
func (s *MemoryStore) Sweep(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for chatID, state := range s.states {
		if state.UpdatedAt.Before(before) {
			delete(s.states, chatID)
			removed++
		}
	}
	return removed
}
