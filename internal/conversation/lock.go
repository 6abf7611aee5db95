package conversation

import "sync"

// KeyedMutex serializes work per chat while letting different chats proceed in parallel
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[int64]*keyedLock)}
}

// Lock acquires the chat's lock and returns its unlock function
func (k *KeyedMutex) Lock(chatID int64) func() {
	k.mu.Lock()
	l, ok := k.locks[chatID]
	if !ok {
		l = &keyedLock{}
		k.locks[chatID] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, chatID)
		}
		k.mu.Unlock()
	}
}
