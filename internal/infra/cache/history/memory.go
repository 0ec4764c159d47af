package history

import (
	"context"
	"sync"
)

// MemoryStore история в памяти процесса; используется, когда Redis выключен
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[int64][]Entry
	maxEntries int
}

// NewMemoryStore создает хранилище в памяти
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[int64][]Entry),
		maxEntries: maxEntries,
	}
}

// Append добавляет запись в начало списка пользователя
func (s *MemoryStore) Append(ctx context.Context, userID int64, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append([]Entry{entry}, s.entries[userID]...)
	if len(list) > s.maxEntries {
		list = list[:s.maxEntries]
	}
	s.entries[userID] = list
	return nil
}

// List возвращает копию записей пользователя, новые первыми
func (s *MemoryStore) List(ctx context.Context, userID int64) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.entries[userID]
	out := make([]Entry, len(list))
	copy(out, list)
	return out, nil
}
