package progress

import (
	"context"
	"sync"
)

// MemoryStore хранилище прогресса в памяти процесса.
// Используется в тестах и когда Redis выключен в конфигурации.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load возвращает копию сохранённых данных
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, ErrProgressNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save сохраняет копию данных по ключу
func (s *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), data...)
	return nil
}
