// Package memory содержит in-memory реализации хранилищ
// для тестов и локальной разработки без Redis.
package memory

import (
	"sync"

	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
	"github.com/yourusername/ecg-portal/internal/service"
)

// AttemptStore реализует service.AttemptStore в памяти процесса
type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]service.Attempt
}

// NewAttemptStore создает новое in-memory хранилище попыток
func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		attempts: make(map[string]service.Attempt),
	}
}

// Save сохраняет копию попытки
func (s *AttemptStore) Save(attempt *service.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *attempt
	stored.State.Answers = append([]int(nil), attempt.State.Answers...)
	s.attempts[attempt.ID] = stored
	return nil
}

// Get возвращает копию попытки по ID
func (s *AttemptStore) Get(id string) (*service.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.attempts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := stored
	out.State.Answers = append([]int(nil), stored.State.Answers...)
	return &out, nil
}

// Delete удаляет попытку
func (s *AttemptStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.attempts, id)
	return nil
}
