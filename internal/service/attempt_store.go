package service

import (
	"time"

	"github.com/yourusername/ecg-portal/internal/service/quizsession"
)

// Attempt — попытка прохождения викторины между HTTP-запросами.
// Состояние автомата переносится снимком; сам автомат остается чистым.
type Attempt struct {
	ID        string               `json:"id"`
	UserID    uint                 `json:"user_id"`
	QuizID    uint                 `json:"quiz_id"`
	State     quizsession.Snapshot `json:"state"`
	StartedAt time.Time            `json:"started_at"`
}

// AttemptStore определяет хранилище активных попыток.
// Продакшен-реализация — Redis с TTL, тестовая — in-memory.
// Get для неизвестной или истекшей попытки возвращает apperrors.ErrNotFound.
type AttemptStore interface {
	Save(attempt *Attempt) error
	Get(id string) (*Attempt, error)
	Delete(id string) error
}
