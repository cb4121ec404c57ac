package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
	"github.com/yourusername/ecg-portal/internal/service"
)

// AttemptStore реализует service.AttemptStore поверх Redis.
// Попытки живут с TTL: заброшенная попытка истекает сама,
// явной уборки не требуется.
type AttemptStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	ctx    context.Context
}

// NewAttemptStore создает новое хранилище попыток
func NewAttemptStore(client redis.UniversalClient, ttl time.Duration) (*AttemptStore, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for AttemptStore")
	}
	return &AttemptStore{
		client: client,
		ttl:    ttl,
		ctx:    context.Background(),
	}, nil
}

func attemptKey(id string) string {
	return fmt.Sprintf("attempt:%s", id)
}

// Save сохраняет попытку, продлевая TTL
func (s *AttemptStore) Save(attempt *service.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	return s.client.Set(s.ctx, attemptKey(attempt.ID), data, s.ttl).Err()
}

// Get возвращает попытку по ID
func (s *AttemptStore) Get(id string) (*service.Attempt, error) {
	data, err := s.client.Get(s.ctx, attemptKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	var attempt service.Attempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Delete удаляет попытку
func (s *AttemptStore) Delete(id string) error {
	return s.client.Del(s.ctx, attemptKey(id)).Err()
}
