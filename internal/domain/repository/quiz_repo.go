package repository

import (
	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetWithQuestions возвращает викторину вместе с вопросами,
	// упорядоченными по position.
	GetWithQuestions(id uint) (*entity.Quiz, error)
	Update(quiz *entity.Quiz) error
	Delete(id uint) error
	List(limit, offset int) ([]entity.Quiz, int64, error)
	ReplaceQuestions(quizID uint, questions []entity.Question) error
}
