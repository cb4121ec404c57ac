package repository

import (
	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами попыток.
// Результаты append-only: интерфейс намеренно не содержит Update/Delete.
type ResultRepository interface {
	Save(result *entity.QuizResult) error
	GetByUser(userID uint, limit, offset int) ([]entity.QuizResult, int64, error)
	GetByQuiz(quizID uint, limit, offset int) ([]entity.QuizResult, int64, error)
	// ListAll возвращает все результаты без пагинации.
	// Лидерборд агрегируется по свежему снимку при каждом запросе.
	ListAll() ([]entity.QuizResult, error)
}
