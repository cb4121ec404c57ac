package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Save сохраняет итог завершенной попытки. Только вставка: результаты
// никогда не редактируются и не удаляются этим сервисом.
func (r *ResultRepo) Save(result *entity.QuizResult) error {
	return r.db.Create(result).Error
}

// GetByUser возвращает результаты пользователя с пагинацией
func (r *ResultRepo) GetByUser(userID uint, limit, offset int) ([]entity.QuizResult, int64, error) {
	var results []entity.QuizResult
	var total int64

	if err := r.db.Model(&entity.QuizResult{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// GetByQuiz возвращает результаты викторины с пагинацией
func (r *ResultRepo) GetByQuiz(quizID uint, limit, offset int) ([]entity.QuizResult, int64, error) {
	var results []entity.QuizResult
	var total int64

	if err := r.db.Model(&entity.QuizResult{}).Where("quiz_id = ?", quizID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("quiz_id = ?", quizID).
		Order("completed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// ListAll возвращает все результаты. Лидерборд агрегирует свежий снимок
// при каждом запросе; пустой слайс — валидный результат.
func (r *ResultRepo) ListAll() ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	err := r.db.Order("completed_at ASC").Find(&results).Error
	return results, err
}
