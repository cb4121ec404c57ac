package postgres

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину вместе с вопросами
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину без вопросов
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами.
// Вопросы упорядочены по position: это порядок показа и он значим.
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC")
	}).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// Update обновляет заголовок и описание викторины
func (r *QuizRepo) Update(quiz *entity.Quiz) error {
	return r.db.Model(&entity.Quiz{}).
		Where("id = ?", quiz.ID).
		Updates(map[string]interface{}{"title": quiz.Title, "description": quiz.Description}).Error
}

// Delete удаляет викторину вместе с вопросами
func (r *QuizRepo) Delete(id uint) error {
	tx := r.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during quiz delete transaction: %v", rec)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("quiz_id = ?", id).Delete(&entity.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	result := tx.Delete(&entity.Quiz{}, id)
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return apperrors.ErrNotFound
	}

	return tx.Commit().Error
}

// List возвращает викторины с пагинацией и общим количеством
func (r *QuizRepo) List(limit, offset int) ([]entity.Quiz, int64, error) {
	var quizzes []entity.Quiz
	var total int64

	if err := r.db.Model(&entity.Quiz{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quizzes).Error
	if err != nil {
		return nil, 0, err
	}

	return quizzes, total, nil
}

// ReplaceQuestions заменяет вопросы викторины новым набором в одной транзакции.
// Позиции перенумеровываются по порядку переданного слайса.
func (r *QuizRepo) ReplaceQuestions(quizID uint, questions []entity.Question) error {
	tx := r.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during question replace transaction: %v", rec)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("quiz_id = ?", quizID).Delete(&entity.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	for i := range questions {
		questions[i].ID = 0
		questions[i].QuizID = quizID
		questions[i].Position = i
	}
	if len(questions) > 0 {
		if err := tx.Create(&questions).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}
