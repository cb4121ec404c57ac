package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/domain/repository"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
)

// ReadSource указывает, какой ярус ответил на запрос чтения
type ReadSource string

const (
	// ReadSourceCache — ответ отдан из Redis-кеша
	ReadSourceCache ReadSource = "cache"
	// ReadSourceDatabase — ответ отдан из PostgreSQL
	ReadSourceDatabase ReadSource = "database"
)

// QuizService предоставляет методы для работы с викторинами.
// Чтение двухъярусное: сначала кеш, при промахе или ошибке кеша — база.
// Любая ошибка кеша деградирует до чтения из базы, а не до отказа.
type QuizService struct {
	quizRepo  repository.QuizRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *QuizService {
	return &QuizService{
		quizRepo:  quizRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// cachedQuestion — форма вопроса для кеша. Отдельный тип нужен потому,
// что entity.Question прячет correct_option от API-сериализации (`json:"-"`),
// а кеш обязан хранить его, иначе восстановленная викторина не сможет
// засчитывать ответы.
type cachedQuestion struct {
	ID            uint               `json:"id"`
	QuizID        uint               `json:"quiz_id"`
	Position      int                `json:"position"`
	Text          string             `json:"text"`
	Options       entity.StringArray `json:"options"`
	CorrectOption int                `json:"correct_option"`
}

// cachedQuiz — форма викторины для кеша
type cachedQuiz struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []cachedQuestion `json:"questions"`
}

func toCachedQuiz(quiz *entity.Quiz) *cachedQuiz {
	cached := &cachedQuiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]cachedQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		cached.Questions = append(cached.Questions, cachedQuestion{
			ID:            q.ID,
			QuizID:        q.QuizID,
			Position:      q.Position,
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		})
	}
	return cached
}

func (c *cachedQuiz) toEntity() *entity.Quiz {
	quiz := &entity.Quiz{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Questions:   make([]entity.Question, 0, len(c.Questions)),
	}
	for _, q := range c.Questions {
		quiz.Questions = append(quiz.Questions, entity.Question{
			ID:            q.ID,
			QuizID:        q.QuizID,
			Position:      q.Position,
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		})
	}
	return quiz
}

func quizCacheKey(id uint) string {
	return fmt.Sprintf("quiz:%d:full", id)
}

// CreateQuiz создает новую викторину с вопросами
func (s *QuizService) CreateQuiz(title, description string, questions []entity.Question) (*entity.Quiz, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: quiz title is required", apperrors.ErrValidation)
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", apperrors.ErrValidation, i+1, err)
		}
		questions[i].Position = i
	}

	quiz := &entity.Quiz{
		Title:       title,
		Description: description,
		Questions:   questions,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuiz возвращает викторину без вопросов (метаданные для списков)
func (s *QuizService) GetQuiz(id uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(id)
}

// GetQuizWithQuestions возвращает викторину с вопросами и ярус, откуда она
// прочитана. Порядок строгий: сначала кеш, затем база; после чтения из базы
// кеш пополняется по принципу best-effort.
func (s *QuizService) GetQuizWithQuestions(id uint) (*entity.Quiz, ReadSource, error) {
	var cached cachedQuiz
	err := s.cacheRepo.GetJSON(quizCacheKey(id), &cached)
	if err == nil {
		return cached.toEntity(), ReadSourceCache, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		// Ошибка кеша не фатальна: переходим ко второму ярусу
		log.Printf("[QuizService] Ошибка чтения кеша для викторины %d: %v", id, err)
	}

	quiz, err := s.quizRepo.GetWithQuestions(id)
	if err != nil {
		return nil, "", err
	}

	if cacheErr := s.cacheRepo.SetJSON(quizCacheKey(id), toCachedQuiz(quiz), s.cacheTTL); cacheErr != nil {
		log.Printf("[QuizService] Не удалось пополнить кеш для викторины %d: %v", id, cacheErr)
	}

	return quiz, ReadSourceDatabase, nil
}

// UpdateQuiz обновляет метаданные викторины и инвалидирует кеш
func (s *QuizService) UpdateQuiz(quiz *entity.Quiz) error {
	if quiz.Title == "" {
		return fmt.Errorf("%w: quiz title is required", apperrors.ErrValidation)
	}
	if err := s.quizRepo.Update(quiz); err != nil {
		return err
	}
	s.invalidate(quiz.ID)
	return nil
}

// ReplaceQuestions атомарно заменяет набор вопросов викторины
func (s *QuizService) ReplaceQuestions(quizID uint, questions []entity.Question) error {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("%w: question %d: %v", apperrors.ErrValidation, i+1, err)
		}
	}
	if err := s.quizRepo.ReplaceQuestions(quizID, questions); err != nil {
		return err
	}
	s.invalidate(quizID)
	return nil
}

// DeleteQuiz удаляет викторину вместе с вопросами и инвалидирует кеш
func (s *QuizService) DeleteQuiz(id uint) error {
	if err := s.quizRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// ListQuizzes возвращает викторины с пагинацией
func (s *QuizService) ListQuizzes(limit, offset int) ([]entity.Quiz, int64, error) {
	return s.quizRepo.List(limit, offset)
}

func (s *QuizService) invalidate(id uint) {
	if err := s.cacheRepo.Delete(quizCacheKey(id)); err != nil {
		log.Printf("[QuizService] Не удалось инвалидировать кеш викторины %d: %v", id, err)
	}
}
