package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
)

// MockQuizRepository - мок для repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuizRepository) List(limit, offset int) ([]entity.Quiz, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepository) ReplaceQuestions(quizID uint, questions []entity.Question) error {
	args := m.Called(quizID, questions)
	return args.Error(0)
}

// MockCacheRepository - мок для repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func serviceTestQuiz() *entity.Quiz {
	return &entity.Quiz{
		ID:    1,
		Title: "Основы ЭКГ",
		Questions: []entity.Question{
			{
				ID:            10,
				QuizID:        1,
				Position:      0,
				Text:          "Что показывает зубец P?",
				Options:       entity.StringArray{"A", "B", "C"},
				CorrectOption: 2,
			},
		},
	}
}

func TestQuizService_GetQuizWithQuestions_DatabaseOnMiss(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)
	quizService := NewQuizService(mockQuizRepo, mockCacheRepo, 5*time.Minute)

	quiz := serviceTestQuiz()
	mockCacheRepo.On("GetJSON", "quiz:1:full", mock.Anything).Return(apperrors.ErrNotFound)
	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(quiz, nil)
	mockCacheRepo.On("SetJSON", "quiz:1:full", mock.Anything, 5*time.Minute).Return(nil)

	got, source, err := quizService.GetQuizWithQuestions(1)

	require.NoError(t, err)
	assert.Equal(t, ReadSourceDatabase, source)
	assert.Equal(t, quiz, got)
	mockCacheRepo.AssertExpectations(t)
	mockQuizRepo.AssertExpectations(t)
}

func TestQuizService_GetQuizWithQuestions_CacheHit(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)
	quizService := NewQuizService(mockQuizRepo, mockCacheRepo, 5*time.Minute)

	quiz := serviceTestQuiz()
	mockCacheRepo.On("GetJSON", "quiz:1:full", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*cachedQuiz)
			*dest = *toCachedQuiz(quiz)
		}).
		Return(nil)

	got, source, err := quizService.GetQuizWithQuestions(1)

	require.NoError(t, err)
	assert.Equal(t, ReadSourceCache, source)
	assert.Equal(t, quiz.ID, got.ID)
	require.Len(t, got.Questions, 1)
	// correct_option обязан пережить кеширование, иначе ответы не засчитаются
	assert.Equal(t, 2, got.Questions[0].CorrectOption)
	mockQuizRepo.AssertNotCalled(t, "GetWithQuestions", mock.Anything)
}

func TestQuizService_GetQuizWithQuestions_CacheErrorFallsBack(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)
	quizService := NewQuizService(mockQuizRepo, mockCacheRepo, 5*time.Minute)

	quiz := serviceTestQuiz()
	// Redis лежит: чтение деградирует до базы, а не до отказа
	mockCacheRepo.On("GetJSON", "quiz:1:full", mock.Anything).Return(errors.New("connection refused"))
	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(quiz, nil)
	mockCacheRepo.On("SetJSON", "quiz:1:full", mock.Anything, 5*time.Minute).Return(errors.New("connection refused"))

	got, source, err := quizService.GetQuizWithQuestions(1)

	require.NoError(t, err)
	assert.Equal(t, ReadSourceDatabase, source)
	assert.Equal(t, quiz, got)
}

func TestQuizService_CachedFormPreservesCorrectOption(t *testing.T) {
	quiz := serviceTestQuiz()

	data, err := json.Marshal(toCachedQuiz(quiz))
	require.NoError(t, err)

	var cached cachedQuiz
	require.NoError(t, json.Unmarshal(data, &cached))

	restored := cached.toEntity()
	require.Len(t, restored.Questions, 1)
	assert.Equal(t, 2, restored.Questions[0].CorrectOption)
	assert.Equal(t, quiz.Questions[0].Options, restored.Questions[0].Options)
}

func TestQuizService_DeleteInvalidatesCache(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)
	quizService := NewQuizService(mockQuizRepo, mockCacheRepo, 5*time.Minute)

	mockQuizRepo.On("Delete", uint(1)).Return(nil)
	mockCacheRepo.On("Delete", "quiz:1:full").Return(nil)

	require.NoError(t, quizService.DeleteQuiz(1))
	mockCacheRepo.AssertExpectations(t)
}

func TestQuizService_CreateQuizValidatesQuestions(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)
	quizService := NewQuizService(mockQuizRepo, mockCacheRepo, 5*time.Minute)

	_, err := quizService.CreateQuiz("Основы ЭКГ", "", []entity.Question{
		{Text: "Вопрос", Options: entity.StringArray{"A"}, CorrectOption: 0},
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockQuizRepo.AssertNotCalled(t, "Create", mock.Anything)
}
