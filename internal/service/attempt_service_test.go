package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
	"github.com/yourusername/ecg-portal/internal/service/quizsession"
)

// fakeQuizReader отдает заранее заданные викторины без кеша и базы
type fakeQuizReader struct {
	quizzes map[uint]*entity.Quiz
}

func (f *fakeQuizReader) GetQuizWithQuestions(id uint) (*entity.Quiz, ReadSource, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, "", apperrors.ErrNotFound
	}
	return quiz, ReadSourceDatabase, nil
}

// fakeAttemptStore - простое map-хранилище для тестов сервиса
type fakeAttemptStore struct {
	attempts map[string]Attempt
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{attempts: make(map[string]Attempt)}
}

func (f *fakeAttemptStore) Save(attempt *Attempt) error {
	f.attempts[attempt.ID] = *attempt
	return nil
}

func (f *fakeAttemptStore) Get(id string) (*Attempt, error) {
	attempt, ok := f.attempts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &attempt, nil
}

func (f *fakeAttemptStore) Delete(id string) error {
	delete(f.attempts, id)
	return nil
}

func attemptTestQuiz(id uint, correctOptions ...int) *entity.Quiz {
	quiz := &entity.Quiz{ID: id, Title: "Основы ЭКГ"}
	for i, correct := range correctOptions {
		quiz.Questions = append(quiz.Questions, entity.Question{
			ID:            uint(i + 1),
			QuizID:        id,
			Position:      i,
			Text:          "Вопрос",
			Options:       entity.StringArray{"A", "B", "C"},
			CorrectOption: correct,
		})
	}
	return quiz
}

func newAttemptServiceForTest(quiz *entity.Quiz, resultRepo *MockResultRepository) *AttemptService {
	reader := &fakeQuizReader{quizzes: map[uint]*entity.Quiz{quiz.ID: quiz}}
	return NewAttemptService(reader, newFakeAttemptStore(), resultRepo)
}

func TestAttemptService_FullFlow(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	quiz := attemptTestQuiz(1, 0, 1)
	attemptService := newAttemptServiceForTest(quiz, mockResultRepo)

	mockResultRepo.On("Save", mock.MatchedBy(func(r *entity.QuizResult) bool {
		return r.UserID == 7 && r.QuizID == 1 && r.CorrectAnswers == 1 && r.TotalQuestions == 2
	})).Return(nil)

	attempt, err := attemptService.StartAttempt(7, 1)
	require.NoError(t, err)
	require.NotEmpty(t, attempt.ID)
	assert.False(t, attempt.State.Completed)

	// Первый вопрос: правильный ответ
	require.NoError(t, attemptService.SelectAnswer(7, attempt.ID, 0))
	outcome, err := attemptService.Advance(7, attempt.ID)
	require.NoError(t, err)
	assert.False(t, outcome.Completed)

	// Второй вопрос: неправильный ответ
	require.NoError(t, attemptService.SelectAnswer(7, attempt.ID, 0))
	outcome, err = attemptService.Advance(7, attempt.ID)
	require.NoError(t, err)
	require.True(t, outcome.Completed)
	assert.Equal(t, quizsession.Score{Correct: 1, Total: 2}, outcome.Score)
	assert.False(t, outcome.SaveFailed)

	score, err := attemptService.Result(7, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, quizsession.Score{Correct: 1, Total: 2}, score)
	mockResultRepo.AssertExpectations(t)
}

func TestAttemptService_AdvanceWithoutAnswer(t *testing.T) {
	attemptService := newAttemptServiceForTest(attemptTestQuiz(1, 0), new(MockResultRepository))

	attempt, err := attemptService.StartAttempt(7, 1)
	require.NoError(t, err)

	outcome, err := attemptService.Advance(7, attempt.ID)

	assert.ErrorIs(t, err, quizsession.ErrIncompleteAnswer)
	assert.Nil(t, outcome)

	// Состояние попытки не изменилось
	question, err := attemptService.CurrentQuestion(7, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, question.Index)
	assert.Equal(t, quizsession.Unanswered, question.Selected)
}

func TestAttemptService_RetreatKeepsAnswers(t *testing.T) {
	attemptService := newAttemptServiceForTest(attemptTestQuiz(1, 0, 1), new(MockResultRepository))

	attempt, err := attemptService.StartAttempt(7, 1)
	require.NoError(t, err)

	require.NoError(t, attemptService.SelectAnswer(7, attempt.ID, 2))
	_, err = attemptService.Advance(7, attempt.ID)
	require.NoError(t, err)
	require.NoError(t, attemptService.Retreat(7, attempt.ID))

	question, err := attemptService.CurrentQuestion(7, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, question.Index)
	assert.Equal(t, 2, question.Selected)
	assert.Equal(t, 2, question.Total)
}

func TestAttemptService_OwnershipCheck(t *testing.T) {
	attemptService := newAttemptServiceForTest(attemptTestQuiz(1, 0), new(MockResultRepository))

	attempt, err := attemptService.StartAttempt(7, 1)
	require.NoError(t, err)

	// Другой пользователь не видит чужую попытку
	err = attemptService.SelectAnswer(8, attempt.ID, 0)
	assert.ErrorIs(t, err, ErrAttemptOwnership)
}

func TestAttemptService_UnknownAttempt(t *testing.T) {
	attemptService := newAttemptServiceForTest(attemptTestQuiz(1, 0), new(MockResultRepository))

	err := attemptService.SelectAnswer(7, "no-such-attempt", 0)

	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestAttemptService_SaveFailureStillReturnsScore(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	attemptService := newAttemptServiceForTest(attemptTestQuiz(1, 0), mockResultRepo)

	mockResultRepo.On("Save", mock.Anything).Return(errors.New("db down"))

	attempt, err := attemptService.StartAttempt(7, 1)
	require.NoError(t, err)
	require.NoError(t, attemptService.SelectAnswer(7, attempt.ID, 0))

	outcome, err := attemptService.Advance(7, attempt.ID)

	// Отказ базы не роняет завершение: счет отдается с предупреждением
	require.NoError(t, err)
	require.True(t, outcome.Completed)
	assert.Equal(t, quizsession.Score{Correct: 1, Total: 1}, outcome.Score)
	assert.True(t, outcome.SaveFailed)
}

func TestAttemptService_EmptyQuizCompletesImmediately(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	attemptService := newAttemptServiceForTest(attemptTestQuiz(1), mockResultRepo)

	mockResultRepo.On("Save", mock.MatchedBy(func(r *entity.QuizResult) bool {
		return r.CorrectAnswers == 0 && r.TotalQuestions == 0
	})).Return(nil)

	attempt, err := attemptService.StartAttempt(7, 1)
	require.NoError(t, err)
	assert.True(t, attempt.State.Completed)

	score, err := attemptService.Result(7, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, quizsession.Score{Correct: 0, Total: 0}, score)
	mockResultRepo.AssertExpectations(t)
}

func TestAttemptService_QuizChangedInvalidatesAttempt(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	quiz := attemptTestQuiz(1, 0, 1)
	reader := &fakeQuizReader{quizzes: map[uint]*entity.Quiz{1: quiz}}
	attemptService := NewAttemptService(reader, newFakeAttemptStore(), mockResultRepo)

	attempt, err := attemptService.StartAttempt(7, 1)
	require.NoError(t, err)

	// Администратор заменил набор вопросов после старта попытки
	reader.quizzes[1] = attemptTestQuiz(1, 0)

	err = attemptService.SelectAnswer(7, attempt.ID, 0)
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}
