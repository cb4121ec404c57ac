package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// MockResultRepository - мок для repository.ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Save(result *entity.QuizResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockResultRepository) GetByUser(userID uint, limit, offset int) ([]entity.QuizResult, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.QuizResult), args.Get(1).(int64), args.Error(2)
}

func (m *MockResultRepository) GetByQuiz(quizID uint, limit, offset int) ([]entity.QuizResult, int64, error) {
	args := m.Called(quizID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.QuizResult), args.Get(1).(int64), args.Error(2)
}

func (m *MockResultRepository) ListAll() ([]entity.QuizResult, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

// MockUserRepository - мок для repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByApprovalToken(token string) (*entity.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateApproval(userID uint, status string) error {
	args := m.Called(userID, status)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) List(limit, offset int) ([]entity.User, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ListAll() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func result(userID, quizID uint, correct, total int) entity.QuizResult {
	return entity.QuizResult{
		UserID:         userID,
		QuizID:         quizID,
		CorrectAnswers: correct,
		TotalQuestions: total,
		CompletedAt:    time.Now(),
	}
}

func TestComputeLeaderboard_EmptyInput(t *testing.T) {
	board := ComputeLeaderboard(nil, nil)

	require.NotNil(t, board)
	assert.Empty(t, board)
}

func TestComputeLeaderboard_AggregatesByUser(t *testing.T) {
	users := []entity.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}
	// Алиса прошла две викторины, Боб — одну, но с большим счетом
	results := []entity.QuizResult{
		result(1, 10, 5, 10),
		result(1, 11, 3, 5),
		result(2, 10, 10, 10),
	}

	board := ComputeLeaderboard(results, users)

	require.Len(t, board, 2)
	assert.Equal(t, "Bob", board[0].Name)
	assert.Equal(t, 10, board[0].TotalScore)
	assert.Equal(t, 1, board[0].CompletedQuizzes)
	assert.Equal(t, "Alice", board[1].Name)
	assert.Equal(t, 8, board[1].TotalScore)
	assert.Equal(t, 2, board[1].CompletedQuizzes)
}

func TestComputeLeaderboard_RepeatAttemptsAllCounted(t *testing.T) {
	users := []entity.User{{ID: 1, Name: "Alice"}}
	// Три прохождения одной и той же викторины суммируются
	results := []entity.QuizResult{
		result(1, 10, 2, 5),
		result(1, 10, 4, 5),
		result(1, 10, 5, 5),
	}

	board := ComputeLeaderboard(results, users)

	require.Len(t, board, 1)
	assert.Equal(t, 11, board[0].TotalScore)
	assert.Equal(t, 3, board[0].CompletedQuizzes)
}

func TestComputeLeaderboard_UnknownUserFallback(t *testing.T) {
	// Пользователь 42 удален, его результаты остались
	results := []entity.QuizResult{result(42, 10, 7, 10)}

	board := ComputeLeaderboard(results, nil)

	require.Len(t, board, 1)
	assert.Equal(t, UnknownUserName, board[0].Name)
	assert.Equal(t, uint(42), board[0].UserID)
	assert.Equal(t, 7, board[0].TotalScore)
}

func TestComputeLeaderboard_OrderIndependent(t *testing.T) {
	users := []entity.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Carol"},
	}
	results := []entity.QuizResult{
		result(1, 10, 5, 10),
		result(2, 10, 9, 10),
		result(3, 11, 5, 10),
		result(1, 11, 4, 10),
	}
	reversed := make([]entity.QuizResult, len(results))
	for i, r := range results {
		reversed[len(results)-1-i] = r
	}

	assert.Equal(t, ComputeLeaderboard(results, users), ComputeLeaderboard(reversed, users))
}

func TestComputeLeaderboard_DeterministicTieBreak(t *testing.T) {
	users := []entity.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Carol"},
	}
	// Все трое набрали 6 очков: Боб за одну попытку, Алиса и Кэрол за две
	results := []entity.QuizResult{
		result(1, 10, 3, 5),
		result(1, 11, 3, 5),
		result(2, 10, 6, 10),
		result(3, 10, 2, 5),
		result(3, 11, 4, 5),
	}

	board := ComputeLeaderboard(results, users)

	require.Len(t, board, 3)
	assert.Equal(t, uint(2), board[0].UserID) // меньше попыток — выше
	assert.Equal(t, uint(1), board[1].UserID) // при полном равенстве — по user_id
	assert.Equal(t, uint(3), board[2].UserID)
}

func TestLeaderboardService_GetLeaderboard(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	mockUserRepo := new(MockUserRepository)
	leaderboardService := NewLeaderboardService(mockResultRepo, mockUserRepo)

	mockResultRepo.On("ListAll").Return([]entity.QuizResult{result(1, 10, 8, 10)}, nil)
	mockUserRepo.On("ListAll").Return([]entity.User{{ID: 1, Name: "Alice"}}, nil)

	board, err := leaderboardService.GetLeaderboard()

	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "Alice", board[0].Name)
	mockResultRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestLeaderboardService_ResultsError(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	mockUserRepo := new(MockUserRepository)
	leaderboardService := NewLeaderboardService(mockResultRepo, mockUserRepo)

	mockResultRepo.On("ListAll").Return(nil, errors.New("db down"))

	board, err := leaderboardService.GetLeaderboard()

	assert.Error(t, err)
	assert.Nil(t, board)
}
