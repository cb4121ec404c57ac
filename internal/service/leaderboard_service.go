package service

import (
	"sort"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/domain/repository"
)

// UnknownUserName подставляется, когда результат ссылается на
// несуществующего пользователя (например, удаленного).
const UnknownUserName = "Unknown User"

// LeaderboardEntry — строка лидерборда: суммарный счет пользователя
// по всем его завершенным попыткам.
type LeaderboardEntry struct {
	UserID           uint   `json:"user_id"`
	Name             string `json:"name"`
	TotalScore       int    `json:"total_score"`
	CompletedQuizzes int    `json:"completed_quizzes"`
}

// ComputeLeaderboard агрегирует результаты в лидерборд. Функция чистая:
// порядок входных срезов не влияет на итог. Каждая попытка учитывается,
// повторные прохождения одной викторины суммируются.
//
// Порядок строк детерминирован: по total_score убыв., при равенстве —
// по completed_quizzes возр. (меньше попыток за тот же счет — выше),
// при полном равенстве — по user_id возр.
func ComputeLeaderboard(results []entity.QuizResult, users []entity.User) []LeaderboardEntry {
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	byUser := make(map[uint]*LeaderboardEntry)
	for _, r := range results {
		entry, ok := byUser[r.UserID]
		if !ok {
			name, found := names[r.UserID]
			if !found {
				name = UnknownUserName
			}
			entry = &LeaderboardEntry{UserID: r.UserID, Name: name}
			byUser[r.UserID] = entry
		}
		entry.TotalScore += r.CorrectAnswers
		entry.CompletedQuizzes++
	}

	board := make([]LeaderboardEntry, 0, len(byUser))
	for _, entry := range byUser {
		board = append(board, *entry)
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].TotalScore != board[j].TotalScore {
			return board[i].TotalScore > board[j].TotalScore
		}
		if board[i].CompletedQuizzes != board[j].CompletedQuizzes {
			return board[i].CompletedQuizzes < board[j].CompletedQuizzes
		}
		return board[i].UserID < board[j].UserID
	})

	return board
}

// LeaderboardService строит лидерборд по свежему снимку результатов
type LeaderboardService struct {
	resultRepo repository.ResultRepository
	userRepo   repository.UserRepository
}

// NewLeaderboardService создает новый сервис лидерборда
func NewLeaderboardService(
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
) *LeaderboardService {
	return &LeaderboardService{
		resultRepo: resultRepo,
		userRepo:   userRepo,
	}
}

// GetLeaderboard возвращает актуальный лидерборд.
// Агрегация выполняется на каждый запрос: данных немного, а результат
// всегда отражает последние завершенные попытки.
func (s *LeaderboardService) GetLeaderboard() ([]LeaderboardEntry, error) {
	results, err := s.resultRepo.ListAll()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return ComputeLeaderboard(results, users), nil
}
