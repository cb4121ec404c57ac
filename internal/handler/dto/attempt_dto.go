package dto

import (
	"time"

	"github.com/yourusername/ecg-portal/internal/service"
	"github.com/yourusername/ecg-portal/internal/service/quizsession"
)

// StartAttemptRequest - запрос на начало попытки
type StartAttemptRequest struct {
	QuizID uint `json:"quiz_id" binding:"required"`
}

// SelectAnswerRequest - запрос на выбор варианта ответа
type SelectAnswerRequest struct {
	// binding:"min=0" не используется: ноль — валидный индекс,
	// отрицательные значения отсекает сам автомат
	OptionIndex int `json:"option_index"`
}

// AttemptResponse представляет попытку в формате для ответа клиенту
type AttemptResponse struct {
	ID        string    `json:"id"`
	QuizID    uint      `json:"quiz_id"`
	Completed bool      `json:"completed"`
	StartedAt time.Time `json:"started_at"`
}

// AttemptQuestionResponse представляет текущий вопрос попытки.
// SelectedOption равен -1, пока выбор не сделан.
type AttemptQuestionResponse struct {
	Index          int      `json:"index"`
	Total          int      `json:"total"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	SelectedOption int      `json:"selected_option"`
}

// ScoreResponse представляет итоговый счет завершенной попытки
type ScoreResponse struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// AdvanceResponse - результат перехода к следующему вопросу.
// Warning заполняется, когда попытка завершилась, но результат
// не удалось сохранить в базу.
type AdvanceResponse struct {
	Completed bool           `json:"completed"`
	Score     *ScoreResponse `json:"score,omitempty"`
	Warning   string         `json:"warning,omitempty"`
}

// NewAttemptResponse создает DTO для попытки
func NewAttemptResponse(attempt *service.Attempt) *AttemptResponse {
	if attempt == nil {
		return nil
	}
	return &AttemptResponse{
		ID:        attempt.ID,
		QuizID:    attempt.QuizID,
		Completed: attempt.State.Completed,
		StartedAt: attempt.StartedAt,
	}
}

// NewAttemptQuestionResponse создает DTO для текущего вопроса попытки
func NewAttemptQuestionResponse(q *service.AttemptQuestion) *AttemptQuestionResponse {
	if q == nil {
		return nil
	}
	return &AttemptQuestionResponse{
		Index:          q.Index,
		Total:          q.Total,
		Text:           q.Question.Text,
		Options:        []string(q.Question.Options),
		SelectedOption: q.Selected,
	}
}

// NewScoreResponse создает DTO для счета
func NewScoreResponse(score quizsession.Score) *ScoreResponse {
	return &ScoreResponse{Correct: score.Correct, Total: score.Total}
}
