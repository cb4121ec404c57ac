package dto

import (
	"time"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// QuestionRequest - вопрос в запросе на создание или замену вопросов.
// CorrectOption принимается только от администратора и никогда не отдается обратно.
type QuestionRequest struct {
	Text          string   `json:"text" binding:"required,max=500"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption int      `json:"correct_option" binding:"min=0"`
}

// CreateQuizRequest - запрос на создание викторины
type CreateQuizRequest struct {
	Title       string            `json:"title" binding:"required,max=100"`
	Description string            `json:"description" binding:"max=500"`
	Questions   []QuestionRequest `json:"questions" binding:"omitempty,dive"`
}

// UpdateQuizRequest - запрос на обновление метаданных викторины
type UpdateQuizRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// ReplaceQuestionsRequest - запрос на замену набора вопросов
type ReplaceQuestionsRequest struct {
	Questions []QuestionRequest `json:"questions" binding:"required,dive"`
}

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Правильный вариант намеренно отсутствует.
type QuestionResponse struct {
	ID       uint     `json:"id"`
	QuizID   uint     `json:"quiz_id"`
	Position int      `json:"position"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
}

// QuizResponse представляет викторину в формате для ответа клиенту
type QuizResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	QuestionCount int                `json:"question_count"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// PaginatedQuizResponse представляет пагинированный список викторин
type PaginatedQuizResponse struct {
	Quizzes []*QuizResponse `json:"quizzes"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// ResultResponse представляет сохраненный результат попытки
type ResultResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	QuizID         uint      `json:"quiz_id"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// PaginatedResultResponse представляет пагинированный список результатов
type PaginatedResultResponse struct {
	Results []*ResultResponse `json:"results"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

// ToQuestionEntity преобразует запрос в сущность вопроса
func (r *QuestionRequest) ToQuestionEntity() entity.Question {
	return entity.Question{
		Text:          r.Text,
		Options:       entity.StringArray(r.Options),
		CorrectOption: r.CorrectOption,
	}
}

// ToQuestionEntities преобразует слайс запросов в сущности с нумерацией позиций
func ToQuestionEntities(requests []QuestionRequest) []entity.Question {
	questions := make([]entity.Question, len(requests))
	for i, req := range requests {
		questions[i] = req.ToQuestionEntity()
		questions[i].Position = i
	}
	return questions
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:       q.ID,
		QuizID:   q.QuizID,
		Position: q.Position,
		Text:     q.Text,
		Options:  []string(q.Options),
	}
}

// NewQuizResponse создает DTO для викторины
func NewQuizResponse(quiz *entity.Quiz, includeQuestions bool) *QuizResponse {
	if quiz == nil {
		return nil
	}

	var questionsDTO []QuestionResponse
	if includeQuestions {
		questionsDTO = make([]QuestionResponse, len(quiz.Questions))
		for i := range quiz.Questions {
			questionsDTO[i] = NewQuestionResponse(&quiz.Questions[i])
		}
	}

	return &QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		QuestionCount: quiz.QuestionCount(),
		Questions:     questionsDTO,
		CreatedAt:     quiz.CreatedAt,
		UpdatedAt:     quiz.UpdatedAt,
	}
}

// NewPaginatedQuizResponse создает DTO для пагинированного списка викторин
func NewPaginatedQuizResponse(quizzes []entity.Quiz, total int64, page, perPage int) *PaginatedQuizResponse {
	list := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		// Вопросы в список не включаются
		list[i] = NewQuizResponse(&quizzes[i], false)
	}
	return &PaginatedQuizResponse{
		Quizzes: list,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}

// NewResultResponse создает DTO для результата
func NewResultResponse(result *entity.QuizResult) *ResultResponse {
	if result == nil {
		return nil
	}
	return &ResultResponse{
		ID:             result.ID,
		UserID:         result.UserID,
		QuizID:         result.QuizID,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		CompletedAt:    result.CompletedAt,
	}
}

// NewPaginatedResultResponse создает DTO для пагинированного списка результатов
func NewPaginatedResultResponse(results []entity.QuizResult, total int64, page, perPage int) *PaginatedResultResponse {
	list := make([]*ResultResponse, len(results))
	for i := range results {
		list[i] = NewResultResponse(&results[i])
	}
	return &PaginatedResultResponse{
		Results: list,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
