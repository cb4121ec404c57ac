package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecg-portal/internal/handler/dto"
	"github.com/yourusername/ecg-portal/internal/service"
)

// Заголовок, сообщающий клиенту, какой ярус ответил на чтение
const headerDataSource = "X-Data-Source"

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Create обрабатывает запрос на создание викторины
func (h *QuizHandler) Create(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(req.Title, req.Description, dto.ToQuestionEntities(req.Questions))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, true))
}

// Get обрабатывает запрос на викторину с вопросами.
// Правильные варианты в ответ не попадают.
func (h *QuizHandler) Get(c *gin.Context) {
	quizID := c.MustGet("quiz_id").(uint)

	quiz, source, err := h.quizService.GetQuizWithQuestions(quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header(headerDataSource, string(source))
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// List обрабатывает запрос на список викторин
func (h *QuizHandler) List(c *gin.Context) {
	page, perPage, offset := pagination(c)

	quizzes, total, err := h.quizService.ListQuizzes(perPage, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedQuizResponse(quizzes, total, page, perPage))
}

// Update обрабатывает запрос на обновление метаданных викторины
func (h *QuizHandler) Update(c *gin.Context) {
	quizID := c.MustGet("quiz_id").(uint)

	var req dto.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.GetQuiz(quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	if err := h.quizService.UpdateQuiz(quiz); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, false))
}

// ReplaceQuestions обрабатывает запрос на замену набора вопросов
func (h *QuizHandler) ReplaceQuestions(c *gin.Context) {
	quizID := c.MustGet("quiz_id").(uint)

	var req dto.ReplaceQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.ReplaceQuestions(quizID, dto.ToQuestionEntities(req.Questions)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Questions replaced"})
}

// Delete обрабатывает запрос на удаление викторины
func (h *QuizHandler) Delete(c *gin.Context) {
	quizID := c.MustGet("quiz_id").(uint)

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted"})
}
