package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecg-portal/internal/handler/dto"
	"github.com/yourusername/ecg-portal/internal/middleware"
	"github.com/yourusername/ecg-portal/internal/service"
)

// AttemptHandler обрабатывает запросы попыток прохождения викторин.
// Все маршруты требуют аутентификации: попытка принадлежит пользователю.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler создает новый обработчик попыток
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

func (h *AttemptHandler) currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// Start обрабатывает запрос на начало попытки
func (h *AttemptHandler) Start(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := h.attemptService.StartAttempt(userID, req.QuizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAttemptResponse(attempt))
}

// CurrentQuestion обрабатывает запрос на текущий вопрос попытки
func (h *AttemptHandler) CurrentQuestion(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	attemptID := c.Param("id")

	question, err := h.attemptService.CurrentQuestion(userID, attemptID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAttemptQuestionResponse(question))
}

// SelectAnswer обрабатывает выбор варианта для текущего вопроса
func (h *AttemptHandler) SelectAnswer(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	attemptID := c.Param("id")

	var req dto.SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.attemptService.SelectAnswer(userID, attemptID, req.OptionIndex); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer recorded"})
}

// Advance обрабатывает переход к следующему вопросу
func (h *AttemptHandler) Advance(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	attemptID := c.Param("id")

	outcome, err := h.attemptService.Advance(userID, attemptID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.AdvanceResponse{Completed: outcome.Completed}
	if outcome.Completed {
		resp.Score = dto.NewScoreResponse(outcome.Score)
		if outcome.SaveFailed {
			resp.Warning = "Result could not be saved and will not appear in the leaderboard"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Retreat обрабатывает возврат к предыдущему вопросу
func (h *AttemptHandler) Retreat(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	attemptID := c.Param("id")

	if err := h.attemptService.Retreat(userID, attemptID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Moved to previous question"})
}

// Result обрабатывает запрос на итог завершенной попытки
func (h *AttemptHandler) Result(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	attemptID := c.Param("id")

	score, err := h.attemptService.Result(userID, attemptID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScoreResponse(score))
}

// MyResults обрабатывает запрос на сохраненные результаты пользователя
func (h *AttemptHandler) MyResults(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	page, perPage, offset := pagination(c)

	results, total, err := h.attemptService.GetUserResults(userID, perPage, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResultResponse(results, total, page, perPage))
}
