package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
	"github.com/yourusername/ecg-portal/internal/service"
	"github.com/yourusername/ecg-portal/internal/service/quizsession"
)

// respondError переводит ошибку сервисного слоя в HTTP-ответ.
// Неизвестные ошибки логируются и отдаются как 500 без деталей.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, quizsession.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, service.ErrAttemptOwnership),
		errors.Is(err, service.ErrPendingApproval),
		errors.Is(err, service.ErrApprovalRejected):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, service.ErrAttemptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Нарушения предусловий автомата: запрос корректный, но несовместим
	// с текущим состоянием попытки
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, quizsession.ErrIncompleteAnswer),
		errors.Is(err, quizsession.ErrSessionCompleted),
		errors.Is(err, quizsession.ErrSessionActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		log.Printf("[HTTP] Внутренняя ошибка на %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// pagination извлекает параметры page/page_size из query с безопасными границами
func pagination(c *gin.Context) (page, perPage, offset int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || perPage < 1 {
		perPage = 10
	} else if perPage > 100 {
		perPage = 100
	}

	return page, perPage, (page - 1) * perPage
}
