package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/handler/dto"
	"github.com/yourusername/ecg-portal/internal/middleware"
	"github.com/yourusername/ecg-portal/internal/service"
)

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Register обрабатывает запрос на регистрацию
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Роль по умолчанию — студент; строка от клиента проходит через ParseRole
	role := entity.RoleStudent
	if req.Role != "" {
		parsed, ok := entity.ParseRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be 'student' or 'admin'"})
			return
		}
		role = parsed
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login обрабатывает запрос на вход
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

// Approve обрабатывает переход владельца по ссылке из письма.
// Маршрут без аутентификации: право дает сам одноразовый токен.
func (h *AuthHandler) Approve(c *gin.Context) {
	token := c.Query("token")
	action := c.Query("action")

	user, err := h.authService.HandleApproval(token, action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Decision recorded",
		"user":    dto.NewUserResponse(user),
	})
}

// Me возвращает профиль текущего пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
