package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/handler/dto"
	"github.com/yourusername/ecg-portal/internal/service"
)

// UserHandler обрабатывает административные запросы по пользователям
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List обрабатывает запрос на список пользователей
func (h *UserHandler) List(c *gin.Context) {
	page, perPage, offset := pagination(c)

	users, total, err := h.userService.ListUsers(perPage, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedUsersResponse(users, total, page, perPage))
}

// Get обрабатывает запрос на одного пользователя
func (h *UserHandler) Get(c *gin.Context) {
	userID := c.MustGet("target_user_id").(uint)

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update обрабатывает запрос на изменение имени и/или роли пользователя
func (h *UserHandler) Update(c *gin.Context) {
	userID := c.MustGet("target_user_id").(uint)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var role entity.Role
	if req.Role != "" {
		parsed, ok := entity.ParseRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be 'student' or 'admin'"})
			return
		}
		role = parsed
	}

	user, err := h.userService.UpdateUser(userID, req.Name, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Delete обрабатывает запрос на удаление пользователя
func (h *UserHandler) Delete(c *gin.Context) {
	userID := c.MustGet("target_user_id").(uint)

	if err := h.userService.DeleteUser(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
