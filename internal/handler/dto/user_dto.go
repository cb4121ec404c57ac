package dto

import (
	"time"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// RegisterRequest - запрос на регистрацию пользователя
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse - ответ с токеном доступа
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// UpdateUserRequest - запрос на изменение пользователя администратором.
// Пустое поле оставляет текущее значение.
type UpdateUserRequest struct {
	Name string `json:"name" binding:"omitempty,min=2,max=100"`
	Role string `json:"role" binding:"omitempty"`
}

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approval_status,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// PaginatedUsersResponse представляет пагинированный список пользователей
type PaginatedUsersResponse struct {
	Users   []*UserResponse `json:"users"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		ApprovalStatus: user.ApprovalStatus,
		RegisteredAt:   user.RegisteredAt,
	}
}

// NewPaginatedUsersResponse создает DTO для пагинированного списка пользователей
func NewPaginatedUsersResponse(users []entity.User, total int64, page, perPage int) *PaginatedUsersResponse {
	list := make([]*UserResponse, len(users))
	for i, user := range users {
		list[i] = NewUserResponse(&user)
	}
	return &PaginatedUsersResponse{
		Users:   list,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
