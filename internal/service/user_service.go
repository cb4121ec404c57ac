package service

import (
	"fmt"
	"log"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/domain/repository"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
)

// UserService предоставляет методы для управления пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser возвращает пользователя по ID
func (s *UserService) GetUser(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// ListUsers возвращает пользователей с пагинацией
func (s *UserService) ListUsers(limit, offset int) ([]entity.User, int64, error) {
	return s.userRepo.List(limit, offset)
}

// UpdateUser обновляет имя и/или роль пользователя; пустое значение
// оставляет поле без изменений. Повышение до администратора минует
// почтовый флоу: операцию выполняет уже одобренный администратор.
func (s *UserService) UpdateUser(userID uint, name string, role entity.Role) (*entity.User, error) {
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if role != "" {
		user.Role = role
		if role == entity.RoleAdmin {
			user.ApprovalStatus = entity.ApprovalApproved
		} else {
			user.ApprovalStatus = entity.ApprovalNone
		}
		user.ApprovalToken = ""
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	log.Printf("[UserService] Пользователь %d обновлен (имя %q, роль %s)", userID, user.Name, user.Role)
	return user, nil
}

// DeleteUser удаляет пользователя. Его результаты остаются в базе
// и отображаются в лидерборде как "Unknown User".
func (s *UserService) DeleteUser(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	log.Printf("[UserService] Пользователь %d удален", id)
	return nil
}
