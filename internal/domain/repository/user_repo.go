package repository

import (
	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByApprovalToken(token string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateApproval(userID uint, status string) error
	Delete(id uint) error
	List(limit, offset int) ([]entity.User, int64, error)
	// ListAll возвращает всех пользователей без пагинации.
	// Используется агрегатором лидерборда для разрешения имен.
	ListAll() ([]entity.User, error)
}
