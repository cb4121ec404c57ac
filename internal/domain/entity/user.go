package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role — закрытое перечисление ролей пользователя.
// Строки "student"/"admin" от клиента всегда проходят через ParseRole,
// чтобы недопустимые значения отсекались на границе.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole преобразует строку в Role. Возвращает false для неизвестных значений.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Valid проверяет, что роль входит в перечисление
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Константы статусов одобрения администратора
const (
	ApprovalNone     = ""         // обычный студент, одобрение не требуется
	ApprovalPending  = "pending"  // регистрация администратора ожидает решения
	ApprovalApproved = "approved" // доступ администратора подтвержден
	ApprovalRejected = "rejected" // запрос отклонен владельцем портала
)

// User представляет пользователя портала
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Email          string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password       string     `gorm:"size:100;not null" json:"-"`
	Role           Role       `gorm:"size:20;not null;default:'student';index" json:"role"`
	ApprovalStatus string     `gorm:"size:20;not null;default:''" json:"approval_status,omitempty"`
	ApprovalToken  string     `gorm:"size:64;not null;default:'';index" json:"-"`
	RegisteredAt   time.Time  `gorm:"not null" json:"registered_at"`
	DeletedAt      *time.Time `gorm:"type:timestamp" json:"deleted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin возвращает true для одобренного администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin && u.ApprovalStatus == ApprovalApproved
}

// IsPendingApproval возвращает true, пока регистрация администратора не рассмотрена
func (u *User) IsPendingApproval() bool {
	return u.Role == RoleAdmin && u.ApprovalStatus == ApprovalPending
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
