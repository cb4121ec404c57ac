package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/domain/repository"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
	"github.com/yourusername/ecg-portal/pkg/auth"
)

// AuthService отвечает за регистрацию, вход и одобрение администраторов
type AuthService struct {
	userRepo     repository.UserRepository
	emailService EmailService
	jwtService   *auth.JWTService
	// approvalBaseURL — внешний адрес API, подставляется в ссылки
	// approve/reject в письме владельцу портала.
	approvalBaseURL string
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	emailService EmailService,
	jwtService *auth.JWTService,
	approvalBaseURL string,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		emailService:    emailService,
		jwtService:      jwtService,
		approvalBaseURL: approvalBaseURL,
	}
}

// Register регистрирует нового пользователя.
// Студент активен сразу. Администратор попадает в статус pending:
// владельцу портала уходит письмо со ссылками approve/reject,
// и до решения вход для него закрыт.
func (s *AuthService) Register(name, email, password string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", apperrors.ErrValidation)
	}

	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		Password:     password,
		Role:         role,
		RegisteredAt: time.Now(),
	}
	if role == entity.RoleAdmin {
		user.ApprovalStatus = entity.ApprovalPending
		user.ApprovalToken = uuid.NewString()
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if role == entity.RoleAdmin {
		s.notifyOwner(user)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь %d (%s, роль %s)", user.ID, user.Email, user.Role)
	return user, nil
}

// Login проверяет учетные данные и выпускает токен доступа
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	if user.Role == entity.RoleAdmin {
		switch user.ApprovalStatus {
		case entity.ApprovalPending:
			return "", nil, ErrPendingApproval
		case entity.ApprovalRejected:
			return "", nil, ErrApprovalRejected
		}
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// HandleApproval применяет решение владельца по токену из письма.
// Токен одноразовый: после решения он очищается.
func (s *AuthService) HandleApproval(token, action string) (*entity.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: approval token is required", apperrors.ErrValidation)
	}

	var status string
	switch action {
	case "approve":
		status = entity.ApprovalApproved
	case "reject":
		status = entity.ApprovalRejected
	default:
		return nil, fmt.Errorf("%w: unknown approval action %q", apperrors.ErrValidation, action)
	}

	user, err := s.userRepo.GetByApprovalToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateApproval(user.ID, status); err != nil {
		return nil, err
	}
	user.ApprovalStatus = status
	user.ApprovalToken = ""

	if err := s.emailService.SendApprovalDecision(context.Background(), user, status == entity.ApprovalApproved); err != nil {
		log.Printf("[AuthService] Не удалось отправить письмо о решении пользователю %d: %v", user.ID, err)
	}

	log.Printf("[AuthService] Заявка администратора %d (%s): %s", user.ID, user.Email, status)
	return user, nil
}

func (s *AuthService) notifyOwner(user *entity.User) {
	approveURL := fmt.Sprintf("%s/api/auth/approve?token=%s&action=approve", s.approvalBaseURL, user.ApprovalToken)
	rejectURL := fmt.Sprintf("%s/api/auth/approve?token=%s&action=reject", s.approvalBaseURL, user.ApprovalToken)
	if err := s.emailService.SendAdminApprovalRequest(context.Background(), user, approveURL, rejectURL); err != nil {
		// Заявка остается pending: владелец сможет решить ее позже вручную
		log.Printf("[AuthService] Не удалось отправить письмо владельцу о заявке %d: %v", user.ID, err)
	}
}
