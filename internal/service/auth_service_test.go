package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
	"github.com/yourusername/ecg-portal/pkg/auth"
)

// captureEmailService запоминает отправленные письма вместо реальной отправки
type captureEmailService struct {
	approvalRequests []string // approve URLs
	decisions        []bool
	failSend         bool
}

func (c *captureEmailService) SendAdminApprovalRequest(ctx context.Context, user *entity.User, approveURL, rejectURL string) error {
	if c.failSend {
		return assert.AnError
	}
	c.approvalRequests = append(c.approvalRequests, approveURL)
	return nil
}

func (c *captureEmailService) SendApprovalDecision(ctx context.Context, user *entity.User, approved bool) error {
	if c.failSend {
		return assert.AnError
	}
	c.decisions = append(c.decisions, approved)
	return nil
}

func newAuthServiceForTest(userRepo *MockUserRepository, emails *captureEmailService) *AuthService {
	jwtService := auth.NewJWTService("test-secret", 24)
	return NewAuthService(userRepo, emails, jwtService, "https://portal.example.com")
}

func hashedTestUser(t *testing.T, id uint, email, password string, role entity.Role) *entity.User {
	t.Helper()
	user := &entity.User{ID: id, Name: "Test", Email: email, Password: password, Role: role}
	// BeforeSave не трогает tx, поэтому хешируем напрямую
	require.NoError(t, user.BeforeSave(nil))
	return user
}

func TestAuthService_RegisterStudent(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	emails := &captureEmailService{}
	authService := newAuthServiceForTest(mockUserRepo, emails)

	mockUserRepo.On("GetByEmail", "student@example.com").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleStudent && u.ApprovalStatus == entity.ApprovalNone && u.ApprovalToken == ""
	})).Return(nil)

	user, err := authService.Register("Alice", "student@example.com", "password123", entity.RoleStudent)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, user.Role)
	assert.Empty(t, emails.approvalRequests) // студенту письмо не нужно
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_RegisterAdminStartsApprovalFlow(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	emails := &captureEmailService{}
	authService := newAuthServiceForTest(mockUserRepo, emails)

	mockUserRepo.On("GetByEmail", "admin@example.com").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleAdmin && u.ApprovalStatus == entity.ApprovalPending && u.ApprovalToken != ""
	})).Return(nil)

	user, err := authService.Register("Bob", "admin@example.com", "password123", entity.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalPending, user.ApprovalStatus)
	require.Len(t, emails.approvalRequests, 1)
	assert.True(t, strings.Contains(emails.approvalRequests[0], user.ApprovalToken))
	assert.True(t, strings.HasPrefix(emails.approvalRequests[0], "https://portal.example.com/api/auth/approve"))
}

func TestAuthService_RegisterEmailFailureKeepsPending(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	emails := &captureEmailService{failSend: true}
	authService := newAuthServiceForTest(mockUserRepo, emails)

	mockUserRepo.On("GetByEmail", "admin@example.com").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("Create", mock.Anything).Return(nil)

	// Отказ почты не роняет регистрацию: заявка остается pending
	user, err := authService.Register("Bob", "admin@example.com", "password123", entity.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalPending, user.ApprovalStatus)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	mockUserRepo.On("GetByEmail", "taken@example.com").Return(&entity.User{ID: 1}, nil)

	_, err := authService.Register("Alice", "taken@example.com", "password123", entity.RoleStudent)

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_RegisterUnknownRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	_, err := authService.Register("Eve", "eve@example.com", "password123", entity.Role("superuser"))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginSuccess(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	stored := hashedTestUser(t, 1, "student@example.com", "password123", entity.RoleStudent)
	mockUserRepo.On("GetByEmail", "student@example.com").Return(stored, nil)

	token, user, err := authService.Login("student@example.com", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(1), user.ID)

	// Токен раскодируется обратно в те же claims
	claims, err := auth.NewJWTService("test-secret", 24).ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, entity.RoleStudent, claims.Role)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	stored := hashedTestUser(t, 1, "student@example.com", "password123", entity.RoleStudent)
	mockUserRepo.On("GetByEmail", "student@example.com").Return(stored, nil)

	_, _, err := authService.Login("student@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	mockUserRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	_, _, err := authService.Login("ghost@example.com", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginPendingAdmin(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	stored := hashedTestUser(t, 2, "admin@example.com", "password123", entity.RoleAdmin)
	stored.ApprovalStatus = entity.ApprovalPending
	mockUserRepo.On("GetByEmail", "admin@example.com").Return(stored, nil)

	_, _, err := authService.Login("admin@example.com", "password123")

	assert.ErrorIs(t, err, ErrPendingApproval)
}

func TestAuthService_LoginRejectedAdmin(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	stored := hashedTestUser(t, 2, "admin@example.com", "password123", entity.RoleAdmin)
	stored.ApprovalStatus = entity.ApprovalRejected
	mockUserRepo.On("GetByEmail", "admin@example.com").Return(stored, nil)

	_, _, err := authService.Login("admin@example.com", "password123")

	assert.ErrorIs(t, err, ErrApprovalRejected)
}

func TestAuthService_HandleApprovalApprove(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	emails := &captureEmailService{}
	authService := newAuthServiceForTest(mockUserRepo, emails)

	pending := &entity.User{ID: 2, Email: "admin@example.com", Role: entity.RoleAdmin,
		ApprovalStatus: entity.ApprovalPending, ApprovalToken: "token-123"}
	mockUserRepo.On("GetByApprovalToken", "token-123").Return(pending, nil)
	mockUserRepo.On("UpdateApproval", uint(2), entity.ApprovalApproved).Return(nil)

	user, err := authService.HandleApproval("token-123", "approve")

	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalApproved, user.ApprovalStatus)
	assert.Empty(t, user.ApprovalToken)
	assert.Equal(t, []bool{true}, emails.decisions)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_HandleApprovalReject(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	emails := &captureEmailService{}
	authService := newAuthServiceForTest(mockUserRepo, emails)

	pending := &entity.User{ID: 2, Email: "admin@example.com", Role: entity.RoleAdmin,
		ApprovalStatus: entity.ApprovalPending, ApprovalToken: "token-123"}
	mockUserRepo.On("GetByApprovalToken", "token-123").Return(pending, nil)
	mockUserRepo.On("UpdateApproval", uint(2), entity.ApprovalRejected).Return(nil)

	user, err := authService.HandleApproval("token-123", "reject")

	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalRejected, user.ApprovalStatus)
	assert.Equal(t, []bool{false}, emails.decisions)
}

func TestAuthService_HandleApprovalUnknownToken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	mockUserRepo.On("GetByApprovalToken", "stale").Return(nil, apperrors.ErrNotFound)

	_, err := authService.HandleApproval("stale", "approve")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthService_HandleApprovalUnknownAction(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockUserRepo, &captureEmailService{})

	_, err := authService.HandleApproval("token-123", "maybe")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockUserRepo.AssertNotCalled(t, "GetByApprovalToken", mock.Anything)
}
