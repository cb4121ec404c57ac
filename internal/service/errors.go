package service

import "errors"

// Определяем кастомные ошибки для сервисов
var (
	// ErrInvalidCredentials возвращается при неверной паре email/пароль.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPendingApproval возвращается при входе администратора,
	// чья регистрация еще не одобрена.
	ErrPendingApproval = errors.New("admin registration is pending approval")

	// ErrApprovalRejected возвращается при входе администратора,
	// чья регистрация была отклонена.
	ErrApprovalRejected = errors.New("admin registration was rejected")

	// ErrEmailTaken возвращается при регистрации на занятый email.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrAttemptNotFound возвращается, когда попытка не найдена или истекла.
	ErrAttemptNotFound = errors.New("quiz attempt not found or expired")

	// ErrAttemptOwnership возвращается при обращении к чужой попытке.
	ErrAttemptOwnership = errors.New("quiz attempt belongs to another user")
)
