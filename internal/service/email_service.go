package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// EmailService sends transactional emails for the admin approval flow.
type EmailService interface {
	// SendAdminApprovalRequest notifies the portal owner that a new admin
	// registered and needs a decision.
	SendAdminApprovalRequest(ctx context.Context, user *entity.User, approveURL, rejectURL string) error
	// SendApprovalDecision notifies the applicant about the decision.
	SendApprovalDecision(ctx context.Context, user *entity.User, approved bool) error
}

// NoopEmailService is used when no email provider is configured.
type NoopEmailService struct{}

func (s *NoopEmailService) SendAdminApprovalRequest(ctx context.Context, user *entity.User, approveURL, rejectURL string) error {
	log.Printf("[EmailService] noop admin approval request for email=%s", user.Email)
	return nil
}

func (s *NoopEmailService) SendApprovalDecision(ctx context.Context, user *entity.User, approved bool) error {
	log.Printf("[EmailService] noop approval decision for email=%s approved=%t", user.Email, approved)
	return nil
}

// ResendEmailService sends emails via Resend REST API.
type ResendEmailService struct {
	from       string
	ownerEmail string
	client     *resend.Client
}

func NewResendEmailService(apiKey, from, ownerEmail string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	if ownerEmail == "" {
		return nil, fmt.Errorf("portal owner email is required")
	}
	return &ResendEmailService{
		from:       from,
		ownerEmail: ownerEmail,
		client:     resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendAdminApprovalRequest(ctx context.Context, user *entity.User, approveURL, rejectURL string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.ownerEmail},
		Subject: "New Admin Registration Approval Required",
		Text: fmt.Sprintf(
			"A new user has registered for admin access.\n\nName: %s\nEmail: %s\n\nApprove: %s\nReject: %s\n",
			user.Name, user.Email, approveURL, rejectURL),
		Html: fmt.Sprintf(
			`<h2>New Admin Registration</h2>
<p>A new user has registered for admin access:</p>
<p><strong>Name:</strong> %s<br/><strong>Email:</strong> %s<br/><strong>Role:</strong> Administrator</p>
<p><a href="%s">Approve Access</a> | <a href="%s">Reject Request</a></p>
<p>The user will be notified of your decision via email.</p>`,
			user.Name, user.Email, approveURL, rejectURL),
	}
	return s.send(ctx, params)
}

func (s *ResendEmailService) SendApprovalDecision(ctx context.Context, user *entity.User, approved bool) error {
	subject := "Your admin access has been approved"
	body := "Your admin registration has been approved. You can now sign in to the portal."
	if !approved {
		subject = "Your admin access request was rejected"
		body = "Your admin registration was rejected by the portal administrator."
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{user.Email},
		Subject: subject,
		Text:    body,
		Html:    fmt.Sprintf("<p>%s</p>", body),
	}
	return s.send(ctx, params)
}

func (s *ResendEmailService) send(ctx context.Context, params *resend.SendEmailRequest) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithContext(ctx, params)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
