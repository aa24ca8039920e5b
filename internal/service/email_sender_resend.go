package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

type ResendEmailSender struct {
	Client     *resend.Client
	From       string
	AppBaseURL string
	ResetPath  string
}

func NewResendEmailSender(apiKey string, from string, appBaseURL string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client:     resend.NewClient(apiKey),
		From:       from,
		AppBaseURL: strings.TrimRight(appBaseURL, "/"),
		ResetPath:  "/reset-password",
	}
}

// SendPasswordResetEmail must fail loudly: a dispatch failure surfaces to the
// caller instead of a false success.
func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	link := s.buildURL(s.ResetPath, token)
	params := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{email},
		Subject: "Password Reset Request",
		Html: fmt.Sprintf(
			"<p>You requested a password reset.</p><p>Click this link to reset your password:</p><p><a href=%q>%s</a></p><p>If you did not request this, ignore this email.</p>",
			link, link,
		),
		Text: fmt.Sprintf("Reset your password: %s", link),
	}
	_, err := s.Client.Emails.Send(params)
	return err
}

func (s *ResendEmailSender) buildURL(path string, token string) string {
	if s.AppBaseURL == "" {
		return token
	}
	return fmt.Sprintf("%s%s?token=%s", s.AppBaseURL, path, token)
}
