package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrUserNotFound       = errors.New("user not found")
	ErrDocumentNotFound   = errors.New("document not found or access denied")
)

// ValidationError carries per-field detail for the flow boundary to render.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}
