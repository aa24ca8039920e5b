package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vaultguard/internal/repository"
	"vaultguard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type errorBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, message string, fields map[string]string) error {
	return c.JSON(status, errorBody{Message: message, Errors: fields})
}

// writeServiceError maps service failures to the error taxonomy. Unexpected
// failures become a generic 500; detail reaches the client only in
// development and the full error is always logged server-side.
func writeServiceError(c echo.Context, log *logrus.Logger, dev bool, err error) error {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return writeError(c, http.StatusBadRequest, validation.Message, validation.Fields)
	}

	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return writeError(c, http.StatusBadRequest, "Email already registered", map[string]string{
			"email": "Email already registered",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCode):
		return writeError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidResetToken):
		return writeError(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, http.StatusNotFound, err.Error(), nil)
	}

	if log != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"uri":    c.Request().RequestURI,
		}).Error("internal error")
	}
	body := errorBody{Message: "Server error"}
	if dev {
		body.Error = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, body)
}

// validationFields turns validator errors into per-field messages keyed by
// the JSON-style field name.
func validationFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = name + " is required"
		case "email":
			fields[name] = "Please provide a valid email address"
		case "min":
			fields[name] = name + " must be at least " + fe.Param() + " characters"
		default:
			fields[name] = name + " is invalid"
		}
	}
	return fields
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func writeValidationError(c echo.Context, err error) error {
	return writeError(c, http.StatusBadRequest, "Validation error", validationFields(err))
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
