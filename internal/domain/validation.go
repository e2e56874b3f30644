package domain

import (
	"errors"
	"fmt"
)

// ErrValidation базовая ошибка локальной валидации формы
var ErrValidation = errors.New("validation failed")

// ValidationError ошибка валидации с указанием поля и сообщением для пользователя
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap позволяет проверять errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError создаёт ошибку валидации поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
