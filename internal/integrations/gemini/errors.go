package gemini

import (
	"errors"
	"fmt"

	"github.com/m04kA/CareBookingService/internal/domain"
)

var (
	// ErrUnavailable возвращается при ошибке вызова модели (сеть, квота, таймаут)
	ErrUnavailable = errors.New("gemini: model unavailable")

	// ErrEmptyResponse возвращается, если модель не вернула ни одного кандидата
	ErrEmptyResponse = fmt.Errorf("gemini: empty response: %w", domain.ErrAddressNotRecognized)

	// ErrInvalidResponse возвращается, если ответ модели не удалось разобрать
	ErrInvalidResponse = fmt.Errorf("gemini: invalid response: %w", domain.ErrAddressNotRecognized)
)
