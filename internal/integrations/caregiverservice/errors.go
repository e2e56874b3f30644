package caregiverservice

import "errors"

var (
	// ErrCaregiverNotFound возвращается, когда профиль сиделки не найден
	ErrCaregiverNotFound = errors.New("caregiver not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("caregiverservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("caregiverservice client: invalid response")

	// ErrServiceUnavailable возвращается при сетевой ошибке, таймауте или 5xx.
	// Запрос можно повторить.
	ErrServiceUnavailable = errors.New("caregiverservice unavailable")
)
