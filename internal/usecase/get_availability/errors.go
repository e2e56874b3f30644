package get_availability

import "errors"

var (
	// ErrCaregiverNotFound возвращается, когда сиделка не найдена
	ErrCaregiverNotFound = errors.New("caregiver not found")

	// ErrCaregiverUnavailable возвращается, когда CaregiverService недоступен (можно повторить)
	ErrCaregiverUnavailable = errors.New("caregiver schedule is temporarily unavailable")

	// ErrBookingsUnavailable возвращается, когда не удалось получить бронирования (можно повторить)
	ErrBookingsUnavailable = errors.New("existing bookings are temporarily unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// IsRetryable возвращает true для временных ошибок получения данных.
// Пустой результат ошибкой не считается.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrCaregiverUnavailable) || errors.Is(err, ErrBookingsUnavailable)
}
