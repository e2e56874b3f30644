package addressparse

import "errors"

var (
	// ErrInvalidInput возвращается для пустого или слишком длинного текста
	ErrInvalidInput = errors.New("addressparse: invalid input data")

	// ErrDisabled возвращается, когда распознавание выключено в конфигурации
	ErrDisabled = errors.New("addressparse: parser is disabled")

	// ErrUnavailable возвращается, когда провайдер не ответил; запрос можно повторить
	ErrUnavailable = errors.New("addressparse: parser unavailable")
)
