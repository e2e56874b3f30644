package progress

import "errors"

var (
	// ErrProgressNotFound возвращается, когда прогресс по ключу ещё не сохранялся
	ErrProgressNotFound = errors.New("progress not found")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("progress store unavailable")
)
