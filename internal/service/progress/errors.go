package progress

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном пользователе, курсе или уроке
	ErrInvalidInput = errors.New("progress: invalid input data")

	// ErrInternal возвращается при ошибках хранилища и сериализации
	ErrInternal = errors.New("progress: internal error")
)
