package addressparse

import (
	"context"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// Parser распознаёт адрес из свободного текста (LLM или правила).
// Нераспознанный ответ возвращается ошибкой, обёртывающей domain.ErrAddressNotRecognized.
type Parser interface {
	Parse(ctx context.Context, text string) (*domain.ParsedAddress, error)
}

// Metrics счётчики распознавания
type Metrics interface {
	IncAddressParse(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
