package parse_address

import (
	"context"

	"github.com/m04kA/CareBookingService/internal/service/addressparse"
)

type AddressParser interface {
	Parse(ctx context.Context, text string) (*addressparse.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
