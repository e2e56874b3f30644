package addressparse

import "github.com/m04kA/CareBookingService/internal/domain"

// Result результат распознавания.
// Accepted=false означает, что пользователь заполняет адрес вручную.
type Result struct {
	Address   domain.ParsedAddress
	Accepted  bool
	Threshold float64
}
