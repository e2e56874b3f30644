package get_availability

import (
	"fmt"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// normalizeRequest подставляет значения по умолчанию и валидирует запрос
func normalizeRequest(req *Request, defaultHorizon, defaultSlotHours int) error {
	if req.CaregiverID <= 0 {
		return fmt.Errorf("%w: caregiverID must be positive", ErrInvalidInput)
	}

	if req.HorizonDays == 0 {
		req.HorizonDays = defaultHorizon
	}
	if req.HorizonDays < 1 || req.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays must be between 1 and %d", ErrInvalidInput, domain.MaxHorizonDays)
	}

	if req.SlotDurationHours == 0 {
		req.SlotDurationHours = defaultSlotHours
	}
	if req.SlotDurationHours < domain.MinSlotDurationHours || req.SlotDurationHours > domain.MaxSlotDurationHours {
		return fmt.Errorf("%w: slotDurationHours must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationHours, domain.MaxSlotDurationHours)
	}

	return nil
}
