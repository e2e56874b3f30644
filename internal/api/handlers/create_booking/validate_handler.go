package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/CareBookingService/internal/api/handlers"
	"github.com/m04kA/CareBookingService/internal/api/middleware"
	"github.com/m04kA/CareBookingService/internal/domain"
)

// ValidateHandler проверка формы бронирования без сохранения.
// Используется формой для подсветки первого незаполненного поля.
type ValidateHandler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewValidateHandler(useCase ValidateBookingUseCase, logger Logger) *ValidateHandler {
	return &ValidateHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validate
// Всегда 200: невалидная форма это обычный результат проверки
func (h *ValidateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/validate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, &ValidationResponse{
			Field:                 vErr.Field,
			Message:               vErr.Message,
			AllowedTaskStartTimes: []string{},
		})
		return
	}

	result := FromValidationResult(h.useCase.Validate(useCaseReq))

	h.logger.Info("POST /bookings/validate - user_id=%d, valid=%t, field=%s", userID, result.Valid, result.Field)
	handlers.RespondJSON(w, http.StatusOK, result)
}
