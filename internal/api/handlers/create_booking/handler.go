package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/CareBookingService/internal/api/handlers"
	"github.com/m04kA/CareBookingService/internal/api/middleware"
	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/CareBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidCaregiverID   = "некорректный ID сиделки"
	msgSlotNotAvailable     = "выбранное время пересекается с другим бронированием сиделки"
	msgCaregiverNotFound    = "сиделка не найдена"
	msgCaregiverNotBookable = "сиделка сейчас не принимает бронирования"
	msgCaregiverUnavailable = "сервис сиделок временно недоступен, повторите запрос"
	msgSelfBooking          = "нельзя забронировать собственный профиль"
	msgInvalidBookingDate   = "бронирование не может начинаться в прошлом"
	msgOutsideWorkingHours  = "выбранное время вне рабочих часов сиделки"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.respondValidation(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%d, field=%s", userID, vErr.Field)
			handlers.RespondValidationError(w, vErr.Field, vErr.Message)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidCaregiverID)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, caregiver_id=%d", userID, req.CaregiverID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCaregiverNotFound):
			h.logger.Warn("POST /bookings - Caregiver not found: caregiver_id=%d", req.CaregiverID)
			handlers.RespondNotFound(w, msgCaregiverNotFound)

		case errors.Is(err, createBooking.ErrCaregiverUnavailable):
			h.logger.Warn("POST /bookings - Caregiver service unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgCaregiverUnavailable)

		case errors.Is(err, createBooking.ErrCaregiverNotBookable):
			h.logger.Warn("POST /bookings - Caregiver not bookable: caregiver_id=%d", req.CaregiverID)
			handlers.RespondBadRequest(w, msgCaregiverNotBookable)

		case errors.Is(err, createBooking.ErrSelfBooking):
			h.logger.Warn("POST /bookings - Self booking: user_id=%d, caregiver_id=%d", userID, req.CaregiverID)
			handlers.RespondBadRequest(w, msgSelfBooking)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Booking starts in the past: user_id=%d", userID)
			handlers.RespondValidationError(w, "startDate", msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: user_id=%d, caregiver_id=%d", userID, req.CaregiverID)
			handlers.RespondValidationError(w, "startTime", msgOutsideWorkingHours)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, caregiver_id=%d, error=%v",
				userID, req.CaregiverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, caregiver_id=%d",
		result.Booking.ID, userID, req.CaregiverID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}

func (h *Handler) respondValidation(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		h.logger.Warn("POST /bookings - Invalid field format: %v", vErr)
		handlers.RespondValidationError(w, vErr.Field, vErr.Message)
		return
	}
	h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
	handlers.RespondBadRequest(w, msgInvalidRequestBody)
}
