package get_caregiver_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CareBookingService/internal/api/handlers"
	"github.com/m04kA/CareBookingService/internal/api/middleware"
	"github.com/m04kA/CareBookingService/internal/service/bookings"
)

const (
	msgInvalidCaregiverID   = "некорректный ID сиделки"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidParams        = "некорректные параметры запроса"
	msgForbidden            = "доступ запрещен"
	msgCaregiverNotFound    = "сиделка не найдена"
	msgCaregiverUnavailable = "сервис профилей сиделок временно недоступен, повторите запрос"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/caregivers/{caregiverId}/bookings
// Query params: from, to, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем caregiverId из URL
	vars := mux.Vars(r)
	caregiverIDStr := vars["caregiverId"]

	caregiverID, err := strconv.ParseInt(caregiverIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /caregivers/{id}/bookings - Invalid caregiver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaregiverID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /caregivers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(caregiverID, userID,
		query.Get("from"), query.Get("to"), query.Get("status"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /caregivers/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что запрашивает владелец профиля
	result, err := h.service.GetCaregiverBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /caregivers/{id}/bookings - Invalid parameters: caregiver_id=%d, error=%v", caregiverID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /caregivers/{id}/bookings - Access denied: caregiver_id=%d, user_id=%d",
				caregiverID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCaregiverNotFound):
			h.logger.Warn("GET /caregivers/{id}/bookings - Caregiver not found: caregiver_id=%d", caregiverID)
			handlers.RespondNotFound(w, msgCaregiverNotFound)

		case errors.Is(err, bookings.ErrCaregiverUnavailable):
			h.logger.Warn("GET /caregivers/{id}/bookings - Caregiver service unavailable: caregiver_id=%d, error=%v", caregiverID, err)
			handlers.RespondServiceUnavailable(w, msgCaregiverUnavailable)

		default:
			h.logger.Error("GET /caregivers/{id}/bookings - Failed to get bookings: caregiver_id=%d, error=%v",
				caregiverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /caregivers/{id}/bookings - Bookings retrieved successfully: caregiver_id=%d, count=%d",
		caregiverID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
