package get_booking

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
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование сиделки не найдено"
	msgForbidden            = "бронирование доступно только заказчику и сиделке"
	msgCaregiverUnavailable = "сервис профилей сиделок временно недоступен, повторите запрос"
)

// Роли участника бронирования в логах
const (
	roleCareseeker = "careseeker"
	roleCaregiver  = "caregiver"
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

// Handle GET /api/v1/bookings/{bookingId}
// Заказчик видит своё бронирование сразу, сиделка - после проверки владения профилем
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Neither careseeker nor caregiver owner: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCaregiverUnavailable):
			h.logger.Warn("GET /bookings/{id} - Caregiver ownership check unavailable: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondServiceUnavailable(w, msgCaregiverUnavailable)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	role := roleCaregiver
	if booking.CareseekerID == userID {
		role = roleCareseeker
	}
	h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%d, caregiver_id=%d, user_id=%d, role=%s, status=%s",
		bookingID, booking.CaregiverID, userID, role, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
