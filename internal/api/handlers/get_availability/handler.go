package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CareBookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/CareBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidCaregiverID = "некорректный ID сиделки"
	msgInvalidQuery       = "horizonDays и slotDurationHours должны быть целыми числами"
	msgCaregiverNotFound  = "сиделка не найдена"
	msgTemporarilyDown    = "расписание временно недоступно, повторите запрос"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/caregivers/{caregiverId}/availability
// Query params: horizonDays (optional), slotDurationHours (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caregiverID, err := strconv.ParseInt(mux.Vars(r)["caregiverId"], 10, 64)
	if err != nil || caregiverID <= 0 {
		h.logger.Warn("GET /caregivers/{id}/availability - Invalid caregiver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaregiverID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(caregiverID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /caregivers/{id}/availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /caregivers/{id}/availability - Invalid input: caregiver_id=%d, error=%v", caregiverID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrCaregiverNotFound):
			h.logger.Warn("GET /caregivers/{id}/availability - Caregiver not found: caregiver_id=%d", caregiverID)
			handlers.RespondNotFound(w, msgCaregiverNotFound)

		case getAvailability.IsRetryable(err):
			h.logger.Warn("GET /caregivers/{id}/availability - Dependency unavailable: caregiver_id=%d, error=%v", caregiverID, err)
			handlers.RespondServiceUnavailable(w, msgTemporarilyDown)

		default:
			h.logger.Error("GET /caregivers/{id}/availability - Failed to compute availability: caregiver_id=%d, error=%v",
				caregiverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /caregivers/{id}/availability - Availability computed: caregiver_id=%d, status=%s, available=%d",
		caregiverID, response.Status, response.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
