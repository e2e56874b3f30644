package lesson_progress

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CareBookingService/internal/api/handlers"
	"github.com/m04kA/CareBookingService/internal/api/middleware"
	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/internal/service/progress"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLesson      = "некорректный курс или урок"
)

// Handler прогресс обучения сиделок по курсам
type Handler struct {
	service ProgressService
	logger  Logger
}

func NewHandler(service ProgressService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/users/{userId}/courses/{courseId}/progress
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "GET /users/{id}/courses/{id}/progress"

	userID, courseID, ok := h.owner(w, r, op)
	if !ok {
		return
	}

	result, err := h.service.Get(r.Context(), userID, courseID)
	if err != nil {
		h.respondError(w, op, userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainProgress(result))
}

// MarkComplete POST /api/v1/users/{userId}/courses/{courseId}/lessons/complete
func (h *Handler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	h.updateLesson(w, r, "POST /users/{id}/courses/{id}/lessons/complete", h.service.MarkComplete)
}

// SetCurrent PUT /api/v1/users/{userId}/courses/{courseId}/current
func (h *Handler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	h.updateLesson(w, r, "PUT /users/{id}/courses/{id}/current", h.service.SetCurrent)
}

func (h *Handler) updateLesson(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	apply func(ctx context.Context, userID int64, key domain.LessonKey) (*domain.CourseProgress, error),
) {
	userID, courseID, ok := h.owner(w, r, op)
	if !ok {
		return
	}

	var req LessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	key := req.ToLessonKey(courseID)
	result, err := apply(r.Context(), userID, key)
	if err != nil {
		h.respondError(w, op, userID, err)
		return
	}

	h.logger.Info("%s - Progress updated: user_id=%d, lesson=%s/%s", op, userID, courseID, key.String())
	handlers.RespondJSON(w, http.StatusOK, FromDomainProgress(result))
}

// owner проверяет, что пользователь работает со своим прогрессом
func (h *Handler) owner(w http.ResponseWriter, r *http.Request, op string) (int64, string, bool) {
	vars := mux.Vars(r)

	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid user ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return 0, "", false
	}

	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", op)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, "", false
	}
	if authUserID != userID {
		h.logger.Warn("%s - Access denied: user_id=%d, requested=%d", op, authUserID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return 0, "", false
	}

	return userID, vars["courseId"], true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, userID int64, err error) {
	if errors.Is(err, progress.ErrInvalidInput) {
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", op, userID, err)
		handlers.RespondBadRequest(w, msgInvalidLesson)
		return
	}
	h.logger.Error("%s - Failed: user_id=%d, error=%v", op, userID, err)
	handlers.RespondInternalError(w)
}
