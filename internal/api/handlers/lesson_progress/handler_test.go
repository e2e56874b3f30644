package lesson_progress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CareBookingService/internal/api/middleware"
	"github.com/m04kA/CareBookingService/internal/infra/storage/progress"
	progressService "github.com/m04kA/CareBookingService/internal/service/progress"
	"github.com/m04kA/CareBookingService/pkg/logger"
)

func newRouter() *mux.Router {
	svc := progressService.NewService(progress.NewMemoryStore(), logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	router := mux.NewRouter()
	router.HandleFunc("/users/{userId}/courses/{courseId}/progress", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/users/{userId}/courses/{courseId}/lessons/complete", h.MarkComplete).Methods(http.MethodPost)
	router.HandleFunc("/users/{userId}/courses/{courseId}/current", h.SetCurrent).Methods(http.MethodPut)
	return router
}

func do(t *testing.T, router *mux.Router, method, target, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Flow(t *testing.T) {
	router := newRouter()

	rec := do(t, router, http.MethodGet, "/users/5/courses/dementia-care/progress", "", 5)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"courseId":"dementia-care","completed":[],"completedCount":0}`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/users/5/courses/dementia-care/lessons/complete",
		`{"moduleId":"m1","lessonIndex":2}`, 5)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPut, "/users/5/courses/dementia-care/current",
		`{"moduleId":"m2","lessonIndex":0}`, 5)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/users/5/courses/dementia-care/progress", "", 5)
	require.Equal(t, http.StatusOK, rec.Code)

	var body ProgressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"m1:2"}, body.Completed)
	assert.Equal(t, 1, body.CompletedCount)
	require.NotNil(t, body.Current)
	assert.Equal(t, "m2", body.Current.ModuleID)
}

func TestHandler_OtherUserForbidden(t *testing.T) {
	rec := do(t, newRouter(), http.MethodGet, "/users/6/courses/c1/progress", "", 5)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_InvalidLesson(t *testing.T) {
	router := newRouter()

	rec := do(t, router, http.MethodPost, "/users/5/courses/c1/lessons/complete", `{"moduleId":"","lessonIndex":0}`, 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, "/users/5/courses/c1/current", `{"moduleId":"m1","lessonIndex":-1}`, 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) ([]byte, error) {
	return nil, progress.ErrStoreUnavailable
}
func (brokenStore) Save(context.Context, string, []byte) error { return progress.ErrStoreUnavailable }

func TestHandler_StoreFailure(t *testing.T) {
	h := NewHandler(progressService.NewService(brokenStore{}, logger.NewNop()), logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/users/{userId}/courses/{courseId}/progress", h.Get)

	rec := do(t, router, http.MethodGet, "/users/5/courses/c1/progress", "", 5)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
