package progress

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CareBookingService/internal/domain"
	progressStore "github.com/m04kA/CareBookingService/internal/infra/storage/progress"
	"github.com/m04kA/CareBookingService/pkg/logger"
)

type failingStore struct{ err error }

func (f failingStore) Load(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Save(context.Context, string, []byte) error   { return f.err }

func lesson(module string, index int) domain.LessonKey {
	return domain.LessonKey{CourseID: "basic-care", ModuleID: module, LessonIndex: index}
}

func TestGet_EmptyProgressForNewCourse(t *testing.T) {
	svc := NewService(progressStore.NewMemoryStore(), logger.NewNop())

	p, err := svc.Get(context.Background(), 5, "basic-care")
	require.NoError(t, err)
	assert.Equal(t, "basic-care", p.CourseID)
	assert.Equal(t, 0, p.CompletedCount())
	assert.Nil(t, p.Current)
}

func TestMarkComplete_PersistsAndMovesCurrent(t *testing.T) {
	ctx := context.Background()
	store := progressStore.NewMemoryStore()
	svc := NewService(store, logger.NewNop())

	_, err := svc.MarkComplete(ctx, 5, lesson("hygiene", 0))
	require.NoError(t, err)
	_, err = svc.MarkComplete(ctx, 5, lesson("hygiene", 1))
	require.NoError(t, err)

	// Новый сервис поверх того же хранилища видит сохранённый прогресс
	p, err := NewService(store, logger.NewNop()).Get(ctx, 5, "basic-care")
	require.NoError(t, err)
	assert.Equal(t, 2, p.CompletedCount())
	assert.True(t, p.IsCompleted(lesson("hygiene", 0)))
	assert.Equal(t, &domain.LessonPointer{ModuleID: "hygiene", LessonIndex: 1}, p.Current)
}

func TestMarkComplete_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(progressStore.NewMemoryStore(), logger.NewNop())

	_, err := svc.MarkComplete(ctx, 5, lesson("nutrition", 2))
	require.NoError(t, err)
	p, err := svc.MarkComplete(ctx, 5, lesson("nutrition", 2))
	require.NoError(t, err)

	assert.Equal(t, 1, p.CompletedCount())
}

func TestSetCurrent_DoesNotComplete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(progressStore.NewMemoryStore(), logger.NewNop())

	_, err := svc.MarkComplete(ctx, 5, lesson("hygiene", 0))
	require.NoError(t, err)

	p, err := svc.SetCurrent(ctx, 5, lesson("mobility", 3))
	require.NoError(t, err)
	assert.Equal(t, &domain.LessonPointer{ModuleID: "mobility", LessonIndex: 3}, p.Current)
	assert.False(t, p.IsCompleted(lesson("mobility", 3)))
	// Отметка о прохождении не откатывается
	assert.True(t, p.IsCompleted(lesson("hygiene", 0)))
}

func TestProgress_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := NewService(progressStore.NewMemoryStore(), logger.NewNop())

	_, err := svc.MarkComplete(ctx, 5, lesson("hygiene", 0))
	require.NoError(t, err)

	p, err := svc.Get(ctx, 6, "basic-care")
	require.NoError(t, err)
	assert.Equal(t, 0, p.CompletedCount())
}

func TestProgress_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewService(progressStore.NewMemoryStore(), logger.NewNop())

	_, err := svc.Get(ctx, 0, "basic-care")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Get(ctx, 5, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.MarkComplete(ctx, 5, lesson("", 0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetCurrent(ctx, 5, lesson("hygiene", -1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProgress_StoreFailure(t *testing.T) {
	ctx := context.Background()
	svc := NewService(failingStore{err: errors.New("redis: connection refused")}, logger.NewNop())

	_, err := svc.Get(ctx, 5, "basic-care")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.MarkComplete(ctx, 5, lesson("hygiene", 0))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestMarkComplete_ConcurrentCallsKeepEveryLesson(t *testing.T) {
	const lessons = 50

	ctx := context.Background()
	store := progressStore.NewMemoryStore()
	svc := NewService(store, logger.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, lessons)
	for i := 0; i < lessons; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			if _, err := svc.MarkComplete(ctx, 5, lesson("mobility", index)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	p, err := svc.Get(ctx, 5, "basic-care")
	require.NoError(t, err)
	assert.Equal(t, lessons, p.CompletedCount())
	for i := 0; i < lessons; i++ {
		assert.True(t, p.IsCompleted(lesson("mobility", i)))
	}
}
