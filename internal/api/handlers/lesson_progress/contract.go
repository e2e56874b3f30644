package lesson_progress

import (
	"context"

	"github.com/m04kA/CareBookingService/internal/domain"
)

type ProgressService interface {
	Get(ctx context.Context, userID int64, courseID string) (*domain.CourseProgress, error)
	MarkComplete(ctx context.Context, userID int64, key domain.LessonKey) (*domain.CourseProgress, error)
	SetCurrent(ctx context.Context, userID int64, key domain.LessonKey) (*domain.CourseProgress, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
