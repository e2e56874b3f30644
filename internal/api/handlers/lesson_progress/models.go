package lesson_progress

import (
	"sort"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// LessonRequest урок внутри курса
type LessonRequest struct {
	ModuleID    string `json:"moduleId"`
	LessonIndex int    `json:"lessonIndex"`
}

// ProgressResponse прогресс пользователя по курсу
type ProgressResponse struct {
	CourseID       string                `json:"courseId"`
	Completed      []string              `json:"completed"` // "module:index", отсортированы
	CompletedCount int                   `json:"completedCount"`
	Current        *domain.LessonPointer `json:"current,omitempty"`
}

// ToLessonKey конвертирует запрос в ключ урока
func (r *LessonRequest) ToLessonKey(courseID string) domain.LessonKey {
	return domain.LessonKey{
		CourseID:    courseID,
		ModuleID:    r.ModuleID,
		LessonIndex: r.LessonIndex,
	}
}

// FromDomainProgress конвертирует прогресс в HTTP response
func FromDomainProgress(p *domain.CourseProgress) *ProgressResponse {
	completed := make([]string, 0, len(p.Completed))
	for key, done := range p.Completed {
		if done {
			completed = append(completed, key)
		}
	}
	sort.Strings(completed)

	return &ProgressResponse{
		CourseID:       p.CourseID,
		Completed:      completed,
		CompletedCount: len(completed),
		Current:        p.Current,
	}
}
