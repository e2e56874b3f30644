package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLessonKey возвращается для некорректного ключа урока
var ErrInvalidLessonKey = errors.New("invalid lesson key")

// LessonKey идентификатор урока внутри курса обучения сиделок
type LessonKey struct {
	CourseID    string
	ModuleID    string
	LessonIndex int
}

// Validate проверяет обязательные поля ключа
func (k LessonKey) Validate() error {
	if strings.TrimSpace(k.CourseID) == "" {
		return fmt.Errorf("%w: empty course id", ErrInvalidLessonKey)
	}
	if strings.TrimSpace(k.ModuleID) == "" {
		return fmt.Errorf("%w: empty module id", ErrInvalidLessonKey)
	}
	if k.LessonIndex < 0 {
		return fmt.Errorf("%w: negative lesson index", ErrInvalidLessonKey)
	}
	return nil
}

// String ключ урока внутри курса в виде "module:index"
func (k LessonKey) String() string {
	return k.ModuleID + ":" + strconv.Itoa(k.LessonIndex)
}

// LessonPointer текущий урок пользователя
type LessonPointer struct {
	ModuleID    string `json:"moduleId"`
	LessonIndex int    `json:"lessonIndex"`
}

// CourseProgress прогресс пользователя по одному курсу
type CourseProgress struct {
	CourseID  string          `json:"courseId"`
	Completed map[string]bool `json:"completed"` // Ключ LessonKey.String()
	Current   *LessonPointer  `json:"current,omitempty"`
}

// NewCourseProgress пустой прогресс по курсу
func NewCourseProgress(courseID string) *CourseProgress {
	return &CourseProgress{
		CourseID:  courseID,
		Completed: make(map[string]bool),
	}
}

// IsCompleted возвращает true, если урок отмечен пройденным
func (p *CourseProgress) IsCompleted(key LessonKey) bool {
	return p.Completed[key.String()]
}

// MarkComplete отмечает урок пройденным и делает его текущим.
// Отметка необратима: повторный вызов ничего не меняет.
func (p *CourseProgress) MarkComplete(key LessonKey) {
	if p.Completed == nil {
		p.Completed = make(map[string]bool)
	}
	p.Completed[key.String()] = true
	p.SetCurrent(key)
}

// SetCurrent переключает текущий урок
func (p *CourseProgress) SetCurrent(key LessonKey) {
	p.Current = &LessonPointer{ModuleID: key.ModuleID, LessonIndex: key.LessonIndex}
}

// CompletedCount количество пройденных уроков
func (p *CourseProgress) CompletedCount() int {
	count := 0
	for _, done := range p.Completed {
		if done {
			count++
		}
	}
	return count
}
