package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/m04kA/CareBookingService/internal/domain"
	progressStore "github.com/m04kA/CareBookingService/internal/infra/storage/progress"
)

// Service репозиторий прогресса обучения сиделок.
// Прогресс по курсу хранится одним документом под ключом {userID}:{courseID}.
type Service struct {
	store  Store
	logger Logger

	// Сериализует чтение-изменение-запись в пределах процесса
	mu sync.Mutex
}

// NewService создает сервис прогресса поверх хранилища
func NewService(store Store, logger Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get возвращает прогресс пользователя по курсу.
// Для курса без сохранённого прогресса возвращается пустой прогресс.
func (s *Service) Get(ctx context.Context, userID int64, courseID string) (*domain.CourseProgress, error) {
	if err := validateOwner(userID, courseID); err != nil {
		return nil, err
	}

	progress, err := s.load(ctx, userID, courseID)
	if err != nil {
		s.logger.Error("Get: failed to load progress user=%d course=%s: %v", userID, courseID, err)
		return nil, err
	}

	return progress, nil
}

// MarkComplete отмечает урок пройденным и делает его текущим.
// Повторная отметка не меняет прогресс.
func (s *Service) MarkComplete(ctx context.Context, userID int64, key domain.LessonKey) (*domain.CourseProgress, error) {
	return s.update(ctx, "MarkComplete", userID, key, func(p *domain.CourseProgress) {
		p.MarkComplete(key)
	})
}

// SetCurrent переключает текущий урок без отметки о прохождении
func (s *Service) SetCurrent(ctx context.Context, userID int64, key domain.LessonKey) (*domain.CourseProgress, error) {
	return s.update(ctx, "SetCurrent", userID, key, func(p *domain.CourseProgress) {
		p.SetCurrent(key)
	})
}

func (s *Service) update(
	ctx context.Context,
	op string,
	userID int64,
	key domain.LessonKey,
	apply func(p *domain.CourseProgress),
) (*domain.CourseProgress, error) {
	if err := validateOwner(userID, key.CourseID); err != nil {
		return nil, err
	}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.load(ctx, userID, key.CourseID)
	if err != nil {
		s.logger.Error("%s: failed to load progress user=%d course=%s: %v", op, userID, key.CourseID, err)
		return nil, err
	}

	apply(progress)

	data, err := json.Marshal(progress)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - marshal progress: %v", ErrInternal, op, err)
	}

	if err := s.store.Save(ctx, storeKey(userID, key.CourseID), data); err != nil {
		s.logger.Error("%s: failed to save progress user=%d course=%s: %v", op, userID, key.CourseID, err)
		return nil, fmt.Errorf("%w: %s - save progress: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: user=%d lesson=%s/%s, completed=%d",
		op, userID, key.CourseID, key.String(), progress.CompletedCount())
	return progress, nil
}

func (s *Service) load(ctx context.Context, userID int64, courseID string) (*domain.CourseProgress, error) {
	data, err := s.store.Load(ctx, storeKey(userID, courseID))
	if errors.Is(err, progressStore.ErrProgressNotFound) {
		return domain.NewCourseProgress(courseID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load progress: %v", ErrInternal, err)
	}

	progress := domain.NewCourseProgress(courseID)
	if err := json.Unmarshal(data, progress); err != nil {
		return nil, fmt.Errorf("%w: decode progress: %v", ErrInternal, err)
	}
	if progress.Completed == nil {
		progress.Completed = make(map[string]bool)
	}
	progress.CourseID = courseID

	return progress, nil
}

func validateOwner(userID int64, courseID string) error {
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(courseID) == "" {
		return fmt.Errorf("%w: courseID is required", ErrInvalidInput)
	}
	return nil
}

func storeKey(userID int64, courseID string) string {
	return fmt.Sprintf("%d:%s", userID, courseID)
}
