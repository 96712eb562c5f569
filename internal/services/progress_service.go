package services

import (
	"context"
	"fmt"
	"time"

	"github.com/learnhub/backend/internal/models"
)

type progressService struct {
	progressStore ProgressStore
	now           func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(progressStore ProgressStore) *progressService {
	return &progressService{
		progressStore: progressStore,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ToggleLessonCompletion completes a lesson that is not completed yet and
// un-completes one that is, then recomputes the percentage against the
// supplied total
func (s *progressService) ToggleLessonCompletion(ctx context.Context, studentID, courseID, lessonID string, totalLessons int) (*models.Progress, error) {
	if studentID == "" || courseID == "" || lessonID == "" {
		return nil, models.ValidationError("student ID, course ID and lesson ID are required")
	}
	if totalLessons < 0 {
		return nil, models.ValidationError("total lessons must not be negative")
	}

	progress, err := s.load(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	progress.Toggle(lessonID)
	progress.Recompute(totalLessons)
	progress.LastUpdated = s.now()

	if err := s.progressStore.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}
	return progress, nil
}

// GetCompletedLessons returns the completed lesson IDs, or an empty set when
// the student has no progress yet
func (s *progressService) GetCompletedLessons(ctx context.Context, studentID, courseID string) ([]string, error) {
	progress, err := s.load(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	return progress.CompletedSet(), nil
}

// GetProgress returns the full progress record with the percentage
// recomputed against the supplied total
func (s *progressService) GetProgress(ctx context.Context, studentID, courseID string, totalLessons int) (*models.Progress, error) {
	if totalLessons < 0 {
		return nil, models.ValidationError("total lessons must not be negative")
	}
	progress, err := s.load(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	progress.Recompute(totalLessons)
	return progress, nil
}

// load retrieves a progress record or materializes an empty one
func (s *progressService) load(ctx context.Context, studentID, courseID string) (*models.Progress, error) {
	progress, err := s.progressStore.Get(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	if progress == nil {
		return models.NewProgress(studentID, courseID), nil
	}
	if progress.CompletedLessonIDs == nil {
		progress.CompletedLessonIDs = models.OrderList{}
	}
	return progress, nil
}
