package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

// CreateLesson creates a lesson and appends it to the module's lesson order
func (s *contentService) CreateLesson(ctx context.Context, courseID, moduleID string, req *models.CreateLessonRequest, caller models.Identity) (*models.Lesson, error) {
	if _, err := s.loadOwnedCourse(ctx, courseID, caller); err != nil {
		return nil, err
	}
	module, err := s.loadModule(ctx, courseID, moduleID)
	if err != nil {
		return nil, err
	}
	if err := validateCreateLesson(req); err != nil {
		return nil, err
	}

	existing, err := s.lessonStore.FindAllByModule(ctx, courseID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}
	orders := make([]int, 0, len(existing))
	for _, l := range existing {
		orders = append(orders, l.Order)
	}

	now := s.now()
	lesson := &models.Lesson{
		ID:              s.newID(),
		ModuleID:        module.ID,
		CourseID:        module.CourseID,
		Title:           strings.TrimSpace(req.Title),
		Order:           models.NextOrder(orders),
		Content:         req.Content,
		IsPreview:       req.IsPreview,
		DurationMinutes: req.DurationMinutes,
		Materials:       models.Materials(req.Materials),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if lesson.Materials == nil {
		lesson.Materials = models.Materials{}
	}

	if err := s.lessonStore.Save(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to save lesson: %w", err)
	}

	fields := models.ModuleFields{
		LessonOrder: module.LessonOrder.Append(lesson.ID),
		UpdatedAt:   now,
	}
	updated, err := s.moduleStore.UpdatePartial(ctx, courseID, moduleID, fields)
	if err != nil {
		s.logger.Warn("lesson saved but not linked to module",
			zap.String("module_id", moduleID),
			zap.String("lesson_id", lesson.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to link lesson to module: %w", err)
	}
	if updated == nil {
		return nil, models.NotFoundError("module %s not found in course %s", moduleID, courseID)
	}

	return lesson, nil
}

func validateCreateLesson(req *models.CreateLessonRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return models.ValidationError("title is required")
	}
	if req.DurationMinutes < 0 {
		return models.ValidationError("duration must not be negative")
	}
	if err := req.Content.Validate(); err != nil {
		return err
	}
	return validateMaterials(req.Materials)
}

func validateMaterials(materials []models.Material) error {
	for i, m := range materials {
		if strings.TrimSpace(m.Title) == "" || strings.TrimSpace(m.URL) == "" {
			return models.ValidationError("material %d requires a title and a url", i+1)
		}
	}
	return nil
}

// GetLesson retrieves a lesson. Access is granted to the course owner, to
// enrolled students and to anyone for preview lessons.
func (s *contentService) GetLesson(ctx context.Context, courseID, moduleID, lessonID string, caller models.Identity) (*models.Lesson, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lesson, err := s.loadLesson(ctx, courseID, moduleID, lessonID)
	if err != nil {
		return nil, err
	}

	if lesson.IsPreview || caller.Owns(course.CreatorID) {
		return lesson, nil
	}
	if caller.ID == "" {
		return nil, models.ForbiddenError("authentication required to access this lesson")
	}

	user, err := s.userStore.FindByUID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.IsEnrolled(courseID) {
		return nil, models.ForbiddenError("you are not enrolled in this course")
	}
	return lesson, nil
}

// GetPreviewLesson retrieves a lesson flagged as preview without a caller identity
func (s *contentService) GetPreviewLesson(ctx context.Context, courseID, moduleID, lessonID string) (*models.Lesson, error) {
	lesson, err := s.loadLesson(ctx, courseID, moduleID, lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.IsPreview {
		return nil, models.ForbiddenError("lesson %s is not available for preview", lessonID)
	}
	return lesson, nil
}

// ListLessons retrieves the lessons of a module in lesson order
func (s *contentService) ListLessons(ctx context.Context, courseID, moduleID string, caller models.Identity) ([]models.Lesson, error) {
	if _, err := s.GetCourse(ctx, courseID, caller); err != nil {
		return nil, err
	}
	module, err := s.loadModule(ctx, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonStore.FindAllByModule(ctx, courseID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return sortByOrderList(lessons, module.LessonOrder,
		func(l models.Lesson) string { return l.ID },
		func(l models.Lesson) int { return l.Order },
	), nil
}

// UpdateLesson updates the mutable fields of a lesson (partial update)
func (s *contentService) UpdateLesson(ctx context.Context, courseID, moduleID, lessonID string, req *models.UpdateLessonRequest, caller models.Identity) (*models.Lesson, error) {
	if req.IsEmpty() {
		return nil, models.ValidationError("at least one field must be provided")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, models.ValidationError("title must not be empty")
	}
	if req.Content != nil {
		if err := req.Content.Validate(); err != nil {
			return nil, err
		}
	}
	if req.DurationMinutes != nil && *req.DurationMinutes < 0 {
		return nil, models.ValidationError("duration must not be negative")
	}

	fields := models.LessonFields{
		Title:           req.Title,
		Content:         req.Content,
		IsPreview:       req.IsPreview,
		DurationMinutes: req.DurationMinutes,
		UpdatedAt:       s.now(),
	}
	if req.Materials != nil {
		if err := validateMaterials(*req.Materials); err != nil {
			return nil, err
		}
		materials := models.Materials(*req.Materials)
		if materials == nil {
			materials = models.Materials{}
		}
		fields.Materials = &materials
	}

	if _, err := s.loadOwnedCourse(ctx, courseID, caller); err != nil {
		return nil, err
	}
	if _, err := s.loadModule(ctx, courseID, moduleID); err != nil {
		return nil, err
	}

	lesson, err := s.lessonStore.UpdatePartial(ctx, courseID, moduleID, lessonID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	if lesson == nil {
		return nil, models.NotFoundError("lesson %s not found", lessonID)
	}
	return lesson, nil
}

// DeleteLesson unlinks a lesson from its module and deletes it
func (s *contentService) DeleteLesson(ctx context.Context, courseID, moduleID, lessonID string, caller models.Identity) error {
	if _, err := s.loadOwnedCourse(ctx, courseID, caller); err != nil {
		return err
	}
	module, err := s.loadModule(ctx, courseID, moduleID)
	if err != nil {
		return err
	}
	if _, err := s.loadLesson(ctx, courseID, moduleID, lessonID); err != nil {
		return err
	}

	fields := models.ModuleFields{
		LessonOrder: module.LessonOrder.Remove(lessonID),
		UpdatedAt:   s.now(),
	}
	updated, err := s.moduleStore.UpdatePartial(ctx, courseID, moduleID, fields)
	if err != nil {
		return fmt.Errorf("failed to unlink lesson from module: %w", err)
	}
	if updated == nil {
		return models.NotFoundError("module %s not found in course %s", moduleID, courseID)
	}

	if err := s.lessonStore.Delete(ctx, courseID, moduleID, lessonID); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

// ReorderLessons replaces the lesson order of a module with a permutation of the current one
func (s *contentService) ReorderLessons(ctx context.Context, courseID, moduleID string, orderedIDs []string, caller models.Identity) (*models.Module, error) {
	if _, err := s.loadOwnedCourse(ctx, courseID, caller); err != nil {
		return nil, err
	}
	module, err := s.loadModule(ctx, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	if !module.LessonOrder.IsPermutation(orderedIDs) {
		return nil, models.ValidationError("lesson IDs must be a permutation of the current %d lessons", len(module.LessonOrder))
	}

	fields := models.ModuleFields{
		LessonOrder: slices.Clone(models.OrderList(orderedIDs)),
		UpdatedAt:   s.now(),
	}
	updated, err := s.moduleStore.UpdatePartial(ctx, courseID, moduleID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to save lesson order: %w", err)
	}
	if updated == nil {
		return nil, models.NotFoundError("module %s not found in course %s", moduleID, courseID)
	}
	return updated, nil
}

// CountCourseLessons counts the lessons of a course across all its modules
func (s *contentService) CountCourseLessons(ctx context.Context, courseID string) (int, error) {
	if _, err := s.loadCourse(ctx, courseID); err != nil {
		return 0, err
	}
	total, err := s.lessonStore.CountByCourse(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return total, nil
}

// loadLesson retrieves a lesson and checks it belongs to the module
func (s *contentService) loadLesson(ctx context.Context, courseID, moduleID, lessonID string) (*models.Lesson, error) {
	lesson, err := s.lessonStore.FindByID(ctx, courseID, moduleID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	if lesson == nil || lesson.ModuleID != moduleID || lesson.CourseID != courseID {
		return nil, models.NotFoundError("lesson %s not found in module %s", lessonID, moduleID)
	}
	return lesson, nil
}
