package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

type contentService struct {
	courseStore CourseStore
	moduleStore ModuleStore
	lessonStore LessonStore
	userStore   UserStore
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

// NewContentService creates a new content hierarchy service
func NewContentService(
	courseStore CourseStore,
	moduleStore ModuleStore,
	lessonStore LessonStore,
	userStore UserStore,
	logger *zap.Logger,
) *contentService {
	return &contentService{
		courseStore: courseStore,
		moduleStore: moduleStore,
		lessonStore: lessonStore,
		userStore:   userStore,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// CreateCourse creates a new draft course owned by the caller
func (s *contentService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest, caller models.Identity) (*models.Course, error) {
	if !caller.CanAuthor() {
		return nil, models.ForbiddenError("only creators can create courses")
	}
	if err := validateCreateCourse(req); err != nil {
		return nil, err
	}

	now := s.now()
	course := &models.Course{
		ID:               s.newID(),
		CreatorID:        caller.ID,
		Name:             strings.TrimSpace(req.Name),
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Price:            req.Price,
		Category:         strings.TrimSpace(req.Category),
		AccessType:       req.AccessType,
		CoverImageURL:    req.CoverImageURL,
		Status:           models.CourseStatusDraft,
		ModuleOrder:      models.OrderList{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.courseStore.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	return course, nil
}

func validateCreateCourse(req *models.CreateCourseRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" {
		return models.ValidationError("name and category are required")
	}
	if req.Price < 0 {
		return models.ValidationError("price must not be negative")
	}
	if !req.AccessType.IsValid() {
		return models.ValidationError("invalid access type %q", req.AccessType)
	}
	if req.AccessType == models.AccessTypeFree && req.Price != 0 {
		return models.ValidationError("free courses cannot have a price")
	}
	return nil
}

// GetCourse retrieves a course. Unpublished courses are only visible to their owner.
func (s *contentService) GetCourse(ctx context.Context, courseID string, caller models.Identity) (*models.Course, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished() && !caller.Owns(course.CreatorID) {
		return nil, models.NotFoundError("course %s not found", courseID)
	}
	return course, nil
}

// ListPublishedCourses retrieves the public catalogue
func (s *contentService) ListPublishedCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseStore.FindAllPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published courses: %w", err)
	}
	return courses, nil
}

// ListCoursesByCreator retrieves the courses owned by the caller
func (s *contentService) ListCoursesByCreator(ctx context.Context, caller models.Identity) ([]models.Course, error) {
	if !caller.CanAuthor() {
		return nil, models.ForbiddenError("only creators own courses")
	}
	courses, err := s.courseStore.FindAllByCreator(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by creator: %w", err)
	}
	return courses, nil
}

// UpdateCourse updates the mutable fields of a course (partial update)
func (s *contentService) UpdateCourse(ctx context.Context, courseID string, req *models.UpdateCourseRequest, caller models.Identity) (*models.Course, error) {
	if req.IsEmpty() {
		return nil, models.ValidationError("at least one field must be provided")
	}

	course, err := s.loadOwnedCourse(ctx, courseID, caller)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, models.ValidationError("name must not be empty")
		}
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.ShortDescription != nil {
		course.ShortDescription = *req.ShortDescription
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		if strings.TrimSpace(*req.Category) == "" {
			return nil, models.ValidationError("category must not be empty")
		}
		course.Category = strings.TrimSpace(*req.Category)
	}
	if req.AccessType != nil {
		if !req.AccessType.IsValid() {
			return nil, models.ValidationError("invalid access type %q", *req.AccessType)
		}
		course.AccessType = *req.AccessType
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, models.ValidationError("price must not be negative")
		}
		course.Price = *req.Price
	}
	if course.AccessType == models.AccessTypeFree && course.Price != 0 {
		return nil, models.ValidationError("free courses cannot have a price")
	}
	if req.CoverImageURL != nil {
		course.CoverImageURL = *req.CoverImageURL
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, models.ValidationError("invalid status %q", *req.Status)
		}
		if !course.Status.CanTransitionTo(*req.Status) {
			return nil, models.ValidationError("course cannot move from %s to %s", course.Status, *req.Status)
		}
		course.Status = *req.Status
	}
	course.UpdatedAt = s.now()

	if err := s.courseStore.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	return course, nil
}

// DeleteCourse deletes a course that has no modules left
func (s *contentService) DeleteCourse(ctx context.Context, courseID string, caller models.Identity) error {
	course, err := s.loadOwnedCourse(ctx, courseID, caller)
	if err != nil {
		return err
	}

	// Deletion does not cascade, modules must be removed first
	if len(course.ModuleOrder) > 0 {
		return models.ValidationError("course still has %d modules, delete them first", len(course.ModuleOrder))
	}

	if err := s.courseStore.Delete(ctx, courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

// CreateModule creates a module and appends it to the course's module order
func (s *contentService) CreateModule(ctx context.Context, courseID string, req *models.CreateModuleRequest, caller models.Identity) (*models.Module, error) {
	course, err := s.loadOwnedCourse(ctx, courseID, caller)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, models.ValidationError("title is required")
	}

	existing, err := s.moduleStore.FindAllByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}
	orders := make([]int, 0, len(existing))
	for _, m := range existing {
		orders = append(orders, m.Order)
	}

	now := s.now()
	module := &models.Module{
		ID:          s.newID(),
		CourseID:    course.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Order:       models.NextOrder(orders),
		LessonOrder: models.OrderList{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The module must exist before it becomes reachable from the order list
	if err := s.moduleStore.Save(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to save module: %w", err)
	}

	course.ModuleOrder = course.ModuleOrder.Append(module.ID)
	course.UpdatedAt = now
	if err := s.courseStore.Save(ctx, course); err != nil {
		s.logger.Warn("module saved but not linked to course",
			zap.String("course_id", course.ID),
			zap.String("module_id", module.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to link module to course: %w", err)
	}

	return module, nil
}

// GetModule retrieves a module of a course
func (s *contentService) GetModule(ctx context.Context, courseID, moduleID string, caller models.Identity) (*models.Module, error) {
	if _, err := s.GetCourse(ctx, courseID, caller); err != nil {
		return nil, err
	}
	return s.loadModule(ctx, courseID, moduleID)
}

// ListModules retrieves the modules of a course in module order
func (s *contentService) ListModules(ctx context.Context, courseID string, caller models.Identity) ([]models.Module, error) {
	course, err := s.GetCourse(ctx, courseID, caller)
	if err != nil {
		return nil, err
	}

	modules, err := s.moduleStore.FindAllByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}

	return sortByOrderList(modules, course.ModuleOrder,
		func(m models.Module) string { return m.ID },
		func(m models.Module) int { return m.Order },
	), nil
}

// UpdateModule updates the mutable fields of a module (partial update)
func (s *contentService) UpdateModule(ctx context.Context, courseID, moduleID string, req *models.UpdateModuleRequest, caller models.Identity) (*models.Module, error) {
	if req.Title == nil && req.Description == nil {
		return nil, models.ValidationError("at least one field must be provided")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, models.ValidationError("title must not be empty")
	}
	if _, err := s.loadOwnedCourse(ctx, courseID, caller); err != nil {
		return nil, err
	}

	fields := models.ModuleFields{
		Title:       req.Title,
		Description: req.Description,
		UpdatedAt:   s.now(),
	}
	module, err := s.moduleStore.UpdatePartial(ctx, courseID, moduleID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}
	if module == nil {
		return nil, models.NotFoundError("module %s not found", moduleID)
	}
	return module, nil
}

// DeleteModule unlinks a module from its course and deletes it. Lessons of
// the module are not deleted.
func (s *contentService) DeleteModule(ctx context.Context, courseID, moduleID string, caller models.Identity) error {
	course, err := s.loadOwnedCourse(ctx, courseID, caller)
	if err != nil {
		return err
	}
	if _, err := s.loadModule(ctx, courseID, moduleID); err != nil {
		return err
	}

	// Unlink before delete so the order list never references a missing module
	course.ModuleOrder = course.ModuleOrder.Remove(moduleID)
	course.UpdatedAt = s.now()
	if err := s.courseStore.Save(ctx, course); err != nil {
		return fmt.Errorf("failed to unlink module from course: %w", err)
	}

	if err := s.moduleStore.Delete(ctx, courseID, moduleID); err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}
	return nil
}

// ReorderModules replaces the module order with a permutation of the current one
func (s *contentService) ReorderModules(ctx context.Context, courseID string, orderedIDs []string, caller models.Identity) (*models.Course, error) {
	course, err := s.loadOwnedCourse(ctx, courseID, caller)
	if err != nil {
		return nil, err
	}

	if !course.ModuleOrder.IsPermutation(orderedIDs) {
		return nil, models.ValidationError("module IDs must be a permutation of the current %d modules", len(course.ModuleOrder))
	}

	course.ModuleOrder = slices.Clone(models.OrderList(orderedIDs))
	course.UpdatedAt = s.now()
	if err := s.courseStore.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to save module order: %w", err)
	}
	return course, nil
}

// loadCourse retrieves a course or fails with a not found error
func (s *contentService) loadCourse(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.courseStore.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, models.NotFoundError("course %s not found", courseID)
	}
	return course, nil
}

// loadOwnedCourse retrieves a course and checks that the caller may manage it
func (s *contentService) loadOwnedCourse(ctx context.Context, courseID string, caller models.Identity) (*models.Course, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(course.CreatorID) {
		return nil, models.ForbiddenError("you do not have rights to manage this course")
	}
	return course, nil
}

// loadModule retrieves a module and checks it belongs to the course
func (s *contentService) loadModule(ctx context.Context, courseID, moduleID string) (*models.Module, error) {
	module, err := s.moduleStore.FindByID(ctx, courseID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	if module == nil || module.CourseID != courseID {
		return nil, models.NotFoundError("module %s not found in course %s", moduleID, courseID)
	}
	return module, nil
}

// sortByOrderList arranges items by their position in order. Items missing
// from the list follow, sorted by their creation-time rank.
func sortByOrderList[T any](items []T, order models.OrderList, id func(T) string, rank func(T) int) []T {
	position := make(map[string]int, len(order))
	for i, itemID := range order {
		position[itemID] = i
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		pa, okA := position[id(a)]
		pb, okB := position[id(b)]
		switch {
		case okA && okB:
			return cmp.Compare(pa, pb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return cmp.Compare(rank(a), rank(b))
		}
	})
	if sorted == nil {
		return []T{}
	}
	return sorted
}
