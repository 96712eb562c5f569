package services

import (
	"context"
	"fmt"

	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

type enrollmentService struct {
	userStore   UserStore
	courseStore CourseStore
	logger      *zap.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(userStore UserStore, courseStore CourseStore, logger *zap.Logger) *enrollmentService {
	return &enrollmentService{
		userStore:   userStore,
		courseStore: courseStore,
		logger:      logger,
	}
}

// Enroll grants a student access to a published course exactly once
//
// Enrolling again in a course the student already has is a successful no-op.
// The membership write and the counter increment are not transactional: if
// the increment fails the student stays enrolled and the error is returned.
func (s *enrollmentService) Enroll(ctx context.Context, studentID, courseID string) (*models.EnrollmentResult, error) {
	if studentID == "" || courseID == "" {
		return nil, models.ValidationError("student ID and course ID are required")
	}

	user, err := s.userStore.FindByUID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.NotFoundError("user %s not found", studentID)
	}

	course, err := s.courseStore.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, models.NotFoundError("course %s not found", courseID)
	}
	if !course.IsPublished() {
		return nil, models.UnavailableError("course %s is not open for enrollment", courseID)
	}

	if user.IsEnrolled(courseID) {
		return &models.EnrollmentResult{CourseID: courseID, AlreadyEnrolled: true}, nil
	}

	if err := s.userStore.AddCourseToEnrolled(ctx, studentID, courseID); err != nil {
		return nil, fmt.Errorf("failed to add course to enrolled: %w", err)
	}

	if err := s.courseStore.IncrementEnrolledCount(ctx, courseID); err != nil {
		s.logger.Error("enrolled count out of sync with enrollments",
			zap.String("user_id", studentID),
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to increment enrolled count: %w", err)
	}

	s.logger.Info("student enrolled",
		zap.String("user_id", studentID),
		zap.String("course_id", courseID),
	)
	return &models.EnrollmentResult{CourseID: courseID}, nil
}

// IsEnrolled reports whether the student can access the course
func (s *enrollmentService) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	user, err := s.userStore.FindByUID(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return false, models.NotFoundError("user %s not found", studentID)
	}
	return user.IsEnrolled(courseID), nil
}

// ListEnrolledCourses retrieves the courses a student is enrolled in, in enrollment order
//
// Courses that no longer exist are skipped.
func (s *enrollmentService) ListEnrolledCourses(ctx context.Context, studentID string) ([]models.Course, error) {
	user, err := s.userStore.FindByUID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.NotFoundError("user %s not found", studentID)
	}

	courses := make([]models.Course, 0, len(user.EnrolledCourseIDs))
	for _, courseID := range user.EnrolledCourseIDs {
		course, err := s.courseStore.FindByID(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to get course: %w", err)
		}
		if course == nil {
			continue
		}
		courses = append(courses, *course)
	}
	return courses, nil
}
