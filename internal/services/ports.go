package services

import (
	"context"

	"github.com/learnhub/backend/internal/models"
)

// CourseStore defines methods for course data access
type CourseStore interface {
	// Save inserts or replaces a course
	//
	// "ctx" is the context for the request.
	// "course" is the course to save.
	//
	// Returns an error if any.
	Save(ctx context.Context, course *models.Course) error
	// FindByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course (nil if absent) and an error if any.
	FindByID(ctx context.Context, id string) (*models.Course, error)
	// FindAllByCreator retrieves all courses owned by a creator
	//
	// "ctx" is the context for the request.
	// "creatorID" is the ID of the creator.
	//
	// Returns a list of courses and an error if any.
	FindAllByCreator(ctx context.Context, creatorID string) ([]models.Course, error)
	// FindAllPublished retrieves all published courses
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of courses and an error if any.
	FindAllPublished(ctx context.Context) ([]models.Course, error)
	// IncrementEnrolledCount increments the enrolled-student counter by one
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns an error if any.
	IncrementEnrolledCount(ctx context.Context, id string) error
	// Delete deletes a course
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id string) error
}

// ModuleStore defines methods for module data access
type ModuleStore interface {
	// Save inserts or replaces a module
	Save(ctx context.Context, module *models.Module) error
	// FindByID retrieves a module scoped under a course
	//
	// Returns the module (nil if absent) and an error if any.
	FindByID(ctx context.Context, courseID, moduleID string) (*models.Module, error)
	// FindAllByCourse retrieves all modules of a course in no particular order
	FindAllByCourse(ctx context.Context, courseID string) ([]models.Module, error)
	// Delete deletes a module
	Delete(ctx context.Context, courseID, moduleID string) error
	// UpdatePartial updates the provided fields of a module
	//
	// Returns the updated module (nil if absent) and an error if any.
	UpdatePartial(ctx context.Context, courseID, moduleID string, fields models.ModuleFields) (*models.Module, error)
}

// LessonStore defines methods for lesson data access
type LessonStore interface {
	// Save inserts or replaces a lesson
	Save(ctx context.Context, lesson *models.Lesson) error
	// FindByID retrieves a lesson scoped under a course and a module
	//
	// Returns the lesson (nil if absent) and an error if any.
	FindByID(ctx context.Context, courseID, moduleID, lessonID string) (*models.Lesson, error)
	// FindAllByModule retrieves all lessons of a module in no particular order
	FindAllByModule(ctx context.Context, courseID, moduleID string) ([]models.Lesson, error)
	// CountByCourse counts the lessons of a course across its modules
	CountByCourse(ctx context.Context, courseID string) (int, error)
	// Delete deletes a lesson
	Delete(ctx context.Context, courseID, moduleID, lessonID string) error
	// UpdatePartial updates the provided fields of a lesson
	//
	// Returns the updated lesson (nil if absent) and an error if any.
	UpdatePartial(ctx context.Context, courseID, moduleID, lessonID string, fields models.LessonFields) (*models.Lesson, error)
}

// UserStore defines methods for user data access
type UserStore interface {
	// FindByUID retrieves a user with the enrollment set
	//
	// "ctx" is the context for the request.
	// "uid" is the ID of the user.
	//
	// Returns the user (nil if absent) and an error if any.
	FindByUID(ctx context.Context, uid string) (*models.User, error)
	// AddCourseToEnrolled adds a course to the enrollment set. Adding a
	// course that is already present is a no-op.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	AddCourseToEnrolled(ctx context.Context, userID, courseID string) error
}

// ProgressStore defines methods for progress data access
type ProgressStore interface {
	// Get retrieves the progress of a user in a course
	//
	// Returns the progress (nil if absent) and an error if any.
	Get(ctx context.Context, userID, courseID string) (*models.Progress, error)
	// Save inserts or replaces the whole progress record
	Save(ctx context.Context, progress *models.Progress) error
}
