package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnhub/backend/internal/models"
)

const courseColumns = `id, creator_id, name, short_description, description, price, category,
			access_type, cover_image_url, status, module_order, enrolled_count, created_at, updated_at`

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// Save inserts a course or replaces its mutable fields
//
// The enrolled counter is never written here, it only moves through IncrementEnrolledCount.
func (r *courseRepository) Save(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			short_description = VALUES(short_description),
			description = VALUES(description),
			price = VALUES(price),
			category = VALUES(category),
			access_type = VALUES(access_type),
			cover_image_url = VALUES(cover_image_url),
			status = VALUES(status),
			module_order = VALUES(module_order),
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		course.ID,
		course.CreatorID,
		course.Name,
		course.ShortDescription,
		course.Description,
		course.Price,
		course.Category,
		course.AccessType,
		course.CoverImageURL,
		course.Status,
		course.ModuleOrder,
		course.EnrolledCount,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}

	return nil
}

// FindByID retrieves a course by its ID, nil if absent
func (r *courseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return course, nil
}

// FindAllByCreator retrieves all courses owned by a creator
func (r *courseRepository) FindAllByCreator(ctx context.Context, creatorID string) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE creator_id = ?
		ORDER BY created_at, id
	`

	return r.queryCourses(ctx, query, creatorID)
}

// FindAllPublished retrieves all published courses
func (r *courseRepository) FindAllPublished(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE status = ?
		ORDER BY created_at, id
	`

	return r.queryCourses(ctx, query, models.CourseStatusPublished)
}

// IncrementEnrolledCount increments the enrolled counter of a course by one
func (r *courseRepository) IncrementEnrolledCount(ctx context.Context, id string) error {
	query := `UPDATE courses SET enrolled_count = enrolled_count + 1 WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment enrolled count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("course %s not found", id)
	}

	return nil
}

// Delete deletes a course
func (r *courseRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM courses WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}

func (r *courseRepository) queryCourses(ctx context.Context, query string, args ...any) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.CreatorID,
		&course.Name,
		&course.ShortDescription,
		&course.Description,
		&course.Price,
		&course.Category,
		&course.AccessType,
		&course.CoverImageURL,
		&course.Status,
		&course.ModuleOrder,
		&course.EnrolledCount,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}
