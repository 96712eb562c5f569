package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/learnhub/backend/internal/models"
)

const lessonColumns = `id, module_id, course_id, title, sort_order, content_type, content_url, content_text,
			is_preview, duration_minutes, materials, created_at, updated_at`

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// Save inserts a lesson or replaces its mutable fields
func (r *lessonRepository) Save(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (` + lessonColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			title = VALUES(title),
			content_type = VALUES(content_type),
			content_url = VALUES(content_url),
			content_text = VALUES(content_text),
			is_preview = VALUES(is_preview),
			duration_minutes = VALUES(duration_minutes),
			materials = VALUES(materials),
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.ModuleID,
		lesson.CourseID,
		lesson.Title,
		lesson.Order,
		lesson.Content.Type,
		lesson.Content.URL,
		lesson.Content.Text,
		lesson.IsPreview,
		lesson.DurationMinutes,
		lesson.Materials,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save lesson: %w", err)
	}

	return nil
}

// FindByID retrieves a lesson scoped under its course and module, nil if absent
func (r *lessonRepository) FindByID(ctx context.Context, courseID, moduleID, lessonID string) (*models.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = ? AND module_id = ? AND id = ?
		LIMIT 1
	`

	lesson, err := scanLesson(r.db.QueryRowContext(ctx, query, courseID, moduleID, lessonID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return lesson, nil
}

// FindAllByModule retrieves all lessons of a module
func (r *lessonRepository) FindAllByModule(ctx context.Context, courseID, moduleID string) ([]models.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = ? AND module_id = ?
		ORDER BY sort_order, id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, *lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// CountByCourse counts lessons across all modules of a course.
// Lessons whose module was deleted are not counted.
func (r *lessonRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	query := `SELECT COUNT(*) FROM lessons l
		JOIN modules m ON m.id = l.module_id AND m.course_id = l.course_id
		WHERE l.course_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}

// Delete deletes a lesson
func (r *lessonRepository) Delete(ctx context.Context, courseID, moduleID, lessonID string) error {
	query := `DELETE FROM lessons WHERE course_id = ? AND module_id = ? AND id = ?`

	if _, err := r.db.ExecContext(ctx, query, courseID, moduleID, lessonID); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	return nil
}

// UpdatePartial updates only the provided fields and returns the stored lesson
func (r *lessonRepository) UpdatePartial(ctx context.Context, courseID, moduleID, lessonID string, fields models.LessonFields) (*models.Lesson, error) {
	setParts := []string{"updated_at = ?"}
	args := []any{fields.UpdatedAt}

	if fields.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Content != nil {
		setParts = append(setParts, "content_type = ?", "content_url = ?", "content_text = ?")
		args = append(args, fields.Content.Type, fields.Content.URL, fields.Content.Text)
	}
	if fields.IsPreview != nil {
		setParts = append(setParts, "is_preview = ?")
		args = append(args, *fields.IsPreview)
	}
	if fields.DurationMinutes != nil {
		setParts = append(setParts, "duration_minutes = ?")
		args = append(args, *fields.DurationMinutes)
	}
	if fields.Materials != nil {
		setParts = append(setParts, "materials = ?")
		args = append(args, *fields.Materials)
	}

	query := fmt.Sprintf(`
		UPDATE lessons
		SET %s
		WHERE course_id = ? AND module_id = ? AND id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, courseID, moduleID, lessonID)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	return r.FindByID(ctx, courseID, moduleID, lessonID)
}

func scanLesson(row rowScanner) (*models.Lesson, error) {
	var lesson models.Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.ModuleID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Order,
		&lesson.Content.Type,
		&lesson.Content.URL,
		&lesson.Content.Text,
		&lesson.IsPreview,
		&lesson.DurationMinutes,
		&lesson.Materials,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
