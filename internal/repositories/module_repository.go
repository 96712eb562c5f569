package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/learnhub/backend/internal/models"
)

const moduleColumns = `id, course_id, title, description, sort_order, lesson_order, created_at, updated_at`

type moduleRepository struct {
	db *sql.DB
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *sql.DB) *moduleRepository {
	return &moduleRepository{
		db: db,
	}
}

// Save inserts a module or replaces its mutable fields
func (r *moduleRepository) Save(ctx context.Context, module *models.Module) error {
	query := `
		INSERT INTO modules (` + moduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			title = VALUES(title),
			description = VALUES(description),
			lesson_order = VALUES(lesson_order),
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		module.ID,
		module.CourseID,
		module.Title,
		module.Description,
		module.Order,
		module.LessonOrder,
		module.CreatedAt,
		module.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save module: %w", err)
	}

	return nil
}

// FindByID retrieves a module scoped under its course, nil if absent
func (r *moduleRepository) FindByID(ctx context.Context, courseID, moduleID string) (*models.Module, error) {
	query := `
		SELECT ` + moduleColumns + `
		FROM modules
		WHERE course_id = ? AND id = ?
		LIMIT 1
	`

	module, err := scanModule(r.db.QueryRowContext(ctx, query, courseID, moduleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module by id: %w", err)
	}

	return module, nil
}

// FindAllByCourse retrieves all modules of a course
func (r *moduleRepository) FindAllByCourse(ctx context.Context, courseID string) ([]models.Module, error) {
	query := `
		SELECT ` + moduleColumns + `
		FROM modules
		WHERE course_id = ?
		ORDER BY sort_order, id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	modules := []models.Module{}
	for rows.Next() {
		module, err := scanModule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, *module)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return modules, nil
}

// Delete deletes a module
func (r *moduleRepository) Delete(ctx context.Context, courseID, moduleID string) error {
	query := `DELETE FROM modules WHERE course_id = ? AND id = ?`

	if _, err := r.db.ExecContext(ctx, query, courseID, moduleID); err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}

	return nil
}

// UpdatePartial updates only the provided fields and returns the stored module
func (r *moduleRepository) UpdatePartial(ctx context.Context, courseID, moduleID string, fields models.ModuleFields) (*models.Module, error) {
	setParts := []string{"updated_at = ?"}
	args := []any{fields.UpdatedAt}

	if fields.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, *fields.Description)
	}
	if fields.LessonOrder != nil {
		setParts = append(setParts, "lesson_order = ?")
		args = append(args, fields.LessonOrder)
	}

	query := fmt.Sprintf(`
		UPDATE modules
		SET %s
		WHERE course_id = ? AND id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, courseID, moduleID)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}

	return r.FindByID(ctx, courseID, moduleID)
}

func scanModule(row rowScanner) (*models.Module, error) {
	var module models.Module
	err := row.Scan(
		&module.ID,
		&module.CourseID,
		&module.Title,
		&module.Description,
		&module.Order,
		&module.LessonOrder,
		&module.CreatedAt,
		&module.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &module, nil
}
