package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnhub/backend/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Get retrieves the progress of a user in a course, nil if absent
func (r *progressRepository) Get(ctx context.Context, userID, courseID string) (*models.Progress, error) {
	query := `
		SELECT user_id, course_id, completed_lesson_ids, percent_complete, last_updated
		FROM progress
		WHERE user_id = ? AND course_id = ?
		LIMIT 1
	`

	var progress models.Progress
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(
		&progress.UserID,
		&progress.CourseID,
		&progress.CompletedLessonIDs,
		&progress.PercentComplete,
		&progress.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return &progress, nil
}

// Save writes the whole progress record
func (r *progressRepository) Save(ctx context.Context, progress *models.Progress) error {
	query := `
		INSERT INTO progress (user_id, course_id, completed_lesson_ids, percent_complete, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			completed_lesson_ids = VALUES(completed_lesson_ids),
			percent_complete = VALUES(percent_complete),
			last_updated = VALUES(last_updated)
	`

	_, err := r.db.ExecContext(ctx, query,
		progress.UserID,
		progress.CourseID,
		progress.CompletedLessonIDs,
		progress.PercentComplete,
		progress.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}
