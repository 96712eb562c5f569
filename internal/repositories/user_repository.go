package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnhub/backend/internal/models"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

// FindByUID retrieves a user together with the enrollment set, nil if absent
//
// "ctx" is the context for the request.
// "uid" is the ID of the user.
//
// Returns the user and an error if any.
func (r *userRepository) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, role
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	enrolled, err := r.enrolledCourseIDs(ctx, uid)
	if err != nil {
		return nil, err
	}
	user.EnrolledCourseIDs = enrolled

	return &user, nil
}

// AddCourseToEnrolled adds a course to the enrollment set, ignoring duplicates
//
// "ctx" is the context for the request.
// "userID" is the ID of the user.
// "courseID" is the ID of the course.
//
// Returns an error if any.
func (r *userRepository) AddCourseToEnrolled(ctx context.Context, userID, courseID string) error {
	query := `
		INSERT IGNORE INTO user_enrollments (user_id, course_id)
		VALUES (?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, courseID); err != nil {
		return fmt.Errorf("failed to add enrollment: %w", err)
	}

	return nil
}

func (r *userRepository) enrolledCourseIDs(ctx context.Context, userID string) (models.OrderList, error) {
	query := `
		SELECT course_id
		FROM user_enrollments
		WHERE user_id = ?
		ORDER BY enrolled_at, course_id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	ids := models.OrderList{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}
