package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/learnhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testTime       = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	courseRowNames = []string{"id", "creator_id", "name", "short_description", "description", "price", "category",
		"access_type", "cover_image_url", "status", "module_order", "enrolled_count", "created_at", "updated_at"}
)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func courseRow(rows *sqlmock.Rows, id, status string) *sqlmock.Rows {
	return rows.AddRow(id, "creator-1", "Go Basics", "short", "long", 1500, "programming",
		"paid", "", status, []byte(`["m1","m2"]`), 3, testTime, testTime)
}

func TestNewCourseRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewCourseRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestCourseRepository_Save(t *testing.T) {
	course := &models.Course{
		ID:          "c1",
		CreatorID:   "creator-1",
		Name:        "Go Basics",
		AccessType:  models.AccessTypeFree,
		Status:      models.CourseStatusDraft,
		ModuleOrder: models.OrderList{"m1"},
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses .* ON DUPLICATE KEY UPDATE`).
					WithArgs("c1", "creator-1", "Go Basics", "", "", int64(0), "", models.AccessTypeFree, "",
						models.CourseStatusDraft, `["m1"]`, 0, testTime, testTime).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to save course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Save(context.Background(), course)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_FindByID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectNil     bool
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM courses\s+WHERE id = \?`).
					WithArgs("c1").
					WillReturnRows(courseRow(sqlmock.NewRows(courseRowNames), "c1", "published"))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM courses`).
					WithArgs("c1").
					WillReturnError(sql.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM courses`).
					WithArgs("c1").
					WillReturnError(errors.New("database error"))
			},
			expectNil:     true,
			expectedError: true,
			errorContains: "failed to get course by id",
		},
		{
			name: "malformed module order",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(courseRowNames).
					AddRow("c1", "creator-1", "Go", "", "", 0, "", "free", "", "draft", []byte(`{`), 0, testTime, testTime)
				mock.ExpectQuery(`SELECT .* FROM courses`).
					WithArgs("c1").
					WillReturnRows(rows)
			},
			expectNil:     true,
			expectedError: true,
			errorContains: "failed to get course by id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.FindByID(context.Background(), "c1")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Equal(t, "c1", result.ID)
				assert.Equal(t, models.CourseStatusPublished, result.Status)
				assert.Equal(t, models.AccessTypePaid, result.AccessType)
				assert.Equal(t, models.OrderList{"m1", "m2"}, result.ModuleOrder)
				assert.Equal(t, 3, result.EnrolledCount)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_FindAllPublished(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows(courseRowNames)
	courseRow(rows, "c1", "published")
	courseRow(rows, "c2", "published")
	mock.ExpectQuery(`SELECT .* FROM courses\s+WHERE status = \?`).
		WithArgs(models.CourseStatusPublished).
		WillReturnRows(rows)

	result, err := repo.FindAllPublished(context.Background())

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "c1", result[0].ID)
	assert.Equal(t, "c2", result[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_FindAllByCreator(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM courses\s+WHERE creator_id = \?`).
			WithArgs("creator-1").
			WillReturnRows(sqlmock.NewRows(courseRowNames))

		result, err := repo.FindAllByCreator(context.Background(), "creator-1")

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM courses`).
			WithArgs("creator-1").
			WillReturnError(errors.New("database error"))

		result, err := repo.FindAllByCreator(context.Background(), "creator-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query courses")
		assert.Nil(t, result)
	})

	t.Run("row error", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		rows := courseRow(sqlmock.NewRows(courseRowNames), "c1", "draft").
			RowError(0, errors.New("row error"))
		mock.ExpectQuery(`SELECT .* FROM courses`).
			WithArgs("creator-1").
			WillReturnRows(rows)

		_, err := repo.FindAllByCreator(context.Background(), "creator-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error iterating rows")
	})
}

func TestCourseRepository_IncrementEnrolledCount(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses SET enrolled_count = enrolled_count \+ 1 WHERE id = \?`).
					WithArgs("c1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "course missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses`).
					WithArgs("c1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "not found",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses`).
					WithArgs("c1").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to increment enrolled count",
		},
		{
			name: "rows affected error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses`).
					WithArgs("c1").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("rows error")))
			},
			expectedError: true,
			errorContains: "failed to get rows affected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.IncrementEnrolledCount(context.Background(), "c1")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
		WithArgs("c2").
		WillReturnError(errors.New("database error"))

	assert.NoError(t, repo.Delete(context.Background(), "c1"))
	err := repo.Delete(context.Background(), "c2")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete course")
	assert.NoError(t, mock.ExpectationsWereMet())
}
