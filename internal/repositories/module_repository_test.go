package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/learnhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moduleRowNames = []string{"id", "course_id", "title", "description", "sort_order", "lesson_order", "created_at", "updated_at"}

// setupModuleTestRepository creates a module repository with a mock database
func setupModuleTestRepository(t *testing.T) (*moduleRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewModuleRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestModuleRepository_Save(t *testing.T) {
	repo, mock, cleanup := setupModuleTestRepository(t)
	defer cleanup()

	module := &models.Module{
		ID:        "m1",
		CourseID:  "c1",
		Title:     "Intro",
		Order:     2,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
	mock.ExpectExec(`INSERT INTO modules .* ON DUPLICATE KEY UPDATE`).
		WithArgs("m1", "c1", "Intro", "", 2, "[]", testTime, testTime).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), module))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepository_FindByID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectNil     bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(moduleRowNames).
					AddRow("m1", "c1", "Intro", "desc", 1, []byte(`["l1"]`), testTime, testTime)
				mock.ExpectQuery(`SELECT .* FROM modules\s+WHERE course_id = \? AND id = \?`).
					WithArgs("c1", "m1").
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM modules`).
					WithArgs("c1", "m1").
					WillReturnError(sql.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM modules`).
					WithArgs("c1", "m1").
					WillReturnError(errors.New("database error"))
			},
			expectNil:     true,
			errorContains: "failed to get module by id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupModuleTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.FindByID(context.Background(), "c1", "m1")

			if tt.errorContains != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Equal(t, "c1", result.CourseID)
				assert.Equal(t, models.OrderList{"l1"}, result.LessonOrder)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestModuleRepository_FindAllByCourse(t *testing.T) {
	repo, mock, cleanup := setupModuleTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows(moduleRowNames).
		AddRow("m1", "c1", "Intro", "", 1, nil, testTime, testTime).
		AddRow("m2", "c1", "Next", "", 2, []byte(`[]`), testTime, testTime)
	mock.ExpectQuery(`SELECT .* FROM modules\s+WHERE course_id = \?`).
		WithArgs("c1").
		WillReturnRows(rows)

	result, err := repo.FindAllByCourse(context.Background(), "c1")

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, models.OrderList{}, result[0].LessonOrder)
	assert.Equal(t, 2, result[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepository_UpdatePartial(t *testing.T) {
	title := "Renamed"

	tests := []struct {
		name          string
		fields        models.ModuleFields
		setupMock     func(sqlmock.Sqlmock)
		errorContains string
	}{
		{
			name:   "title only",
			fields: models.ModuleFields{Title: &title, UpdatedAt: testTime},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE modules\s+SET updated_at = \?, title = \?\s+WHERE course_id = \? AND id = \?`).
					WithArgs(testTime, "Renamed", "c1", "m1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				rows := sqlmock.NewRows(moduleRowNames).
					AddRow("m1", "c1", "Renamed", "", 1, []byte(`[]`), testTime, testTime)
				mock.ExpectQuery(`SELECT .* FROM modules`).
					WithArgs("c1", "m1").
					WillReturnRows(rows)
			},
		},
		{
			name:   "lesson order only",
			fields: models.ModuleFields{LessonOrder: models.OrderList{"l2", "l1"}, UpdatedAt: testTime},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE modules\s+SET updated_at = \?, lesson_order = \?\s+WHERE`).
					WithArgs(testTime, `["l2","l1"]`, "c1", "m1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				rows := sqlmock.NewRows(moduleRowNames).
					AddRow("m1", "c1", "Intro", "", 1, []byte(`["l2","l1"]`), testTime, testTime)
				mock.ExpectQuery(`SELECT .* FROM modules`).
					WithArgs("c1", "m1").
					WillReturnRows(rows)
			},
		},
		{
			name:   "database error",
			fields: models.ModuleFields{Title: &title, UpdatedAt: testTime},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE modules`).
					WillReturnError(errors.New("database error"))
			},
			errorContains: "failed to update module",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupModuleTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.UpdatePartial(context.Background(), "c1", "m1", tt.fields)

			if tt.errorContains != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, "m1", result.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestModuleRepository_UpdatePartialMissing(t *testing.T) {
	repo, mock, cleanup := setupModuleTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE modules`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .* FROM modules`).
		WithArgs("c1", "missing").
		WillReturnError(sql.ErrNoRows)

	result, err := repo.UpdatePartial(context.Background(), "c1", "missing", models.ModuleFields{UpdatedAt: testTime})

	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupModuleTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM modules WHERE course_id = \? AND id = \?`).
		WithArgs("c1", "m1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "c1", "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
