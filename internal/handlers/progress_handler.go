package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for progress tracking
type ProgressService interface {
	// ToggleLessonCompletion flips the completion state of a lesson
	//
	// "ctx" is the context for the request.
	// "studentID" is the ID of the student.
	// "courseID" is the ID of the course.
	// "lessonID" is the ID of the lesson.
	// "totalLessons" is the lesson count the percentage is computed against.
	//
	// Returns the updated progress and an error if any.
	ToggleLessonCompletion(ctx context.Context, studentID, courseID, lessonID string, totalLessons int) (*models.Progress, error)
	// GetProgress retrieves the progress record with a recomputed percentage
	//
	// Returns the progress and an error if any.
	GetProgress(ctx context.Context, studentID, courseID string, totalLessons int) (*models.Progress, error)
}

// LessonCounter counts the lessons of a course
type LessonCounter interface {
	CountCourseLessons(ctx context.Context, courseID string) (int, error)
}

// ProgressHandler handles HTTP requests for lesson completion progress
type ProgressHandler struct {
	BaseHandler
	service ProgressService
	counter LessonCounter
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, counter LessonCounter, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		counter:     counter,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers progress routes for authenticated students
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Post("/courses/{courseId}/progress/toggle", h.ToggleLessonCompletion)
	r.Get("/courses/{courseId}/progress", h.GetProgress)
}

// ToggleLessonCompletion handles POST /courses/{courseId}/progress/toggle
// @Summary Toggle lesson completion
// @Description Mark a lesson completed, or not completed if it already is. When totalLessons is omitted the server counts the course lessons.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param request body models.ToggleCompletionRequest true "Toggle request"
// @Success 200 {object} models.Progress "Updated progress"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /courses/{courseId}/progress/toggle [post]
func (h *ProgressHandler) ToggleLessonCompletion(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleCompletionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	courseID := chi.URLParam(r, "courseId")
	total, err := h.totalLessons(r.Context(), courseID, req.TotalLessons)
	if err != nil {
		h.RespondServiceError(w, r, "count course lessons", err)
		return
	}

	progress, err := h.service.ToggleLessonCompletion(r.Context(), identity(r).ID, courseID, req.LessonID, total)
	if err != nil {
		h.RespondServiceError(w, r, "toggle lesson completion", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// GetProgress handles GET /courses/{courseId}/progress
// @Summary Get course progress
// @Description Get the completed lessons and percentage of the authenticated user. An empty record is returned when nothing is completed yet.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} models.Progress "Progress"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /courses/{courseId}/progress [get]
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")
	total, err := h.totalLessons(r.Context(), courseID, nil)
	if err != nil {
		h.RespondServiceError(w, r, "count course lessons", err)
		return
	}

	progress, err := h.service.GetProgress(r.Context(), identity(r).ID, courseID, total)
	if err != nil {
		h.RespondServiceError(w, r, "get progress", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// totalLessons trusts a client supplied total and counts otherwise
func (h *ProgressHandler) totalLessons(ctx context.Context, courseID string, supplied *int) (int, error) {
	if supplied != nil {
		return *supplied, nil
	}
	return h.counter.CountCourseLessons(ctx, courseID)
}
