package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps methods for lesson operations
type LessonService interface {
	// CreateLesson creates a lesson and appends it to the module order
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "moduleID" is the ID of the module.
	// "req" is the request to create a lesson.
	// "caller" is the identity of the caller.
	//
	// Returns the created lesson and an error if any.
	CreateLesson(ctx context.Context, courseID, moduleID string, req *models.CreateLessonRequest, caller models.Identity) (*models.Lesson, error)
	// GetLesson retrieves a lesson the caller may access
	//
	// Returns the lesson and an error if any.
	GetLesson(ctx context.Context, courseID, moduleID, lessonID string, caller models.Identity) (*models.Lesson, error)
	// GetPreviewLesson retrieves a lesson marked as preview
	//
	// Returns the lesson and an error if any.
	GetPreviewLesson(ctx context.Context, courseID, moduleID, lessonID string) (*models.Lesson, error)
	// ListLessons retrieves the lessons of a module in module order
	//
	// Returns a list of lessons and an error if any.
	ListLessons(ctx context.Context, courseID, moduleID string, caller models.Identity) ([]models.Lesson, error)
	// UpdateLesson updates a lesson (partial update)
	//
	// Returns the updated lesson and an error if any.
	UpdateLesson(ctx context.Context, courseID, moduleID, lessonID string, req *models.UpdateLessonRequest, caller models.Identity) (*models.Lesson, error)
	// DeleteLesson unlinks a lesson from the module order and deletes it
	//
	// Returns an error if any.
	DeleteLesson(ctx context.Context, courseID, moduleID, lessonID string, caller models.Identity) error
	// ReorderLessons replaces the lesson order with a permutation of it
	//
	// Returns the updated module and an error if any.
	ReorderLessons(ctx context.Context, courseID, moduleID string, orderedIDs []string, caller models.Identity) (*models.Module, error)
}

// LessonHandler handles HTTP requests for lessons
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

const lessonsPath = "/courses/{courseId}/modules/{moduleId}/lessons"

// RegisterPublicRoutes registers lesson routes readable without a token
func (h *LessonHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get(lessonsPath, h.ListLessons)
	r.Get(lessonsPath+"/{lessonId}/preview", h.GetPreviewLesson)
}

// RegisterRoutes registers lesson routes that require an authenticated caller
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Post(lessonsPath, h.CreateLesson)
	r.Put(lessonsPath+"/order", h.ReorderLessons)
	r.Get(lessonsPath+"/{lessonId}", h.GetLesson)
	r.Patch(lessonsPath+"/{lessonId}", h.UpdateLesson)
	r.Delete(lessonsPath+"/{lessonId}", h.DeleteLesson)
}

// ListLessons handles GET /courses/{courseId}/modules/{moduleId}/lessons
// @Summary List lessons
// @Description Get the lessons of a module in module order
// @Tags lessons
// @Produce json
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 200 {array} models.Lesson "List of lessons"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons [get]
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.ListLessons(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "list lessons", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// GetPreviewLesson handles GET /courses/{courseId}/modules/{moduleId}/lessons/{lessonId}/preview
// @Summary Get a preview lesson
// @Description Get a lesson marked as free preview without enrollment
// @Tags lessons
// @Produce json
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} models.Lesson "Lesson"
// @Failure 403 {object} map[string]string "Lesson is not a preview"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons/{lessonId}/preview [get]
func (h *LessonHandler) GetPreviewLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.service.GetPreviewLesson(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"))
	if err != nil {
		h.RespondServiceError(w, r, "get preview lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// GetLesson handles GET /courses/{courseId}/modules/{moduleId}/lessons/{lessonId}
// @Summary Get a lesson
// @Description Get a lesson. Requires ownership, enrollment or a preview lesson.
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} models.Lesson "Lesson"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.service.GetLesson(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "get lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// CreateLesson handles POST /courses/{courseId}/modules/{moduleId}/lessons
// @Summary Create a lesson
// @Description Create a lesson and append it to the module order
// @Tags creator
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body models.CreateLessonRequest true "Lesson creation request"
// @Success 201 {object} models.Lesson "Created lesson"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons [post]
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lesson, err := h.service.CreateLesson(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), &req, identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "create lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, lesson)
}

// ReorderLessons handles PUT /courses/{courseId}/modules/{moduleId}/lessons/order
// @Summary Reorder lessons
// @Tags creator
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body models.ReorderRequest true "New lesson order"
// @Success 200 {object} models.Module "Updated module"
// @Failure 400 {object} map[string]string "Not a permutation of the current order"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Router /courses/{courseId}/modules/{moduleId}/lessons/order [put]
func (h *LessonHandler) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	module, err := h.service.ReorderLessons(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), req.OrderedIDs, identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "reorder lessons", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, module)
}

// UpdateLesson handles PATCH /courses/{courseId}/modules/{moduleId}/lessons/{lessonId}
// @Summary Update a lesson
// @Tags creator
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Lesson update request"
// @Success 200 {object} models.Lesson "Updated lesson"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [patch]
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lesson, err := h.service.UpdateLesson(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), &req, identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "update lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// DeleteLesson handles DELETE /courses/{courseId}/modules/{moduleId}/lessons/{lessonId}
// @Summary Delete a lesson
// @Tags creator
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [delete]
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteLesson(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "delete lesson", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
