package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

// CourseService is the interface that wraps methods for course and module operations
type CourseService interface {
	// CreateCourse creates a new draft course owned by the caller
	//
	// "ctx" is the context for the request.
	// "req" is the request to create a course.
	// "caller" is the identity of the caller.
	//
	// Returns the created course and an error if any.
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest, caller models.Identity) (*models.Course, error)
	// GetCourse retrieves a course. Drafts are visible to their owner only.
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "caller" is the identity of the caller (zero for anonymous).
	//
	// Returns the course and an error if any.
	GetCourse(ctx context.Context, courseID string, caller models.Identity) (*models.Course, error)
	// ListPublishedCourses retrieves the public catalogue
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of courses and an error if any.
	ListPublishedCourses(ctx context.Context) ([]models.Course, error)
	// ListCoursesByCreator retrieves all courses owned by the caller
	//
	// "ctx" is the context for the request.
	// "caller" is the identity of the caller.
	//
	// Returns a list of courses and an error if any.
	ListCoursesByCreator(ctx context.Context, caller models.Identity) ([]models.Course, error)
	// UpdateCourse updates a course (partial update)
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "req" is the request to update a course.
	// "caller" is the identity of the caller.
	//
	// Returns the updated course and an error if any.
	UpdateCourse(ctx context.Context, courseID string, req *models.UpdateCourseRequest, caller models.Identity) (*models.Course, error)
	// DeleteCourse deletes a course that has no modules
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "caller" is the identity of the caller.
	//
	// Returns an error if any.
	DeleteCourse(ctx context.Context, courseID string, caller models.Identity) error
	// CreateModule creates a module and appends it to the course order
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "req" is the request to create a module.
	// "caller" is the identity of the caller.
	//
	// Returns the created module and an error if any.
	CreateModule(ctx context.Context, courseID string, req *models.CreateModuleRequest, caller models.Identity) (*models.Module, error)
	// ListModules retrieves the modules of a course in course order
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "caller" is the identity of the caller (zero for anonymous).
	//
	// Returns a list of modules and an error if any.
	ListModules(ctx context.Context, courseID string, caller models.Identity) ([]models.Module, error)
	// GetModule retrieves a module of a course the caller may see
	//
	// Returns the module and an error if any.
	GetModule(ctx context.Context, courseID, moduleID string, caller models.Identity) (*models.Module, error)
	// UpdateModule updates a module (partial update)
	//
	// Returns the updated module and an error if any.
	UpdateModule(ctx context.Context, courseID, moduleID string, req *models.UpdateModuleRequest, caller models.Identity) (*models.Module, error)
	// DeleteModule unlinks a module from the course order and deletes it
	//
	// Returns an error if any.
	DeleteModule(ctx context.Context, courseID, moduleID string, caller models.Identity) error
	// ReorderModules replaces the module order with a permutation of it
	//
	// Returns the updated course and an error if any.
	ReorderModules(ctx context.Context, courseID string, orderedIDs []string, caller models.Identity) (*models.Course, error)
}

// CourseHandler handles HTTP requests for courses and modules
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterPublicRoutes registers catalogue routes readable without a token
func (h *CourseHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/courses", h.ListPublishedCourses)
	r.Get("/courses/{courseId}", h.GetCourse)
	r.Get("/courses/{courseId}/modules", h.ListModules)
	r.Get("/courses/{courseId}/modules/{moduleId}", h.GetModule)
}

// RegisterCreatorRoutes registers authoring routes. Callers must hold the creator role.
func (h *CourseHandler) RegisterCreatorRoutes(r chi.Router) {
	r.Post("/courses", h.CreateCourse)
	r.Get("/creator/courses", h.ListCreatorCourses)
}

// RegisterRoutes registers routes that require an authenticated caller
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	// Flat patterns: these paths share a tree with the public GET routes
	r.Patch("/courses/{courseId}", h.UpdateCourse)
	r.Delete("/courses/{courseId}", h.DeleteCourse)
	r.Post("/courses/{courseId}/modules", h.CreateModule)
	r.Put("/courses/{courseId}/modules/order", h.ReorderModules)
	r.Patch("/courses/{courseId}/modules/{moduleId}", h.UpdateModule)
	r.Delete("/courses/{courseId}/modules/{moduleId}", h.DeleteModule)
}

// ListPublishedCourses handles GET /courses
// @Summary List published courses
// @Description Get the public catalogue of published courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course "List of courses"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) ListPublishedCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListPublishedCourses(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, "list published courses", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{courseId}
// @Summary Get a course
// @Description Get a course by ID. Draft and archived courses are visible to their owner only.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} models.Course "Course"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "courseId"), identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "get course", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// ListCreatorCourses handles GET /creator/courses
// @Summary List own courses
// @Description Get all courses owned by the authenticated creator
// @Tags creator
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Course "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a creator"
// @Router /creator/courses [get]
func (h *CourseHandler) ListCreatorCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCoursesByCreator(r.Context(), identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "list creator courses", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse handles POST /courses
// @Summary Create a course
// @Description Create a new draft course owned by the authenticated creator
// @Tags creator
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCourseRequest true "Course creation request"
// @Success 201 {object} models.Course "Created course"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a creator"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &req, identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "create course", err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PATCH /courses/{courseId}
// @Summary Update a course
// @Description Partially update a course, including its publication status
// @Tags creator
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param request body models.UpdateCourseRequest true "Course update request"
// @Success 200 {object} models.Course "Updated course"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{courseId} [patch]
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), chi.URLParam(r, "courseId"), &req, identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "update course", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse handles DELETE /courses/{courseId}
// @Summary Delete a course
// @Description Delete a course that has no modules left
// @Tags creator
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Course still has modules"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{courseId} [delete]
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCourse(r.Context(), chi.URLParam(r, "courseId"), identity(r)); err != nil {
		h.RespondServiceError(w, r, "delete course", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListModules handles GET /courses/{courseId}/modules
// @Summary List modules
// @Description Get the modules of a course in course order
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {array} models.Module "List of modules"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{courseId}/modules [get]
func (h *CourseHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.service.ListModules(r.Context(), chi.URLParam(r, "courseId"), identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "list modules", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, modules)
}

// CreateModule handles POST /courses/{courseId}/modules
// @Summary Create a module
// @Description Create a module and append it to the course order
// @Tags creator
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param request body models.CreateModuleRequest true "Module creation request"
// @Success 201 {object} models.Module "Created module"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{courseId}/modules [post]
func (h *CourseHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var req models.CreateModuleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	module, err := h.service.CreateModule(r.Context(), chi.URLParam(r, "courseId"), &req, identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "create module", err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, module)
}

// ReorderModules handles PUT /courses/{courseId}/modules/order
// @Summary Reorder modules
// @Description Replace the module order with a permutation of the current order
// @Tags creator
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param request body models.ReorderRequest true "New module order"
// @Success 200 {object} models.Course "Updated course"
// @Failure 400 {object} map[string]string "Not a permutation of the current order"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Router /courses/{courseId}/modules/order [put]
func (h *CourseHandler) ReorderModules(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.service.ReorderModules(r.Context(), chi.URLParam(r, "courseId"), req.OrderedIDs, identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "reorder modules", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// UpdateModule handles PATCH /courses/{courseId}/modules/{moduleId}
// @Summary Update a module
// @Tags creator
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body models.UpdateModuleRequest true "Module update request"
// @Success 200 {object} models.Module "Updated module"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /courses/{courseId}/modules/{moduleId} [patch]
func (h *CourseHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateModuleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	module, err := h.service.UpdateModule(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), &req, identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "update module", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, module)
}

// DeleteModule handles DELETE /courses/{courseId}/modules/{moduleId}
// @Summary Delete a module
// @Tags creator
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the course owner"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /courses/{courseId}/modules/{moduleId} [delete]
func (h *CourseHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteModule(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), identity(r)); err != nil {
		h.RespondServiceError(w, r, "delete module", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetModule handles GET /courses/{courseId}/modules/{moduleId}
// @Summary Get a module
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 200 {object} models.Module "Module"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /courses/{courseId}/modules/{moduleId} [get]
func (h *CourseHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.service.GetModule(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), identity(r))
	if err != nil {
		h.RespondServiceError(w, r, "get module", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, module)
}
