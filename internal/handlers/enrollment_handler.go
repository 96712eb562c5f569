package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

// EnrollmentService is the interface that wraps methods for enrollment operations
type EnrollmentService interface {
	// Enroll grants a student access to a published course
	//
	// "ctx" is the context for the request.
	// "studentID" is the ID of the student.
	// "courseID" is the ID of the course.
	//
	// Returns the enrollment result and an error if any.
	Enroll(ctx context.Context, studentID, courseID string) (*models.EnrollmentResult, error)
	// ListEnrolledCourses retrieves the courses a student is enrolled in
	//
	// "ctx" is the context for the request.
	// "studentID" is the ID of the student.
	//
	// Returns a list of courses and an error if any.
	ListEnrolledCourses(ctx context.Context, studentID string) ([]models.Course, error)
}

// EnrollmentHandler handles HTTP requests for enrollments
type EnrollmentHandler struct {
	BaseHandler
	service EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(svc EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers enrollment routes for authenticated students
func (h *EnrollmentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/courses/{courseId}/enroll", h.Enroll)
	r.Get("/me/courses", h.ListMyCourses)
}

// RegisterInternalRoutes registers service-to-service routes
func (h *EnrollmentHandler) RegisterInternalRoutes(r chi.Router) {
	r.Post("/internal/enrollments", h.EnrollFromCallback)
}

// Enroll handles POST /courses/{courseId}/enroll
// @Summary Enroll in a course
// @Description Enroll the authenticated user in a published course. Enrolling twice is a no-op.
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 201 {object} models.EnrollmentResult "Enrolled"
// @Success 200 {object} models.EnrollmentResult "Already enrolled"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User or course not found"
// @Failure 422 {object} map[string]string "Course not open for enrollment"
// @Router /courses/{courseId}/enroll [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	h.enroll(w, r, identity(r).ID, chi.URLParam(r, "courseId"))
}

// EnrollFromCallback handles POST /internal/enrollments
// @Summary Grant enrollment
// @Description Enroll a user after an external purchase. Authenticated with X-API-Key.
// @Tags internal
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Service API key"
// @Param request body models.EnrollRequest true "Enrollment request"
// @Success 201 {object} models.EnrollmentResult "Enrolled"
// @Success 200 {object} models.EnrollmentResult "Already enrolled"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Failure 404 {object} map[string]string "User or course not found"
// @Failure 422 {object} map[string]string "Course not open for enrollment"
// @Router /internal/enrollments [post]
func (h *EnrollmentHandler) EnrollFromCallback(w http.ResponseWriter, r *http.Request) {
	var req models.EnrollRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.enroll(w, r, req.UserID, req.CourseID)
}

func (h *EnrollmentHandler) enroll(w http.ResponseWriter, r *http.Request, studentID, courseID string) {
	result, err := h.service.Enroll(r.Context(), studentID, courseID)
	if err != nil {
		h.RespondServiceError(w, r, "enroll", err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyEnrolled {
		status = http.StatusOK
	}
	h.RespondJSON(w, status, result)
}

// ListMyCourses handles GET /me/courses
// @Summary List enrolled courses
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Course "Enrolled courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /me/courses [get]
func (h *EnrollmentHandler) ListMyCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListEnrolledCourses(r.Context(), identity(r).ID)
	if err != nil {
		h.RespondServiceError(w, r, "list enrolled courses", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}
