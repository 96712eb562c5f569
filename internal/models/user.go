package models

// User represents a platform account and its enrollment set
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	DisplayName       string    `json:"displayName"`
	Role              Role      `json:"role"`
	EnrolledCourseIDs OrderList `json:"enrolledCourseIds"`
}

// IsEnrolled reports whether the user can access the course
func (u *User) IsEnrolled(courseID string) bool {
	return u.EnrolledCourseIDs.Contains(courseID)
}

// EnrollRequest is sent by an external producer (payment callback) to grant access
type EnrollRequest struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
}

// EnrollmentResult describes the outcome of an enroll call
type EnrollmentResult struct {
	CourseID        string `json:"courseId"`
	AlreadyEnrolled bool   `json:"alreadyEnrolled"`
}
