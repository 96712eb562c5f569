package models

import "time"

// Module represents a section of a course that owns an ordered list of lessons
type Module struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	LessonOrder OrderList `json:"lessonOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateModuleRequest represents a request to create a module
type CreateModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateModuleRequest represents a request to update a module (partial update)
type UpdateModuleRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ModuleFields holds the columns changed by a partial module update
type ModuleFields struct {
	Title       *string
	Description *string
	LessonOrder OrderList
	UpdatedAt   time.Time
}
