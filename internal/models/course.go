package models

import "time"

// CourseStatus represents the publication state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

// IsValid checks that the status is a known publication state
func (s CourseStatus) IsValid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	}
	return false
}

// CanTransitionTo reports whether a course may move from s to next
//
// Draft and published courses may switch between each other, any course may
// be archived, and archived courses stay archived.
func (s CourseStatus) CanTransitionTo(next CourseStatus) bool {
	if s == next {
		return true
	}
	switch next {
	case CourseStatusArchived:
		return true
	case CourseStatusDraft, CourseStatusPublished:
		return s != CourseStatusArchived
	}
	return false
}

// AccessType represents how a course can be accessed
type AccessType string

const (
	AccessTypeFree AccessType = "free"
	AccessTypePaid AccessType = "paid"
)

// IsValid checks that the access type is known
func (a AccessType) IsValid() bool {
	return a == AccessTypeFree || a == AccessTypePaid
}

// Course is the top-level catalogue unit
type Course struct {
	ID               string       `json:"id"`
	CreatorID        string       `json:"creatorId"`
	Name             string       `json:"name"`
	ShortDescription string       `json:"shortDescription"`
	Description      string       `json:"description"`
	Price            int64        `json:"price"`
	Category         string       `json:"category"`
	AccessType       AccessType   `json:"accessType"`
	CoverImageURL    string       `json:"coverImageUrl,omitempty"`
	Status           CourseStatus `json:"status"`
	ModuleOrder      OrderList    `json:"moduleOrder"`
	EnrolledCount    int          `json:"enrolledCount"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// IsPublished reports whether students can enroll in the course
func (c *Course) IsPublished() bool {
	return c.Status == CourseStatusPublished
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Name             string     `json:"name"`
	ShortDescription string     `json:"shortDescription"`
	Description      string     `json:"description"`
	Price            int64      `json:"price"`
	Category         string     `json:"category"`
	AccessType       AccessType `json:"accessType"`
	CoverImageURL    string     `json:"coverImageUrl"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
type UpdateCourseRequest struct {
	Name             *string       `json:"name,omitempty"`
	ShortDescription *string       `json:"shortDescription,omitempty"`
	Description      *string       `json:"description,omitempty"`
	Price            *int64        `json:"price,omitempty"`
	Category         *string       `json:"category,omitempty"`
	AccessType       *AccessType   `json:"accessType,omitempty"`
	CoverImageURL    *string       `json:"coverImageUrl,omitempty"`
	Status           *CourseStatus `json:"status,omitempty"`
}

// IsEmpty reports whether no field is set
func (r *UpdateCourseRequest) IsEmpty() bool {
	return r.Name == nil && r.ShortDescription == nil && r.Description == nil && r.Price == nil &&
		r.Category == nil && r.AccessType == nil && r.CoverImageURL == nil && r.Status == nil
}

// ReorderRequest carries a caller-supplied permutation of child IDs
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}
