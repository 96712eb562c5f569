package models

import (
	"math"
	"slices"
	"time"
)

// Progress is a student's completion state for one course
type Progress struct {
	UserID             string    `json:"userId"`
	CourseID           string    `json:"courseId"`
	CompletedLessonIDs OrderList `json:"completedLessonIds"`
	PercentComplete    int       `json:"percentComplete"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

// NewProgress returns an empty progress record
func NewProgress(userID, courseID string) *Progress {
	return &Progress{
		UserID:             userID,
		CourseID:           courseID,
		CompletedLessonIDs: OrderList{},
	}
}

// IsCompleted reports whether the lesson is in the completed set
func (p *Progress) IsCompleted(lessonID string) bool {
	return p.CompletedLessonIDs.Contains(lessonID)
}

// Toggle removes lessonID from the completed set if present, otherwise adds
// it. Returns true when the lesson is completed after the call.
func (p *Progress) Toggle(lessonID string) bool {
	if p.IsCompleted(lessonID) {
		p.CompletedLessonIDs = p.CompletedLessonIDs.Remove(lessonID)
		return false
	}
	p.CompletedLessonIDs = p.CompletedLessonIDs.Append(lessonID)
	return true
}

// Recompute derives PercentComplete from the completed set
func (p *Progress) Recompute(totalLessons int) {
	p.PercentComplete = Percent(len(p.CompletedLessonIDs), totalLessons)
}

// CompletedSet returns a sorted copy of the completed lesson IDs
func (p *Progress) CompletedSet() []string {
	out := slices.Clone([]string(p.CompletedLessonIDs))
	if out == nil {
		return []string{}
	}
	slices.Sort(out)
	return out
}

// Percent returns round(100*completed/total) using half-away-from-zero
// rounding, capped to 0..100. A non-positive total yields 0.
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	return min(pct, 100)
}

// ToggleCompletionRequest is the payload of a toggle call
type ToggleCompletionRequest struct {
	LessonID     string `json:"lessonId"`
	TotalLessons *int   `json:"totalLessons,omitempty"`
}
