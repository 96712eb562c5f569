package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ContentType represents the kind of content carried by a lesson
type ContentType string

const (
	ContentTypeVideo    ContentType = "video"
	ContentTypeAudio    ContentType = "audio"
	ContentTypeDocument ContentType = "document"
	ContentTypeRichText ContentType = "rich_text"
	ContentTypeQuiz     ContentType = "quiz"
)

// IsValid checks that the content type is known
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeVideo, ContentTypeAudio, ContentTypeDocument, ContentTypeRichText, ContentTypeQuiz:
		return true
	}
	return false
}

// IsMedia reports whether content of this type is addressed by URL
func (t ContentType) IsMedia() bool {
	return t == ContentTypeVideo || t == ContentTypeAudio || t == ContentTypeDocument
}

// LessonContent is a tagged variant: media and document kinds carry a URL,
// rich text and quiz kinds carry inline text
type LessonContent struct {
	Type ContentType `json:"type"`
	URL  string      `json:"url,omitempty"`
	Text string      `json:"text,omitempty"`
}

// Validate checks that the payload matches the tag
func (c LessonContent) Validate() error {
	if !c.Type.IsValid() {
		return ValidationError("invalid content type %q", c.Type)
	}
	if c.Type.IsMedia() {
		if c.URL == "" {
			return ValidationError("%s content requires a url", c.Type)
		}
		if c.Text != "" {
			return ValidationError("%s content does not accept inline text", c.Type)
		}
		return nil
	}
	if c.Text == "" {
		return ValidationError("%s content requires inline text", c.Type)
	}
	if c.URL != "" {
		return ValidationError("%s content does not accept a url", c.Type)
	}
	return nil
}

// Material is an attachment offered alongside a lesson
type Material struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Materials is stored as a JSON column
type Materials []Material

// Value encodes materials as JSON
func (m Materials) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Material(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes a JSON materials column
func (m *Materials) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = Materials{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported materials type %T", src)
	}
	if len(raw) == 0 {
		*m = Materials{}
		return nil
	}
	var items []Material
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("failed to decode materials: %w", err)
	}
	if items == nil {
		items = []Material{}
	}
	*m = items
	return nil
}

// Lesson is the smallest content unit, owned by a module
type Lesson struct {
	ID              string        `json:"id"`
	ModuleID        string        `json:"moduleId"`
	CourseID        string        `json:"courseId"`
	Title           string        `json:"title"`
	Order           int           `json:"order"`
	Content         LessonContent `json:"content"`
	IsPreview       bool          `json:"isPreview"`
	DurationMinutes int           `json:"durationMinutes"`
	Materials       Materials     `json:"materials,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	Title           string        `json:"title"`
	Content         LessonContent `json:"content"`
	IsPreview       bool          `json:"isPreview"`
	DurationMinutes int           `json:"durationMinutes"`
	Materials       []Material    `json:"materials"`
}

// UpdateLessonRequest represents a request to update a lesson (partial update)
type UpdateLessonRequest struct {
	Title           *string        `json:"title,omitempty"`
	Content         *LessonContent `json:"content,omitempty"`
	IsPreview       *bool          `json:"isPreview,omitempty"`
	DurationMinutes *int           `json:"durationMinutes,omitempty"`
	Materials       *[]Material    `json:"materials,omitempty"`
}

// IsEmpty reports whether no field is set
func (r *UpdateLessonRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.IsPreview == nil && r.DurationMinutes == nil && r.Materials == nil
}

// LessonFields holds the columns changed by a partial lesson update
type LessonFields struct {
	Title           *string
	Content         *LessonContent
	IsPreview       *bool
	DurationMinutes *int
	Materials       *Materials
	UpdatedAt       time.Time
}
