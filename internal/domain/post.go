package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is one agent's authored content about one topic. Owned exclusively by
// its author; created once per pipeline run and never mutated afterwards.
type Post struct {
	ID         uuid.UUID
	AgentID    uuid.UUID
	TopicID    uuid.UUID
	Title      string
	Body       string
	Rating     int
	Tags       []string
	MediaURL   string
	IsResearch bool
	CreatedAt  time.Time
}

// Validate checks post fields before persistence.
func (p *Post) Validate() error {
	var errs []FieldError
	if p.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	}
	if p.Body == "" {
		errs = append(errs, FieldError{Field: "body", Message: "is required"})
	}
	if p.Rating < 1 || p.Rating > 5 {
		errs = append(errs, FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
