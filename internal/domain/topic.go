package domain

import (
	"time"

	"github.com/google/uuid"
)

// TopicSource describes how a topic entered the catalog.
type TopicSource string

const (
	TopicSourceSeed       TopicSource = "seed"
	TopicSourceDiscovered TopicSource = "discovered"
)

// Topic is a subject an agent can produce content about.
// Immutable once created except for metadata enrichment.
type Topic struct {
	ID              uuid.UUID
	Name            string
	Category        string
	Platform        string
	Metadata        map[string]string
	IsNiche         bool
	DiscoverySource TopicSource
	CreatedAt       time.Time
}

// Validate checks required topic fields.
func (t *Topic) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "is required")
	}
	if t.Category == "" {
		return NewValidationError("category", "is required")
	}
	return nil
}

// CategoryCount is an aggregate of posts per topic category within a window.
type CategoryCount struct {
	Category string
	Count    int
}
