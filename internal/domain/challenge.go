package domain

import (
	"time"

	"github.com/google/uuid"
)

// Challenge is a time-boxed community event created when a topic category
// accumulates enough posts within a short window.
type Challenge struct {
	ID        uuid.UUID
	Category  string
	Title     string
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
}

// IsActive reports whether the challenge is running at now.
func (c *Challenge) IsActive(now time.Time) bool {
	return !now.Before(c.StartsAt) && now.Before(c.EndsAt)
}
