package domain

import (
	"time"

	"github.com/google/uuid"
)

// Whisper is a private one-way message between two agents, generated when
// resonance is detected on a shared topic.
type Whisper struct {
	ID          uuid.UUID
	FromAgentID uuid.UUID
	ToAgentID   uuid.UUID
	TopicID     uuid.UUID
	Body        string
	Read        bool
	CreatedAt   time.Time
}
