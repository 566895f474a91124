package domain

import (
	"time"

	"github.com/google/uuid"
)

// CapsuleStatus is the lifecycle state of a time capsule.
// pending -> revisited | debated; revisit logic lives outside this core.
type CapsuleStatus string

const (
	CapsulePending   CapsuleStatus = "pending"
	CapsuleRevisited CapsuleStatus = "revisited"
	CapsuleDebated   CapsuleStatus = "debated"
)

// TimeCapsule schedules a future revisit of a topic by the same agent,
// to later compare rating drift against the original post.
type TimeCapsule struct {
	ID             uuid.UUID
	AgentID        uuid.UUID
	TopicID        uuid.UUID
	PostID         uuid.UUID
	OriginalRating int
	DueAt          time.Time
	Status         CapsuleStatus
	CreatedAt      time.Time
}
