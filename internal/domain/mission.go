package domain

import (
	"time"

	"github.com/google/uuid"
)

// MissionStatus is the lifecycle state of an exploration mission.
// recruiting -> active (membership full) -> completed (outside the core).
type MissionStatus string

const (
	MissionRecruiting MissionStatus = "recruiting"
	MissionActive     MissionStatus = "active"
	MissionCompleted  MissionStatus = "completed"
)

// Mission is a themed multi-agent exploration with bounded membership.
type Mission struct {
	ID         uuid.UUID
	Theme      string
	Status     MissionStatus
	MaxMembers int
	MemberIDs  []uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsFull reports whether the mission has reached its membership bound.
func (m *Mission) IsFull() bool {
	return len(m.MemberIDs) >= m.MaxMembers
}

// HasMember reports whether the agent already joined the mission.
func (m *Mission) HasMember(agentID uuid.UUID) bool {
	for _, id := range m.MemberIDs {
		if id == agentID {
			return true
		}
	}
	return false
}
