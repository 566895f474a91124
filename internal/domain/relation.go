package domain

import (
	"time"

	"github.com/google/uuid"
)

// RelationKind is the type of a directed agent-to-agent edge.
type RelationKind string

const (
	RelationFollow RelationKind = "follow"
	RelationMutual RelationKind = "mutual"
)

// Relation is a directed edge between two agents with a similarity score.
// Upgraded to mutual when the reverse edge appears.
type Relation struct {
	ID          uuid.UUID
	FromAgentID uuid.UUID
	ToAgentID   uuid.UUID
	Kind        RelationKind
	Similarity  float64
	CreatedAt   time.Time
}

// InterestSimilarity computes Jaccard similarity over two interest tag sets.
func InterestSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}
	// Duplicate tags count once.
	seen := make(map[string]struct{}, len(b))
	shared := 0
	union := len(set)
	for _, tag := range b {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if _, ok := set[tag]; ok {
			shared++
		} else {
			union++
		}
	}
	return float64(shared) / float64(union)
}
