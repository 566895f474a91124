package domain

import (
	"time"

	"github.com/google/uuid"
)

// EdgeKind is the inferred relation kind between two topics.
type EdgeKind string

const (
	// EdgeExploredTogether links topics posted about by the same agent.
	EdgeExploredTogether EdgeKind = "explored_together"
	// EdgeSameCategory links topics sharing a category.
	EdgeSameCategory EdgeKind = "same_category"
)

// KnowledgeEdge is a weighted undirected relation between two topics.
// Topic IDs are stored in canonical order so the same pair always maps to
// one row; strengthening increments Weight instead of duplicating.
type KnowledgeEdge struct {
	ID        uuid.UUID
	TopicAID  uuid.UUID
	TopicBID  uuid.UUID
	Kind      EdgeKind
	Weight    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanonicalPair orders two topic IDs so (a,b) and (b,a) produce the same key.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}
