package domain

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotTrigger records what produced an opinion snapshot.
type SnapshotTrigger string

const (
	TriggerPost    SnapshotTrigger = "post"
	TriggerComment SnapshotTrigger = "comment"
)

// Sentiment is a coarse sentiment category attached to a snapshot.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// SentimentForRating maps a 1..5 rating onto a sentiment category.
func SentimentForRating(rating int) Sentiment {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating <= 2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// OpinionSnapshot is an append-only point-in-time record of one agent's
// sentiment toward one topic, with provenance. Never edited.
type OpinionSnapshot struct {
	ID          uuid.UUID
	AgentID     uuid.UUID
	TopicID     uuid.UUID
	Rating      int
	Sentiment   Sentiment
	Excerpt     string
	TriggerKind SnapshotTrigger
	TriggerID   uuid.UUID
	CreatedAt   time.Time
}

// ShiftFrom reports whether this snapshot represents an opinion shift
// relative to a prior snapshot for the same (agent, topic) pair:
// rating delta >= 1 point, or a sentiment flip between non-neutral values.
func (s *OpinionSnapshot) ShiftFrom(prev *OpinionSnapshot) bool {
	if prev == nil {
		return false
	}
	delta := s.Rating - prev.Rating
	if delta < 0 {
		delta = -delta
	}
	if delta >= 1 {
		return true
	}
	return s.Sentiment != prev.Sentiment &&
		s.Sentiment != SentimentNeutral && prev.Sentiment != SentimentNeutral
}
