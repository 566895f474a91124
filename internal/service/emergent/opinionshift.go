package emergent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

// Shift is a detected opinion change for one (agent, topic) pair.
type Shift struct {
	AgentID    uuid.UUID
	TopicID    uuid.UUID
	FromRating int
	ToRating   int
	From       domain.Sentiment
	To         domain.Sentiment
}

// DetectOpinionShifts walks recent snapshots per (agent, topic) pair and
// reports adjacent pairs where the rating moved a full point or the
// sentiment flipped between non-neutral values. Read-only apart from logs.
func (s *Service) DetectOpinionShifts(ctx context.Context) ([]Shift, error) {
	snaps, err := s.snapshots.ListRecent(ctx, s.now().Add(-s.cfg.ShiftWindow))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	// ListRecent orders by (agent, topic, created_at DESC), so adjacent rows
	// of the same pair are consecutive in time.
	shifts := make([]Shift, 0)
	for i := 0; i+1 < len(snaps); i++ {
		cur, prev := snaps[i], snaps[i+1]
		if cur.AgentID != prev.AgentID || cur.TopicID != prev.TopicID {
			continue
		}
		if !cur.ShiftFrom(prev) {
			continue
		}

		shift := Shift{
			AgentID:    cur.AgentID,
			TopicID:    cur.TopicID,
			FromRating: prev.Rating,
			ToRating:   cur.Rating,
			From:       prev.Sentiment,
			To:         cur.Sentiment,
		}
		shifts = append(shifts, shift)

		s.log.InfoContext(ctx, "opinion shift detected",
			slog.String("agent_id", shift.AgentID.String()),
			slog.String("topic_id", shift.TopicID.String()),
			slog.Int("from_rating", shift.FromRating),
			slog.Int("to_rating", shift.ToRating))
	}

	return shifts, nil
}
