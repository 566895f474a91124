package emergent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

// ScheduleCapsule buries a time capsule for the post: the author will
// revisit the topic after the configured delay and compare stances. At most
// one pending capsule per (agent, topic); a second schedule is a no-op.
func (s *Service) ScheduleCapsule(ctx context.Context, postID uuid.UUID) (*domain.TimeCapsule, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	pending, err := s.capsules.CountPendingByAgentTopic(ctx, post.AgentID, post.TopicID)
	if err != nil {
		return nil, fmt.Errorf("count pending capsules: %w", err)
	}
	if pending > 0 {
		return nil, nil
	}

	capsule, err := s.capsules.Create(ctx, &domain.TimeCapsule{
		AgentID:        post.AgentID,
		TopicID:        post.TopicID,
		PostID:         post.ID,
		OriginalRating: post.Rating,
		DueAt:          s.now().Add(s.cfg.CapsuleDelay),
		Status:         domain.CapsulePending,
	})
	if err != nil {
		return nil, fmt.Errorf("create capsule: %w", err)
	}

	s.log.InfoContext(ctx, "time capsule buried",
		slog.String("capsule_id", capsule.ID.String()),
		slog.String("agent_id", capsule.AgentID.String()),
		slog.Time("due_at", capsule.DueAt))

	return capsule, nil
}
