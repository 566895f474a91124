package emergent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

// ExtractKnowledge derives topic graph edges from one post: an
// explored_together edge to every other topic its author has posted about,
// and a same_category edge to every topic sharing the post's category.
// Repeated extraction strengthens edges instead of duplicating them.
func (s *Service) ExtractKnowledge(ctx context.Context, postID uuid.UUID) ([]*domain.KnowledgeEdge, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	topic, err := s.topics.GetByID(ctx, post.TopicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	edges := make([]*domain.KnowledgeEdge, 0)

	authored, err := s.posts.ListByAgent(ctx, post.AgentID)
	if err != nil {
		return nil, fmt.Errorf("list authored posts: %w", err)
	}
	seen := map[uuid.UUID]bool{topic.ID: true}
	for _, p := range authored {
		if seen[p.TopicID] {
			continue
		}
		seen[p.TopicID] = true

		edge, err := s.knowledge.IncrementOrCreate(ctx, topic.ID, p.TopicID, domain.EdgeExploredTogether)
		if err != nil {
			s.log.WarnContext(ctx, "explored_together edge failed",
				slog.String("topic_b", p.TopicID.String()),
				slog.String("error", err.Error()))
			continue
		}
		edges = append(edges, edge)
	}

	all, err := s.topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	for _, t := range all {
		if t.ID == topic.ID || t.Category != topic.Category {
			continue
		}

		edge, err := s.knowledge.IncrementOrCreate(ctx, topic.ID, t.ID, domain.EdgeSameCategory)
		if err != nil {
			s.log.WarnContext(ctx, "same_category edge failed",
				slog.String("topic_b", t.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		edges = append(edges, edge)
	}

	return edges, nil
}
