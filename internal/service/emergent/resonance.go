package emergent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

// DetectResonance finds pairs of agents who recently rated the same topic
// highly and close to each other, and sends one whisper per pair, from the
// lower-rated author to the higher-rated one. A pair that already whispered
// on the topic inside the window stays silent.
func (s *Service) DetectResonance(ctx context.Context) ([]*domain.Whisper, error) {
	since := s.now().Add(-s.cfg.ResonanceWindow)

	posts, err := s.posts.ListRecent(ctx, since, 4)
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}

	byTopic := make(map[uuid.UUID][]*domain.Post)
	for _, p := range posts {
		byTopic[p.TopicID] = append(byTopic[p.TopicID], p)
	}

	whispers := make([]*domain.Whisper, 0)
	for topicID, group := range byTopic {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.AgentID == b.AgentID {
					continue
				}
				delta := a.Rating - b.Rating
				if delta < 0 {
					delta = -delta
				}
				if delta > 1 {
					continue
				}

				from, to := a, b
				if b.Rating < a.Rating {
					from, to = b, a
				}

				w, err := s.whisperOnce(ctx, topicID, from, to, since)
				if err != nil {
					s.log.WarnContext(ctx, "whisper failed",
						slog.String("topic_id", topicID.String()),
						slog.String("error", err.Error()))
					continue
				}
				if w != nil {
					whispers = append(whispers, w)
				}
			}
		}
	}

	return whispers, nil
}

func (s *Service) whisperOnce(ctx context.Context, topicID uuid.UUID, from, to *domain.Post, since time.Time) (*domain.Whisper, error) {
	count, err := s.whispers.CountForPair(ctx, from.AgentID, to.AgentID, topicID, since)
	if err != nil {
		return nil, fmt.Errorf("count whispers: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	body, err := s.gen.Generate(ctx, "",
		fmt.Sprintf("Write a short friendly private note (one sentence) to someone who, "+
			"like you, recently wrote enthusiastically about %q.", topic.Name), false)
	if err != nil || strings.TrimSpace(body) == "" {
		// The note is decorative; a template keeps the signal flowing.
		body = fmt.Sprintf("We both seem excited about %s lately. Kindred spirits.", topic.Name)
	}

	w, err := s.whispers.Create(ctx, &domain.Whisper{
		FromAgentID: from.AgentID,
		ToAgentID:   to.AgentID,
		TopicID:     topicID,
		Body:        strings.TrimSpace(body),
	})
	if err != nil {
		return nil, fmt.Errorf("create whisper: %w", err)
	}

	s.log.InfoContext(ctx, "resonance whisper sent",
		slog.String("from", from.AgentID.String()),
		slog.String("to", to.AgentID.String()),
		slog.String("topic", topic.Name))

	return w, nil
}
