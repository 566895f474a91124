// Package content runs the post generation pipeline: topic selection, draft
// generation, quality gating, media binding, persistence and the opinion
// snapshot that follows every authored post.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/dkims/agentopia/internal/config"
	"github.com/dkims/agentopia/internal/domain"
)

//go:generate moq -out agent_repo_mock_test.go . agentRepo
//go:generate moq -out topic_repo_mock_test.go . topicRepo
//go:generate moq -out post_repo_mock_test.go . postRepo
//go:generate moq -out snapshot_repo_mock_test.go . snapshotRepo
//go:generate moq -out generator_mock_test.go . generator
//go:generate moq -out collaborators_mock_test.go . tokenEnsurer memoryWriter mediaResolver

type agentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	TouchLastActive(ctx context.Context, id uuid.UUID) error
}

type topicRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Topic, error)
	Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error)
	Random(ctx context.Context) (*domain.Topic, error)
}

type postRepo interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
}

type snapshotRepo interface {
	Create(ctx context.Context, s *domain.OpinionSnapshot) (*domain.OpinionSnapshot, error)
	LatestByAgentTopic(ctx context.Context, agentID, topicID uuid.UUID) (*domain.OpinionSnapshot, error)
}

type generator interface {
	Generate(ctx context.Context, system, user string, useSearch bool) (string, error)
	Act(ctx context.Context, message string, schema *genai.Schema) (json.RawMessage, error)
}

type tokenEnsurer interface {
	EnsureValidToken(ctx context.Context, agentID uuid.UUID) (string, error)
}

type memoryWriter interface {
	WriteMemory(ctx context.Context, agentToken, note string) error
}

type mediaResolver interface {
	Resolve(ctx context.Context, topicName, category string) string
}

// Service generates posts for agents.
type Service struct {
	agents    agentRepo
	topics    topicRepo
	posts     postRepo
	snapshots snapshotRepo
	gen       generator
	creds     tokenEnsurer
	memory    memoryWriter
	media     mediaResolver
	cfg       config.SimulationConfig
	log       *slog.Logger
	rand      func() float64
	now       func() time.Time
}

// NewService creates a content service.
func NewService(
	agents agentRepo,
	topics topicRepo,
	posts postRepo,
	snapshots snapshotRepo,
	gen generator,
	creds tokenEnsurer,
	memory memoryWriter,
	media mediaResolver,
	cfg config.SimulationConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		agents:    agents,
		topics:    topics,
		posts:     posts,
		snapshots: snapshots,
		gen:       gen,
		creds:     creds,
		memory:    memory,
		media:     media,
		cfg:       cfg,
		log:       logger.With("service", "content"),
		rand:      rand.Float64,
		now:       time.Now,
	}
}

// GeneratePost runs the full authoring pipeline for one agent and returns
// the persisted post. Fatal failures (no credentials, empty catalog, rejected
// draft) abort the pipeline; the memory write-back at the end is detached
// and never affects the result.
func (s *Service) GeneratePost(ctx context.Context, agentID uuid.UUID) (*domain.Post, error) {
	token, err := s.creds.EnsureValidToken(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("ensure token: %w", err)
	}

	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}

	topic, err := s.pickTopic(ctx, agent)
	if err != nil {
		return nil, err
	}

	draft, err := s.draft(ctx, agent, topic)
	if err != nil {
		return nil, err
	}

	if !draft.IsResearch {
		if err := s.qualityGate(ctx, topic, draft); err != nil {
			return nil, err
		}
	}

	mediaURL := s.media.Resolve(ctx, topic.Name, topic.Category)

	post, err := s.posts.Create(ctx, &domain.Post{
		AgentID:    agent.ID,
		TopicID:    topic.ID,
		Title:      draft.Title,
		Body:       draft.Body,
		Rating:     draft.Rating,
		Tags:       draft.Tags,
		MediaURL:   mediaURL,
		IsResearch: draft.IsResearch,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.agents.TouchLastActive(ctx, agent.ID); err != nil {
		s.log.WarnContext(ctx, "touch last active failed",
			slog.String("agent_id", agent.ID.String()),
			slog.String("error", err.Error()))
	}

	s.recordSnapshot(ctx, post, draft)

	// Memory write-back is best effort and must not hold the caller.
	go s.writeMemory(token, post, topic)

	s.log.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID.String()),
		slog.String("agent_id", agent.ID.String()),
		slog.String("topic", topic.Name),
		slog.Int("rating", post.Rating),
		slog.Bool("research", post.IsResearch))

	return post, nil
}

// recordSnapshot persists the opinion snapshot the post implies and logs
// when it represents a drift from the agent's previous stance on the topic.
func (s *Service) recordSnapshot(ctx context.Context, post *domain.Post, draft *draftResult) {
	prev, err := s.snapshots.LatestByAgentTopic(ctx, post.AgentID, post.TopicID)
	if err != nil && !isNotFound(err) {
		s.log.WarnContext(ctx, "load previous snapshot failed", slog.String("error", err.Error()))
		prev = nil
	}

	snap := &domain.OpinionSnapshot{
		AgentID:     post.AgentID,
		TopicID:     post.TopicID,
		Rating:      post.Rating,
		Sentiment:   domain.SentimentForRating(post.Rating),
		Excerpt:     excerpt(draft.Body),
		TriggerKind: domain.TriggerPost,
		TriggerID:   post.ID,
	}

	if _, err := s.snapshots.Create(ctx, snap); err != nil {
		s.log.WarnContext(ctx, "create snapshot failed", slog.String("error", err.Error()))
		return
	}

	if snap.ShiftFrom(prev) {
		s.log.InfoContext(ctx, "opinion drift on authoring",
			slog.String("agent_id", post.AgentID.String()),
			slog.String("topic_id", post.TopicID.String()),
			slog.Int("previous_rating", prev.Rating),
			slog.Int("rating", snap.Rating))
	}
}

func (s *Service) writeMemory(token string, post *domain.Post, topic *domain.Topic) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	note := fmt.Sprintf("Posted %q about %s (rating %d/5).", post.Title, topic.Name, post.Rating)
	if err := s.memory.WriteMemory(ctx, token, note); err != nil {
		s.log.WarnContext(ctx, "memory write-back failed",
			slog.String("post_id", post.ID.String()),
			slog.String("error", err.Error()))
	}
}

// excerpt truncates a body to snapshot length on a rune boundary.
func excerpt(body string) string {
	const max = 200
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max])
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
