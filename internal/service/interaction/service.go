// Package interaction fans reactions out onto fresh posts and lets authors
// answer them. Each participant is isolated: one failing commenter never
// costs the others their turn.
package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dkims/agentopia/internal/config"
	"github.com/dkims/agentopia/internal/domain"
)

//go:generate moq -out repos_mock_test.go . agentRepo postRepo commentRepo snapshotRepo relationRepo
//go:generate moq -out collaborators_mock_test.go . textGenerator tokenEnsurer txManager

type agentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	ListWithValidTokens(ctx context.Context, now time.Time) ([]*domain.Agent, error)
	TouchLastActive(ctx context.Context, id uuid.UUID) error
}

type postRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
}

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListTopLevelByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	ExistsReplyByAuthor(ctx context.Context, parentID, authorID uuid.UUID) (bool, error)
}

type snapshotRepo interface {
	Create(ctx context.Context, s *domain.OpinionSnapshot) (*domain.OpinionSnapshot, error)
}

type relationRepo interface {
	Upsert(ctx context.Context, fromID, toID uuid.UUID, similarity float64) (*domain.Relation, error)
}

type textGenerator interface {
	Generate(ctx context.Context, system, user string, useSearch bool) (string, error)
}

type tokenEnsurer interface {
	EnsureValidToken(ctx context.Context, agentID uuid.UUID) (string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs comment fan-out and author replies.
type Service struct {
	agents    agentRepo
	posts     postRepo
	comments  commentRepo
	snapshots snapshotRepo
	relations relationRepo
	gen       textGenerator
	creds     tokenEnsurer
	tx        txManager
	cfg       config.SimulationConfig
	log       *slog.Logger
	rand      func() float64
	shuffle   func(n int, swap func(i, j int))
	now       func() time.Time
}

// NewService creates an interaction service.
func NewService(
	agents agentRepo,
	posts postRepo,
	comments commentRepo,
	snapshots snapshotRepo,
	relations relationRepo,
	gen textGenerator,
	creds tokenEnsurer,
	tx txManager,
	cfg config.SimulationConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		agents:    agents,
		posts:     posts,
		comments:  comments,
		snapshots: snapshots,
		relations: relations,
		gen:       gen,
		creds:     creds,
		tx:        tx,
		cfg:       cfg,
		log:       logger.With("service", "interaction"),
		rand:      rand.Float64,
		shuffle:   rand.Shuffle,
		now:       time.Now,
	}
}

// FanOutComments invites up to maxCommenters randomly chosen agents (never
// the author) to react to the post. Every candidate runs independently: a
// skipped participation roll, a dead token or a generation failure removes
// only that candidate. Returns the comments that were actually created.
func (s *Service) FanOutComments(ctx context.Context, postID, authorID uuid.UUID, maxCommenters int) ([]*domain.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	candidates, err := s.agents.ListWithValidTokens(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	eligible := make([]*domain.Agent, 0, len(candidates))
	for _, a := range candidates {
		if a.ID != authorID {
			eligible = append(eligible, a)
		}
	}
	s.shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > maxCommenters {
		eligible = eligible[:maxCommenters]
	}

	results := make([]*domain.Comment, len(eligible))
	g, gctx := errgroup.WithContext(ctx)
	for i, agent := range eligible {
		g.Go(func() error {
			c, err := s.commentOnce(gctx, agent, post)
			if err != nil {
				s.log.WarnContext(gctx, "commenter skipped",
					slog.String("agent_id", agent.ID.String()),
					slog.String("post_id", post.ID.String()),
					slog.String("error", err.Error()))
				return nil
			}
			results[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	comments := make([]*domain.Comment, 0, len(results))
	for _, c := range results {
		if c != nil {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// commentOnce runs one candidate through participation gate, generation,
// classification and persistence, plus the follow-on side effects.
func (s *Service) commentOnce(ctx context.Context, agent *domain.Agent, post *domain.Post) (*domain.Comment, error) {
	if s.rand() >= s.cfg.ParticipationProb {
		return nil, fmt.Errorf("sat this one out")
	}

	if _, err := s.creds.EnsureValidToken(ctx, agent.ID); err != nil {
		return nil, fmt.Errorf("ensure token: %w", err)
	}

	system := fmt.Sprintf("You are %s. Bio: %s. Interests: %s.",
		agent.Name, agent.Bio, strings.Join(agent.Interests, ", "))
	body, err := s.gen.Generate(ctx, system,
		fmt.Sprintf("React to this post in 2-3 sentences, in your own voice. "+
			"Agree, disagree or ask a question, whatever fits you.\n\nTitle: %s\n\n%s",
			post.Title, post.Body), false)
	if err != nil {
		return nil, fmt.Errorf("generate reaction: %w", err)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("empty reaction")
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		PostID:  post.ID,
		AgentID: agent.ID,
		Body:    body,
		Kind:    ClassifySentiment(body),
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.agents.TouchLastActive(ctx, agent.ID); err != nil {
		s.log.WarnContext(ctx, "touch last active failed",
			slog.String("agent_id", agent.ID.String()),
			slog.String("error", err.Error()))
	}

	s.afterComment(ctx, agent, post, comment)

	return comment, nil
}

// afterComment records the snapshot and the social edge a comment implies.
// Both are best effort.
func (s *Service) afterComment(ctx context.Context, agent *domain.Agent, post *domain.Post, comment *domain.Comment) {
	snap := &domain.OpinionSnapshot{
		AgentID:     agent.ID,
		TopicID:     post.TopicID,
		Rating:      ratingForKind(comment.Kind),
		Sentiment:   domain.SentimentForRating(ratingForKind(comment.Kind)),
		Excerpt:     comment.Body,
		TriggerKind: domain.TriggerComment,
		TriggerID:   comment.ID,
	}
	if _, err := s.snapshots.Create(ctx, snap); err != nil {
		s.log.WarnContext(ctx, "comment snapshot failed",
			slog.String("comment_id", comment.ID.String()),
			slog.String("error", err.Error()))
	}

	author, err := s.agents.GetByID(ctx, post.AgentID)
	if err != nil {
		return
	}
	sim := domain.InterestSimilarity(agent.Interests, author.Interests)
	// Upsert touches both directions of the pair when the edge turns mutual,
	// so it runs in one transaction.
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		_, err := s.relations.Upsert(ctx, agent.ID, author.ID, sim)
		return err
	})
	if err != nil {
		s.log.WarnContext(ctx, "relation upsert failed",
			slog.String("from", agent.ID.String()),
			slog.String("to", author.ID.String()),
			slog.String("error", err.Error()))
	}
}

// ratingForKind maps a reaction kind onto the coarse 1..5 opinion scale.
func ratingForKind(kind domain.CommentKind) int {
	switch {
	case kind.IsAffirming():
		return 4
	case kind.IsOpposing():
		return 2
	default:
		return 3
	}
}

// AuthorReplies lets the post author answer every top-level comment it has
// not already answered. Idempotent: calling it twice adds nothing new.
func (s *Service) AuthorReplies(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	if _, err := s.creds.EnsureValidToken(ctx, post.AgentID); err != nil {
		return nil, fmt.Errorf("ensure author token: %w", err)
	}

	author, err := s.agents.GetByID(ctx, post.AgentID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	topLevel, err := s.comments.ListTopLevelByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	replies := make([]*domain.Comment, 0, len(topLevel))
	for _, c := range topLevel {
		if c.AgentID == author.ID {
			continue
		}

		answered, err := s.comments.ExistsReplyByAuthor(ctx, c.ID, author.ID)
		if err != nil {
			s.log.WarnContext(ctx, "reply existence check failed",
				slog.String("comment_id", c.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if answered {
			continue
		}

		reply, err := s.replyOnce(ctx, author, post, c)
		if err != nil {
			s.log.WarnContext(ctx, "author reply skipped",
				slog.String("comment_id", c.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		replies = append(replies, reply)
	}

	return replies, nil
}

func (s *Service) replyOnce(ctx context.Context, author *domain.Agent, post *domain.Post, parent *domain.Comment) (*domain.Comment, error) {
	system := fmt.Sprintf("You are %s, the author of the post %q. Bio: %s.",
		author.Name, post.Title, author.Bio)
	body, err := s.gen.Generate(ctx, system,
		fmt.Sprintf("Someone commented on your post:\n%q\nAnswer them in 1-2 sentences.", parent.Body), false)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("empty reply")
	}

	threadID := parent.ID
	if parent.ThreadID != nil {
		threadID = *parent.ThreadID
	}

	return s.comments.Create(ctx, &domain.Comment{
		PostID:   post.ID,
		AgentID:  author.ID,
		Body:     body,
		Kind:     ClassifySentiment(body),
		ParentID: &parent.ID,
		ThreadID: &threadID,
	})
}
