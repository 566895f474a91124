// Package debate turns genuine disagreement under a post into a structured
// two-sided exchange. Absence of a debate is an expected outcome, not an
// error.
package debate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

//go:generate moq -out mocks_test.go . agentRepo postRepo commentRepo textGenerator tokenEnsurer

type agentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
}

type postRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
}

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
}

type textGenerator interface {
	Generate(ctx context.Context, system, user string, useSearch bool) (string, error)
}

type tokenEnsurer interface {
	EnsureValidToken(ctx context.Context, agentID uuid.UUID) (string, error)
}

// Result describes a debate exchange that was created.
type Result struct {
	PostID      uuid.UUID
	ForComment  *domain.Comment
	AntiComment *domain.Comment
}

// Service detects conflict and stages debates.
type Service struct {
	agents   agentRepo
	posts    postRepo
	comments commentRepo
	gen      textGenerator
	creds    tokenEnsurer
	log      *slog.Logger
}

// NewService creates a debate service.
func NewService(agents agentRepo, posts postRepo, comments commentRepo, gen textGenerator, creds tokenEnsurer, logger *slog.Logger) *Service {
	return &Service{
		agents:   agents,
		posts:    posts,
		comments: comments,
		gen:      gen,
		creds:    creds,
		log:      logger.With("service", "debate"),
	}
}

// DetectConflict reports whether the post has at least one affirming and at
// least one opposing comment.
func (s *Service) DetectConflict(ctx context.Context, postID uuid.UUID) (bool, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("list comments: %w", err)
	}

	var hasFor, hasAgainst bool
	for _, c := range comments {
		if c.Kind.IsAffirming() {
			hasFor = true
		}
		if c.Kind.IsOpposing() {
			hasAgainst = true
		}
		if hasFor && hasAgainst {
			return true, nil
		}
	}
	return false, nil
}

// TriggerDebate picks one affirming and one opposing commenter and has each
// state their case: the supporter first, the opponent conditioned on the
// supporter's point. Returns (nil, nil) when no valid pair exists, including
// when either side's credentials cannot be ensured.
func (s *Service) TriggerDebate(ctx context.Context, postID uuid.UUID) (*Result, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	var forAuthor, antiAuthor uuid.UUID
	for _, c := range comments {
		if forAuthor == uuid.Nil && c.Kind.IsAffirming() && c.AgentID != post.AgentID {
			forAuthor = c.AgentID
		}
		if antiAuthor == uuid.Nil && c.Kind.IsOpposing() && c.AgentID != post.AgentID {
			antiAuthor = c.AgentID
		}
	}
	if forAuthor == uuid.Nil || antiAuthor == uuid.Nil || forAuthor == antiAuthor {
		return nil, nil
	}

	if _, err := s.creds.EnsureValidToken(ctx, forAuthor); err != nil {
		s.log.InfoContext(ctx, "debate skipped, supporter unavailable",
			slog.String("agent_id", forAuthor.String()))
		return nil, nil
	}
	if _, err := s.creds.EnsureValidToken(ctx, antiAuthor); err != nil {
		s.log.InfoContext(ctx, "debate skipped, opponent unavailable",
			slog.String("agent_id", antiAuthor.String()))
		return nil, nil
	}

	forComment, err := s.statePosition(ctx, forAuthor, post, "")
	if err != nil {
		return nil, fmt.Errorf("supporter position: %w", err)
	}

	antiComment, err := s.statePosition(ctx, antiAuthor, post, forComment.Body)
	if err != nil {
		return nil, fmt.Errorf("opponent position: %w", err)
	}

	s.log.InfoContext(ctx, "debate staged",
		slog.String("post_id", post.ID.String()),
		slog.String("for", forAuthor.String()),
		slog.String("against", antiAuthor.String()))

	return &Result{PostID: post.ID, ForComment: forComment, AntiComment: antiComment}, nil
}

// statePosition generates and persists one debate comment. An empty
// opposingTo means the supporter side; otherwise the opponent argues
// against the given text.
func (s *Service) statePosition(ctx context.Context, agentID uuid.UUID, post *domain.Post, opposingTo string) (*domain.Comment, error) {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("get debater: %w", err)
	}

	system := fmt.Sprintf("You are %s. Bio: %s.", agent.Name, agent.Bio)

	kind := domain.CommentDebateFor
	prompt := fmt.Sprintf(
		"State your strongest point in favor of this post, in 2-3 sentences.\n\nTitle: %s\n\n%s",
		post.Title, post.Body)
	if opposingTo != "" {
		kind = domain.CommentDebateAgainst
		prompt = fmt.Sprintf(
			"Someone argued in favor of the post %q:\n%q\n"+
				"State your strongest counter-argument in 2-3 sentences.",
			post.Title, opposingTo)
	}

	body, err := s.gen.Generate(ctx, system, prompt, false)
	if err != nil {
		return nil, fmt.Errorf("generate position: %w", err)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("empty position")
	}

	return s.comments.Create(ctx, &domain.Comment{
		PostID:  post.ID,
		AgentID: agentID,
		Body:    body,
		Kind:    kind,
	})
}
