// Package tick is the engine's entry point: one call runs one simulation
// step. The synchronous phase produces a post under a hard deadline; all
// social consequences run detached in a background phase that survives the
// caller and isolates every step.
package tick

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/config"
	"github.com/dkims/agentopia/internal/domain"
	"github.com/dkims/agentopia/internal/service/debate"
	"github.com/dkims/agentopia/internal/service/emergent"
)

//go:generate moq -out mocks_test.go . agentRepo postRepo counter contentService interactionService debateService emergentService

type agentRepo interface {
	List(ctx context.Context) ([]*domain.Agent, error)
	ListWithValidTokens(ctx context.Context, now time.Time) ([]*domain.Agent, error)
	Count(ctx context.Context) (int, error)
}

type postRepo interface {
	RandomOlderThan(ctx context.Context, cutoff time.Time) (*domain.Post, error)
	Count(ctx context.Context) (int, error)
}

type counter interface {
	Count(ctx context.Context) (int, error)
}

type contentService interface {
	GeneratePost(ctx context.Context, agentID uuid.UUID) (*domain.Post, error)
}

type interactionService interface {
	FanOutComments(ctx context.Context, postID, authorID uuid.UUID, maxCommenters int) ([]*domain.Comment, error)
	AuthorReplies(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
}

type debateService interface {
	DetectConflict(ctx context.Context, postID uuid.UUID) (bool, error)
	TriggerDebate(ctx context.Context, postID uuid.UUID) (*debate.Result, error)
}

type emergentService interface {
	DetectOpinionShifts(ctx context.Context) ([]emergent.Shift, error)
	DetectResonance(ctx context.Context) ([]*domain.Whisper, error)
	RunMissions(ctx context.Context) (*domain.Mission, error)
	RunChallenges(ctx context.Context) ([]*domain.Challenge, error)
	ExtractKnowledge(ctx context.Context, postID uuid.UUID) ([]*domain.KnowledgeEdge, error)
	ScheduleCapsule(ctx context.Context, postID uuid.UUID) (*domain.TimeCapsule, error)
}

// backfillAge keeps the backfill pass off posts from the current tick.
const backfillAge = time.Hour

// TickResult is what the caller gets back from a successful tick. The
// background phase is already detached when it returns.
type TickResult struct {
	PostCreated         bool      `json:"post_created"`
	PostID              uuid.UUID `json:"post_id"`
	Title               string    `json:"title"`
	AgentID             uuid.UUID `json:"agent_id"`
	BackgroundScheduled bool      `json:"background_scheduled"`
}

// Service orchestrates one simulation step per call.
type Service struct {
	agents      agentRepo
	posts       postRepo
	comments    counter
	whispers    counter
	missions    counter
	content     contentService
	interaction interactionService
	debates     debateService
	emergent    emergentService
	cfg         config.SimulationConfig
	log         *slog.Logger
	rand        func(n int) int
	now         func() time.Time

	bg sync.WaitGroup
}

// NewService creates a tick service.
func NewService(
	agents agentRepo,
	posts postRepo,
	comments counter,
	whispers counter,
	missions counter,
	content contentService,
	interaction interactionService,
	debates debateService,
	emergentSvc emergentService,
	cfg config.SimulationConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		agents:      agents,
		posts:       posts,
		comments:    comments,
		whispers:    whispers,
		missions:    missions,
		content:     content,
		interaction: interaction,
		debates:     debates,
		emergent:    emergentSvc,
		cfg:         cfg,
		log:         logger.With("service", "tick"),
		rand:        rand.Intn,
		now:         time.Now,
	}
}

// RunTick picks one agent with usable credentials, generates a post under
// the synchronous deadline, and detaches the background continuation. No
// usable agent is the caller's problem (ErrNoAgents); a failed pipeline is a
// failed tick.
func (s *Service) RunTick(ctx context.Context) (*TickResult, error) {
	candidates, err := s.agents.ListWithValidTokens(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoAgents
	}
	agent := candidates[s.rand(len(candidates))]

	syncCtx, cancel := context.WithTimeout(ctx, s.cfg.SyncBudget)
	defer cancel()

	post, err := s.content.GeneratePost(syncCtx, agent.ID)
	if err != nil {
		return nil, fmt.Errorf("generate post: %w", err)
	}

	// The caller's context (and its deadline) must not reach into the
	// background phase; it gets a fresh one with its own soft budget.
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		bgCtx, bgCancel := context.WithTimeout(context.Background(), s.cfg.BackgroundBudget)
		defer bgCancel()
		s.runBackground(bgCtx, post)
	}()

	return &TickResult{
		PostCreated:         true,
		PostID:              post.ID,
		Title:               post.Title,
		AgentID:             agent.ID,
		BackgroundScheduled: true,
	}, nil
}

// Wait blocks until all detached background phases finish. Used on shutdown
// and in tests.
func (s *Service) Wait() {
	s.bg.Wait()
}

// runBackground executes the social continuation of a fresh post. Every
// step runs through the step runner: a panic or error inside one step is
// logged and the next step still runs.
func (s *Service) runBackground(ctx context.Context, post *domain.Post) {
	start := s.now()

	s.step(ctx, "fanout", func() error {
		_, err := s.interaction.FanOutComments(ctx, post.ID, post.AgentID, s.cfg.MaxCommenters)
		return err
	})

	s.step(ctx, "author_replies", func() error {
		_, err := s.interaction.AuthorReplies(ctx, post.ID)
		return err
	})

	s.step(ctx, "debate", func() error {
		conflict, err := s.debates.DetectConflict(ctx, post.ID)
		if err != nil || !conflict {
			return err
		}
		_, err = s.debates.TriggerDebate(ctx, post.ID)
		return err
	})

	s.step(ctx, "knowledge", func() error {
		_, err := s.emergent.ExtractKnowledge(ctx, post.ID)
		return err
	})

	s.step(ctx, "opinion_shifts", func() error {
		_, err := s.emergent.DetectOpinionShifts(ctx)
		return err
	})

	if s.roll(s.cfg.MissionProb) {
		s.step(ctx, "missions", func() error {
			_, err := s.emergent.RunMissions(ctx)
			return err
		})
	}
	if s.roll(s.cfg.ChallengeProb) {
		s.step(ctx, "challenges", func() error {
			_, err := s.emergent.RunChallenges(ctx)
			return err
		})
	}
	if s.roll(s.cfg.CapsuleProb) {
		s.step(ctx, "capsule", func() error {
			_, err := s.emergent.ScheduleCapsule(ctx, post.ID)
			return err
		})
	}
	if s.roll(s.cfg.WhisperProb) {
		s.step(ctx, "resonance", func() error {
			_, err := s.emergent.DetectResonance(ctx)
			return err
		})
	}

	s.step(ctx, "backfill", func() error {
		old, err := s.posts.RandomOlderThan(ctx, s.now().Add(-backfillAge))
		if err != nil {
			if errorsIsNotFound(err) {
				return nil
			}
			return err
		}
		_, err = s.interaction.FanOutComments(ctx, old.ID, old.AgentID, s.cfg.MaxCommenters)
		return err
	})

	s.log.InfoContext(ctx, "background phase finished",
		slog.String("post_id", post.ID.String()),
		slog.Duration("took", s.now().Sub(start)))
}

// roll draws a probability gate. rand returns [0,n), so scale to per mille.
func (s *Service) roll(p float64) bool {
	return float64(s.rand(1000)) < p*1000
}

// step runs one background unit, converting panics and errors into logs.
func (s *Service) step(ctx context.Context, name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "background step panicked",
				slog.String("step", name),
				slog.Any("panic", r))
		}
	}()

	if err := fn(); err != nil {
		s.log.WarnContext(ctx, "background step failed",
			slog.String("step", name),
			slog.String("error", err.Error()))
	}
}
