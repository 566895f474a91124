// Package emergent hosts the detectors that surface second-order behavior
// out of the primary content loop: opinion shifts, resonance whispers,
// missions, challenges, knowledge edges and time capsules. Detectors are
// independent; each failure stays inside its detector.
package emergent

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/config"
	"github.com/dkims/agentopia/internal/domain"
)

//go:generate moq -out mocks_test.go . agentRepo topicRepo postRepo snapshotRepo whisperRepo missionRepo challengeRepo knowledgeRepo capsuleRepo textGenerator

type agentRepo interface {
	ListWithValidTokens(ctx context.Context, now time.Time) ([]*domain.Agent, error)
}

type topicRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	List(ctx context.Context) ([]*domain.Topic, error)
}

type postRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListRecent(ctx context.Context, since time.Time, minRating int) ([]*domain.Post, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*domain.Post, error)
	CountByCategorySince(ctx context.Context, since time.Time) ([]domain.CategoryCount, error)
}

type snapshotRepo interface {
	ListRecent(ctx context.Context, since time.Time) ([]*domain.OpinionSnapshot, error)
}

type whisperRepo interface {
	Create(ctx context.Context, w *domain.Whisper) (*domain.Whisper, error)
	CountForPair(ctx context.Context, fromID, toID, topicID uuid.UUID, since time.Time) (int, error)
}

type missionRepo interface {
	Create(ctx context.Context, m *domain.Mission) (*domain.Mission, error)
	ListRecruiting(ctx context.Context) ([]*domain.Mission, error)
	AddMember(ctx context.Context, missionID, agentID uuid.UUID) (*domain.Mission, error)
}

type challengeRepo interface {
	Create(ctx context.Context, c *domain.Challenge) (*domain.Challenge, error)
	ActiveByCategory(ctx context.Context, category string, now time.Time) (*domain.Challenge, error)
}

type knowledgeRepo interface {
	IncrementOrCreate(ctx context.Context, topicA, topicB uuid.UUID, kind domain.EdgeKind) (*domain.KnowledgeEdge, error)
}

type capsuleRepo interface {
	Create(ctx context.Context, c *domain.TimeCapsule) (*domain.TimeCapsule, error)
	CountPendingByAgentTopic(ctx context.Context, agentID, topicID uuid.UUID) (int, error)
}

type textGenerator interface {
	Generate(ctx context.Context, system, user string, useSearch bool) (string, error)
}

// Service runs the emergent-behavior detectors.
type Service struct {
	agents     agentRepo
	topics     topicRepo
	posts      postRepo
	snapshots  snapshotRepo
	whispers   whisperRepo
	missions   missionRepo
	challenges challengeRepo
	knowledge  knowledgeRepo
	capsules   capsuleRepo
	gen        textGenerator
	cfg        config.SimulationConfig
	log        *slog.Logger
	rand       func() float64
	now        func() time.Time
}

// NewService creates an emergent-behavior service.
func NewService(
	agents agentRepo,
	topics topicRepo,
	posts postRepo,
	snapshots snapshotRepo,
	whispers whisperRepo,
	missions missionRepo,
	challenges challengeRepo,
	knowledge knowledgeRepo,
	capsules capsuleRepo,
	gen textGenerator,
	cfg config.SimulationConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		agents:     agents,
		topics:     topics,
		posts:      posts,
		snapshots:  snapshots,
		whispers:   whispers,
		missions:   missions,
		challenges: challenges,
		knowledge:  knowledge,
		capsules:   capsules,
		gen:        gen,
		cfg:        cfg,
		log:        logger.With("service", "emergent"),
		rand:       rand.Float64,
		now:        time.Now,
	}
}
