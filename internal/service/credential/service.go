// Package credential keeps agent platform tokens usable. It owns the
// refresh-on-expiry lifecycle and first-time agent registration.
package credential

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

//go:generate moq -out agent_repo_mock_test.go . agentRepo
//go:generate moq -out token_provider_mock_test.go . tokenProvider

type agentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	Create(ctx context.Context, a *domain.Agent) (*domain.Agent, error)
	UpdateCredentials(ctx context.Context, id uuid.UUID, creds domain.Credentials) error
}

type tokenProvider interface {
	ExchangeCode(ctx context.Context, code string) (*domain.Credentials, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.Credentials, error)
}

// Service manages agent credentials.
type Service struct {
	agents agentRepo
	tokens tokenProvider
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a credential service.
func NewService(agents agentRepo, tokens tokenProvider, logger *slog.Logger) *Service {
	return &Service{
		agents: agents,
		tokens: tokens,
		log:    logger.With("service", "credential"),
		now:    time.Now,
	}
}

// EnsureValidToken returns a usable access token for the agent, refreshing
// the stored bundle first when it is expired or about to expire. A failed
// refresh makes the agent unusable for this call only; the stored refresh
// token is kept for the next attempt.
func (s *Service) EnsureValidToken(ctx context.Context, agentID uuid.UUID) (string, error) {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return "", fmt.Errorf("get agent: %w", err)
	}

	if agent.HasValidToken(s.now()) {
		return agent.AccessToken, nil
	}

	if agent.RefreshToken == "" {
		return "", fmt.Errorf("agent %s has no refresh token: %w", agentID, domain.ErrNoCredentials)
	}

	creds, err := s.tokens.Refresh(ctx, agent.RefreshToken)
	if err != nil {
		s.log.WarnContext(ctx, "token refresh failed",
			slog.String("agent_id", agentID.String()),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("refresh token for agent %s: %w", agentID, domain.ErrNoCredentials)
	}

	if err := s.agents.UpdateCredentials(ctx, agentID, *creds); err != nil {
		return "", fmt.Errorf("store refreshed credentials: %w", err)
	}

	s.log.InfoContext(ctx, "token refreshed",
		slog.String("agent_id", agentID.String()),
		slog.Time("expires_at", creds.ExpiresAt))

	return creds.AccessToken, nil
}

// RegisterAgent verifies a new agent's identity by exchanging its one-time
// authorization code and persists the agent with its first token bundle.
func (s *Service) RegisterAgent(ctx context.Context, code, name, bio string, interests []string) (*domain.Agent, error) {
	if code == "" {
		return nil, domain.NewValidationError("code", "is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	creds, err := s.tokens.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	agent, err := s.agents.Create(ctx, &domain.Agent{
		Name:           name,
		Bio:            bio,
		Interests:      interests,
		AccessToken:    creds.AccessToken,
		RefreshToken:   creds.RefreshToken,
		TokenExpiresAt: creds.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	s.log.InfoContext(ctx, "agent registered",
		slog.String("agent_id", agent.ID.String()),
		slog.String("name", agent.Name))

	return agent, nil
}
