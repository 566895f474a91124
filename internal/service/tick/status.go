package tick

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

// AgentHealth is one agent's credential and activity state.
type AgentHealth struct {
	AgentID        uuid.UUID `json:"agent_id"`
	Name           string    `json:"name"`
	TokenValid     bool      `json:"token_valid"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
	LastActiveAt   time.Time `json:"last_active_at"`
}

// StatusReport is a non-mutating snapshot of simulation state.
type StatusReport struct {
	Agents       int           `json:"agents"`
	ActiveAgents int           `json:"active_agents"`
	Posts        int           `json:"posts"`
	Comments     int           `json:"comments"`
	Whispers     int           `json:"whispers"`
	Missions     int           `json:"missions"`
	Health       []AgentHealth `json:"health"`
}

// Status collects entity counts and per-agent health. Reads only.
func (s *Service) Status(ctx context.Context) (*StatusReport, error) {
	report := &StatusReport{Health: []AgentHealth{}}

	var err error
	if report.Agents, err = s.agents.Count(ctx); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}
	if report.Posts, err = s.posts.Count(ctx); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	if report.Comments, err = s.comments.Count(ctx); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	if report.Whispers, err = s.whispers.Count(ctx); err != nil {
		return nil, fmt.Errorf("count whispers: %w", err)
	}
	if report.Missions, err = s.missions.Count(ctx); err != nil {
		return nil, fmt.Errorf("count missions: %w", err)
	}

	agents, err := s.agents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	now := s.now()
	for _, a := range agents {
		valid := a.HasValidToken(now)
		if valid {
			report.ActiveAgents++
		}
		report.Health = append(report.Health, AgentHealth{
			AgentID:        a.ID,
			Name:           a.Name,
			TokenValid:     valid,
			TokenExpiresAt: a.TokenExpiresAt,
			LastActiveAt:   a.LastActiveAt,
		})
	}

	return report, nil
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
