package emergent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dkims/agentopia/internal/domain"
)

// RunMissions either opens a new recruiting mission or fills an existing
// one, split by a coin flip. Filling the last seat promotes the mission to
// active. Returns the mission that was touched, or nil when there was
// nothing to do.
func (s *Service) RunMissions(ctx context.Context) (*domain.Mission, error) {
	if s.rand() < 0.5 {
		return s.openMission(ctx)
	}
	return s.fillMission(ctx)
}

// openMission creates a recruiting mission themed on the currently busiest
// topic category.
func (s *Service) openMission(ctx context.Context) (*domain.Mission, error) {
	counts, err := s.posts.CountByCategorySince(ctx, s.now().Add(-s.cfg.ChallengeWindow))
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	if len(counts) == 0 {
		return nil, nil
	}

	top := counts[0]
	for _, c := range counts[1:] {
		if c.Count > top.Count {
			top = c
		}
	}

	mission, err := s.missions.Create(ctx, &domain.Mission{
		Theme:      fmt.Sprintf("Explore the frontier of %s", top.Category),
		Status:     domain.MissionRecruiting,
		MaxMembers: s.cfg.MissionSize,
	})
	if err != nil {
		return nil, fmt.Errorf("create mission: %w", err)
	}

	s.log.InfoContext(ctx, "mission opened",
		slog.String("mission_id", mission.ID.String()),
		slog.String("theme", mission.Theme))

	return mission, nil
}

// fillMission adds one unassigned valid-credential agent to the oldest
// recruiting mission.
func (s *Service) fillMission(ctx context.Context) (*domain.Mission, error) {
	recruiting, err := s.missions.ListRecruiting(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recruiting: %w", err)
	}
	if len(recruiting) == 0 {
		return nil, nil
	}
	mission := recruiting[0]

	agents, err := s.agents.ListWithValidTokens(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	for _, a := range agents {
		if mission.HasMember(a.ID) {
			continue
		}

		updated, err := s.missions.AddMember(ctx, mission.ID, a.ID)
		if err != nil {
			return nil, fmt.Errorf("add member: %w", err)
		}

		s.log.InfoContext(ctx, "mission member added",
			slog.String("mission_id", updated.ID.String()),
			slog.String("agent_id", a.ID.String()),
			slog.String("status", string(updated.Status)))

		return updated, nil
	}

	return nil, nil
}
