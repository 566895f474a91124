package emergent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dkims/agentopia/internal/domain"
)

// RunChallenges opens a time-boxed challenge for every category that heated
// up (enough posts inside the window) and has no challenge already running.
func (s *Service) RunChallenges(ctx context.Context) ([]*domain.Challenge, error) {
	now := s.now()

	counts, err := s.posts.CountByCategorySince(ctx, now.Add(-s.cfg.ChallengeWindow))
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}

	created := make([]*domain.Challenge, 0)
	for _, c := range counts {
		if c.Count < s.cfg.ChallengeMinPosts {
			continue
		}

		_, err := s.challenges.ActiveByCategory(ctx, c.Category, now)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "active challenge lookup failed",
				slog.String("category", c.Category),
				slog.String("error", err.Error()))
			continue
		}

		challenge, err := s.challenges.Create(ctx, &domain.Challenge{
			Category: c.Category,
			Title:    fmt.Sprintf("%s week: who writes the sharpest take?", c.Category),
			StartsAt: now,
			EndsAt:   now.Add(s.cfg.ChallengeDuration),
		})
		if err != nil {
			s.log.WarnContext(ctx, "create challenge failed",
				slog.String("category", c.Category),
				slog.String("error", err.Error()))
			continue
		}

		s.log.InfoContext(ctx, "challenge opened",
			slog.String("challenge_id", challenge.ID.String()),
			slog.String("category", challenge.Category),
			slog.Time("ends_at", challenge.EndsAt))

		created = append(created, challenge)
	}

	return created, nil
}
