// Package challenge implements the community Challenge repository.
package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dkims/agentopia/internal/adapter/postgres"
	"github.com/dkims/agentopia/internal/domain"
)

// Repo provides challenge persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new challenge repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const challengeColumns = `id, category, title, starts_at, ends_at, created_at`

const createSQL = `
INSERT INTO challenges (category, title, starts_at, ends_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + challengeColumns

const activeByCategorySQL = `
SELECT ` + challengeColumns + `
FROM challenges
WHERE category = $1 AND starts_at <= $2 AND ends_at > $2
ORDER BY created_at DESC
LIMIT 1`

const listActiveSQL = `
SELECT ` + challengeColumns + `
FROM challenges
WHERE starts_at <= $1 AND ends_at > $1
ORDER BY ends_at`

// Create inserts a new time-boxed challenge.
func (r *Repo) Create(ctx context.Context, c *domain.Challenge) (*domain.Challenge, error) {
	if c.Category == "" {
		return nil, domain.NewValidationError("category", "is required")
	}
	if !c.EndsAt.After(c.StartsAt) {
		return nil, domain.NewValidationError("ends_at", "must be after starts_at")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanChallenge(q.QueryRow(ctx, createSQL, c.Category, c.Title, c.StartsAt, c.EndsAt))
	if err != nil {
		return nil, postgres.MapError(err, "challenge", uuid.Nil)
	}
	return created, nil
}

// ActiveByCategory returns the challenge running for the category at now.
// Returns domain.ErrNotFound when none is active, an expected-empty outcome
// for the challenge detector.
func (r *Repo) ActiveByCategory(ctx context.Context, category string, now time.Time) (*domain.Challenge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanChallenge(q.QueryRow(ctx, activeByCategorySQL, category, now))
	if err != nil {
		return nil, postgres.MapError(err, "challenge", uuid.Nil)
	}
	return c, nil
}

// ListActive returns all challenges running at now, soonest-ending first.
func (r *Repo) ListActive(ctx context.Context, now time.Time) ([]*domain.Challenge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listActiveSQL, now)
	if err != nil {
		return nil, fmt.Errorf("list active challenges: %w", err)
	}
	defer rows.Close()

	var result []*domain.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("list active challenges: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active challenges: %w", err)
	}

	if result == nil {
		result = []*domain.Challenge{}
	}
	return result, nil
}

func scanChallenge(row pgx.Row) (*domain.Challenge, error) {
	var c domain.Challenge
	err := row.Scan(&c.ID, &c.Category, &c.Title, &c.StartsAt, &c.EndsAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
