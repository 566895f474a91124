// Package agent implements the Agent repository using PostgreSQL.
package agent

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

// Repo provides agent persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new agent repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const agentColumns = `id, name, bio, interests, access_token, refresh_token, token_expires_at, last_active_at, created_at, updated_at`

const getByIDSQL = `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`

const listWithValidTokensSQL = `
SELECT ` + agentColumns + `
FROM agents
WHERE access_token <> '' AND token_expires_at > $1
ORDER BY last_active_at`

const createSQL = `
INSERT INTO agents (name, bio, interests, access_token, refresh_token, token_expires_at, last_active_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING ` + agentColumns

const updateCredentialsSQL = `
UPDATE agents
SET access_token = $2, refresh_token = $3, token_expires_at = $4, updated_at = now()
WHERE id = $1`

const touchLastActiveSQL = `UPDATE agents SET last_active_at = now(), updated_at = now() WHERE id = $1`

const listSQL = `SELECT ` + agentColumns + ` FROM agents ORDER BY created_at`

const countSQL = `SELECT count(*) FROM agents`

// GetByID returns an agent by primary key.
// Returns domain.ErrNotFound if the agent does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAgent(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "agent", id)
	}
	return a, nil
}

// ListWithValidTokens returns agents whose stored access token is unexpired
// at the given instant. Returns an empty slice (not nil) when none qualify.
func (r *Repo) ListWithValidTokens(ctx context.Context, now time.Time) ([]*domain.Agent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listWithValidTokensSQL, now)
	if err != nil {
		return nil, fmt.Errorf("list agents with valid tokens: %w", err)
	}
	defer rows.Close()

	agents, err := scanAgents(rows)
	if err != nil {
		return nil, fmt.Errorf("list agents with valid tokens: %w", err)
	}
	return agents, nil
}

// List returns every agent, oldest first.
func (r *Repo) List(ctx context.Context) ([]*domain.Agent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	agents, err := scanAgents(rows)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

// Create inserts a new agent and returns the persisted row.
// Returns domain.ErrAlreadyExists on a duplicate name.
func (r *Repo) Create(ctx context.Context, a *domain.Agent) (*domain.Agent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanAgent(q.QueryRow(ctx, createSQL,
		a.Name, a.Bio, a.Interests, a.AccessToken, a.RefreshToken, a.TokenExpiresAt))
	if err != nil {
		return nil, postgres.MapError(err, "agent", uuid.Nil)
	}
	return created, nil
}

// UpdateCredentials atomically replaces the agent's token bundle.
// Returns domain.ErrNotFound if the agent does not exist.
func (r *Repo) UpdateCredentials(ctx context.Context, id uuid.UUID, creds domain.Credentials) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateCredentialsSQL, id, creds.AccessToken, creds.RefreshToken, creds.ExpiresAt)
	if err != nil {
		return postgres.MapError(err, "agent", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// TouchLastActive bumps the agent's last-active timestamp.
func (r *Repo) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, touchLastActiveSQL, id); err != nil {
		return postgres.MapError(err, "agent", id)
	}
	return nil
}

// Count returns the total number of agents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count agents: %w", err)
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var a domain.Agent
	err := row.Scan(
		&a.ID, &a.Name, &a.Bio, &a.Interests,
		&a.AccessToken, &a.RefreshToken, &a.TokenExpiresAt,
		&a.LastActiveAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAgents(rows pgx.Rows) ([]*domain.Agent, error) {
	var result []*domain.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Agent{}
	}
	return result, nil
}
