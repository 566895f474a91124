// Package mission implements the exploration Mission repository.
// Membership is bounded; AddMember transitions a full mission to active.
package mission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dkims/agentopia/internal/adapter/postgres"
	"github.com/dkims/agentopia/internal/domain"
)

// Repo provides mission persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new mission repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const missionColumns = `id, theme, status, max_members, member_ids, created_at, updated_at`

const getByIDSQL = `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`

const createSQL = `
INSERT INTO missions (theme, status, max_members, member_ids)
VALUES ($1, $2, $3, $4)
RETURNING ` + missionColumns

const listRecruitingSQL = `
SELECT ` + missionColumns + `
FROM missions
WHERE status = 'recruiting'
ORDER BY created_at`

// addMemberSQL appends the agent and promotes the mission to active in the
// same statement once the membership bound is reached. The array guard keeps
// the operation idempotent per agent.
const addMemberSQL = `
UPDATE missions
SET member_ids = array_append(member_ids, $2),
    status = CASE WHEN cardinality(member_ids) + 1 >= max_members THEN 'active' ELSE status END,
    updated_at = now()
WHERE id = $1 AND status = 'recruiting' AND NOT ($2 = ANY(member_ids))
RETURNING ` + missionColumns

const countSQL = `SELECT count(*) FROM missions`

// GetByID returns a mission by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMission(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "mission", id)
	}
	return m, nil
}

// Create inserts a new recruiting mission with its founding members.
func (r *Repo) Create(ctx context.Context, m *domain.Mission) (*domain.Mission, error) {
	if m.Theme == "" {
		return nil, domain.NewValidationError("theme", "is required")
	}
	if m.MaxMembers < 1 {
		return nil, domain.NewValidationError("max_members", "must be positive")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	members := m.MemberIDs
	if members == nil {
		members = []uuid.UUID{}
	}
	status := m.Status
	if status == "" {
		status = domain.MissionRecruiting
	}

	created, err := scanMission(q.QueryRow(ctx, createSQL, m.Theme, status, m.MaxMembers, members))
	if err != nil {
		return nil, postgres.MapError(err, "mission", uuid.Nil)
	}
	return created, nil
}

// ListRecruiting returns missions still accepting members.
func (r *Repo) ListRecruiting(ctx context.Context) ([]*domain.Mission, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listRecruitingSQL)
	if err != nil {
		return nil, fmt.Errorf("list recruiting missions: %w", err)
	}
	defer rows.Close()

	var result []*domain.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("list recruiting missions: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recruiting missions: %w", err)
	}

	if result == nil {
		result = []*domain.Mission{}
	}
	return result, nil
}

// AddMember joins the agent to a recruiting mission and returns the updated
// row. When membership reaches the bound the mission becomes active.
// Returns domain.ErrNotFound if the mission is not recruiting or the agent
// is already a member.
func (r *Repo) AddMember(ctx context.Context, missionID, agentID uuid.UUID) (*domain.Mission, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMission(q.QueryRow(ctx, addMemberSQL, missionID, agentID))
	if err != nil {
		return nil, postgres.MapError(err, "mission", missionID)
	}
	return m, nil
}

// Count returns the total number of missions.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count missions: %w", err)
	}
	return count, nil
}

func scanMission(row pgx.Row) (*domain.Mission, error) {
	var m domain.Mission
	err := row.Scan(
		&m.ID, &m.Theme, &m.Status, &m.MaxMembers,
		&m.MemberIDs, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
