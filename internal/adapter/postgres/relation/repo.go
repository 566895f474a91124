// Package relation implements the agent Relation repository using PostgreSQL.
package relation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dkims/agentopia/internal/adapter/postgres"
	"github.com/dkims/agentopia/internal/domain"
)

// Repo provides agent relation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new relation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const relationColumns = `id, from_agent_id, to_agent_id, kind, similarity, created_at`

// upsertSQL keeps the edge unique per (from, to) pair and refreshes the
// similarity score on conflict.
const upsertSQL = `
INSERT INTO relations (from_agent_id, to_agent_id, kind, similarity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (from_agent_id, to_agent_id)
DO UPDATE SET kind = EXCLUDED.kind, similarity = EXCLUDED.similarity
RETURNING ` + relationColumns

const getReverseSQL = `SELECT ` + relationColumns + ` FROM relations WHERE from_agent_id = $1 AND to_agent_id = $2`

const markMutualSQL = `UPDATE relations SET kind = 'mutual' WHERE from_agent_id = $1 AND to_agent_id = $2`

const listByAgentSQL = `
SELECT ` + relationColumns + `
FROM relations
WHERE from_agent_id = $1 OR to_agent_id = $1
ORDER BY created_at`

// Upsert creates or refreshes the directed edge from -> to. When the reverse
// edge already exists, both edges are upgraded to mutual.
func (r *Repo) Upsert(ctx context.Context, fromID, toID uuid.UUID, similarity float64) (*domain.Relation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	kind := domain.RelationFollow

	// Reverse edge present means the pair is reciprocated.
	reverse, err := scanRelation(q.QueryRow(ctx, getReverseSQL, toID, fromID))
	switch {
	case err == nil:
		kind = domain.RelationMutual
	case errors.Is(err, pgx.ErrNoRows):
		// no reverse edge, stay a follow
	default:
		return nil, postgres.MapError(err, "relation", uuid.Nil)
	}

	rel, err := scanRelation(q.QueryRow(ctx, upsertSQL, fromID, toID, kind, similarity))
	if err != nil {
		return nil, postgres.MapError(err, "relation", uuid.Nil)
	}

	if reverse != nil && reverse.Kind != domain.RelationMutual {
		if _, err := q.Exec(ctx, markMutualSQL, toID, fromID); err != nil {
			return nil, postgres.MapError(err, "relation", reverse.ID)
		}
	}

	return rel, nil
}

// ListByAgent returns all edges touching the agent in either direction.
func (r *Repo) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*domain.Relation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByAgentSQL, agentID)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	defer rows.Close()

	var result []*domain.Relation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("list relations: %w", err)
		}
		result = append(result, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}

	if result == nil {
		result = []*domain.Relation{}
	}
	return result, nil
}

func scanRelation(row pgx.Row) (*domain.Relation, error) {
	var rel domain.Relation
	err := row.Scan(
		&rel.ID, &rel.FromAgentID, &rel.ToAgentID,
		&rel.Kind, &rel.Similarity, &rel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}
