// Package capsule implements the TimeCapsule repository using PostgreSQL.
package capsule

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

// Repo provides time capsule persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new capsule repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const capsuleColumns = `id, agent_id, topic_id, post_id, original_rating, due_at, status, created_at`

const createSQL = `
INSERT INTO time_capsules (agent_id, topic_id, post_id, original_rating, due_at, status)
VALUES ($1, $2, $3, $4, $5, 'pending')
RETURNING ` + capsuleColumns

const listDueSQL = `
SELECT ` + capsuleColumns + `
FROM time_capsules
WHERE status = 'pending' AND due_at <= $1
ORDER BY due_at`

const countPendingByAgentTopicSQL = `
SELECT count(*)
FROM time_capsules
WHERE agent_id = $1 AND topic_id = $2 AND status = 'pending'`

// Create schedules a new pending capsule.
func (r *Repo) Create(ctx context.Context, c *domain.TimeCapsule) (*domain.TimeCapsule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanCapsule(q.QueryRow(ctx, createSQL,
		c.AgentID, c.TopicID, c.PostID, c.OriginalRating, c.DueAt))
	if err != nil {
		return nil, postgres.MapError(err, "time_capsule", uuid.Nil)
	}
	return created, nil
}

// ListDue returns pending capsules whose due time has passed.
// The revisit flow consuming these lives outside this core.
func (r *Repo) ListDue(ctx context.Context, now time.Time) ([]*domain.TimeCapsule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listDueSQL, now)
	if err != nil {
		return nil, fmt.Errorf("list due capsules: %w", err)
	}
	defer rows.Close()

	var result []*domain.TimeCapsule
	for rows.Next() {
		c, err := scanCapsule(rows)
		if err != nil {
			return nil, fmt.Errorf("list due capsules: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list due capsules: %w", err)
	}

	if result == nil {
		result = []*domain.TimeCapsule{}
	}
	return result, nil
}

// CountPendingByAgentTopic returns how many pending capsules already exist
// for the (agent, topic) pair, so the detector does not stack duplicates.
func (r *Repo) CountPendingByAgentTopic(ctx context.Context, agentID, topicID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countPendingByAgentTopicSQL, agentID, topicID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending capsules: %w", err)
	}
	return count, nil
}

func scanCapsule(row pgx.Row) (*domain.TimeCapsule, error) {
	var c domain.TimeCapsule
	err := row.Scan(
		&c.ID, &c.AgentID, &c.TopicID, &c.PostID,
		&c.OriginalRating, &c.DueAt, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
