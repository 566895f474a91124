// Package snapshot implements the append-only OpinionSnapshot repository.
package snapshot

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

// Repo provides opinion snapshot persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new snapshot repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const snapshotColumns = `id, agent_id, topic_id, rating, sentiment, excerpt, trigger_kind, trigger_id, created_at`

const createSQL = `
INSERT INTO opinion_snapshots (agent_id, topic_id, rating, sentiment, excerpt, trigger_kind, trigger_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + snapshotColumns

const latestByAgentTopicSQL = `
SELECT ` + snapshotColumns + `
FROM opinion_snapshots
WHERE agent_id = $1 AND topic_id = $2
ORDER BY created_at DESC
LIMIT 1`

// listRecentSQL orders by pair then recency so callers can walk adjacent
// snapshots per (agent, topic) pair.
const listRecentSQL = `
SELECT ` + snapshotColumns + `
FROM opinion_snapshots
WHERE created_at >= $1
ORDER BY agent_id, topic_id, created_at DESC`

// Create appends a snapshot. Snapshots are never updated or deleted.
func (r *Repo) Create(ctx context.Context, s *domain.OpinionSnapshot) (*domain.OpinionSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanSnapshot(q.QueryRow(ctx, createSQL,
		s.AgentID, s.TopicID, s.Rating, s.Sentiment, s.Excerpt, s.TriggerKind, s.TriggerID))
	if err != nil {
		return nil, postgres.MapError(err, "opinion_snapshot", uuid.Nil)
	}
	return created, nil
}

// LatestByAgentTopic returns the most recent snapshot for the pair.
// Returns domain.ErrNotFound when the pair has no history yet.
func (r *Repo) LatestByAgentTopic(ctx context.Context, agentID, topicID uuid.UUID) (*domain.OpinionSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSnapshot(q.QueryRow(ctx, latestByAgentTopicSQL, agentID, topicID))
	if err != nil {
		return nil, postgres.MapError(err, "opinion_snapshot", uuid.Nil)
	}
	return s, nil
}

// ListRecent returns snapshots created at or after since, grouped by
// (agent, topic) pair with the newest first inside each group.
func (r *Repo) ListRecent(ctx context.Context, since time.Time) ([]*domain.OpinionSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listRecentSQL, since)
	if err != nil {
		return nil, fmt.Errorf("list recent snapshots: %w", err)
	}
	defer rows.Close()

	var result []*domain.OpinionSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("list recent snapshots: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recent snapshots: %w", err)
	}

	if result == nil {
		result = []*domain.OpinionSnapshot{}
	}
	return result, nil
}

func scanSnapshot(row pgx.Row) (*domain.OpinionSnapshot, error) {
	var s domain.OpinionSnapshot
	err := row.Scan(
		&s.ID, &s.AgentID, &s.TopicID, &s.Rating, &s.Sentiment,
		&s.Excerpt, &s.TriggerKind, &s.TriggerID, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
