// Package knowledge implements the topic KnowledgeEdge repository.
// Edges are undirected: topic IDs are stored in canonical order and the
// unique constraint covers (topic_a_id, topic_b_id, kind), so strengthening
// an existing edge increments its weight instead of duplicating it.
package knowledge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dkims/agentopia/internal/adapter/postgres"
	"github.com/dkims/agentopia/internal/domain"
)

// Repo provides knowledge edge persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new knowledge edge repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const edgeColumns = `id, topic_a_id, topic_b_id, kind, weight, created_at, updated_at`

const incrementOrCreateSQL = `
INSERT INTO knowledge_edges (topic_a_id, topic_b_id, kind, weight)
VALUES ($1, $2, $3, 1)
ON CONFLICT (topic_a_id, topic_b_id, kind)
DO UPDATE SET weight = knowledge_edges.weight + 1, updated_at = now()
RETURNING ` + edgeColumns

const listByTopicSQL = `
SELECT ` + edgeColumns + `
FROM knowledge_edges
WHERE topic_a_id = $1 OR topic_b_id = $1
ORDER BY weight DESC, created_at`

const countSQL = `SELECT count(*) FROM knowledge_edges`

// IncrementOrCreate upserts the undirected edge between two topics: a new
// pair starts at weight 1, an existing pair has its weight incremented.
// The pair is canonicalized before writing.
func (r *Repo) IncrementOrCreate(ctx context.Context, topicA, topicB uuid.UUID, kind domain.EdgeKind) (*domain.KnowledgeEdge, error) {
	if topicA == topicB {
		return nil, domain.NewValidationError("topic_b_id", "must differ from topic_a_id")
	}

	a, b := domain.CanonicalPair(topicA, topicB)

	q := postgres.QuerierFromCtx(ctx, r.pool)

	edge, err := scanEdge(q.QueryRow(ctx, incrementOrCreateSQL, a, b, kind))
	if err != nil {
		return nil, postgres.MapError(err, "knowledge_edge", uuid.Nil)
	}
	return edge, nil
}

// ListByTopic returns edges touching the topic, heaviest first.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.KnowledgeEdge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByTopicSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("list knowledge edges: %w", err)
	}
	defer rows.Close()

	var result []*domain.KnowledgeEdge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("list knowledge edges: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list knowledge edges: %w", err)
	}

	if result == nil {
		result = []*domain.KnowledgeEdge{}
	}
	return result, nil
}

// Count returns the total number of edges.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count knowledge edges: %w", err)
	}
	return count, nil
}

func scanEdge(row pgx.Row) (*domain.KnowledgeEdge, error) {
	var e domain.KnowledgeEdge
	err := row.Scan(
		&e.ID, &e.TopicAID, &e.TopicBID, &e.Kind,
		&e.Weight, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
