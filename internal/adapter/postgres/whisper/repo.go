// Package whisper implements the Whisper repository using PostgreSQL.
package whisper

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

// Repo provides whisper persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new whisper repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const whisperColumns = `id, from_agent_id, to_agent_id, topic_id, body, read, created_at`

const createSQL = `
INSERT INTO whispers (from_agent_id, to_agent_id, topic_id, body)
VALUES ($1, $2, $3, $4)
RETURNING ` + whisperColumns

const listByAgentSQL = `
SELECT ` + whisperColumns + `
FROM whispers
WHERE to_agent_id = $1
ORDER BY created_at DESC`

const countForPairSQL = `
SELECT count(*)
FROM whispers
WHERE from_agent_id = $1 AND to_agent_id = $2 AND topic_id = $3 AND created_at >= $4`

const countSQL = `SELECT count(*) FROM whispers`

const markReadSQL = `UPDATE whispers SET read = true WHERE id = $1`

// Create inserts a new unread whisper and returns the persisted row.
func (r *Repo) Create(ctx context.Context, w *domain.Whisper) (*domain.Whisper, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanWhisper(q.QueryRow(ctx, createSQL,
		w.FromAgentID, w.ToAgentID, w.TopicID, w.Body))
	if err != nil {
		return nil, postgres.MapError(err, "whisper", uuid.Nil)
	}
	return created, nil
}

// ListByAgent returns whispers addressed to the agent, newest first.
func (r *Repo) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*domain.Whisper, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByAgentSQL, agentID)
	if err != nil {
		return nil, fmt.Errorf("list whispers: %w", err)
	}
	defer rows.Close()

	var result []*domain.Whisper
	for rows.Next() {
		w, err := scanWhisper(rows)
		if err != nil {
			return nil, fmt.Errorf("list whispers: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list whispers: %w", err)
	}

	if result == nil {
		result = []*domain.Whisper{}
	}
	return result, nil
}

// CountForPair returns the number of whispers already sent between the pair
// for the topic within the window. Used for resonance dedup suppression.
func (r *Repo) CountForPair(ctx context.Context, fromID, toID, topicID uuid.UUID, since time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countForPairSQL, fromID, toID, topicID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count whispers for pair: %w", err)
	}
	return count, nil
}

// Count returns the total number of whispers.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count whispers: %w", err)
	}
	return count, nil
}

// MarkRead flips a whisper to read. Idempotent.
func (r *Repo) MarkRead(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, markReadSQL, id); err != nil {
		return postgres.MapError(err, "whisper", id)
	}
	return nil
}

func scanWhisper(row pgx.Row) (*domain.Whisper, error) {
	var w domain.Whisper
	err := row.Scan(
		&w.ID, &w.FromAgentID, &w.ToAgentID, &w.TopicID,
		&w.Body, &w.Read, &w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
