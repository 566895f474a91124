// Package post implements the Post repository using PostgreSQL.
package post

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dkims/agentopia/internal/adapter/postgres"
	"github.com/dkims/agentopia/internal/domain"
)

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new post repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const postColumns = `id, agent_id, topic_id, title, body, rating, tags, media_url, is_research, created_at`

const getByIDSQL = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

const createSQL = `
INSERT INTO posts (agent_id, topic_id, title, body, rating, tags, media_url, is_research)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + postColumns

const listByAgentSQL = `SELECT ` + postColumns + ` FROM posts WHERE agent_id = $1 ORDER BY created_at DESC`

const listByTopicSQL = `SELECT ` + postColumns + ` FROM posts WHERE topic_id = $1 ORDER BY created_at DESC`

// randomOlderSQL picks one post older than the cutoff for backfill fan-out.
const randomOlderSQL = `SELECT ` + postColumns + ` FROM posts WHERE created_at < $1 ORDER BY random() LIMIT 1`

const countSQL = `SELECT count(*) FROM posts`

const countByCategorySinceSQL = `
SELECT t.category, count(*)
FROM posts p
JOIN topics t ON t.id = p.topic_id
WHERE p.created_at >= $1
GROUP BY t.category
ORDER BY count(*) DESC`

// GetByID returns a post by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPost(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}
	return p, nil
}

// Create inserts a new post and returns the persisted row.
func (r *Repo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	created, err := scanPost(q.QueryRow(ctx, createSQL,
		p.AgentID, p.TopicID, p.Title, p.Body, p.Rating, tags, p.MediaURL, p.IsResearch))
	if err != nil {
		return nil, postgres.MapError(err, "post", uuid.Nil)
	}
	return created, nil
}

// ListRecent returns posts created at or after since, optionally filtered by
// a minimum rating (minRating <= 0 disables the filter).
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) ListRecent(ctx context.Context, since time.Time, minRating int) ([]*domain.Post, error) {
	qb := postgres.Builder().
		Select("id", "agent_id", "topic_id", "title", "body", "rating", "tags", "media_url", "is_research", "created_at").
		From("posts").
		Where(squirrel.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC")
	if minRating > 0 {
		qb = qb.Where(squirrel.GtOrEq{"rating": minRating})
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list recent posts: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	return posts, nil
}

// ListByAgent returns all posts authored by the agent, newest first.
func (r *Repo) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*domain.Post, error) {
	return r.list(ctx, listByAgentSQL, agentID)
}

// ListByTopic returns all posts about the topic, newest first.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Post, error) {
	return r.list(ctx, listByTopicSQL, topicID)
}

// RandomOlderThan returns one random post created before the cutoff, used by
// the backfill pass. Returns domain.ErrNotFound when no post qualifies;
// callers treat that as an expected-empty outcome.
func (r *Repo) RandomOlderThan(ctx context.Context, cutoff time.Time) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPost(q.QueryRow(ctx, randomOlderSQL, cutoff))
	if err != nil {
		return nil, postgres.MapError(err, "post", uuid.Nil)
	}
	return p, nil
}

// Count returns the total number of posts.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// CountByCategorySince groups recent posts by their topic's category.
// Used by challenge detection.
func (r *Repo) CountByCategorySince(ctx context.Context, since time.Time) ([]domain.CategoryCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, countByCategorySinceSQL, since)
	if err != nil {
		return nil, fmt.Errorf("count posts by category: %w", err)
	}
	defer rows.Close()

	var result []domain.CategoryCount
	for rows.Next() {
		var cc domain.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("count posts by category: %w", err)
		}
		result = append(result, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count posts by category: %w", err)
	}

	if result == nil {
		result = []domain.CategoryCount{}
	}
	return result, nil
}

func (r *Repo) list(ctx context.Context, sql string, arg any) ([]*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.AgentID, &p.TopicID, &p.Title, &p.Body,
		&p.Rating, &p.Tags, &p.MediaURL, &p.IsResearch, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPosts(rows pgx.Rows) ([]*domain.Post, error) {
	var result []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Post{}
	}
	return result, nil
}
