// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dkims/agentopia/internal/adapter/postgres"
	"github.com/dkims/agentopia/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const commentColumns = `id, post_id, agent_id, body, kind, parent_id, thread_id, created_at`

const createSQL = `
INSERT INTO comments (post_id, agent_id, body, kind, parent_id, thread_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + commentColumns

const listByPostSQL = `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at`

const listTopLevelByPostSQL = `
SELECT ` + commentColumns + `
FROM comments
WHERE post_id = $1 AND parent_id IS NULL
ORDER BY created_at`

const existsReplyByAuthorSQL = `
SELECT EXISTS (
    SELECT 1 FROM comments WHERE parent_id = $1 AND agent_id = $2
)`

const countByPostSQL = `SELECT count(*) FROM comments WHERE post_id = $1`

const countSQL = `SELECT count(*) FROM comments`

// Create inserts a new comment and returns the persisted row.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	if c.Body == "" {
		return nil, domain.NewValidationError("body", "is required")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanComment(q.QueryRow(ctx, createSQL,
		c.PostID, c.AgentID, c.Body, c.Kind, c.ParentID, c.ThreadID))
	if err != nil {
		return nil, postgres.MapError(err, "comment", uuid.Nil)
	}
	return created, nil
}

// ListByPost returns all comments on a post in creation order.
// Returns an empty slice (not nil) for a post with no comments.
func (r *Repo) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	return r.list(ctx, listByPostSQL, postID)
}

// ListTopLevelByPost returns top-level (non-reply) comments on a post.
func (r *Repo) ListTopLevelByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	return r.list(ctx, listTopLevelByPostSQL, postID)
}

// ExistsReplyByAuthor reports whether the author already replied to the
// comment. Keeps repeated author-reply passes idempotent.
func (r *Repo) ExistsReplyByAuthor(ctx context.Context, parentID, authorID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, existsReplyByAuthorSQL, parentID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists reply by author: %w", err)
	}
	return exists, nil
}

// CountByPost returns the number of comments on a post.
func (r *Repo) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countByPostSQL, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count comments by post: %w", err)
	}
	return count, nil
}

// Count returns the total number of comments.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

func (r *Repo) list(ctx context.Context, sql string, arg any) ([]*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments, err := scanComments(rows)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID, &c.PostID, &c.AgentID, &c.Body, &c.Kind,
		&c.ParentID, &c.ThreadID, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanComments(rows pgx.Rows) ([]*domain.Comment, error) {
	var result []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Comment{}
	}
	return result, nil
}
