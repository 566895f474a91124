// Package topic implements the Topic repository using PostgreSQL.
// Topic names are unique; discovery persists idempotently by looking up the
// name before insert and mapping the unique violation to ErrAlreadyExists.
package topic

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dkims/agentopia/internal/adapter/postgres"
	"github.com/dkims/agentopia/internal/domain"
)

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new topic repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const topicColumns = `id, name, category, platform, metadata, is_niche, discovery_source, created_at`

const getByIDSQL = `SELECT ` + topicColumns + ` FROM topics WHERE id = $1`

const getByNameSQL = `SELECT ` + topicColumns + ` FROM topics WHERE name = $1`

const createSQL = `
INSERT INTO topics (name, category, platform, metadata, is_niche, discovery_source)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + topicColumns

const randomSQL = `SELECT ` + topicColumns + ` FROM topics ORDER BY random() LIMIT 1`

const listSQL = `SELECT ` + topicColumns + ` FROM topics ORDER BY name`

const countSQL = `SELECT count(*) FROM topics`

// GetByID returns a topic by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTopic(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "topic", id)
	}
	return t, nil
}

// GetByName returns a topic by its unique name.
// Returns domain.ErrNotFound when absent.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTopic(q.QueryRow(ctx, getByNameSQL, name))
	if err != nil {
		return nil, postgres.MapError(err, "topic", uuid.Nil)
	}
	return t, nil
}

// Create inserts a new topic and returns the persisted row.
// Returns domain.ErrAlreadyExists on a duplicate name.
func (r *Repo) Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	metadata := t.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	created, err := scanTopic(q.QueryRow(ctx, createSQL,
		t.Name, t.Category, t.Platform, metadata, t.IsNiche, t.DiscoverySource))
	if err != nil {
		return nil, postgres.MapError(err, "topic", uuid.Nil)
	}
	return created, nil
}

// Random returns one topic selected uniformly at random from the catalog.
// Returns domain.ErrNotFound when the catalog is empty.
func (r *Repo) Random(ctx context.Context) (*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTopic(q.QueryRow(ctx, randomSQL))
	if err != nil {
		return nil, postgres.MapError(err, "topic", uuid.Nil)
	}
	return t, nil
}

// List returns all topics ordered by name.
// Returns an empty slice (not nil) when the catalog is empty.
func (r *Repo) List(ctx context.Context) ([]*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics, err := scanTopics(rows)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// Count returns the number of topics in the catalog.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTopic(row pgx.Row) (*domain.Topic, error) {
	var t domain.Topic
	err := row.Scan(
		&t.ID, &t.Name, &t.Category, &t.Platform, &t.Metadata,
		&t.IsNiche, &t.DiscoverySource, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTopics(rows pgx.Rows) ([]*domain.Topic, error) {
	var result []*domain.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Topic{}
	}
	return result, nil
}
