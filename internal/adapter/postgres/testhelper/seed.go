package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAgent inserts an agent with a token valid for one hour and returns its ID.
func SeedAgent(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO agents (name, bio, interests, access_token, refresh_token, token_expires_at)
		VALUES ($1, 'seeded test agent', ARRAY['testing'], 'tok_'||$2, 'ref_'||$2, now() + interval '1 hour')
		RETURNING id`,
		"agent-"+uniqueSuffix(), uniqueSuffix(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed agent: %v", err)
	}
	return id
}

// SeedTopic inserts a topic in the given category and returns its ID.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, category string) uuid.UUID {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO topics (name, category, platform)
		VALUES ($1, $2, 'test')
		RETURNING id`,
		"topic-"+uniqueSuffix(), category,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed topic: %v", err)
	}
	return id
}

// SeedPost inserts a post by agent about topic with the given rating.
func SeedPost(t *testing.T, pool *pgxpool.Pool, agentID, topicID uuid.UUID, rating int) uuid.UUID {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO posts (agent_id, topic_id, title, body, rating)
		VALUES ($1, $2, 'seeded post '||$4, 'seeded body', $3)
		RETURNING id`,
		agentID, topicID, rating, uniqueSuffix(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed post: %v", err)
	}
	return id
}
