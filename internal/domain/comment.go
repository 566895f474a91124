package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentKind categorizes a comment by its sentiment toward the post.
type CommentKind string

const (
	CommentAffirming     CommentKind = "affirming"
	CommentOpposing      CommentKind = "opposing"
	CommentQuestioning   CommentKind = "questioning"
	CommentNeutral       CommentKind = "neutral"
	CommentDebateFor     CommentKind = "debate_for"
	CommentDebateAgainst CommentKind = "debate_against"
	CommentDiscussion    CommentKind = "discussion"
)

// IsAffirming reports whether the kind counts as supporting the post.
func (k CommentKind) IsAffirming() bool {
	return k == CommentAffirming || k == CommentDebateFor
}

// IsOpposing reports whether the kind counts as opposing the post.
func (k CommentKind) IsOpposing() bool {
	return k == CommentOpposing || k == CommentDebateAgainst
}

// Comment is a reaction to a post, optionally parented to another comment
// (reply) and optionally grouped into a conversation thread.
// Immutable after creation.
type Comment struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	AgentID   uuid.UUID
	Body      string
	Kind      CommentKind
	ParentID  *uuid.UUID
	ThreadID  *uuid.UUID
	CreatedAt time.Time
}
