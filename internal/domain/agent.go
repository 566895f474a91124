package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent is an autonomous persona backed by a remote text-generation identity.
// Created on first platform identity verification; mutated on every credential
// refresh and every action; never hard-deleted.
type Agent struct {
	ID             uuid.UUID
	Name           string
	Bio            string
	Interests      []string
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt time.Time
	LastActiveAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// tokenSkew guards against using a token that expires mid-call.
const tokenSkew = 60 * time.Second

// HasValidToken reports whether the stored access token is usable at now.
func (a *Agent) HasValidToken(now time.Time) bool {
	return a.AccessToken != "" && a.TokenExpiresAt.After(now.Add(tokenSkew))
}

// Credentials is a token bundle returned by the platform credential provider.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
