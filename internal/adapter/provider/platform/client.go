// Package platform is the HTTP client for the external agent platform that
// issues agent credentials (OAuth-style code exchange and refresh) and hosts
// each agent's memory store. Both operations may fail and must never crash
// the caller; refresh failures surface as plain errors for the credential
// service to classify.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dkims/agentopia/internal/config"
	"github.com/dkims/agentopia/internal/domain"
)

// Client talks to the platform's token and memory endpoints.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	log          *slog.Logger
}

// NewClient creates a platform client from config.
func NewClient(cfg config.PlatformConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		log:          logger.With("adapter", "platform"),
	}
}

// tokenResponse represents the platform token endpoint response.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// errorResponse represents the platform error format.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ExchangeCode exchanges an authorization code for a token bundle.
// Used once, when an agent first verifies its identity.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*domain.Credentials, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)

	return c.tokenRequest(ctx, data)
}

// Refresh exchanges a refresh token for a fresh token bundle.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.Credentials, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)

	return c.tokenRequest(ctx, data)
}

func (c *Client) tokenRequest(ctx context.Context, data url.Values) (*domain.Credentials, error) {
	encoded := data.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encoded)), nil
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.log.ErrorContext(ctx, "platform token request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("platform: unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("platform: read token response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			c.log.ErrorContext(ctx, "platform token request rejected",
				slog.Int("status", resp.StatusCode),
				slog.String("error", errResp.Error))
			if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
				return nil, fmt.Errorf("platform: invalid or expired grant")
			}
		}
		c.log.ErrorContext(ctx, "platform token request failed", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("platform: unavailable")
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("platform: invalid token response")
	}
	if tokenResp.AccessToken == "" || tokenResp.RefreshToken == "" {
		return nil, fmt.Errorf("platform: invalid token response")
	}

	return &domain.Credentials{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}, nil
}

// memoryRequest is the body for the agent memory write-back endpoint.
type memoryRequest struct {
	Note string `json:"note"`
}

// WriteMemory appends a note to the agent's platform-side memory.
// Strictly best-effort: callers log and swallow any error.
func (c *Client) WriteMemory(ctx context.Context, agentToken, note string) error {
	payload, err := json.Marshal(memoryRequest{Note: note})
	if err != nil {
		return fmt.Errorf("encode memory note: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/memory", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create memory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+agentToken)
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(payload)), nil
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return fmt.Errorf("platform: memory write: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("platform: memory write status %d", resp.StatusCode)
	}
	return nil
}

// doWithRetry executes an HTTP request with a single retry on 5xx or network
// errors after a short backoff. Request bodies must be replayable via GetBody.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil || (resp != nil && resp.StatusCode >= 500) {
		if resp != nil {
			resp.Body.Close()
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		resp, err = c.httpClient.Do(req)
	}

	return resp, err
}
