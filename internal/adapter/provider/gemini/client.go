// Package gemini wraps the Google GenAI SDK behind the small text-generation
// interface the services consume. Output is untrusted: callers validate the
// returned JSON and fall back to templated defaults.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/dkims/agentopia/internal/config"
)

// Client calls Gemini models with a primary/fallback chain and a local
// per-model request budget. Budget exhaustion and rate-limit responses move
// the call down the chain instead of failing it.
type Client struct {
	client *genai.Client
	models []modelBudget
	log    *slog.Logger

	mu           sync.Mutex
	dailyCount   map[string]int
	minuteCount  map[string]int
	lastResetDay time.Time
	lastResetMin time.Time
}

type modelBudget struct {
	name string
	rpm  int
	rpd  int
}

// NewClient creates a Gemini client from config.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	models := []modelBudget{{name: cfg.Model, rpm: cfg.RequestsPerMinute, rpd: cfg.RequestsPerDay}}
	if cfg.FallbackModel != "" && cfg.FallbackModel != cfg.Model {
		// Fallback gets a looser budget; it is the cheaper model.
		models = append(models, modelBudget{name: cfg.FallbackModel, rpm: cfg.RequestsPerMinute * 2, rpd: cfg.RequestsPerDay * 4})
	}

	now := time.Now()
	return &Client{
		client:       client,
		models:       models,
		log:          logger.With("adapter", "gemini"),
		dailyCount:   make(map[string]int),
		minuteCount:  make(map[string]int),
		lastResetDay: now,
		lastResetMin: now,
	}, nil
}

// Generate produces free text for the prompt under the system instruction.
// useSearch enables the external lookup tool for fresher content.
func (c *Client) Generate(ctx context.Context, system, user string, useSearch bool) (string, error) {
	genCfg := &genai.GenerateContentConfig{}
	if system != "" {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if useSearch {
		genCfg.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	return c.generateWithFallback(ctx, user, genCfg)
}

// Act produces structured JSON conforming to the given schema and returns
// the raw bytes. Callers own the parse and its typed fallback.
func (c *Client) Act(ctx context.Context, message string, schema *genai.Schema) (json.RawMessage, error) {
	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	text, err := c.generateWithFallback(ctx, message, genCfg)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(CleanJSON(text)), nil
}

func (c *Client) generateWithFallback(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
	var lastErr error

	for _, m := range c.models {
		if !c.withinBudget(m) {
			continue
		}

		result, err := c.client.Models.GenerateContent(ctx, m.name, genai.Text(prompt), genCfg)
		if err != nil {
			if isRetryable(err) {
				c.log.WarnContext(ctx, "model unavailable, trying fallback",
					slog.String("model", m.name), slog.String("error", err.Error()))
				lastErr = err
				continue
			}
			return "", fmt.Errorf("gemini: generate with %s: %w", m.name, err)
		}

		if result != nil && len(result.Candidates) > 0 &&
			result.Candidates[0].Content != nil && len(result.Candidates[0].Content.Parts) > 0 {
			c.recordUsage(m)
			return result.Candidates[0].Content.Parts[0].Text, nil
		}

		lastErr = fmt.Errorf("gemini: empty response from %s", m.name)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("gemini: all model budgets exhausted")
	}
	return "", lastErr
}

// isRetryable reports whether the error should fall through to the next model.
func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "exhausted") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "unavailable")
}

func (c *Client) withinBudget(m modelBudget) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.YearDay() != c.lastResetDay.YearDay() {
		c.dailyCount = make(map[string]int)
		c.lastResetDay = now
	}
	if now.Sub(c.lastResetMin) >= time.Minute {
		c.minuteCount = make(map[string]int)
		c.lastResetMin = now
	}

	if m.rpd > 0 && c.dailyCount[m.name] >= m.rpd {
		return false
	}
	if m.rpm > 0 && c.minuteCount[m.name] >= m.rpm {
		return false
	}
	return true
}

func (c *Client) recordUsage(m modelBudget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dailyCount[m.name]++
	c.minuteCount[m.name]++
}

// CleanJSON strips markdown code fences that models wrap around JSON output.
func CleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
