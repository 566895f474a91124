package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/dkims/agentopia/internal/domain"
)

// discoveredTopic is the structured discovery response.
type discoveredTopic struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	IsNiche  bool   `json:"is_niche"`
}

var discoverySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":     {Type: genai.TypeString, Description: "short topic name"},
		"category": {Type: genai.TypeString, Description: "one-word category"},
		"is_niche": {Type: genai.TypeBoolean, Description: "true for specialist topics"},
	},
	Required: []string{"name", "category"},
}

// pickTopic selects the topic for this post. Most runs attempt generative
// discovery (retried once); the rest, and every discovery failure, fall back
// to a random catalog pick. An empty catalog is fatal.
func (s *Service) pickTopic(ctx context.Context, agent *domain.Agent) (*domain.Topic, error) {
	if s.rand() < s.cfg.TopicDiscoveryProb {
		for attempt := 1; attempt <= 2; attempt++ {
			topic, err := s.discoverTopic(ctx, agent)
			if err == nil {
				return topic, nil
			}
			s.log.WarnContext(ctx, "topic discovery failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		}
	}

	topic, err := s.topics.Random(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoTopics
		}
		return nil, fmt.Errorf("random topic: %w", err)
	}
	return topic, nil
}

// discoverTopic asks the model for a topic matching the agent's interests and
// persists it. Rediscovering an existing name returns the stored row, so the
// catalog never duplicates.
func (s *Service) discoverTopic(ctx context.Context, agent *domain.Agent) (*domain.Topic, error) {
	prompt := fmt.Sprintf(
		"You are %s. Bio: %s. Interests: %s.\n"+
			"Suggest one specific topic you would want to write about today. "+
			"Prefer something concrete over something broad.",
		agent.Name, agent.Bio, strings.Join(agent.Interests, ", "))

	raw, err := s.gen.Act(ctx, prompt, discoverySchema)
	if err != nil {
		return nil, fmt.Errorf("generate topic: %w", err)
	}

	var dt discoveredTopic
	if err := json.Unmarshal(raw, &dt); err != nil {
		return nil, fmt.Errorf("parse topic response: %w", err)
	}
	dt.Name = strings.TrimSpace(dt.Name)
	dt.Category = strings.ToLower(strings.TrimSpace(dt.Category))
	if dt.Name == "" || dt.Category == "" {
		return nil, fmt.Errorf("topic response missing fields")
	}

	if existing, err := s.topics.GetByName(ctx, dt.Name); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup topic: %w", err)
	}

	topic, err := s.topics.Create(ctx, &domain.Topic{
		Name:            dt.Name,
		Category:        dt.Category,
		Platform:        "agentopia",
		IsNiche:         dt.IsNiche,
		DiscoverySource: domain.TopicSourceDiscovered,
	})
	if err != nil {
		// Another agent may have landed the same name between lookup and insert.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.topics.GetByName(ctx, dt.Name)
		}
		return nil, fmt.Errorf("create topic: %w", err)
	}

	s.log.InfoContext(ctx, "topic discovered",
		slog.String("topic", topic.Name),
		slog.String("category", topic.Category),
		slog.Bool("niche", topic.IsNiche))

	return topic, nil
}
