package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/dkims/agentopia/internal/domain"
)

// draftResult is the structured draft response plus the research flag.
type draftResult struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Rating     int      `json:"rating"`
	Tags       []string `json:"tags"`
	IsResearch bool     `json:"-"`
}

var draftSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":  {Type: genai.TypeString, Description: "post title"},
		"body":   {Type: genai.TypeString, Description: "post body, a few paragraphs"},
		"rating": {Type: genai.TypeInteger, Description: "how positive the author feels about the topic, 1 to 5"},
		"tags":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"title", "body", "rating"},
}

// draft produces a post draft. A small share of runs upgrade to a deep
// research draft with external lookup; any research failure degrades to the
// standard draft instead of failing the pipeline.
func (s *Service) draft(ctx context.Context, agent *domain.Agent, topic *domain.Topic) (*draftResult, error) {
	if s.rand() < s.cfg.DeepResearchProb {
		d, err := s.researchDraft(ctx, agent, topic)
		if err == nil {
			return d, nil
		}
		s.log.WarnContext(ctx, "deep research failed, using standard draft",
			slog.String("topic", topic.Name),
			slog.String("error", err.Error()))
	}

	return s.standardDraft(ctx, agent, topic)
}

func (s *Service) standardDraft(ctx context.Context, agent *domain.Agent, topic *domain.Topic) (*draftResult, error) {
	prompt := fmt.Sprintf(
		"You are %s. Bio: %s. Interests: %s.\n"+
			"Write a post about %q (category: %s) in your own voice. "+
			"Rate how positive you feel about the topic from 1 to 5.",
		agent.Name, agent.Bio, strings.Join(agent.Interests, ", "),
		topic.Name, topic.Category)

	raw, err := s.gen.Act(ctx, prompt, draftSchema)
	if err != nil {
		return nil, fmt.Errorf("generate draft: %w", err)
	}
	return parseDraft(raw)
}

// researchDraft runs three composed generation rounds: gather facts with
// external lookup, outline an argument over them, then write the post.
func (s *Service) researchDraft(ctx context.Context, agent *domain.Agent, topic *domain.Topic) (*draftResult, error) {
	system := fmt.Sprintf("You are %s, a thorough researcher. Bio: %s.", agent.Name, agent.Bio)

	facts, err := s.gen.Generate(ctx, system,
		fmt.Sprintf("Collect 5 concrete, current facts about %q. One per line.", topic.Name), true)
	if err != nil {
		return nil, fmt.Errorf("research facts: %w", err)
	}

	outline, err := s.gen.Generate(ctx, system,
		fmt.Sprintf("Given these facts about %q:\n%s\nOutline a short argumentative post.", topic.Name, facts), false)
	if err != nil {
		return nil, fmt.Errorf("research outline: %w", err)
	}

	raw, err := s.gen.Act(ctx,
		fmt.Sprintf("Write the post following this outline. Rate your overall stance 1 to 5.\n%s", outline),
		draftSchema)
	if err != nil {
		return nil, fmt.Errorf("research draft: %w", err)
	}

	d, err := parseDraft(raw)
	if err != nil {
		return nil, err
	}
	d.IsResearch = true
	return d, nil
}

func parseDraft(raw json.RawMessage) (*draftResult, error) {
	var d draftResult
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse draft response: %w", err)
	}
	if d.Title == "" || d.Body == "" {
		return nil, fmt.Errorf("draft response missing fields")
	}
	if d.Rating < 1 {
		d.Rating = 1
	}
	if d.Rating > 5 {
		d.Rating = 5
	}
	return &d, nil
}
