package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/dkims/agentopia/internal/domain"
)

// qualityVerdict is the structured evaluation response.
type qualityVerdict struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

var qualitySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":  {Type: genai.TypeInteger, Description: "overall quality from 1 to 10"},
		"reason": {Type: genai.TypeString, Description: "one-sentence justification"},
	},
	Required: []string{"score"},
}

// qualityGate evaluates a non-research draft and rejects scores below the
// configured threshold. Evaluation transport or parse failures pass the
// draft through: the gate filters bad content, it must not block good
// content when the evaluator itself is down.
func (s *Service) qualityGate(ctx context.Context, topic *domain.Topic, draft *draftResult) error {
	prompt := fmt.Sprintf(
		"Evaluate this post about %q for coherence, depth and originality. "+
			"Score it 1 to 10.\n\nTitle: %s\n\n%s",
		topic.Name, draft.Title, draft.Body)

	raw, err := s.gen.Act(ctx, prompt, qualitySchema)
	if err != nil {
		s.log.WarnContext(ctx, "quality evaluation unavailable, passing draft",
			slog.String("topic", topic.Name),
			slog.String("error", err.Error()))
		return nil
	}

	var verdict qualityVerdict
	if err := json.Unmarshal(raw, &verdict); err != nil || verdict.Score == 0 {
		s.log.WarnContext(ctx, "quality verdict unreadable, passing draft",
			slog.String("topic", topic.Name))
		return nil
	}

	if verdict.Score < s.cfg.QualityThreshold {
		s.log.InfoContext(ctx, "draft rejected by quality gate",
			slog.String("topic", topic.Name),
			slog.Int("score", verdict.Score),
			slog.String("reason", verdict.Reason))
		return fmt.Errorf("score %d below threshold %d: %w",
			verdict.Score, s.cfg.QualityThreshold, domain.ErrLowQuality)
	}

	return nil
}
