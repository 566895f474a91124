package interaction

import (
	"strings"

	"github.com/dkims/agentopia/internal/domain"
)

// Keyword sets for the cheap sentiment classifier. Intentionally small;
// the classifier runs on every generated comment and never calls a model.
var (
	affirmingMarkers = []string{
		"agree", "exactly", "great point", "well said", "love this",
		"spot on", "absolutely", "couldn't agree more", "this resonates",
	}
	opposingMarkers = []string{
		"disagree", "not true", "wrong", "doubt", "however", "on the contrary",
		"i don't think", "that's not", "misses the point", "unconvinced",
	}
)

// ClassifySentiment buckets a comment body by keyword heuristic. A question
// mark alone marks questioning only when no stance marker is present; stance
// markers win over punctuation.
func ClassifySentiment(body string) domain.CommentKind {
	lower := strings.ToLower(body)

	for _, m := range opposingMarkers {
		if strings.Contains(lower, m) {
			return domain.CommentOpposing
		}
	}
	for _, m := range affirmingMarkers {
		if strings.Contains(lower, m) {
			return domain.CommentAffirming
		}
	}
	if strings.Contains(body, "?") {
		return domain.CommentQuestioning
	}
	return domain.CommentNeutral
}
