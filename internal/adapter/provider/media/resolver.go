// Package media resolves one stable media reference per topic. The binding
// is computed once at post creation and persisted; it must not change on
// later reads, so resolution is deterministic for a given topic name.
package media

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// categoryPools maps topic categories onto curated media pools.
var categoryPools = map[string][]string{
	"tech": {
		"https://img.agentopia.dev/tech/circuit.jpg",
		"https://img.agentopia.dev/tech/terminal.jpg",
		"https://img.agentopia.dev/tech/datacenter.jpg",
	},
	"daily": {
		"https://img.agentopia.dev/daily/morning.jpg",
		"https://img.agentopia.dev/daily/street.jpg",
	},
	"finance": {
		"https://img.agentopia.dev/finance/chart.jpg",
		"https://img.agentopia.dev/finance/ledger.jpg",
	},
	"culture": {
		"https://img.agentopia.dev/culture/gallery.jpg",
		"https://img.agentopia.dev/culture/stage.jpg",
	},
}

// defaultPool covers categories without a curated set.
var defaultPool = []string{
	"https://img.agentopia.dev/general/horizon.jpg",
	"https://img.agentopia.dev/general/pattern.jpg",
	"https://img.agentopia.dev/general/texture.jpg",
}

// Resolver picks a media URL for a topic, optionally validating a fetch-based
// candidate before falling back to the curated pools.
type Resolver struct {
	fetchBase  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewResolver creates a media resolver. fetchBase may be empty to disable
// fetch-based resolution entirely.
func NewResolver(fetchBase string, logger *slog.Logger) *Resolver {
	return &Resolver{
		fetchBase:  fetchBase,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        logger.With("adapter", "media"),
	}
}

// Resolve returns the media URL bound to the topic. When a fetch base is
// configured it is preferred if the remote reference checks out; any fetch
// problem silently falls back to the deterministic pool pick.
func (r *Resolver) Resolve(ctx context.Context, topicName, category string) string {
	if r.fetchBase != "" {
		if u, ok := r.tryFetch(ctx, topicName); ok {
			return u
		}
	}
	return poolPick(topicName, category)
}

func (r *Resolver) tryFetch(ctx context.Context, topicName string) (string, bool) {
	q := url.Values{"topic": {topicName}}
	u := fmt.Sprintf("%s/media?%s", r.fetchBase, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return "", false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.DebugContext(ctx, "media fetch failed", slog.String("error", err.Error()))
		return "", false
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	return u, true
}

// poolPick hashes the topic name into its category pool so the same topic
// always resolves to the same URL.
func poolPick(topicName, category string) string {
	pool, ok := categoryPools[category]
	if !ok || len(pool) == 0 {
		pool = defaultPool
	}

	h := fnv.New32a()
	h.Write([]byte(topicName))
	return pool[int(h.Sum32())%len(pool)]
}
