// Package intent classifies customer messages through an ordered cascade of
// matchers. The first stage whose confidence clears its threshold wins.
package intent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/storefront-ai/assistant-service/internal/core/cache"
	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// Acceptance thresholds per stage. A stage result is accepted only when its
// confidence is strictly greater than the threshold.
const (
	SemanticThreshold = 0.7
	RegexThreshold    = 0.8
	TFIDFThreshold    = 0.6
	KeywordThreshold  = 0.5

	FallbackConfidence = 0.6
	FallbackReason     = "requires full analysis"

	// DefaultCacheTTL bounds how long a classification is reused.
	DefaultCacheTTL = time.Hour

	cacheKeyPrefix = "intent:"
)

// Matcher proposes an intent for a message.
type Matcher interface {
	Match(in Input) (models.IntentResult, bool)
}

// Stage pairs a matcher with the confidence it must exceed.
type Stage struct {
	Name      string
	Matcher   Matcher
	Threshold float64
}

// DefaultStages returns semantic, regex, tfidf and keyword stages in priority order.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "semantic", Matcher: SemanticMatcher{}, Threshold: SemanticThreshold},
		{Name: "regex", Matcher: PatternMatcher{}, Threshold: RegexThreshold},
		{Name: "tfidf", Matcher: NewTFIDFIndex(), Threshold: TFIDFThreshold},
		{Name: "keyword", Matcher: KeywordMatcher{}, Threshold: KeywordThreshold},
	}
}

// Config holds classifier dependencies. Cache is optional.
type Config struct {
	Cache    cache.Client
	CacheTTL time.Duration
	Stages   []Stage
}

// Classifier runs the cascade and caches results by normalised text.
type Classifier struct {
	cache  cache.Client
	ttl    time.Duration
	stages []Stage
}

// NewClassifier creates a classifier. The TF-IDF index is built here, once.
func NewClassifier(cfg Config) *Classifier {
	c := &Classifier{cache: cfg.Cache, ttl: cfg.CacheTTL, stages: cfg.Stages}
	if c.ttl <= 0 {
		c.ttl = DefaultCacheTTL
	}
	if len(c.stages) == 0 {
		c.stages = DefaultStages()
	}
	return c
}

// Classify returns the intent of message. A cache failure never aborts classification.
func (c *Classifier) Classify(ctx context.Context, message, sessionID string) models.IntentResult {
	in := NewInput(message)
	if in.Normalized == "" {
		return fallback()
	}

	key := cacheKeyPrefix + in.Normalized
	if cached, ok := c.lookup(ctx, key); ok {
		return cached
	}

	res := c.evaluate(in)
	c.store(ctx, key, res)

	log.Debug().
		Str("session_id", sessionID).
		Str("intent", string(res.Intent)).
		Float64("confidence", res.Confidence).
		Str("reason", res.Reason).
		Msg("message classified")
	return res
}

func (c *Classifier) evaluate(in Input) models.IntentResult {
	for _, st := range c.stages {
		res, ok := st.Matcher.Match(in)
		if ok && res.Confidence > st.Threshold {
			return res
		}
	}
	return fallback()
}

func (c *Classifier) lookup(ctx context.Context, key string) (models.IntentResult, bool) {
	if c.cache == nil {
		return models.IntentResult{}, false
	}
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("intent cache read failed")
		return models.IntentResult{}, false
	}
	if data == nil {
		return models.IntentResult{}, false
	}
	var res models.IntentResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("intent cache entry unreadable")
		return models.IntentResult{}, false
	}
	return res, true
}

func (c *Classifier) store(ctx context.Context, key string, res models.IntentResult) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("intent cache write failed")
	}
}

func fallback() models.IntentResult {
	return models.IntentResult{
		Intent:     models.IntentGeneralHelp,
		Confidence: FallbackConfidence,
		Handler:    models.HandlerLLM,
		Reason:     FallbackReason,
	}
}
