// Package pipeline orchestrates one claim verification end to end:
// classification, categorization, prompt construction, backend
// generation, response parsing, confidence adjustment, and persistence.
package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veritaslab/veritas/internal/analyze"
	"github.com/veritaslab/veritas/internal/cache"
	"github.com/veritaslab/veritas/internal/classify"
	"github.com/veritaslab/veritas/internal/llm"
	"github.com/veritaslab/veritas/internal/model"
	"github.com/veritaslab/veritas/internal/store"
	"github.com/veritaslab/veritas/internal/worker"
)

// Checker runs the verification pipeline. Every call appends exactly
// one record to the store, whatever happens to the backend call.
type Checker struct {
	classifier *classify.Classifier
	provider   llm.Provider
	store      store.Store
	cache      *cache.ResultCache
	limiter    *worker.Limiter
	logger     *zap.Logger
}

// Options configures optional pipeline components
type Options struct {
	Cache   *cache.ResultCache
	Limiter *worker.Limiter
	Logger  *zap.Logger
}

// NewChecker creates a verification pipeline
func NewChecker(provider llm.Provider, st store.Store, opts Options) *Checker {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		classifier: classify.NewClassifier(),
		provider:   provider,
		store:      st,
		cache:      opts.Cache,
		limiter:    opts.Limiter,
		logger:     logger,
	}
}

// Check verifies one claim and appends the resulting record to the
// store. Backend failures degrade to the deterministic fallback reply
// rather than surfacing as errors; only persistence failures return an
// error, and even then the record that should have been stored is
// returned alongside it.
func (c *Checker) Check(ctx context.Context, claim, sessionID string) (*model.Record, error) {
	start := time.Now()

	desc := c.classifier.Classify(claim)
	category, _ := classify.Categorize(claim)

	if cached, ok := c.lookupCache(desc.NormalizedText); ok {
		c.logger.Debug("cache hit",
			zap.String("claim", desc.NormalizedText),
			zap.String("verdict", string(cached.Verdict)))
		return c.finish(ctx, claim, sessionID, *cached, start)
	}

	vc := classify.BuildContext(desc)
	prompt := llm.BuildPrompt(vc, category)

	raw, live := c.generate(ctx, claim, prompt)

	result := analyze.Parse(raw)
	if live {
		result.Confidence = analyze.AdjustConfidence(result.Confidence, category)
	}
	if len(result.SourcesNeeded) == 0 {
		result.SourcesNeeded = model.CategorySources(category)
	}

	rec := model.Record{
		Claim:           claim,
		Verdict:         result.Verdict,
		ConfidenceScore: result.Confidence,
		Explanation:     analyze.ComposeExplanation(result),
		Sources:         strings.Join(result.SourcesNeeded, ", "),
	}

	c.logger.Info("claim checked",
		zap.String("claim_type", string(desc.ClaimType)),
		zap.String("category", string(category)),
		zap.String("verdict", string(rec.Verdict)),
		zap.Float64("confidence", rec.ConfidenceScore),
		zap.String("parse_state", string(result.State)))

	if c.cache != nil {
		c.cache.Set(desc.NormalizedText, rec)
	}
	return c.finish(ctx, claim, sessionID, rec, start)
}

func (c *Checker) lookupCache(key string) (*model.Record, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

// generate runs the prompt through the backend, honoring the rate
// limiter. Any failure yields the deterministic fallback text, which
// parses as an Unverified verdict. The second return reports whether
// the reply came from a live backend; canned replies (demo rules,
// fallback text) already carry their final confidence and must not be
// rescaled per category.
func (c *Checker) generate(ctx context.Context, claim, prompt string) (string, bool) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.logger.Warn("rate limit wait aborted", zap.Error(err))
			return llm.FallbackText(claim), false
		}
	}

	raw, err := c.provider.Generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("generation backend failed, using fallback",
			zap.String("provider", c.provider.Name()),
			zap.Error(err))
		return llm.FallbackText(claim), false
	}
	return raw, !llm.IsDemo(c.provider)
}

// finish stamps per-request fields and appends the record
func (c *Checker) finish(ctx context.Context, claim, sessionID string, rec model.Record, start time.Time) (*model.Record, error) {
	rec.ID = 0
	rec.Claim = claim
	rec.SessionID = sessionID
	rec.ProcessingTimeMS = time.Since(start).Milliseconds()
	rec.Timestamp = time.Now().UTC().Format(time.RFC3339)

	if err := c.store.Add(ctx, &rec); err != nil {
		c.logger.Error("failed to persist record", zap.Error(err))
		return &rec, err
	}
	return &rec, nil
}
