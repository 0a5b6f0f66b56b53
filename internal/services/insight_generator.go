package services

import (
	"context"
	"time"

	"fincoach/internal/llm"
	"fincoach/internal/logger"
)

// DefaultGenerationTimeout bounds a model call when no timeout is configured.
const DefaultGenerationTimeout = 30 * time.Second

// insightGenerator asks the model for drafts and falls back to a
// template-built draft when the call or the parse fails.
type insightGenerator struct {
	client  llm.Client
	timeout time.Duration
	parser  *draftParser
}

// NewInsightGenerator creates a new InsightGenerator. A nil client always
// yields the fallback draft.
func NewInsightGenerator(client llm.Client, timeout time.Duration) InsightGenerator {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &insightGenerator{
		client:  client,
		timeout: timeout,
		parser:  newDraftParser(),
	}
}

// Generate returns the model's drafts, or exactly one fallback draft when the
// model is unavailable, times out, or answers with unusable content.
func (g *insightGenerator) Generate(ctx context.Context, snapshot *MetricsSnapshot) []InsightDraft {
	log := logger.Named("generator").With("user_id", snapshot.UserID)

	if g.client == nil {
		log.Warnw("no model client configured, using fallback insight")
		return []InsightDraft{FallbackDraft(snapshot)}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	started := time.Now()
	raw, err := g.client.Generate(callCtx, llm.Request{
		System: CoachSystemPrompt,
		Prompt: RenderInsightPrompt(snapshot),
	})
	if err != nil {
		log.Warnw("model call failed, using fallback insight",
			"error", err,
			"duration_ms", time.Since(started).Milliseconds(),
		)
		return []InsightDraft{FallbackDraft(snapshot)}
	}

	drafts, err := g.parser.Parse(raw)
	if err != nil {
		log.Warnw("model output rejected, using fallback insight",
			"error", err,
			"response_bytes", len(raw),
		)
		return []InsightDraft{FallbackDraft(snapshot)}
	}

	log.Debugw("model drafts parsed",
		"drafts", len(drafts),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return drafts
}
