// Package enrich generates short marketing copy via the Anthropic API with a
// rate limiter, retries, and per-call timeouts. Generation is best-effort:
// callers always supply a deterministic fallback and the pipeline never
// blocks on a failed or disabled generator.
package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/sitegen-cli/internal/resilience"
	"github.com/sells-group/sitegen-cli/pkg/anthropic"
)

// Generator produces a short piece of copy for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int64, temperature float64) (string, error)
}

// ErrDisabled is returned by the Disabled generator; callers fall back.
var ErrDisabled = eris.New("enrich: generation disabled")

// Disabled is the generator used when no API key is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string, int64, float64) (string, error) {
	return "", ErrDisabled
}

const (
	defaultCallTimeout = 20 * time.Second
	defaultRateLimit   = rate.Limit(2) // calls per second
	defaultBurst       = 4
)

const systemPrompt = "You write concise marketing copy for local service businesses. " +
	"Respond with only the requested text, no preamble, no quotes."

// Anthropic is the production Generator.
type Anthropic struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
	retry   resilience.RetryConfig
	timeout time.Duration
}

// NewAnthropic builds a rate-limited, retrying generator on the given client.
func NewAnthropic(client anthropic.Client, model string) *Anthropic {
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("anthropic", "generate")
	return &Anthropic{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(defaultRateLimit, defaultBurst),
		retry:   retry,
		timeout: defaultCallTimeout,
	}
}

// Generate produces copy for the prompt, waiting for rate-limit headroom and
// retrying transient failures within the call timeout.
func (a *Anthropic) Generate(ctx context.Context, prompt string, maxTokens int64, temperature float64) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "enrich: rate limit wait")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := resilience.DoVal(ctx, a.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return a.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:       a.model,
			MaxTokens:   maxTokens,
			System:      systemPrompt,
			Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
			Temperature: &temperature,
		})
	})
	if err != nil {
		return "", eris.Wrap(err, "enrich: generate")
	}

	resp.Usage.LogCost(a.model, "enrich")

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", eris.New("enrich: empty completion")
	}
	return text, nil
}

// Text runs the generator and falls back to the supplied default on any
// failure. It never returns an empty string when fallback is non-empty.
func Text(ctx context.Context, g Generator, prompt, fallback string) string {
	if g == nil {
		return fallback
	}
	out, err := g.Generate(ctx, prompt, 300, 0.7)
	if err != nil {
		if !eris.Is(err, ErrDisabled) {
			zap.L().Warn("enrich: generation failed, using fallback", zap.Error(err))
		}
		return fallback
	}
	return out
}
