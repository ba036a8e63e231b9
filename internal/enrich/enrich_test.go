package enrich

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sitegen-cli/internal/resilience"
	"github.com/sells-group/sitegen-cli/pkg/anthropic"
)

// fakeClient scripts CreateMessage responses per call.
type fakeClient struct {
	calls     int
	responses []func() (*anthropic.MessageResponse, error)
}

func (f *fakeClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i]()
}

func textResponse(text string) func() (*anthropic.MessageResponse, error) {
	return func() (*anthropic.MessageResponse, error) {
		return &anthropic.MessageResponse{
			Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		}, nil
	}
}

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 2, InitialBackoff: 1, MaxBackoff: 1, Multiplier: 1}
}

func TestGenerateReturnsTrimmedText(t *testing.T) {
	client := &fakeClient{responses: []func() (*anthropic.MessageResponse, error){
		textResponse("  Fast, honest plumbing.  "),
	}}
	gen := NewAnthropic(client, "claude-haiku-4-5-20251001")

	out, err := gen.Generate(context.Background(), "write a tagline", 100, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "Fast, honest plumbing.", out)
	assert.Equal(t, 1, client.calls)
}

func TestGenerateRetriesTransient(t *testing.T) {
	client := &fakeClient{responses: []func() (*anthropic.MessageResponse, error){
		func() (*anthropic.MessageResponse, error) {
			return nil, resilience.NewTransientError(eris.New("overloaded"), 529)
		},
		textResponse("Second try copy."),
	}}
	gen := NewAnthropic(client, "claude-haiku-4-5-20251001")
	gen.retry = fastRetry()

	out, err := gen.Generate(context.Background(), "prompt", 100, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "Second try copy.", out)
	assert.Equal(t, 2, client.calls)
}

func TestGenerateEmptyCompletion(t *testing.T) {
	client := &fakeClient{responses: []func() (*anthropic.MessageResponse, error){
		textResponse("   "),
	}}
	gen := NewAnthropic(client, "claude-haiku-4-5-20251001")

	_, err := gen.Generate(context.Background(), "prompt", 100, 0.5)
	assert.Error(t, err)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Generate(context.Background(), "prompt", 100, 0.5)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestTextFallsBack(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "fallback", Text(ctx, nil, "prompt", "fallback"))
	assert.Equal(t, "fallback", Text(ctx, Disabled{}, "prompt", "fallback"))

	client := &fakeClient{responses: []func() (*anthropic.MessageResponse, error){
		textResponse("Generated."),
	}}
	gen := NewAnthropic(client, "claude-haiku-4-5-20251001")
	assert.Equal(t, "Generated.", Text(ctx, gen, "prompt", "fallback"))
}
