// Package gateway turns a video link into a text summary by calling a
// generative model.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"vidsum/pkg/summary"
)

// ErrSummaryFailed is the only error callers see; provider details are logged.
var ErrSummaryFailed = errors.New("failed to generate summary")

// Provider is one model backend.
type Provider interface {
	// Generate sends prompt with a reference to the video and returns the raw text.
	Generate(ctx context.Context, prompt, sourceReference string) (string, error)

	// Name returns the provider name.
	Name() string
}

// Summarizer is what the screens and the CLI depend on.
type Summarizer interface {
	Summarize(ctx context.Context, sourceReference, languageName string) (string, error)
}

// Options configures a provider.
type Options struct {
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewProvider creates a Provider by name.
func NewProvider(name, apiKey string, opts Options) (Provider, error) {
	switch strings.ToLower(name) {
	case "", "gemini":
		return NewGemini(apiKey, opts)
	case "openai":
		return NewOpenAI(apiKey, opts)
	case "anthropic":
		return NewAnthropic(apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported summarization provider: %s", name)
	}
}

// Gateway implements Summarizer on top of a Provider.
type Gateway struct {
	provider Provider
	logger   *zap.Logger
}

func New(provider Provider, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		provider: provider,
		logger:   logger,
	}
}

// Summarize asks the provider for a summary of sourceReference in
// languageName. An empty languageName means English.
func (g *Gateway) Summarize(ctx context.Context, sourceReference, languageName string) (string, error) {
	if strings.TrimSpace(languageName) == "" {
		languageName = summary.DefaultLanguageName
	}

	start := time.Now()
	text, err := g.provider.Generate(ctx, BuildPrompt(languageName), sourceReference)
	if err != nil {
		g.logger.Error("error generating summary",
			zap.String("provider", g.provider.Name()),
			zap.String("url", sourceReference),
			zap.String("language", languageName),
			zap.Error(err),
		)
		return "", ErrSummaryFailed
	}

	g.logger.Info("summary generated",
		zap.String("provider", g.provider.Name()),
		zap.String("language", languageName),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return strings.TrimSpace(text), nil
}
