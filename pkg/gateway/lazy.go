package gateway

import (
	"context"
	"fmt"
	"sync"
)

// LazySummarizer builds its Summarizer on the first Summarize call. A failed
// build is retried on the next call, so a key added to the environment later
// is picked up without a restart.
type LazySummarizer struct {
	mu    sync.Mutex
	build func() (Summarizer, error)
	inner Summarizer
}

func Lazy(build func() (Summarizer, error)) *LazySummarizer {
	return &LazySummarizer{build: build}
}

func (l *LazySummarizer) get() (Summarizer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inner != nil {
		return l.inner, nil
	}
	s, err := l.build()
	if err != nil {
		return nil, err
	}
	l.inner = s
	return s, nil
}

// Summarize returns an error wrapping both ErrSummaryFailed and the build
// error when no Summarizer can be built.
func (l *LazySummarizer) Summarize(ctx context.Context, sourceReference, languageName string) (string, error) {
	s, err := l.get()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSummaryFailed, err)
	}
	return s.Summarize(ctx, sourceReference, languageName)
}
