// Package sampling queries the live element tree and turns what it returns
// into ranked, deduplicated descriptors.
package sampling

import (
	"context"
	"time"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// Sampler queries a TreeProvider with bounded retries. The tree is often
// stale for a moment after an input gesture, so an empty answer is retried
// rather than trusted.
type Sampler struct {
	Tree     ports.TreeProvider
	Logger   ports.Logger
	Attempts int
	Interval time.Duration

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSampler builds a sampler from the sampling settings.
func NewSampler(tree ports.TreeProvider, log ports.Logger, settings domain.SamplingSettings) *Sampler {
	return &Sampler{
		Tree:     tree,
		Logger:   log,
		Attempts: settings.Retries(),
		Interval: settings.RetryInterval(),
	}
}

// Query returns the elements intersecting rect. Exhausting the attempts
// yields an empty list, not an error; only context cancellation is returned.
func (s *Sampler) Query(ctx context.Context, rect domain.Rect) ([]ports.RawElement, error) {
	return s.retry(ctx, "query", func(ctx context.Context) ([]ports.RawElement, error) {
		return s.Tree.QueryIntersecting(ctx, rect)
	})
}

// QueryAll returns every element in the tree, with the same retry policy.
func (s *Sampler) QueryAll(ctx context.Context) ([]ports.RawElement, error) {
	return s.retry(ctx, "dump", func(ctx context.Context) ([]ports.RawElement, error) {
		return s.Tree.QueryAll(ctx)
	})
}

func (s *Sampler) retry(ctx context.Context, op string, fn func(context.Context) ([]ports.RawElement, error)) ([]ports.RawElement, error) {
	attempts := max(1, s.Attempts)
	var lastErr error
	for i := 1; i <= attempts; i++ {
		nodes, err := fn(ctx)
		if err == nil && len(nodes) > 0 {
			s.debug("tree "+op+" succeeded", map[string]interface{}{"attempt": i, "nodes": len(nodes)})
			return nodes, nil
		}
		if err != nil {
			lastErr = err
		}
		s.debug("tree "+op+" empty", map[string]interface{}{"attempt": i, "error": errString(err)})
		if i == attempts {
			break
		}
		if err := s.pause(ctx); err != nil {
			return nil, err
		}
	}
	if lastErr != nil && s.Logger != nil {
		s.Logger.Warn("tree "+op+" exhausted retries", map[string]interface{}{
			"attempts":   attempts,
			"last_error": lastErr.Error(),
		})
	}
	return []ports.RawElement{}, nil
}

func (s *Sampler) pause(ctx context.Context) error {
	if s.sleep != nil {
		return s.sleep(ctx, s.Interval)
	}
	return Sleep(ctx, s.Interval)
}

func (s *Sampler) debug(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FindClickableAncestor walks at most maxUp parents looking for one that
// reports clickable. A failing accessor on any node ends the walk with no
// ancestor; the hop bound also ends walks over cyclic parent chains.
func FindClickableAncestor(el ports.RawElement, maxUp int) ports.RawElement {
	cur := el
	for i := 0; i < maxUp; i++ {
		parent, err := cur.Parent()
		if err != nil || parent == nil {
			return nil
		}
		cur = parent
		if clickable, err := cur.Clickable(); err == nil && clickable {
			return cur
		}
	}
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
