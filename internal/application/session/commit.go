package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

// NamePromptTitle is shown to the operator when a sample awaits a name.
const NamePromptTitle = "Sample name (required)"

// Confirm asks for a name for the pending bundle and promotes it. Cancel,
// an empty name, a timeout, a prompt failure or exhausting the collision
// retries all discard the bundle. The returned error is non-nil only when
// nothing was pending.
//
// The prompt runs without holding the slot, so a new Sample may supersede
// the bundle while the operator is typing; the answer is then ignored.
func (c *Controller) Confirm(ctx context.Context) (domain.Outcome, error) {
	if err := c.ready(); err != nil {
		return domain.Outcome{}, err
	}
	c.mu.Lock()
	bundle := c.pending
	if bundle == nil {
		c.mu.Unlock()
		return domain.Outcome{}, domain.ErrNoPending
	}
	c.state = domain.StateNaming
	c.mu.Unlock()

	maxAttempts := c.Config.Naming.Attempts()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, ok, err := c.askName(ctx)
		if !c.isPending(bundle) {
			return supersededOutcome(bundle, attempt), nil
		}
		switch {
		case errors.Is(err, domain.ErrNameTimeout):
			return c.finishDiscard(bundle, domain.ReasonNameTimeout, attempt), nil
		case err != nil:
			c.Logger.Warn("name prompt failed", map[string]interface{}{"error": err.Error()})
			return c.finishDiscard(bundle, domain.ReasonPromptFailed, attempt), nil
		case !ok:
			return c.finishDiscard(bundle, domain.ReasonNameCancelled, attempt), nil
		}

		name := domain.SanitizeName(raw, c.Config.Naming.MaxLength)
		if name == "" {
			return c.finishDiscard(bundle, domain.ReasonNameEmpty, attempt), nil
		}

		dest := filepath.Join(c.OutputRoot, name)
		exists, err := c.Storage.Exists(dest)
		if err != nil {
			c.Logger.Warn("destination check failed", map[string]interface{}{
				"dest":  dest,
				"error": err.Error(),
			})
			return c.finishDiscard(bundle, domain.ReasonPromoteFailed, attempt), nil
		}
		if exists {
			c.Logger.Warn("name already used, asking again", map[string]interface{}{
				"name":    name,
				"attempt": attempt,
			})
			continue
		}
		return c.commit(bundle, name, dest, attempt), nil
	}
	return c.finishDiscard(bundle, domain.ReasonNameRetries, maxAttempts), nil
}

// askName runs one prompt bounded by the naming timeout. A cancelled parent
// context counts as the operator cancelling.
func (c *Controller) askName(ctx context.Context) (string, bool, error) {
	pctx, cancel := context.WithTimeout(ctx, c.Config.Naming.Timeout())
	defer cancel()

	type answer struct {
		name string
		ok   bool
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		name, ok, err := c.Namer.PromptName(pctx, NamePromptTitle)
		ch <- answer{name: name, ok: ok, err: err}
	}()

	select {
	case a := <-ch:
		if a.err != nil && pctx.Err() != nil {
			return "", false, c.promptCtxErr(ctx)
		}
		return a.name, a.ok, a.err
	case <-pctx.Done():
		return "", false, c.promptCtxErr(ctx)
	}
}

func (c *Controller) promptCtxErr(parent context.Context) error {
	if parent.Err() != nil {
		return nil
	}
	return domain.ErrNameTimeout
}

// commit promotes bundle to dest. Promotion copies then deletes; a failed
// copy removes the partial destination and discards the bundle.
func (c *Controller) commit(bundle *domain.SampleBundle, name, dest string, attempt int) domain.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != bundle {
		return supersededOutcome(bundle, attempt)
	}

	var err error
	for try := 1; try <= c.Config.Commit.Attempts(); try++ {
		if err = c.promote(bundle.Dir, dest); err == nil {
			break
		}
		c.Logger.Warn("promote failed", map[string]interface{}{
			"dest":  dest,
			"try":   try,
			"error": err.Error(),
		})
		if rmErr := c.Storage.RemoveAll(dest); rmErr != nil {
			c.Logger.Warn("partial destination cleanup failed", map[string]interface{}{
				"dest":  dest,
				"error": rmErr.Error(),
			})
		}
	}
	if err != nil {
		c.discardLocked(bundle, domain.ReasonPromoteFailed)
		return domain.Outcome{
			State:     domain.StateDiscarded,
			SessionID: bundle.SessionID,
			Name:      name,
			Reason:    domain.ReasonPromoteFailed,
			Bundle:    bundle,
			Attempts:  attempt,
		}
	}

	if err := c.Storage.RemoveAll(bundle.Dir); err != nil {
		c.Logger.Warn("scratch cleanup failed", map[string]interface{}{
			"dir":   bundle.Dir,
			"error": err.Error(),
		})
	}
	c.pending = nil
	c.state = domain.StateIdle
	c.lastSaved = dest

	if c.Catalog != nil {
		if err := c.Catalog.Record(domain.NewCatalogEntry(name, dest, *bundle, c.now())); err != nil {
			c.Logger.Warn("catalog record failed", map[string]interface{}{"error": err.Error()})
		}
	}
	c.Logger.Info("sample saved", map[string]interface{}{
		"session": bundle.SessionID,
		"path":    dest,
	})

	committed := *bundle
	committed.Dir = dest
	return domain.Outcome{
		State:     domain.StateCommitted,
		SessionID: bundle.SessionID,
		Name:      name,
		Path:      dest,
		Bundle:    &committed,
		Attempts:  attempt,
	}
}

func (c *Controller) promote(src, dest string) error {
	if err := c.Storage.MkdirAll(filepath.Dir(dest)); err != nil {
		return fmt.Errorf("create output root: %w", err)
	}
	if err := c.Storage.CopyDir(src, dest); err != nil {
		return fmt.Errorf("copy bundle: %w", err)
	}
	return nil
}

func (c *Controller) finishDiscard(bundle *domain.SampleBundle, reason string, attempts int) domain.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != bundle {
		return supersededOutcome(bundle, attempts)
	}
	c.discardLocked(bundle, reason)
	return domain.Outcome{
		State:     domain.StateDiscarded,
		SessionID: bundle.SessionID,
		Reason:    reason,
		Bundle:    bundle,
		Attempts:  attempts,
	}
}

func (c *Controller) isPending(bundle *domain.SampleBundle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending == bundle
}

func supersededOutcome(bundle *domain.SampleBundle, attempts int) domain.Outcome {
	return domain.Outcome{
		State:     domain.StateDiscarded,
		SessionID: bundle.SessionID,
		Reason:    domain.ReasonSuperseded,
		Attempts:  attempts,
	}
}
