// Package session runs the capture-commit workflow: stage a sample in a
// scratch directory, ask the operator for a name, then promote the bundle
// to permanent storage or discard it. At most one bundle is pending at a
// time; a new sample supersedes whatever was waiting.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// Controller owns the single pending slot.
type Controller struct {
	Config      domain.Config
	ScratchRoot string
	OutputRoot  string

	Tree       ports.TreeProvider
	Foreground ports.ForegroundProvider
	Capture    ports.CaptureProvider
	Device     ports.DeviceProvider
	Namer      ports.Namer
	Storage    ports.Storage
	Catalog    ports.Catalog
	Logger     ports.Logger

	// OnStaged, when set, is called by Run with the staged bundle before
	// naming starts.
	OnStaged func(*domain.SampleBundle)

	// Now and NewID are replaced in tests.
	Now   func() time.Time
	NewID func() string

	// sampling serializes whole sampling passes.
	sampling sync.Mutex

	// mu guards the fields below.
	mu        sync.Mutex
	state     domain.SessionState
	pending   *domain.SampleBundle
	lastSaved string
}

func (c *Controller) ready() error {
	if c.Tree == nil || c.Capture == nil || c.Device == nil || c.Namer == nil ||
		c.Storage == nil || c.Logger == nil {
		return errors.New("session.Controller dependencies not satisfied")
	}
	if c.ScratchRoot == "" || c.OutputRoot == "" {
		return errors.New("session.Controller requires scratch and output roots")
	}
	return nil
}

// Run samples region and walks the bundle through naming to a terminal
// outcome. A sampling failure is returned as an error with a discarded
// outcome; naming and promote failures end in a discarded outcome only.
func (c *Controller) Run(ctx context.Context, region domain.Region) (domain.Outcome, error) {
	bundle, err := c.Sample(ctx, region)
	if err != nil {
		return domain.Outcome{State: domain.StateDiscarded, Reason: domain.ReasonCaptureFailed}, err
	}
	if c.OnStaged != nil {
		c.OnStaged(bundle)
	}
	out, err := c.Confirm(ctx)
	if errors.Is(err, domain.ErrNoPending) {
		// superseded before naming started
		return domain.Outcome{
			State:     domain.StateDiscarded,
			SessionID: bundle.SessionID,
			Reason:    domain.ReasonSuperseded,
		}, nil
	}
	return out, err
}

// State reports where the controller is in the workflow. Terminal states
// are transient; once an outcome is produced the controller is idle again.
func (c *Controller) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == "" {
		return domain.StateIdle
	}
	return c.state
}

// Pending returns the staged bundle, or nil.
func (c *Controller) Pending() *domain.SampleBundle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// LastSaved returns the path of the most recent commit. Before the first
// commit of this process it falls back to the catalog.
func (c *Controller) LastSaved() string {
	c.mu.Lock()
	last := c.lastSaved
	c.mu.Unlock()
	if last != "" || c.Catalog == nil {
		return last
	}
	entry, err := c.Catalog.Last()
	if err != nil {
		return ""
	}
	return entry.Path
}

// Discard drops the pending bundle, if any, and deletes its scratch
// directory. It reports whether a bundle was discarded.
func (c *Controller) Discard(reason string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return false
	}
	if reason == "" {
		reason = domain.ReasonOperatorDiscard
	}
	c.discardLocked(c.pending, reason)
	return true
}

// discardLocked removes bundle's scratch directory and clears the slot.
// The caller holds mu.
func (c *Controller) discardLocked(bundle *domain.SampleBundle, reason string) {
	if err := c.Storage.RemoveAll(bundle.Dir); err != nil {
		c.Logger.Warn("scratch cleanup failed", map[string]interface{}{
			"dir":   bundle.Dir,
			"error": err.Error(),
		})
	}
	c.Logger.Info("sample discarded", map[string]interface{}{
		"session": bundle.SessionID,
		"reason":  reason,
	})
	if c.pending == bundle {
		c.pending = nil
		c.state = domain.StateIdle
	}
}

func (c *Controller) setState(s domain.SessionState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Controller) newID() string {
	if c.NewID != nil {
		return c.NewID()
	}
	return uuid.NewString()
}
