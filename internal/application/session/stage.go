package session

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/application/locator"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/application/sampling"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

// Sample captures region into a fresh scratch directory and makes it the
// pending bundle. Any bundle already pending is discarded first. On failure
// the scratch directory is removed and nothing is left pending.
//
// Sampling is not interruptible: ctx values are kept but its cancellation
// is ignored until the pass ends.
func (c *Controller) Sample(ctx context.Context, region domain.Region) (*domain.SampleBundle, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	c.sampling.Lock()
	defer c.sampling.Unlock()

	c.mu.Lock()
	if c.pending != nil {
		c.Logger.Warn("new sample supersedes pending bundle", map[string]interface{}{
			"session": c.pending.SessionID,
		})
		c.discardLocked(c.pending, domain.ReasonSuperseded)
	}
	c.state = domain.StateSampling
	c.mu.Unlock()

	bundle, err := c.stage(context.WithoutCancel(ctx), region)
	if err != nil {
		c.setState(domain.StateIdle)
		c.Logger.Error("sampling failed", err, map[string]interface{}{"mode": string(region.Mode)})
		return nil, err
	}

	c.mu.Lock()
	c.pending = bundle
	c.state = domain.StateStaged
	c.mu.Unlock()

	c.Logger.Info("sample staged", map[string]interface{}{
		"session": bundle.SessionID,
		"dir":     bundle.Dir,
		"nodes":   len(bundle.Ranked),
	})
	return bundle, nil
}

func (c *Controller) stage(ctx context.Context, region domain.Region) (_ *domain.SampleBundle, err error) {
	cfg := c.Config.Sampling

	device, err := c.Device.Device(ctx)
	if err != nil {
		return nil, fmt.Errorf("device info: %w", err)
	}
	screen := device.Screen()
	resolved, err := region.Resolve(screen, cfg.CropSide())
	if err != nil {
		return nil, err
	}

	at := c.now()
	sessionID := c.newID()
	dir := filepath.Join(c.ScratchRoot, domain.ScratchDirName(at, sessionID))
	if err := c.Storage.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rmErr := c.Storage.RemoveAll(dir); rmErr != nil {
			c.Logger.Warn("scratch cleanup failed", map[string]interface{}{
				"dir":   dir,
				"error": rmErr.Error(),
			})
		}
	}()

	if err := sampling.Sleep(ctx, cfg.Delay()); err != nil {
		return nil, err
	}

	black, err := c.captureImages(ctx, dir, resolved.Capture)
	if err != nil {
		return nil, err
	}

	sampler := sampling.NewSampler(c.Tree, c.Logger, cfg)
	builder := sampling.NewBuilder(cfg)

	raw, err := sampler.Query(ctx, resolved.Query)
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	ranked := sampling.Rank(builder.Build(raw))
	code := locator.New(c.Config.Codegen, screen).Generate(ranked)

	var flat []domain.ElementDescriptor
	if cfg.DumpAllNodes {
		all, err := sampler.QueryAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("dump tree: %w", err)
		}
		flat = builder.Build(all)
	}

	meta := domain.Metadata{
		Time:      at,
		SessionID: sessionID,
		Mode:      region.Mode,
		Rect:      resolved.Capture,
		Device:    device,
		Warnings: domain.Warnings{
			CropProbablyBlack: black,
			EmptyNodes:        len(ranked) == 0,
		},
	}
	if region.Mode == domain.ModePoint {
		p := region.Point
		meta.Point = &p
	}
	if c.Foreground != nil {
		if app, fgErr := c.Foreground.Foreground(ctx); fgErr == nil {
			meta.Package = app.Package
			meta.Activity = app.Activity
		} else {
			c.Logger.Debug("foreground lookup failed", map[string]interface{}{"error": fgErr.Error()})
		}
	}

	bundle := &domain.SampleBundle{
		SessionID: sessionID,
		Dir:       dir,
		Meta:      meta,
		Ranked:    ranked,
		Code:      code,
		TreeFlat:  flat,
	}
	if err := c.writeArtifacts(bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// captureImages saves the full screenshot and the crop, releasing both
// frames before returning.
func (c *Controller) captureImages(ctx context.Context, dir string, crop domain.Rect) (bool, error) {
	screen, err := c.Capture.CaptureFullScreen(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrNoDisplay, err)
	}
	defer screen.Release()

	if err := c.Capture.Save(screen, filepath.Join(dir, domain.FileScreen)); err != nil {
		return false, fmt.Errorf("save screenshot: %w", err)
	}

	cropped, err := c.Capture.Crop(screen, crop)
	if err != nil {
		return false, fmt.Errorf("crop %s: %w", crop, err)
	}
	defer cropped.Release()

	if err := c.Capture.Save(cropped, filepath.Join(dir, domain.FileCrop)); err != nil {
		return false, fmt.Errorf("save crop: %w", err)
	}

	black := sampling.ProbablyBlack(c.Capture, cropped)
	if black {
		c.Logger.Warn("crop looks black, the window may block capture", map[string]interface{}{
			"rect": crop.String(),
		})
	}
	return black, nil
}

func (c *Controller) writeArtifacts(b *domain.SampleBundle) error {
	if err := c.writeJSON(b.Dir, domain.FileMeta, b.Meta); err != nil {
		return err
	}
	if err := c.writeJSON(b.Dir, domain.FileNodes, b.Ranked); err != nil {
		return err
	}
	if b.TreeFlat != nil {
		if err := c.writeJSON(b.Dir, domain.FileTreeFlat, b.TreeFlat); err != nil {
			return err
		}
	}
	if err := c.Storage.WriteFile(filepath.Join(b.Dir, domain.FileCode), []byte(b.Code)); err != nil {
		return fmt.Errorf("write %s: %w", domain.FileCode, err)
	}
	return nil
}

func (c *Controller) writeJSON(dir, name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := c.Storage.WriteFile(filepath.Join(dir, name), data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
