package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.Output.Root == "" {
		return errors.New("output.root must be set")
	}
	if err := validateSampling(cfg.Sampling); err != nil {
		return err
	}
	if err := validateCodegen(cfg.Codegen); err != nil {
		return err
	}
	if err := validateNaming(cfg.Naming); err != nil {
		return err
	}
	if cfg.Commit.PromoteAttempts < 1 {
		return fmt.Errorf("commit.promote_attempts must be >= 1")
	}
	if cfg.Catalog.Enabled && cfg.Catalog.Path == "" {
		return fmt.Errorf("catalog.path must be set when the catalog is enabled")
	}
	return nil
}

func validateSampling(s domain.SamplingSettings) error {
	if s.PointCropSize <= 0 {
		return fmt.Errorf("sampling.point_crop_size must be > 0")
	}
	if s.TreeRetry < 1 {
		return fmt.Errorf("sampling.tree_retry must be >= 1")
	}
	if s.AncestorDepth < 0 {
		return fmt.Errorf("sampling.ancestor_depth must be >= 0")
	}
	if err := validateDuration("sampling.tree_retry_interval", s.TreeRetryInterval, false); err != nil {
		return err
	}
	return validateDuration("sampling.capture_delay", s.CaptureDelay, false)
}

func validateCodegen(c domain.CodegenSettings) error {
	if c.FindTimeoutMS <= 0 {
		return fmt.Errorf("codegen.find_timeout_ms must be > 0")
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("codegen.max_candidates must be > 0")
	}
	return nil
}

func validateNaming(n domain.NamingSettings) error {
	if n.MaxAttempts < 1 {
		return fmt.Errorf("naming.max_attempts must be >= 1")
	}
	if n.MaxLength < 1 {
		return fmt.Errorf("naming.max_length must be >= 1")
	}
	return validateDuration("naming.prompt_timeout", n.PromptTimeout, true)
}

// validateDuration accepts an empty value, which means the default.
func validateDuration(key, raw string, positive bool) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s invalid: %w", key, err)
	}
	if d < 0 || (positive && d == 0) {
		return fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return nil
}
