package domain

import "time"

// Duration accessors parse the string settings and fall back to the
// defaults when a value is missing or malformed. Validation reports bad
// values separately; these never fail.

// RetryInterval returns the pause between tree query attempts.
func (s SamplingSettings) RetryInterval() time.Duration {
	return parseDurationOr(s.TreeRetryInterval, DefaultTreeRetryInterval)
}

// Delay returns the pause before the screenshot is taken.
func (s SamplingSettings) Delay() time.Duration {
	return parseDurationOr(s.CaptureDelay, DefaultCaptureDelay)
}

// Timeout returns the bound on a single naming prompt.
func (n NamingSettings) Timeout() time.Duration {
	return parseDurationOr(n.PromptTimeout, DefaultPromptTimeout)
}

// Attempts returns the retry cap, at least 1.
func (n NamingSettings) Attempts() int {
	return max(1, n.MaxAttempts)
}

// Attempts returns the number of promote tries, at least 1.
func (c CommitSettings) Attempts() int {
	return max(1, c.PromoteAttempts)
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// CropSide returns the point-mode crop side, defaulting when unset.
func (s SamplingSettings) CropSide() int {
	if s.PointCropSize <= 0 {
		return DefaultPointCropSize
	}
	return s.PointCropSize
}

// Retries returns the number of tree query attempts, defaulting when unset.
func (s SamplingSettings) Retries() int {
	if s.TreeRetry <= 0 {
		return DefaultTreeRetry
	}
	return s.TreeRetry
}
