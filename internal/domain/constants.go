package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for artifact files (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for config files (rw-------)
	SecureFilePermissions = 0o600
)

// Sampling defaults
const (
	// DefaultPointCropSize is the side of the square cropped around a point
	DefaultPointCropSize = 260
	// DefaultTreeRetry is how many times an empty tree query is attempted
	DefaultTreeRetry = 3
	// DefaultTreeRetryInterval separates tree query attempts
	DefaultTreeRetryInterval = 220 * time.Millisecond
	// DefaultCaptureDelay lets a selection overlay disappear before capture
	DefaultCaptureDelay = 180 * time.Millisecond
	// DefaultAncestorDepth bounds the clickable-ancestor walk
	DefaultAncestorDepth = 6
)

// Locator generation defaults
const (
	// DefaultFindTimeoutMS is the findOne timeout written into locators
	DefaultFindTimeoutMS = 2000
	// DefaultMaxCandidates caps how many ranked descriptors get locators
	DefaultMaxCandidates = 12
)

// Naming defaults
const (
	// DefaultMaxNameAttempts caps re-prompts after name collisions
	DefaultMaxNameAttempts = 5
	// DefaultMaxNameLength caps sanitized names, in runes
	DefaultMaxNameLength = 60
	// DefaultPromptTimeout bounds a single naming prompt
	DefaultPromptTimeout = 30 * time.Second
	// DefaultPromoteAttempts is how many copies are tried before discarding
	DefaultPromoteAttempts = 1
)

// Black frame heuristic
const (
	// BlackFrameSamples is the number of diagonal pixels inspected
	BlackFrameSamples = 20
	// BlackFrameLuminance is the luminance below which a pixel counts as dark
	BlackFrameLuminance = 12
	// BlackFrameRatio is the dark fraction that flags a crop as black
	BlackFrameRatio = 0.9
)

// Catalog constants
const (
	// DefaultListLimit is the default number of catalog entries to display
	DefaultListLimit = 20
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// ScratchDirFormat names scratch directories by capture time; the
	// fractional separator is replaced with '-' when used
	ScratchDirFormat = "2006-01-02T15-04-05.000Z"
)
